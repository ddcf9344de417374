package handlers

import (
	"fmt"
	"sort"
	"time"

	"jobly/apperr"
	"jobly/models"
)

// In-memory repositories mirroring the store contract, including the
// constraint failures the SQL schema would produce.

type fakeCompanyRepo struct {
	companies map[string]*models.Company
	jobs      *fakeJobRepo
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: map[string]*models.Company{}}
}

func (f *fakeCompanyRepo) FindAll(filter models.CompanyFilter) ([]models.CompanySummary, error) {
	out := []models.CompanySummary{}
	for _, c := range f.companies {
		if filter.Search != "" && c.Handle != filter.Search {
			continue
		}
		if filter.MinEmployees != nil && (c.NumEmployees == nil || *c.NumEmployees < *filter.MinEmployees) {
			continue
		}
		if filter.MaxEmployees != nil && (c.NumEmployees == nil || *c.NumEmployees > *filter.MaxEmployees) {
			continue
		}
		out = append(out, models.CompanySummary{Handle: c.Handle, Name: c.Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Handle < out[j].Handle })
	return out, nil
}

func (f *fakeCompanyRepo) FindOne(handle string) (*models.Company, error) {
	c, ok := f.companies[handle]
	if !ok {
		return nil, apperr.NotFound(fmt.Sprintf("There is no company with handle of %s", handle))
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCompanyRepo) Create(data models.CompanyCreate) (*models.Company, error) {
	if _, ok := f.companies[data.Handle]; ok {
		return nil, apperr.Constraint("duplicate value violates unique constraint: companies_pkey")
	}
	c := &models.Company{
		Handle:       data.Handle,
		Name:         data.Name,
		NumEmployees: data.NumEmployees,
		Description:  data.Description,
		LogoURL:      data.LogoURL,
	}
	f.companies[c.Handle] = c
	copied := *c
	return &copied, nil
}

func (f *fakeCompanyRepo) Update(handle string, changes map[string]interface{}) (*models.Company, error) {
	if len(changes) == 0 {
		return nil, apperr.BadRequest("no fields to update")
	}
	c, ok := f.companies[handle]
	if !ok {
		return nil, apperr.NotFound(fmt.Sprintf("There is no company with handle of %s", handle))
	}
	for col, v := range changes {
		switch col {
		case "handle":
			delete(f.companies, c.Handle)
			old := c.Handle
			c.Handle = v.(string)
			f.companies[c.Handle] = c
			// The key update follows through to referencing jobs.
			if f.jobs != nil {
				for _, j := range f.jobs.jobs {
					if j.CompanyHandle == old {
						j.CompanyHandle = c.Handle
					}
				}
			}
		case "name":
			c.Name = v.(string)
		case "num_employees":
			n := v.(int)
			c.NumEmployees = &n
		case "description":
			s := v.(string)
			c.Description = &s
		case "logo_url":
			s := v.(string)
			c.LogoURL = &s
		default:
			return nil, apperr.BadRequest("cannot update field: " + col)
		}
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCompanyRepo) Delete(handle string) (string, error) {
	if _, ok := f.companies[handle]; !ok {
		return "", apperr.NotFound(fmt.Sprintf("There is no company with handle of %s", handle))
	}
	if f.jobs != nil {
		for _, j := range f.jobs.jobs {
			if j.CompanyHandle == handle {
				return "", apperr.Constraint("foreign key violation: jobs_company_handle_fkey")
			}
		}
	}
	delete(f.companies, handle)
	return handle, nil
}

type fakeJobRepo struct {
	jobs      map[int64]*models.Job
	companies *fakeCompanyRepo
	nextID    int64
}

func newFakeJobRepo(companies *fakeCompanyRepo) *fakeJobRepo {
	f := &fakeJobRepo{jobs: map[int64]*models.Job{}, companies: companies}
	companies.jobs = f
	return f
}

func (f *fakeJobRepo) companyExists(handle string) bool {
	_, ok := f.companies.companies[handle]
	return ok
}

func (f *fakeJobRepo) FindAll(filter models.JobFilter) ([]models.JobSummary, error) {
	out := []models.JobSummary{}
	for _, j := range f.jobs {
		if filter.Search != "" && j.Title != filter.Search {
			continue
		}
		if filter.MinSalary != nil && j.Salary < *filter.MinSalary {
			continue
		}
		if filter.MaxSalary != nil && j.Salary > *filter.MaxSalary {
			continue
		}
		out = append(out, models.JobSummary{Title: j.Title, CompanyHandle: j.CompanyHandle})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (f *fakeJobRepo) FindOne(id int64) (*models.Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return nil, apperr.NotFound(fmt.Sprintf("No jobs found with the id of %d", id))
	}
	copied := *j
	return &copied, nil
}

func (f *fakeJobRepo) Create(data models.JobCreate) (*models.Job, error) {
	if !f.companyExists(data.CompanyHandle) {
		return nil, apperr.Constraint("foreign key violation: jobs_company_handle_fkey")
	}
	f.nextID++
	j := &models.Job{
		ID:            f.nextID,
		Title:         data.Title,
		Salary:        *data.Salary,
		Equity:        data.Equity,
		CompanyHandle: data.CompanyHandle,
		DatePosted:    time.Now().UTC(),
	}
	f.jobs[j.ID] = j
	copied := *j
	return &copied, nil
}

func (f *fakeJobRepo) Update(id int64, changes map[string]interface{}) (*models.Job, error) {
	if len(changes) == 0 {
		return nil, apperr.BadRequest("no fields to update")
	}
	j, ok := f.jobs[id]
	if !ok {
		return nil, apperr.NotFound(fmt.Sprintf("No jobs found with the id of %d", id))
	}
	for col, v := range changes {
		switch col {
		case "title":
			j.Title = v.(string)
		case "salary":
			j.Salary = v.(float64)
		case "equity":
			e := v.(float64)
			j.Equity = &e
		case "company_handle":
			handle := v.(string)
			if !f.companyExists(handle) {
				return nil, apperr.Constraint("foreign key violation: jobs_company_handle_fkey")
			}
			j.CompanyHandle = handle
		default:
			return nil, apperr.BadRequest("cannot update field: " + col)
		}
	}
	copied := *j
	return &copied, nil
}

func (f *fakeJobRepo) Delete(id int64) (int64, error) {
	if _, ok := f.jobs[id]; !ok {
		return 0, apperr.NotFound(fmt.Sprintf("There is no job with the id of %d", id))
	}
	delete(f.jobs, id)
	return id, nil
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (f *fakeUserRepo) emailTaken(email, exceptUsername string) bool {
	for _, u := range f.users {
		if u.Email == email && u.Username != exceptUsername {
			return true
		}
	}
	return false
}

func (f *fakeUserRepo) FindAll() ([]models.UserSummary, error) {
	out := []models.UserSummary{}
	for _, u := range f.users {
		out = append(out, models.UserSummary{
			Username:  u.Username,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastName < out[j].LastName })
	return out, nil
}

func (f *fakeUserRepo) FindOne(username string) (*models.User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, apperr.NotFound(fmt.Sprintf("Could not locate the user with username %s", username))
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) Create(data models.UserCreate, hashedPassword string) (*models.User, error) {
	if _, ok := f.users[data.Username]; ok {
		return nil, apperr.Constraint("duplicate value violates unique constraint: users_pkey")
	}
	if f.emailTaken(data.Email, "") {
		return nil, apperr.Constraint("duplicate value violates unique constraint: users_email_key")
	}
	u := &models.User{
		Username:  data.Username,
		Password:  hashedPassword,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Email:     data.Email,
		PhotoURL:  data.PhotoURL,
	}
	f.users[u.Username] = u
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) Update(username string, changes map[string]interface{}) (*models.User, error) {
	if len(changes) == 0 {
		return nil, apperr.BadRequest("no fields to update")
	}
	u, ok := f.users[username]
	if !ok {
		return nil, apperr.NotFound(fmt.Sprintf("Could not locate the user with username %s", username))
	}
	for col, v := range changes {
		switch col {
		case "username":
			delete(f.users, u.Username)
			u.Username = v.(string)
			f.users[u.Username] = u
		case "password":
			u.Password = v.(string)
		case "first_name":
			u.FirstName = v.(string)
		case "last_name":
			u.LastName = v.(string)
		case "email":
			email := v.(string)
			if f.emailTaken(email, u.Username) {
				return nil, apperr.Constraint("duplicate value violates unique constraint: users_email_key")
			}
			u.Email = email
		case "photo_url":
			s := v.(string)
			u.PhotoURL = &s
		default:
			return nil, apperr.BadRequest("cannot update field: " + col)
		}
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) Delete(username string) (string, error) {
	if _, ok := f.users[username]; !ok {
		return "", apperr.NotFound(fmt.Sprintf("There is no user with the username of %s", username))
	}
	delete(f.users, username)
	return username, nil
}
