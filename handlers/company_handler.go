package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"jobly/apperr"
	"jobly/models"
	"jobly/repository"
)

type CompanyHandler struct {
	Repo repository.CompanyRepository
}

// List handles GET /companies with optional search and employee-count
// bounds. An empty result is a success with an empty collection.
func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.CompanyFilter{Search: q.Get("search")}

	if v := q.Get("min_employees"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, apperr.BadRequest("min_employees must be an integer"))
			return
		}
		filter.MinEmployees = &n
	}
	if v := q.Get("max_employees"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, apperr.BadRequest("max_employees must be an integer"))
			return
		}
		filter.MaxEmployees = &n
	}
	if filter.MinEmployees != nil && filter.MaxEmployees != nil && *filter.MinEmployees > *filter.MaxEmployees {
		writeError(w, apperr.BadRequest("max_employees must be greater than min_employees"))
		return
	}

	companies, err := h.Repo.FindAll(filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"companies": companies})
}

func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	company, err := h.Repo.FindOne(mux.Vars(r)["handle"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"company": company})
}

func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var data models.CompanyCreate
	if err := decodeJSON(r, &data); err != nil {
		writeError(w, err)
		return
	}
	if err := checkStruct(data); err != nil {
		writeError(w, err)
		return
	}

	company, err := h.Repo.Create(data)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"company": company})
}

func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.CompanyPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, err)
		return
	}
	if err := checkStruct(patch); err != nil {
		writeError(w, err)
		return
	}

	company, err := h.Repo.Update(mux.Vars(r)["handle"], patch.Changes())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"company": company})
}

func (h *CompanyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Repo.Delete(mux.Vars(r)["handle"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Company Deleted"})
}
