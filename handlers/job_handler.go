package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"jobly/apperr"
	"jobly/models"
	"jobly/repository"
)

type JobHandler struct {
	Repo repository.JobRepository
}

func jobID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, apperr.BadRequest("invalid job id")
	}
	return id, nil
}

// List handles GET /jobs with optional title search and salary bounds.
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.JobFilter{Search: q.Get("search")}

	if v := q.Get("min_salary"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, apperr.BadRequest("min_salary must be a number"))
			return
		}
		filter.MinSalary = &n
	}
	if v := q.Get("max_salary"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, apperr.BadRequest("max_salary must be a number"))
			return
		}
		filter.MaxSalary = &n
	}
	if filter.MinSalary != nil && filter.MaxSalary != nil && *filter.MinSalary > *filter.MaxSalary {
		writeError(w, apperr.BadRequest("max_salary must be greater than min_salary"))
		return
	}

	jobs, err := h.Repo.FindAll(filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"jobs": jobs})
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := jobID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	job, err := h.Repo.FindOne(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"job": job})
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	var data models.JobCreate
	if err := decodeJSON(r, &data); err != nil {
		writeError(w, err)
		return
	}
	if err := checkStruct(data); err != nil {
		writeError(w, err)
		return
	}

	job, err := h.Repo.Create(data)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"job": job})
}

func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := jobID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var patch models.JobPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, err)
		return
	}
	if err := checkStruct(patch); err != nil {
		writeError(w, err)
		return
	}

	job, err := h.Repo.Update(id, patch.Changes())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"job": job})
}

func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := jobID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if _, err := h.Repo.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Job Deleted"})
}
