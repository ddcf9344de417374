package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gorilla/mux"

	"jobly/apperr"
	"jobly/repository"
	"jobly/utils"
)

// maxPhotoSize caps profile photo uploads at 10 MiB.
const maxPhotoSize = 10 << 20

type PhotoHandler struct {
	Repo    repository.UserRepository
	Storage *utils.R2Storage
}

// Upload handles POST /users/{username}/photo: the multipart "photo"
// field is stored in object storage and the user's photo_url is pointed
// at it. A previously stored photo is removed once the row is updated.
func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.Storage == nil {
		writeError(w, apperr.New(http.StatusInternalServerError, "photo storage is not configured"))
		return
	}

	username := mux.Vars(r)["username"]

	user, err := h.Repo.FindOne(username)
	if err != nil {
		writeError(w, err)
		return
	}
	oldPhotoURL := user.PhotoURL

	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		writeError(w, apperr.BadRequest("could not parse multipart form: "+err.Error()))
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		writeError(w, apperr.BadRequest("missing photo file"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoSize))
	if err != nil {
		writeError(w, err)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	key := fmt.Sprintf("photos/%s_%d%s", username, time.Now().Unix(), filepath.Ext(header.Filename))
	photoURL, err := h.Storage.Upload(data, key, contentType)
	if err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.Repo.Update(username, map[string]interface{}{"photo_url": photoURL})
	if err != nil {
		writeError(w, err)
		return
	}

	// Best effort: a dangling old object is not worth failing the request.
	if oldPhotoURL != nil && *oldPhotoURL != photoURL {
		_ = h.Storage.Delete(*oldPhotoURL)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"user": updated})
}
