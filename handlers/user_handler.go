package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"jobly/apperr"
	"jobly/auth"
	"jobly/models"
	"jobly/repository"
)

type UserHandler struct {
	Repo   repository.UserRepository
	Hasher *auth.PasswordHasher
	Tokens *auth.TokenService
}

// userWithToken decorates the signup response; the embedded User keeps
// the password hash out of the JSON.
type userWithToken struct {
	*models.User
	Token string `json:"token"`
}

// Signup handles POST /users: hash the password, create the row, and log
// the new user straight in with a fresh token.
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var data models.UserCreate
	if err := decodeJSON(r, &data); err != nil {
		writeError(w, err)
		return
	}
	if err := checkStruct(data); err != nil {
		writeError(w, err)
		return
	}

	hashed, err := h.Hasher.Hash(data.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.Repo.Create(data, hashed)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := h.Tokens.Issue(user.Username, user.IsAdmin)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"user": userWithToken{User: user, Token: token},
	})
}

// Login handles POST /users/login. An unknown username and a wrong
// password are indistinguishable to the client.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := decodeJSON(r, &creds); err != nil {
		writeError(w, err)
		return
	}

	invalid := apperr.BadRequest("Invalid username/password")

	user, err := h.Repo.FindOne(creds.Username)
	if err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) && ae.Status == http.StatusNotFound {
			writeError(w, invalid)
			return
		}
		writeError(w, err)
		return
	}

	if !h.Hasher.Verify(creds.Password, user.Password) {
		writeError(w, invalid)
		return
	}

	token, err := h.Tokens.Issue(user.Username, user.IsAdmin)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Logged In!",
		"token":   token,
	})
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Repo.FindAll()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.Repo.FindOne(mux.Vars(r)["username"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.UserPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, err)
		return
	}
	if err := checkStruct(patch); err != nil {
		writeError(w, err)
		return
	}

	// The stored column is always a hash, never the plaintext.
	if patch.Password != nil {
		hashed, err := h.Hasher.Hash(*patch.Password)
		if err != nil {
			writeError(w, err)
			return
		}
		patch.Password = &hashed
	}

	user, err := h.Repo.Update(mux.Vars(r)["username"], patch.Changes())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Repo.Delete(mux.Vars(r)["username"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "User Deleted"})
}
