package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"jobly/handlers"
	"jobly/middleware"
)

// CORS middleware
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*") // Replace * with your domain in production
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, _token")

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// New wires every route to its validator, auth policy and handler:
// identity-attach on reads, admin-only on company/job writes, owner-only
// on user mutation.
func New(
	companyHandler *handlers.CompanyHandler,
	jobHandler *handlers.JobHandler,
	userHandler *handlers.UserHandler,
	photoHandler *handlers.PhotoHandler,
	mw *middleware.Middleware,
) http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = handlers.NotFoundHandler()

	router.HandleFunc("/health", handlers.HealthCheck).Methods(http.MethodGet)

	// Company routes
	router.Handle("/companies", mw.Authenticate(http.HandlerFunc(companyHandler.List))).Methods(http.MethodGet)
	router.Handle("/companies", mw.EnsureAdmin(http.HandlerFunc(companyHandler.Create))).Methods(http.MethodPost)
	router.Handle("/companies/{handle}", mw.Authenticate(http.HandlerFunc(companyHandler.Get))).Methods(http.MethodGet)
	router.Handle("/companies/{handle}", mw.EnsureAdmin(http.HandlerFunc(companyHandler.Update))).Methods(http.MethodPatch)
	router.Handle("/companies/{handle}", mw.EnsureAdmin(http.HandlerFunc(companyHandler.Delete))).Methods(http.MethodDelete)

	// Job routes
	router.Handle("/jobs", mw.Authenticate(http.HandlerFunc(jobHandler.List))).Methods(http.MethodGet)
	router.Handle("/jobs", mw.EnsureAdmin(http.HandlerFunc(jobHandler.Create))).Methods(http.MethodPost)
	router.Handle("/jobs/{id}", mw.Authenticate(http.HandlerFunc(jobHandler.Get))).Methods(http.MethodGet)
	router.Handle("/jobs/{id}", mw.EnsureAdmin(http.HandlerFunc(jobHandler.Update))).Methods(http.MethodPatch)
	router.Handle("/jobs/{id}", mw.EnsureAdmin(http.HandlerFunc(jobHandler.Delete))).Methods(http.MethodDelete)

	// User routes
	router.HandleFunc("/users", userHandler.Signup).Methods(http.MethodPost)
	router.HandleFunc("/users/login", userHandler.Login).Methods(http.MethodPost)
	router.HandleFunc("/users", userHandler.List).Methods(http.MethodGet)
	router.HandleFunc("/users/{username}", userHandler.Get).Methods(http.MethodGet)
	router.Handle("/users/{username}", mw.EnsureOwner(http.HandlerFunc(userHandler.Update))).Methods(http.MethodPatch)
	router.Handle("/users/{username}", mw.EnsureOwner(http.HandlerFunc(userHandler.Delete))).Methods(http.MethodDelete)
	router.Handle("/users/{username}/photo", mw.EnsureOwner(http.HandlerFunc(photoHandler.Upload))).Methods(http.MethodPost)

	return handlers.RecoverWrapper(withCORS(router))
}
