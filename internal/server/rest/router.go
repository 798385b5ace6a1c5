package rest

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestIDMiddleware, s.observeMiddleware)

	// mux does not run Use middleware for these two.
	r.NotFoundHandler = s.requestIDMiddleware(s.observeMiddleware(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeDetail(w, http.StatusNotFound, "Not Found")
		})))
	r.MethodNotAllowedHandler = s.requestIDMiddleware(s.observeMiddleware(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		})))

	r.HandleFunc("/health", s.Health).Methods(http.MethodGet)
	r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/login", s.Login).Methods(http.MethodPost)
	r.HandleFunc("/register", s.Register).Methods(http.MethodPost)

	api := r.NewRoute().Subrouter()
	api.Use(s.authMiddleware)

	api.HandleFunc("/todoList", s.ListLists).Methods(http.MethodGet)
	api.HandleFunc("/todoList", s.CreateList).Methods(http.MethodPost)
	api.HandleFunc("/todoList/{list_id}", s.GetList).Methods(http.MethodGet)
	api.HandleFunc("/todoList/{list_id}", s.DeleteList).Methods(http.MethodDelete)

	api.HandleFunc("/todoList/{list_id}/todoAction/", s.CreateAction).Methods(http.MethodPost)
	api.HandleFunc("/todoList/{list_id}/todoAction", s.CreateAction).Methods(http.MethodPost)
	api.HandleFunc("/todoList/{list_id}/todoAction/{card_id}", s.GetAction).Methods(http.MethodGet)
	api.HandleFunc("/todoList/{list_id}/todoAction/{card_id}", s.DeleteAction).Methods(http.MethodDelete)

	return r
}
