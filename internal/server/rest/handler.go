package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/services"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const maxBodyBytes = 1 << 20

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Warn(r.Context(), "health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// Login takes an urlencoded form with username and password.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid form")
		return
	}
	username, password := r.PostForm.Get("username"), r.PostForm.Get("password")
	if username == "" || password == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "username and password are required")
		return
	}

	token, err := s.users.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			s.metrics.RecordAuthFailure("bad_credentials")
			writeUnauthorized(w, "Incorrect username or password")
			return
		}
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Logged in", "email", username)
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token.AccessToken, TokenType: token.TokenType})
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {

	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if req.Email == nil || req.Password == nil {
		writeDetail(w, http.StatusUnprocessableEntity, "email and password are required")
		return
	}

	u, err := s.users.Register(r.Context(), *req.Email, *req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			writeDetail(w, http.StatusConflict, "Email already registered")
			return
		}
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "user_id", u.ID)
	writeJSON(w, http.StatusOK, emptyResponse{})
}

func (s *Server) ListLists(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	lists, err := s.todos.ListLists(r.Context(), user.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := make([]listResponse, 0, len(lists))
	for _, l := range lists {
		resp = append(resp, toListResponse(l))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) CreateList(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	var req createListRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if req.Title == nil {
		writeDetail(w, http.StatusUnprocessableEntity, "title is required")
		return
	}

	list, err := s.todos.CreateList(r.Context(), user.ID, services.NewList{Title: *req.Title, Description: req.Description})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toListResponse(list))
}

func (s *Server) GetList(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	listGUID, ok := pathGUID(w, r, "list_id")
	if !ok {
		return
	}

	list, err := s.todos.GetList(r.Context(), listGUID, user.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toListResponse(list))
}

func (s *Server) DeleteList(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	listGUID, ok := pathGUID(w, r, "list_id")
	if !ok {
		return
	}

	if err := s.todos.DeleteList(r.Context(), listGUID, user.ID); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyResponse{})
}

func (s *Server) GetAction(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	listGUID, ok := pathGUID(w, r, "list_id")
	if !ok {
		return
	}
	cardGUID, ok := pathGUID(w, r, "card_id")
	if !ok {
		return
	}

	action, err := s.todos.GetAction(r.Context(), listGUID, cardGUID, user.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toActionResponse(action))
}

func (s *Server) CreateAction(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	listGUID, ok := pathGUID(w, r, "list_id")
	if !ok {
		return
	}

	var req createActionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if req.Title == nil || req.Description == nil || req.Deadline == nil {
		writeDetail(w, http.StatusUnprocessableEntity, "title, description and deadline are required")
		return
	}

	action, err := s.todos.CreateAction(r.Context(), listGUID, user.ID, services.NewAction{
		Title:       *req.Title,
		Description: *req.Description,
		Deadline:    req.Deadline.Time,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toActionResponse(action))
}

func (s *Server) DeleteAction(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	listGUID, ok := pathGUID(w, r, "list_id")
	if !ok {
		return
	}
	cardGUID, ok := pathGUID(w, r, "card_id")
	if !ok {
		return
	}

	if err := s.todos.DeleteAction(r.Context(), listGUID, cardGUID, user.ID); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyResponse{})
}

// pathGUID parses a route variable as a uuid, answering 422 when it is not one.
func pathGUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, fmt.Sprintf("%s: invalid uuid", name))
		return uuid.Nil, false
	}
	return id, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return fmt.Errorf("invalid request body: %v", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("invalid request body: unexpected data after JSON value")
	}
	return nil
}
