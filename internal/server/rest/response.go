package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/todokeeper/internal/common"
)

type detailResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, detailResponse{Detail: detail})
}

func writeUnauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", common.BearerScheme)
	writeDetail(w, http.StatusUnauthorized, detail)
}

// writeError maps service errors to status codes. Anything unrecognised is
// logged and reported as 500 without details.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrListNotFound):
		writeDetail(w, http.StatusNotFound, "List not found")
	case errors.Is(err, common.ErrCardNotFound):
		writeDetail(w, http.StatusNotFound, "Card not found")
	case errors.Is(err, common.ErrorNotFound):
		writeDetail(w, http.StatusNotFound, "Not found")
	case errors.Is(err, common.ErrorValidation):
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		writeDetail(w, http.StatusConflict, "Already exists")
	default:
		s.logger.Error(r.Context(), "request failed", "error", err, "request_id", requestIDFromContext(r.Context()))
		writeDetail(w, http.StatusInternalServerError, "internal error")
	}
}
