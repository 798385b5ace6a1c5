package rest

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/google/uuid"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type registerRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type createListRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type createActionRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Deadline    *deadline `json:"deadline"`
}

// deadline accepts RFC 3339 and also a timestamp without zone, which is
// taken as UTC.
type deadline struct {
	time.Time
}

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func (d *deadline) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("deadline must be a string: %w", err)
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		d.Time = t
		return nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid deadline %q", s)
}

type actionResponse struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline"`
	OwnerID     int64     `json:"owner_id"`
	CardGUID    uuid.UUID `json:"card_guid"`
}

type listResponse struct {
	Title       string           `json:"title"`
	Description *string          `json:"description"`
	OwnerID     int64            `json:"owner_id"`
	ListGUID    uuid.UUID        `json:"list_guid"`
	Cards       []actionResponse `json:"cards"`
}

type emptyResponse struct{}

type healthResponse struct {
	Status string `json:"status"`
}

func toActionResponse(a *models.TodoAction) actionResponse {
	return actionResponse{
		Title:       a.Title,
		Description: a.Description,
		Deadline:    a.Deadline,
		OwnerID:     a.OwnerID,
		CardGUID:    a.CardGUID,
	}
}

func toListResponse(l *models.TodoList) listResponse {
	cards := make([]actionResponse, 0, len(l.Cards))
	for _, c := range l.Cards {
		cards = append(cards, toActionResponse(c))
	}
	return listResponse{
		Title:       l.Title,
		Description: l.Description,
		OwnerID:     l.OwnerID,
		ListGUID:    l.ListGUID,
		Cards:       cards,
	}
}
