// Package rest is the HTTP/JSON transport of todokeeper.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/metrics"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/services"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const shutdownTimeout = 10 * time.Second

// UserService is the part of services.UserService the handlers need.
type UserService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.Token, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// TodoService is the part of services.TodoService the handlers need.
type TodoService interface {
	GetList(ctx context.Context, listGUID uuid.UUID, ownerID int64) (*models.TodoList, error)
	ListLists(ctx context.Context, ownerID int64) ([]*models.TodoList, error)
	CreateList(ctx context.Context, ownerID int64, in services.NewList) (*models.TodoList, error)
	GetAction(ctx context.Context, listGUID, cardGUID uuid.UUID, ownerID int64) (*models.TodoAction, error)
	CreateAction(ctx context.Context, listGUID uuid.UUID, ownerID int64, in services.NewAction) (*models.TodoAction, error)
	DeleteAction(ctx context.Context, listGUID, cardGUID uuid.UUID, ownerID int64) error
	DeleteList(ctx context.Context, listGUID uuid.UUID, ownerID int64) error
}

// Pinger reports backing store liveness for /health. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	address string
	logger  logging.Logger
	users   UserService
	todos   TodoService
	metrics *metrics.Metrics
	db      Pinger
	router  *mux.Router
}

// NewServer wires the router. db may be nil, in which case /health only
// reports that the process is up.
func NewServer(a string, l logging.Logger, us UserService, ts TodoService, m *metrics.Metrics, db Pinger) *Server {
	s := &Server{
		address: a,
		logger:  l.With("module", "http_server"),
		users:   us,
		todos:   ts,
		metrics: m,
		db:      db,
	}
	s.router = s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-done
	return nil
}
