package server

import (
	"context"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/substack-in-go/pkg/auth"
	"github.com/doodlesbykumbi/substack-in-go/pkg/config"
	"github.com/doodlesbykumbi/substack-in-go/pkg/logging"
	"github.com/doodlesbykumbi/substack-in-go/pkg/server/middleware"
	"github.com/doodlesbykumbi/substack-in-go/pkg/server/store"
	gormstore "github.com/doodlesbykumbi/substack-in-go/pkg/server/store/gorm"
)

// Stores groups the stores handlers depend on.
type Stores struct {
	Users         store.UsersStore
	Categories    store.CategoriesStore
	Subscriptions store.SubscriptionsStore
	Reminders     store.RemindersStore
	Health        store.HealthStore
}

// GormStores returns the GORM implementation of every store.
func GormStores(db *gorm.DB) Stores {
	return Stores{
		Users:         gormstore.NewUsersStore(db),
		Categories:    gormstore.NewCategoriesStore(db),
		Subscriptions: gormstore.NewSubscriptionsStore(db),
		Reminders:     gormstore.NewRemindersStore(db),
		Health:        gormstore.NewHealthStore(db),
	}
}

type Server struct {
	Router *mux.Router
	DB     *gorm.DB
	Tokens *auth.Tokens

	UsersStore         store.UsersStore
	CategoriesStore    store.CategoriesStore
	SubscriptionsStore store.SubscriptionsStore
	RemindersStore     store.RemindersStore
	HealthStore        store.HealthStore

	JWTMiddleware *middleware.JWTAuthenticator
	Metrics       *middleware.Metrics

	config  atomic.Pointer[config.SubStackConfig]
	handler http.Handler
	srv     *http.Server
}

// NewServer creates a server backed by db.
func NewServer(
	cfg *config.SubStackConfig,
	db *gorm.DB,
	tokens *auth.Tokens,
	host string,
	port string,
) *Server {
	s := NewServerWithStores(cfg, GormStores(db), tokens, host, port)
	s.DB = db
	return s
}

// NewServerWithStores creates a server over arbitrary store implementations.
func NewServerWithStores(
	cfg *config.SubStackConfig,
	stores Stores,
	tokens *auth.Tokens,
	host string,
	port string,
) *Server {
	router := mux.NewRouter().UseEncodedPath()
	metrics := middleware.NewMetrics()
	router.Use(metrics.Middleware)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type", "If-Unmodified-Since", middleware.RequestIDHeader}),
		handlers.ExposedHeaders([]string{middleware.RequestIDHeader, "X-Current-Updated-At"}),
	)

	var handler http.Handler = router
	handler = cors(handler)
	handler = middleware.Recovery(handler)
	handler = middleware.RequestID(handler)
	handler = handlers.CombinedLoggingHandler(logging.AccessLogWriter(), handler)

	s := &Server{
		Router:             router,
		Tokens:             tokens,
		UsersStore:         stores.Users,
		CategoriesStore:    stores.Categories,
		SubscriptionsStore: stores.Subscriptions,
		RemindersStore:     stores.Reminders,
		HealthStore:        stores.Health,
		JWTMiddleware:      middleware.NewJWTAuthenticator(tokens, stores.Users),
		Metrics:            metrics,
		handler:            handler,
		srv: &http.Server{
			Handler:      handler,
			Addr:         net.JoinHostPort(host, port),
			WriteTimeout: 15 * time.Second,
			ReadTimeout:  15 * time.Second,
		},
	}
	s.config.Store(cfg)
	return s
}

// Config returns the current configuration.
func (s *Server) Config() *config.SubStackConfig {
	return s.config.Load()
}

// UpdateConfig swaps in a reloaded configuration.
func (s *Server) UpdateConfig(cfg *config.SubStackConfig) {
	s.config.Store(cfg)
}

// Handler is the router wrapped in the full middleware chain.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr is the address the server listens on.
func (s *Server) Addr() string {
	return s.srv.Addr
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

// StartWithListener serves on an existing listener.
func (s *Server) StartWithListener(l net.Listener) error {
	return s.srv.Serve(l)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
