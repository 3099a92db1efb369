package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	core_port "listing-service/internal/core/port"
)

type ServerConfig struct {
	Port               string
	CORSAllowedOrigins []string
}

// Handlers - набор обработчиков, которые монтируются в роутер
type Handlers struct {
	Properties *PropertyHandler
	Inquiries  *InquiryHandler
	Contacts   *ContactHandler
}

// Server - REST API сервер сервиса объявлений.
type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

// NewRouter собирает роутер со всеми middleware; используется сервером и тестами
func NewRouter(cfg ServerConfig, handlers Handlers, tokens core_port.TokenServicePort, metrics *Metrics, baseLogger core_port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer, metrics.Middleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", traceHeader},
		ExposedHeaders:   []string{traceHeader},
		AllowCredentials: true,
		MaxAge:           300, // 5 минут
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Без токена запрос идет анонимно; права проверяет ядро
		r.Use(AuthMiddleware(tokens))

		r.Route("/properties", func(r chi.Router) {
			r.Get("/", handlers.Properties.ListProperties)
			r.Post("/", handlers.Properties.CreateProperty)
			r.Get("/{propertyID}", handlers.Properties.GetProperty)
			r.Put("/{propertyID}", handlers.Properties.UpdateProperty)
			r.Delete("/{propertyID}", handlers.Properties.DeleteProperty)

			r.Post("/{propertyID}/inquiry", handlers.Inquiries.CreateInquiry)
			r.Get("/{propertyID}/inquiries", handlers.Inquiries.ListPropertyInquiries)
		})

		r.Get("/user/properties", handlers.Properties.ListMyProperties)
		r.Get("/user/inquiries", handlers.Inquiries.ListMyInquiries)

		r.Patch("/inquiries/{inquiryID}", handlers.Inquiries.UpdateInquiryStatus)
		r.Delete("/inquiries/{inquiryID}", handlers.Inquiries.DeleteInquiry)

		r.Route("/contact", func(r chi.Router) {
			r.Post("/", handlers.Contacts.CreateContact)
			r.Get("/", handlers.Contacts.ListContacts)
			r.Patch("/{contactID}", handlers.Contacts.UpdateContactStatus)
			r.Delete("/{contactID}", handlers.Contacts.DeleteContact)
		})
	})

	return r
}

// NewServer создает новый экземпляр сервера.
func NewServer(cfg ServerConfig, handlers Handlers, tokens core_port.TokenServicePort, metrics *Metrics, baseLogger core_port.LoggerPort) *Server {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           NewRouter(cfg, handlers, tokens, metrics, baseLogger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Server{
		httpServer: srv,
		logger:     baseLogger,
	}
}

// Start запускает HTTP-сервер.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", core_port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop корректно останавливает сервер.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
