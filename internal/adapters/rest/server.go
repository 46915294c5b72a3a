package rest

import (
	"context"
	"fmt"
	"net/http"

	"property-scraper-service/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server - наш REST API сервер.
type Server struct {
	httpServer *http.Server
	logger     port.LoggerPort
}

// NewServer создает новый экземпляр сервера.
// imagesDir - каталог со скачанными изображениями; он монтируется на /images.
func NewServer(
	httpPort string,
	allowedOrigins []string,
	scrapeHandler *ScrapeHandler,
	catalogHandler *CatalogHandler,
	imagesDir string,
	baseLogger port.LoggerPort,
) *Server {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           300, // 5 минут
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/scrape", func(r chi.Router) {
			r.Post("/url", scrapeHandler.ScrapeURL)
			r.Post("/html", scrapeHandler.ScrapeHTML)
			r.Post("/bulk", scrapeHandler.ScrapeBulk)
		})

		r.Route("/properties", func(r chi.Router) {
			r.Get("/", catalogHandler.ListProperties)
			r.Post("/", catalogHandler.SaveProperty)
			r.Put("/{propertyID}", catalogHandler.UpdateProperty)
			r.Delete("/{propertyID}", catalogHandler.DeleteProperty)
			r.Post("/{propertyID}/enhance", catalogHandler.ReEnhanceProperty)
		})

		r.Get("/history", catalogHandler.GetHistory)
	})

	// Отдаем сохраненные изображения как статику
	if imagesDir != "" {
		fileServer := http.StripPrefix("/images/", http.FileServer(http.Dir(imagesDir)))
		r.Get("/images/*", fileServer.ServeHTTP)
	}

	srv := &http.Server{
		Addr:    ":" + httpPort,
		Handler: r,
	}

	return &Server{
		httpServer: srv,
		logger:     baseLogger,
	}
}

// Start запускает HTTP-сервер.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", port.Fields{"address": s.httpServer.Addr})
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
