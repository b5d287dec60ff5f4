package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	summaryDelivery "meeting-notes-backend/internal/summary/delivery"
	summaryUsecase "meeting-notes-backend/internal/summary/usecase"
	"meeting-notes-backend/pkg/config"
	"meeting-notes-backend/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	summaryHandler *summaryDelivery.SummaryHandler
	config         *config.Config
	metrics        *metrics.Metrics
	log            *slog.Logger
}

// NewHandler wires the HTTP layer. m may be nil when metrics are disabled.
func NewHandler(summaryUc summaryUsecase.SummaryUsecase, cfg *config.Config, m *metrics.Metrics, log *slog.Logger) *Handler {
	return &Handler{
		summaryHandler: summaryDelivery.NewSummaryHandler(summaryUc, cfg.MaxUploadBytes()),
		config:         cfg,
		metrics:        m,
		log:            log,
	}
}

// Engine builds the gin engine with middleware and routes.
func (h *Handler) Engine() *gin.Engine {
	r := gin.New()

	r.Use(RequestLogger(h.log, h.metrics))
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprint(recovered)})
	}))
	r.Use(MaxBodySize(h.config.MaxUploadBytes() + summaryDelivery.MultipartOverhead))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     h.config.AllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept", "Authorization", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	SetupRoutes(r, h.summaryHandler, h.metrics)
	return r
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (h *Handler) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       h.config.HTTPReadTimeout,
		WriteTimeout:      h.config.HTTPWriteTimeout,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		h.log.Info("server starting", "addr", addr, "cors_origin", h.config.CORSOrigin)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	h.log.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), h.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
