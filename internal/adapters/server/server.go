// Package server exposes the offline subsystem's state over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.trai.ch/cellar/internal/build"
	"go.trai.ch/cellar/internal/core/domain"
	"go.trai.ch/cellar/internal/core/ports"
	"go.trai.ch/zerr"
)

const shutdownTimeout = 5 * time.Second

// Source provides the state the server reports.
type Source interface {
	Status() domain.StatusReport
	PendingOperations() []domain.PendingOperation
	Sync(ctx context.Context) (domain.DrainResult, error)
}

// Server serves /healthz, /status, /queue, /sync and /metrics.
type Server struct {
	addr   string
	router *gin.Engine
	logger ports.Logger
}

// New builds the router. metrics may be nil to omit /metrics.
func New(addr string, src Source, metrics http.Handler, logger ports.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	h := &handlers{src: src}
	router.GET("/healthz", h.health)
	router.GET("/status", h.status)
	router.GET("/queue", h.queue)
	router.POST("/sync", h.sync)
	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics))
	}

	return &Server{addr: addr, router: router, logger: logger}
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrServerFailed.Error()), "address", s.addr)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("status server listening on " + ln.Addr().String())

	select {
	case err := <-errCh:
		return zerr.Wrap(err, domain.ErrServerFailed.Error())
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return zerr.Wrap(err, domain.ErrServerFailed.Error())
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return zerr.Wrap(err, domain.ErrServerFailed.Error())
	}
	return nil
}

func requestLogger(logger ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug(fmt.Sprintf("%s %s %d %s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).Round(time.Microsecond)))
	}
}

type handlers struct {
	src Source
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Online  bool   `json:"online"`
}

type queueItem struct {
	domain.PendingOperation
	State domain.OperationState `json:"state"`
}

type queueResponse struct {
	Operations []queueItem `json:"operations"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:  "ok",
		Version: build.Version,
		Online:  h.src.Status().Network.IsOnline,
	})
}

func (h *handlers) status(c *gin.Context) {
	c.JSON(http.StatusOK, h.src.Status())
}

func (h *handlers) queue(c *gin.Context) {
	ops := h.src.PendingOperations()
	items := make([]queueItem, 0, len(ops))
	for _, op := range ops {
		items = append(items, queueItem{PendingOperation: op, State: op.State()})
	}
	c.JSON(http.StatusOK, queueResponse{Operations: items})
}

func (h *handlers) sync(c *gin.Context) {
	result, err := h.src.Sync(c.Request.Context())
	if err != nil {
		code := http.StatusInternalServerError
		switch {
		case errors.Is(err, domain.ErrOffline):
			code = http.StatusServiceUnavailable
		case errors.Is(err, domain.ErrDrainInProgress):
			code = http.StatusConflict
		}
		c.JSON(code, errorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
