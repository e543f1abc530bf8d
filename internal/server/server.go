// Package server is the HTTP surface of the efaktura daemon: health, the
// subscribe scheduler and the status-change webhook.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/rezonia/efaktura/internal/model"
	"github.com/rezonia/efaktura/internal/scheduler"
	"github.com/rezonia/efaktura/internal/transport"
)

// Config holds server configuration
type Config struct {
	Address         string
	Environment     string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	Debug           bool
}

// Scheduler is the part of scheduler.Scheduler the server exposes.
type Scheduler interface {
	Status() scheduler.Status
	RunNow() (scheduler.Result, error)
}

// NotificationHandler receives decoded webhook notifications.
type NotificationHandler func(ctx context.Context, notifications []model.StatusNotification)

// Server represents the daemon HTTP server
type Server struct {
	config   *Config
	router   *gin.Engine
	sched    Scheduler
	onNotify NotificationHandler
	log      zerolog.Logger
}

// Option configures a Server
type Option func(*Server)

// WithNotificationHandler sets the callback for webhook deliveries.
// Without one, notifications are only logged.
func WithNotificationHandler(h NotificationHandler) Option {
	return func(s *Server) {
		s.onNotify = h
	}
}

// WithLogger sets the server logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Server) {
		s.log = log
	}
}

// NewServer creates a new daemon server
func NewServer(config *Config, sched Scheduler, opts ...Option) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	s := &Server{
		config: config,
		router: router,
		sched:  sched,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/scheduler", s.handleSchedulerStatus)
		v1.POST("/scheduler/run", s.handleSchedulerRun)

		v1.POST("/notifications", s.handleNotifications)
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("address", s.config.Address).Msg("HTTP server listening")
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

	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.log.Info().Msg("HTTP server shutting down")
	return srv.Shutdown(shutdownCtx)
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:      "ok",
		Time:        time.Now().UTC().Format(time.RFC3339),
		Environment: s.config.Environment,
	})
}

func (s *Server) handleSchedulerStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.sched.Status())
}

func (s *Server) handleSchedulerRun(c *gin.Context) {
	res, err := s.sched.RunNow()
	if errors.Is(err, scheduler.ErrRunInProgress) {
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	status := http.StatusOK
	if !res.OK() {
		status = http.StatusBadGateway
	}
	c.JSON(status, newRunResponse(res))
}

func (s *Server) handleNotifications(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
		return
	}

	notifications, err := decodeNotifications(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid notification body", Details: err.Error()})
		return
	}

	for _, n := range notifications {
		ev := s.log.Info()
		if n.SalesInvoiceID != nil {
			ev = ev.Int64("sales_invoice_id", *n.SalesInvoiceID)
		}
		if n.PurchaseInvoiceID != nil {
			ev = ev.Int64("purchase_invoice_id", *n.PurchaseInvoiceID)
		}
		if n.NewInvoiceStatus != nil {
			ev = ev.Str("status", *n.NewInvoiceStatus)
		}
		ev.Msg("eFaktura status notification")
	}
	if s.onNotify != nil {
		s.onNotify(c.Request.Context(), notifications)
	}

	c.JSON(http.StatusOK, NotificationResponse{Received: len(notifications)})
}

// decodeNotifications accepts a single object or a list of objects.
func decodeNotifications(body []byte) ([]model.StatusNotification, error) {
	p := transport.Decode(body)
	if p.IsEmpty() || p.IsRaw() {
		return nil, errors.New("expected a JSON object or array")
	}
	if m := p.Map(); m != nil {
		n, err := model.StatusNotificationFromMap(m)
		if err != nil {
			return nil, err
		}
		return []model.StatusNotification{*n}, nil
	}
	if list := p.List(); list != nil {
		return model.HydrateList(list, model.StatusNotificationFromMap)
	}
	return nil, errors.New("expected a JSON object or array")
}
