// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hireflow/hireflow/internal/extraction"
	"github.com/hireflow/hireflow/internal/intake"
	"github.com/hireflow/hireflow/internal/metrics"
	"github.com/hireflow/hireflow/internal/textsource"
)

const (
	shutdownTimeout = 10 * time.Second

	// MaxDocumentBytes caps the request body accepted by ProcessDocument.
	MaxDocumentBytes = 1 << 20
)

// Server exposes the intake pipeline over HTTP.
type Server struct {
	pipeline *intake.Pipeline
	metrics  *metrics.Metrics
	log      logrus.FieldLogger
}

func NewServer(pipeline *intake.Pipeline, m *metrics.Metrics, log logrus.FieldLogger) *Server {
	return &Server{pipeline: pipeline, metrics: m, log: log}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", s.Health)
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	r.POST("/v1/documents", s.ProcessDocument)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.SetupRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.log.Info("http server shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

type DocumentRequest struct {
	Content  string `json:"content" binding:"required"`
	Format   string `json:"format"`
	SourceID string `json:"source_id"`
}

func (s *Server) ProcessDocument(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxDocumentBytes)

	var req DocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body exceeds " + strconv.FormatInt(tooLarge.Limit, 10) + " bytes"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: content is required"})
		return
	}

	out, err := s.pipeline.Process(c.Request.Context(), textsource.Document{
		Content: []byte(req.Content),
		Format:  req.Format,
		ID:      req.SourceID,
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sources": s.pipeline.Sources()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, textsource.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, extraction.ErrUnprocessableInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// requestLogger logs each request and counts it by route and status code.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		code := c.Writer.Status()
		s.metrics.ObserveHTTPRequest(route, strconv.Itoa(code))

		entry := s.log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"route":    route,
			"status":   code,
			"duration": time.Since(start).String(),
		})
		if code >= http.StatusInternalServerError {
			entry.Warn("request failed")
			return
		}
		entry.Debug("request served")
	}
}
