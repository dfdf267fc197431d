// SPDX-License-Identifier: MIT
// Package: fuzzar/server
//
// server.go — engine construction, middleware and lifecycle.

package server

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server wires the mining handlers into a gin engine.
type Server struct {
	engine    *gin.Engine
	log       *zap.Logger
	workers   int
	singleJob bool
	running   atomic.Bool
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger. nil is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithWorkers sets the scoring goroutines per request. Values < 1 are ignored.
func WithWorkers(n int) Option {
	return func(s *Server) {
		if n >= 1 {
			s.workers = n
		}
	}
}

// WithSingleJob rejects mining requests with 429 while one is running.
func WithSingleJob() Option {
	return func(s *Server) { s.singleJob = true }
}

// New builds a Server. Call gin.SetMode before New to change the gin mode.
func New(opts ...Option) *Server {
	s := &Server{log: zap.NewNop(), workers: 1}
	for _, opt := range opts {
		opt(s)
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.accessLog())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	v1 := r.Group("/v1")
	v1.POST("/mine", s.jobGuard(), s.handleMine)
	v1.POST("/graph", s.jobGuard(), s.handleGraph)

	s.engine = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.engine, ReadHeaderTimeout: 10 * time.Second}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.log.Info("server stopped")
	return nil
}

// jobGuard admits one mining request at a time when singleJob is set.
func (s *Server) jobGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.singleJob {
			c.Next()
			return
		}
		if !s.running.CompareAndSwap(false, true) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorBody{Error: "a job is running"})
			return
		}
		defer s.running.Store(false)
		c.Next()
	}
}

// accessLog logs each request at Info, 4xx at Warn and 5xx at Error.
func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("error", c.Errors.String()))
		}
		switch {
		case status >= http.StatusInternalServerError:
			s.log.Error("request", fields...)
		case status >= http.StatusBadRequest:
			s.log.Warn("request", fields...)
		default:
			s.log.Info("request", fields...)
		}
	}
}
