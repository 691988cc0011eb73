// Package server exposes the RTTM parser and the timeline layout over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	cfg "github.com/maastricht-university/diarview/config"
)

type Server struct {
	cfg        *cfg.Root
	log        logrus.FieldLogger
	metrics    *Metrics
	engine     *gin.Engine
	httpServer *http.Server
}

func New(c *cfg.Root, log logrus.FieldLogger) *Server {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	s := &Server{cfg: c, log: log, metrics: NewMetrics(reg)}

	r := gin.New()
	r.Use(gin.Recovery(), s.observe())
	r.GET("/healthz", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	api.POST("/rttm", s.handleRTTM)
	api.POST("/layout", s.handleLayout)
	api.POST("/stats", s.handleStats)

	s.engine = r
	return s
}

func (s *Server) Handler() http.Handler { return s.engine }

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.cfg.Server.Addr).Info("starting HTTP server")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		elapsed := time.Since(start)
		s.metrics.Requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		s.metrics.Latency.WithLabelValues(route).Observe(elapsed.Seconds())
		s.log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"route":   route,
			"status":  status,
			"elapsed": elapsed,
		}).Debug("request")
	}
}
