package main

import (
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"

	lmhttp "github.com/fwojciec/localmind/http"
	"github.com/fwojciec/localmind/prometheus"
	"github.com/fwojciec/localmind/sample"
	"github.com/fwojciec/localmind/web"
)

// Run executes the serve command. It blocks until the context is cancelled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	ctx := deps.Ctx
	logger := deps.Logger

	if c.Seed {
		n, err := deps.Ingester.Seed(ctx, sample.Documents())
		if err != nil {
			return fmt.Errorf("failed to seed sample documents: %w", err)
		}
		logger.Info("loaded sample documents", "added", n)
	}

	if c.ImportDir != "" {
		result, err := deps.Ingester.ImportDir(ctx, c.ImportDir)
		if err != nil {
			return fmt.Errorf("failed to import %s: %w", c.ImportDir, err)
		}
		logger.Info("imported directory", "dir", c.ImportDir, "stored", result.TotalProcessed, "failed", result.TotalFailed)
	}

	metrics := prometheus.NewMetrics(deps.Index)
	if deps.ContentHashes != nil {
		metrics.RegisterContentHashes(deps.ContentHashes)
	}

	s := lmhttp.NewServer()
	s.Addr = c.ListenAddr()
	s.Logger = logger
	s.Web = c.webFS()
	s.Observer = metrics
	s.MetricsHandler = metrics.Handler()
	s.Policy = deps.Policy
	s.DocumentService = deps.Documents
	s.SearchService = prometheus.NewSearchService(deps.Search, metrics)
	s.StatsService = deps.Stats
	s.Uploader = prometheus.NewUploader(deps.Uploader, metrics)
	s.Importer = deps.Importer
	s.Asker = deps.Asker

	if err := s.Open(); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.Addr, err)
	}
	logger.Info("server started", "url", s.URL(), "ask", deps.Asker != nil)
	fmt.Fprintf(deps.Stderr, "LocalMind is running at %s\n", s.URL())

	<-ctx.Done()

	logger.Info("shutting down")
	return s.Close()
}

// ListenAddr returns the address the server binds to.
func (c *ServeCmd) ListenAddr() string {
	if c.Addr != "" {
		return c.Addr
	}
	return net.JoinHostPort("0.0.0.0", strconv.Itoa(c.Port))
}

func (c *ServeCmd) webFS() fs.FS {
	if c.WebDir != "" {
		return os.DirFS(c.WebDir)
	}
	return web.FS()
}
