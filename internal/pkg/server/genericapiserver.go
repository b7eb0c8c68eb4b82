package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"

	"github.com/sibylline/sibyl/pkg/logger"
	"github.com/sibylline/sibyl/pkg/utils/safego"
)

// GenericAPIServer wraps a gin engine with lifecycle management. Routes
// are installed by the caller before Run.
type GenericAPIServer struct {
	*gin.Engine

	// InsecureServingInfo holds the plain HTTP serving address.
	InsecureServingInfo *InsecureServingInfo

	// ShutdownTimeout bounds the graceful drain on Close.
	ShutdownTimeout time.Duration

	enableProfiling bool

	insecureServer *http.Server
}

// InsecureServingInfo holds the address for non-TLS serving.
type InsecureServingInfo struct {
	Address string
}

func initGenericAPIServer(s *GenericAPIServer) {
	s.Setup()
	s.InstallAPIs()
}

// Setup quiets gin's route dump into our logger.
func (s *GenericAPIServer) Setup() {
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {
		logger.Debug("%-6s %-s --> %s (%d handlers)", httpMethod, absolutePath, handlerName, nuHandlers)
	}
}

// InstallAPIs installs the generic apis that do not belong to any
// business module.
func (s *GenericAPIServer) InstallAPIs() {
	if s.enableProfiling {
		pprof.Register(s.Engine)
	}
}

// Run spins up the HTTP server and blocks until it exits.
func (s *GenericAPIServer) Run() error {
	s.insecureServer = &http.Server{
		Addr:    s.InsecureServingInfo.Address,
		Handler: s,
	}

	logger.Info("Start to listening the incoming requests on http address: %s", s.InsecureServingInfo.Address)
	if err := s.insecureServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("listen on %s failed: %w", s.InsecureServingInfo.Address, err)
	}

	logger.Info("Server on %s stopped", s.InsecureServingInfo.Address)
	return nil
}

// RunAsync starts serving on a background goroutine, for tests and for
// callers that manage their own blocking.
func (s *GenericAPIServer) RunAsync() {
	safego.Go(context.Background(), func() {
		if err := s.Run(); err != nil {
			logger.Error("generic api server exited: %v", err)
		}
	})
}

// Close gracefully drains the server.
func (s *GenericAPIServer) Close() {
	if s.insecureServer == nil {
		return
	}
	timeout := s.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.insecureServer.Shutdown(ctx); err != nil {
		logger.Warn("Shutdown insecure server failed: %v", err)
	}
}
