package augur

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/sibylline/sibyl/internal/augur/config"
	"github.com/sibylline/sibyl/internal/augur/handler/middleware"
	"github.com/sibylline/sibyl/internal/augur/service/llm"
	"github.com/sibylline/sibyl/internal/augur/service/qa"
	"github.com/sibylline/sibyl/internal/augur/service/warehouse"
	genericapiserver "github.com/sibylline/sibyl/internal/pkg/server"
	"github.com/sibylline/sibyl/pkg/http/shutdown"
	"github.com/sibylline/sibyl/pkg/http/shutdown/posixsignal"
	"github.com/sibylline/sibyl/pkg/logger"
)

type apiServer struct {
	gs               *shutdown.GracefulShutdown
	gRPCAPIServer    *genericapiserver.GRPCAPIServer
	genericAPIServer *genericapiserver.GenericAPIServer

	llmModule   *llm.Module
	qaModule    *qa.Module
	warehouse   *warehouse.Warehouse
	middlewares []string
}

type preparedAPIServer struct {
	*apiServer
}

// ExtraConfig defines extra configuration for the API server.
type ExtraConfig struct {
	Addr       string
	MaxMsgSize int
}

type completedExtraConfig struct {
	*ExtraConfig
}

// Complete fills in any fields not set that are required to have valid data and can be derived from other fields.
func (c *ExtraConfig) complete() *completedExtraConfig {
	if c.Addr == "" {
		c.Addr = "127.0.0.1:8001"
	}

	return &completedExtraConfig{c}
}

// New create a grpcAPIServer instance.
func (c *completedExtraConfig) New() (*genericapiserver.GRPCAPIServer, error) {
	opts := []grpc.ServerOption{grpc.MaxRecvMsgSize(c.MaxMsgSize)}
	grpcServer := grpc.NewServer(opts...)

	reflection.Register(grpcServer)

	return genericapiserver.NewGRPCAPIServer(grpcServer, c.Addr), nil
}

func createAPIServer(cfg *config.Config) (*apiServer, error) {
	gs := shutdown.New()
	gs.AddShutdownManager(posixsignal.NewPosixSignalManager())

	genericConfig, err := buildGenericConfig(cfg)
	if err != nil {
		return nil, err
	}

	extraConfig, err := buildExtraConfig(cfg)
	if err != nil {
		return nil, err
	}

	genericServer, err := genericConfig.Complete().New()
	if err != nil {
		return nil, err
	}
	extraServer, err := extraConfig.complete().New()
	if err != nil {
		return nil, err
	}

	// Open the warehouse the agents query.
	wh, err := warehouse.Open(warehouse.Config{
		Path:         cfg.WarehouseOptions.Path,
		MaxOpenConns: cfg.WarehouseOptions.MaxOpenConns,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open warehouse: %w", err)
	}
	logger.Info("[Augur] warehouse opened at %q", cfg.WarehouseOptions.Path)

	// Initialize LLM module (K8S-style: Config → Complete → New).
	llmCfg := &llm.Config{
		Model: cfg.ModelOptions,
	}
	llmModule, err := llmCfg.Complete().New(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM module: %w", err)
	}
	logger.Info("[Augur] LLM module initialized successfully")

	// Initialize QA module (K8S-style: Config → Complete → New).
	qaCfg := &qa.Config{
		StoreType:           cfg.StoreOptions.Type,
		ElasticAddr:         cfg.StoreOptions.ElasticAddr,
		ElasticIndex:        cfg.StoreOptions.ElasticIndex,
		ElasticAPIKey:       cfg.StoreOptions.ElasticAPIKey,
		ElasticRefresh:      cfg.StoreOptions.ElasticRefresh,
		BoltDBPath:          cfg.StoreOptions.BoltDBPath,
		SingleAgentMaxTurns: cfg.AgentOptions.MaxTurns,
		SQLMaxTurns:         cfg.AgentOptions.SQLMaxTurns,
		AnalyticsMaxTurns:   cfg.AgentOptions.AnalyticsMaxTurns,
		ReportingMaxTurns:   cfg.AgentOptions.ReportingMaxTurns,
		EarlyStopping:       cfg.AgentOptions.EarlyStopping,
	}
	qaModule, err := qaCfg.Complete().New(context.Background(), qa.Dependencies{
		LLM:       llmModule,
		Warehouse: wh,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create QA module: %w", err)
	}
	logger.Info("[Augur] QA module initialized successfully")

	server := &apiServer{
		gs:               gs,
		genericAPIServer: genericServer,
		gRPCAPIServer:    extraServer,
		llmModule:        llmModule,
		qaModule:         qaModule,
		warehouse:        wh,
		middlewares:      cfg.GenericServerRunOptions.Middlewares,
	}

	return server, nil
}

func (s *apiServer) PrepareRun() preparedAPIServer {
	initRouter(s.genericAPIServer.Engine, &routerDeps{
		qaService:   s.qaModule.Service,
		authConfig:  &middleware.AuthConfig{Enabled: true},
		middlewares: s.middlewares,
	})

	s.gs.AddShutdownCallback(shutdown.Func(func(string) error {
		// Close QA module (trace store handle if any).
		if s.qaModule != nil {
			s.qaModule.Close()
		}
		if s.warehouse != nil {
			s.warehouse.Close()
		}
		s.gRPCAPIServer.Stop()
		s.genericAPIServer.Close()
		return nil
	}))
	return preparedAPIServer{s}
}

func (s preparedAPIServer) Run() error {
	go s.gRPCAPIServer.Run()

	// start shutdown managers
	if err := s.gs.Start(); err != nil {
		log.Fatalf("start shutdown manager failed: %s", err.Error())
	}

	return s.genericAPIServer.Run()
}

func buildGenericConfig(cfg *config.Config) (genericConfig *genericapiserver.Config, lastErr error) {
	genericConfig = genericapiserver.NewConfig()
	if lastErr = cfg.GenericServerRunOptions.ApplyTo(genericConfig); lastErr != nil {
		return
	}

	return
}

func buildExtraConfig(cfg *config.Config) (*ExtraConfig, error) {
	return &ExtraConfig{
		Addr:       fmt.Sprintf("%s:%d", cfg.GRPCOptions.BindAddress, cfg.GRPCOptions.BindPort),
		MaxMsgSize: cfg.GRPCOptions.MaxMsgSize,
	}, nil
}
