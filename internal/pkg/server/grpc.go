package server

import (
	"net"

	"google.golang.org/grpc"

	"github.com/sibylline/sibyl/pkg/logger"
)

// GRPCAPIServer is the side gRPC listener. Only reflection is registered
// today; it reserves the port for future service RPCs.
type GRPCAPIServer struct {
	*grpc.Server
	address string
}

// NewGRPCAPIServer wraps a grpc.Server with its listen address.
func NewGRPCAPIServer(srv *grpc.Server, address string) *GRPCAPIServer {
	return &GRPCAPIServer{Server: srv, address: address}
}

// Run starts listening; it logs and returns on listener failure instead
// of taking the process down.
func (s *GRPCAPIServer) Run() {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		logger.Error("failed to listen gRPC address %s: %v", s.address, err)
		return
	}

	logger.Info("Start grpc server at %s", s.address)
	if err := s.Serve(listen); err != nil {
		logger.Error("failed to start grpc server: %v", err)
	}
}

// Stop gracefully stops the gRPC server.
func (s *GRPCAPIServer) Stop() {
	s.GracefulStop()
	logger.Info("GRPC server on %s stopped", s.address)
}
