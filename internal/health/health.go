// Package health exposes the gRPC health checking protocol backed by a
// storage ping.
package health

import (
	"context"
	"net"

	"github.com/sbilibin2017/gw-content-studio/internal/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server answers grpc.health.v1.Health/Check.
type Server struct {
	healthpb.UnimplementedHealthServer
	address string
	pinger  Pinger
}

// NewServer creates a health server listening on address once Run is called.
func NewServer(address string, pinger Pinger) *Server {
	return &Server{address: address, pinger: pinger}
}

// Check reports SERVING while the store answers pings. Only the overall
// service ("") is known.
func (s *Server) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	if req.GetService() != "" {
		return nil, status.Errorf(codes.NotFound, "unknown service %q", req.GetService())
	}

	if err := s.pinger.Ping(ctx); err != nil {
		logger.Log.Errorw("grpc health check failed", "error", err)
		return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING}, nil
	}
	return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}, nil
}

// Register attaches the health service to srv.
func (s *Server) Register(srv *grpc.Server) {
	healthpb.RegisterHealthServer(srv, s)
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve serves on an existing listener until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, listen net.Listener) error {
	srv := grpc.NewServer()
	s.Register(srv)

	go func() {
		<-ctx.Done()
		logger.Log.Info("Stopping gRPC server...")
		srv.GracefulStop()
	}()

	logger.Log.Infow("Starting gRPC server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && err != grpc.ErrServerStopped {
		return err
	}
	return nil
}
