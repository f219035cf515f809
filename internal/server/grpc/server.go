// Package grpc exposes the identity services over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/gophid/internal/identitypb"
	"github.com/dmitrijs2005/gophid/internal/logging"
	"github.com/dmitrijs2005/gophid/internal/server/auth"
	"github.com/dmitrijs2005/gophid/internal/server/models"
	"github.com/dmitrijs2005/gophid/internal/server/services"
	"google.golang.org/grpc"
)

// UserService is what the handlers need from services.UserService.
type UserService interface {
	Register(ctx context.Context, in services.RegisterUserInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*auth.TokenPair, error)
	GetUserByIDOrFail(ctx context.Context, id string) (*models.User, error)
}

// VerificationService is what the handlers need from services.VerificationService.
type VerificationService interface {
	Consume(ctx context.Context, raw string) (services.VerificationOutcome, error)
	Resend(ctx context.Context, email string) error
}

// Authenticator resolves the caller from an access token.
type Authenticator interface {
	Authenticate(ctx context.Context, rawToken string) (context.Context, error)
}

type GRPCServer struct {
	identitypb.UnimplementedIdentityServiceServer
	address       string
	users         UserService
	verifications VerificationService
	guard         Authenticator
	logger        logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, us UserService, vs VerificationService, g Authenticator) *GRPCServer {
	return &GRPCServer{
		address:       a,
		logger:        l.With("module", "grpc_server"),
		users:         us,
		verifications: vs,
		guard:         g,
	}
}

// NewServer builds a grpc.Server with the interceptors and the identity
// service registered. Run uses it; tests serve it over bufconn.
func (s *GRPCServer) NewServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	srv := grpc.NewServer(opts...)
	identitypb.RegisterIdentityServiceServer(srv, s)
	return srv
}

// Run serves until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
