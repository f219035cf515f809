package grpc

import (
	"context"

	"github.com/dmitrijs2005/gophid/internal/common"
	"github.com/dmitrijs2005/gophid/internal/identitypb"
	"github.com/dmitrijs2005/gophid/internal/server/auth"
	"github.com/dmitrijs2005/gophid/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

func decode(in *structpb.Struct, v any) error {
	if err := identitypb.FromStruct(in, v); err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return nil
}

func encode(v any) (*structpb.Struct, error) {
	out, err := identitypb.ToStruct(v)
	if err != nil {
		return nil, status.Error(codes.Internal, common.ErrInternal.Error())
	}
	return out, nil
}

// fail logs unexpected errors and converts err to a status.
func (s *GRPCServer) fail(ctx context.Context, op string, err error) error {
	st := toStatus(err)
	if status.Code(st) == codes.Internal {
		s.logger.Error(ctx, op+" failed", "error", err)
	}
	return st
}

func (s *GRPCServer) Ping(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return encode(identitypb.PingResponse{Status: "OK"})
}

func (s *GRPCServer) RegisterUser(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req identitypb.RegisterUserRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "Registration request")

	_, err := s.users.Register(ctx, services.RegisterUserInput{
		Email:         req.Email,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Password:      req.Password,
		StreetAddress: req.StreetAddress,
		City:          req.City,
		State:         req.State,
		Zip:           req.Zip,
	})
	if err != nil {
		return nil, s.fail(ctx, "register", err)
	}

	return &structpb.Struct{}, nil
}

func (s *GRPCServer) VerifyEmail(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req identitypb.VerifyEmailRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}

	outcome, err := s.verifications.Consume(ctx, req.EmailVerificationToken)
	if err != nil {
		return nil, s.fail(ctx, "verify email", err)
	}

	return encode(identitypb.VerifyEmailResponse{EmailVerified: outcome.EmailVerified(), Outcome: outcome.String()})
}

func (s *GRPCServer) ResendVerification(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req identitypb.ResendVerificationRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}

	if err := s.verifications.Resend(ctx, req.Email); err != nil {
		return nil, s.fail(ctx, "resend verification", err)
	}
	return &structpb.Struct{}, nil
}

func (s *GRPCServer) Login(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req identitypb.LoginRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}

	tokens, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.fail(ctx, "login", err)
	}

	return encode(identitypb.LoginResponse{AccessToken: tokens.AccessToken, IDToken: tokens.IDToken})
}

func (s *GRPCServer) GetCurrentUser(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, common.ErrUnauthenticated.Error())
	}

	user, err := s.users.GetUserByIDOrFail(ctx, userID)
	if err != nil {
		return nil, s.fail(ctx, "get current user", err)
	}

	return encode(services.NewUserResponse(user))
}
