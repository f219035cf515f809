package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophid/internal/common"
	"github.com/dmitrijs2005/gophid/internal/identitypb"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type identityAPI interface {
	Ping(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	RegisterUser(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	VerifyEmail(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ResendVerification(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Login(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetCurrentUser(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      identityAPI

	mu          sync.RWMutex
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AuthorizationHeaderName, "Bearer "+token)

	return metadata.NewOutgoingContext(ctx, md)
}

// accessTokenInterceptor attaches the current access token, if any, and
// bounds every call by the configured timeout.
func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if token := s.token(); token != "" {
		ctx = withAccessToken(ctx, token)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	return invoker(ctx, method, req, reply, cc, opts...)
}

func NewIdentityClient(endpointURL string, timeout time.Duration) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = identitypb.NewIdentityServiceClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// SetAccessToken sets the token attached to subsequent calls; "" detaches it.
func (s *GRPCClient) SetAccessToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = token
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	out, err := s.client.Ping(ctx, nil)
	if err != nil {
		return s.mapError(err)
	}

	var resp identitypb.PingResponse
	if err := identitypb.FromStruct(out, &resp); err != nil {
		return err
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) Register(ctx context.Context, req identitypb.RegisterUserRequest) error {
	in, err := identitypb.ToStruct(req)
	if err != nil {
		return err
	}
	if _, err := s.client.RegisterUser(ctx, in); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) VerifyEmail(ctx context.Context, token string) (*identitypb.VerifyEmailResponse, error) {
	in, err := identitypb.ToStruct(identitypb.VerifyEmailRequest{EmailVerificationToken: token})
	if err != nil {
		return nil, err
	}
	out, err := s.client.VerifyEmail(ctx, in)
	if err != nil {
		return nil, s.mapError(err)
	}

	var resp identitypb.VerifyEmailResponse
	if err := identitypb.FromStruct(out, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) ResendVerification(ctx context.Context, email string) error {
	in, err := identitypb.ToStruct(identitypb.ResendVerificationRequest{Email: email})
	if err != nil {
		return err
	}
	if _, err := s.client.ResendVerification(ctx, in); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) Login(ctx context.Context, email string, password []byte) (*identitypb.LoginResponse, error) {
	in, err := identitypb.ToStruct(identitypb.LoginRequest{Email: email, Password: string(password)})
	if err != nil {
		return nil, err
	}
	out, err := s.client.Login(ctx, in)
	if err != nil {
		return nil, s.mapError(err)
	}

	var resp identitypb.LoginResponse
	if err := identitypb.FromStruct(out, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) CurrentUser(ctx context.Context) (*identitypb.UserResponse, error) {
	out, err := s.client.GetCurrentUser(ctx, nil)
	if err != nil {
		return nil, s.mapError(err)
	}

	var resp identitypb.UserResponse
	if err := identitypb.FromStruct(out, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.FailedPrecondition:
		return ErrEmailNotVerified
	case codes.AlreadyExists:
		return ErrAlreadyRegistered
	case codes.NotFound:
		return ErrNotFound
	case codes.InvalidArgument:
		return fieldError(st)
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

func fieldError(st *status.Status) *FieldError {
	fe := &FieldError{Message: st.Message(), Fields: map[string]string{}}
	for _, d := range st.Details() {
		br, ok := d.(*errdetails.BadRequest)
		if !ok {
			continue
		}
		for _, v := range br.GetFieldViolations() {
			fe.Fields[v.GetField()] = v.GetDescription()
		}
	}
	return fe
}
