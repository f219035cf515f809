// Package identitypb describes the gophid.v1.IdentityService gRPC service.
// Requests and responses travel as google.protobuf.Struct values whose
// field names match the HTTP JSON bodies; the typed messages in this
// package convert to and from them.
package identitypb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "gophid.v1.IdentityService"

const (
	PingFullMethod               = "/" + ServiceName + "/Ping"
	RegisterUserFullMethod       = "/" + ServiceName + "/RegisterUser"
	VerifyEmailFullMethod        = "/" + ServiceName + "/VerifyEmail"
	ResendVerificationFullMethod = "/" + ServiceName + "/ResendVerification"
	LoginFullMethod              = "/" + ServiceName + "/Login"
	GetCurrentUserFullMethod     = "/" + ServiceName + "/GetCurrentUser"
)

// IdentityServiceServer is implemented by the server transport.
type IdentityServiceServer interface {
	Ping(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RegisterUser(context.Context, *structpb.Struct) (*structpb.Struct, error)
	VerifyEmail(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ResendVerification(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Login(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetCurrentUser(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedIdentityServiceServer can be embedded to stay forward compatible.
type UnimplementedIdentityServiceServer struct{}

func (UnimplementedIdentityServiceServer) Ping(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedIdentityServiceServer) RegisterUser(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method RegisterUser not implemented")
}
func (UnimplementedIdentityServiceServer) VerifyEmail(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method VerifyEmail not implemented")
}
func (UnimplementedIdentityServiceServer) ResendVerification(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ResendVerification not implemented")
}
func (UnimplementedIdentityServiceServer) Login(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedIdentityServiceServer) GetCurrentUser(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetCurrentUser not implemented")
}

type unaryCall func(IdentityServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryCall) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(IdentityServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(IdentityServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc is the grpc.ServiceDesc for IdentityService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*IdentityServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: unaryHandler(PingFullMethod, IdentityServiceServer.Ping)},
		{MethodName: "RegisterUser", Handler: unaryHandler(RegisterUserFullMethod, IdentityServiceServer.RegisterUser)},
		{MethodName: "VerifyEmail", Handler: unaryHandler(VerifyEmailFullMethod, IdentityServiceServer.VerifyEmail)},
		{MethodName: "ResendVerification", Handler: unaryHandler(ResendVerificationFullMethod, IdentityServiceServer.ResendVerification)},
		{MethodName: "Login", Handler: unaryHandler(LoginFullMethod, IdentityServiceServer.Login)},
		{MethodName: "GetCurrentUser", Handler: unaryHandler(GetCurrentUserFullMethod, IdentityServiceServer.GetCurrentUser)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gophid/v1/identity.proto",
}

func RegisterIdentityServiceServer(s grpc.ServiceRegistrar, srv IdentityServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// IdentityServiceClient calls IdentityService over a client connection.
type IdentityServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewIdentityServiceClient(cc grpc.ClientConnInterface) *IdentityServiceClient {
	return &IdentityServiceClient{cc: cc}
}

func (c *IdentityServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if in == nil {
		in = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *IdentityServiceClient) Ping(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, PingFullMethod, in, opts...)
}

func (c *IdentityServiceClient) RegisterUser(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, RegisterUserFullMethod, in, opts...)
}

func (c *IdentityServiceClient) VerifyEmail(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, VerifyEmailFullMethod, in, opts...)
}

func (c *IdentityServiceClient) ResendVerification(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ResendVerificationFullMethod, in, opts...)
}

func (c *IdentityServiceClient) Login(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, LoginFullMethod, in, opts...)
}

func (c *IdentityServiceClient) GetCurrentUser(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, GetCurrentUserFullMethod, in, opts...)
}
