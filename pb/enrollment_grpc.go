package pb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	Register_ServiceName                           = "enrollment.Register"
	Register_EnrollUser_FullMethodName             = "/enrollment.Register/EnrollUser"
	Register_ResetPassword_FullMethodName          = "/enrollment.Register/ResetPassword"
	Register_ResetPasswordFromToken_FullMethodName = "/enrollment.Register/ResetPasswordFromToken"
	Register_ActivateUser_FullMethodName           = "/enrollment.Register/ActivateUser"
)

// RegisterChannel exposes the four remote calls of the Register service.
// Each call takes one encoded request and returns one encoded reply.
type RegisterChannel interface {
	EnrollUser(ctx context.Context, in []byte) ([]byte, error)
	ResetPassword(ctx context.Context, in []byte) ([]byte, error)
	ResetPasswordFromToken(ctx context.Context, in []byte) ([]byte, error)
	ActivateUser(ctx context.Context, in []byte) ([]byte, error)
}

type registerChannel struct {
	cc   grpc.ClientConnInterface
	opts []grpc.CallOption
}

// NewRegisterChannel returns a RegisterChannel over cc. opts apply to every call.
func NewRegisterChannel(cc grpc.ClientConnInterface, opts ...grpc.CallOption) RegisterChannel {
	return &registerChannel{
		cc:   cc,
		opts: append([]grpc.CallOption{grpc.ForceCodec(Codec{})}, opts...),
	}
}

func (c *registerChannel) EnrollUser(ctx context.Context, in []byte) ([]byte, error) {
	return c.invoke(ctx, Register_EnrollUser_FullMethodName, in)
}

func (c *registerChannel) ResetPassword(ctx context.Context, in []byte) ([]byte, error) {
	return c.invoke(ctx, Register_ResetPassword_FullMethodName, in)
}

func (c *registerChannel) ResetPasswordFromToken(ctx context.Context, in []byte) ([]byte, error) {
	return c.invoke(ctx, Register_ResetPasswordFromToken_FullMethodName, in)
}

func (c *registerChannel) ActivateUser(ctx context.Context, in []byte) ([]byte, error) {
	return c.invoke(ctx, Register_ActivateUser_FullMethodName, in)
}

func (c *registerChannel) invoke(ctx context.Context, method string, in []byte) ([]byte, error) {
	req := Frame(in)
	out := new(Frame)
	if err := c.cc.Invoke(ctx, method, &req, out, c.opts...); err != nil {
		return nil, err
	}
	return *out, nil
}

// RegisterServer is the service side of Register.
type RegisterServer interface {
	EnrollUser(context.Context, *EnrollUserRequest) (*User, error)
	ResetPassword(context.Context, *ResetPasswordRequest) (*ResetPasswordResponse, error)
	ResetPasswordFromToken(context.Context, *ResetPasswordTokenRequest) (*ResetPasswordResponse, error)
	ActivateUser(context.Context, *ActivateUserRequest) (*ActivateUserResponse, error)
}

// UnimplementedRegisterServer answers every call with codes.Unimplemented.
type UnimplementedRegisterServer struct{}

func (UnimplementedRegisterServer) EnrollUser(context.Context, *EnrollUserRequest) (*User, error) {
	return nil, status.Errorf(codes.Unimplemented, "method EnrollUser not implemented")
}

func (UnimplementedRegisterServer) ResetPassword(context.Context, *ResetPasswordRequest) (*ResetPasswordResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ResetPassword not implemented")
}

func (UnimplementedRegisterServer) ResetPasswordFromToken(context.Context, *ResetPasswordTokenRequest) (*ResetPasswordResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ResetPasswordFromToken not implemented")
}

func (UnimplementedRegisterServer) ActivateUser(context.Context, *ActivateUserRequest) (*ActivateUserResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ActivateUser not implemented")
}

// RegisterRegisterServer registers srv on s. The server must be created with
// grpc.ForceServerCodec(pb.Codec{}).
func RegisterRegisterServer(s grpc.ServiceRegistrar, srv RegisterServer) {
	s.RegisterService(&Register_ServiceDesc, srv)
}

// unaryHandler adapts one RegisterServer method to a grpc.MethodDesc handler.
func unaryHandler[Req Message, Resp any](
	fullMethod string,
	newReq func() Req,
	call func(RegisterServer, context.Context, Req) (Resp, error),
) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := newReq()
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			resp, err := call(srv.(RegisterServer), ctx, in)
			return resp, err
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			resp, err := call(srv.(RegisterServer), ctx, req.(Req))
			return resp, err
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Register_ServiceDesc is the grpc.ServiceDesc for the Register service.
var Register_ServiceDesc = grpc.ServiceDesc{
	ServiceName: Register_ServiceName,
	HandlerType: (*RegisterServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "EnrollUser",
			Handler: unaryHandler(Register_EnrollUser_FullMethodName,
				func() *EnrollUserRequest { return new(EnrollUserRequest) },
				RegisterServer.EnrollUser),
		},
		{
			MethodName: "ResetPassword",
			Handler: unaryHandler(Register_ResetPassword_FullMethodName,
				func() *ResetPasswordRequest { return new(ResetPasswordRequest) },
				RegisterServer.ResetPassword),
		},
		{
			MethodName: "ResetPasswordFromToken",
			Handler: unaryHandler(Register_ResetPasswordFromToken_FullMethodName,
				func() *ResetPasswordTokenRequest { return new(ResetPasswordTokenRequest) },
				RegisterServer.ResetPasswordFromToken),
		},
		{
			MethodName: "ActivateUser",
			Handler: unaryHandler(Register_ActivateUser_FullMethodName,
				func() *ActivateUserRequest { return new(ActivateUserRequest) },
				RegisterServer.ActivateUser),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "enrollment.proto",
}
