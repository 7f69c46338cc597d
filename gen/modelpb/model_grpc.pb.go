// Code generated by protoc-gen-go-grpc. DO NOT EDIT.
// versions:
// - protoc-gen-go-grpc v1.5.1
// - protoc             (unknown)
// source: model.proto

package modelpb

import (
	context "context"
	grpc "google.golang.org/grpc"
	codes "google.golang.org/grpc/codes"
	status "google.golang.org/grpc/status"
)

// This is a compile-time assertion to ensure that this generated file
// is compatible with the grpc package it is being compiled against.
// Requires gRPC-Go v1.64.0 or later.
const _ = grpc.SupportPackageIsVersion9

const (
	ModelService_Jvp_FullMethodName          = "/modelsvc.ModelService/Jvp"
	ModelService_Vjp_FullMethodName          = "/modelsvc.ModelService/Vjp"
	ModelService_MacsEstimate_FullMethodName = "/modelsvc.ModelService/MacsEstimate"
)

// ModelServiceClient is the client API for ModelService service.
//
// For semantics around ctx use and closing/ending streaming RPCs, please refer to https://pkg.go.dev/google.golang.org/grpc/?tab=doc#ClientConn.NewStream.
//
// ModelService exposes the governed model's local Jacobian as forward- and
// reverse-mode vector products, plus the MAC estimate for the last forward
// pass. The governor never sees weights or activations.
type ModelServiceClient interface {
	Jvp(ctx context.Context, in *JvpRequest, opts ...grpc.CallOption) (*JvpResponse, error)
	Vjp(ctx context.Context, in *VjpRequest, opts ...grpc.CallOption) (*VjpResponse, error)
	MacsEstimate(ctx context.Context, in *MacsRequest, opts ...grpc.CallOption) (*MacsResponse, error)
}

type modelServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewModelServiceClient(cc grpc.ClientConnInterface) ModelServiceClient {
	return &modelServiceClient{cc}
}

func (c *modelServiceClient) Jvp(ctx context.Context, in *JvpRequest, opts ...grpc.CallOption) (*JvpResponse, error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	out := new(JvpResponse)
	err := c.cc.Invoke(ctx, ModelService_Jvp_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *modelServiceClient) Vjp(ctx context.Context, in *VjpRequest, opts ...grpc.CallOption) (*VjpResponse, error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	out := new(VjpResponse)
	err := c.cc.Invoke(ctx, ModelService_Vjp_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *modelServiceClient) MacsEstimate(ctx context.Context, in *MacsRequest, opts ...grpc.CallOption) (*MacsResponse, error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	out := new(MacsResponse)
	err := c.cc.Invoke(ctx, ModelService_MacsEstimate_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ModelServiceServer is the server API for ModelService service.
// All implementations must embed UnimplementedModelServiceServer
// for forward compatibility.
//
// ModelService exposes the governed model's local Jacobian as forward- and
// reverse-mode vector products, plus the MAC estimate for the last forward
// pass. The governor never sees weights or activations.
type ModelServiceServer interface {
	Jvp(context.Context, *JvpRequest) (*JvpResponse, error)
	Vjp(context.Context, *VjpRequest) (*VjpResponse, error)
	MacsEstimate(context.Context, *MacsRequest) (*MacsResponse, error)
	mustEmbedUnimplementedModelServiceServer()
}

// UnimplementedModelServiceServer must be embedded to have
// forward compatible implementations.
//
// NOTE: this should be embedded by value instead of pointer to avoid a nil
// pointer dereference when methods are called.
type UnimplementedModelServiceServer struct{}

func (UnimplementedModelServiceServer) Jvp(context.Context, *JvpRequest) (*JvpResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Jvp not implemented")
}
func (UnimplementedModelServiceServer) Vjp(context.Context, *VjpRequest) (*VjpResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Vjp not implemented")
}
func (UnimplementedModelServiceServer) MacsEstimate(context.Context, *MacsRequest) (*MacsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method MacsEstimate not implemented")
}
func (UnimplementedModelServiceServer) mustEmbedUnimplementedModelServiceServer() {}
func (UnimplementedModelServiceServer) testEmbeddedByValue()                      {}

// UnsafeModelServiceServer may be embedded to opt out of forward compatibility for this service.
// Use of this interface is not recommended, as added methods to ModelServiceServer will
// result in compilation errors.
type UnsafeModelServiceServer interface {
	mustEmbedUnimplementedModelServiceServer()
}

func RegisterModelServiceServer(s grpc.ServiceRegistrar, srv ModelServiceServer) {
	// If the following call pancis, it indicates UnimplementedModelServiceServer was
	// embedded by pointer and is nil.  This will cause panics if an
	// unimplemented method is ever invoked, so we test this at initialization
	// time to prevent it from happening at runtime later due to I/O.
	if t, ok := srv.(interface{ testEmbeddedByValue() }); ok {
		t.testEmbeddedByValue()
	}
	s.RegisterService(&ModelService_ServiceDesc, srv)
}

func _ModelService_Jvp_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(JvpRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ModelServiceServer).Jvp(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ModelService_Jvp_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ModelServiceServer).Jvp(ctx, req.(*JvpRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ModelService_Vjp_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(VjpRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ModelServiceServer).Vjp(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ModelService_Vjp_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ModelServiceServer).Vjp(ctx, req.(*VjpRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ModelService_MacsEstimate_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MacsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ModelServiceServer).MacsEstimate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ModelService_MacsEstimate_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ModelServiceServer).MacsEstimate(ctx, req.(*MacsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// ModelService_ServiceDesc is the grpc.ServiceDesc for ModelService service.
// It's only intended for direct use with grpc.RegisterService,
// and not to be introspected or modified (even as a copy)
var ModelService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "modelsvc.ModelService",
	HandlerType: (*ModelServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Jvp",
			Handler:    _ModelService_Jvp_Handler,
		},
		{
			MethodName: "Vjp",
			Handler:    _ModelService_Vjp_Handler,
		},
		{
			MethodName: "MacsEstimate",
			Handler:    _ModelService_MacsEstimate_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "model.proto",
}
