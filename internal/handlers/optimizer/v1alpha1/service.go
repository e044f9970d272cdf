package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "buildopt.v1alpha1.OptimizerService"

// Full method names
const (
	OptimizeFullMethodName  = "/" + ServiceName + "/Optimize"
	GetResultFullMethodName = "/" + ServiceName + "/GetResult"
)

// OptimizerServiceServer is the server API for the optimizer service. Requests
// and responses are structpb.Struct documents; see Handler for their fields.
type OptimizerServiceServer interface {
	Optimize(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetResult(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// RegisterOptimizerServiceServer registers srv with s
func RegisterOptimizerServiceServer(s grpc.ServiceRegistrar, srv OptimizerServiceServer) {
	s.RegisterService(&OptimizerServiceDesc, srv)
}

func optimizeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OptimizerServiceServer).Optimize(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: OptimizeFullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OptimizerServiceServer).Optimize(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func getResultHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OptimizerServiceServer).GetResult(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GetResultFullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OptimizerServiceServer).GetResult(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// OptimizerServiceDesc is the grpc.ServiceDesc for the optimizer service
var OptimizerServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*OptimizerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Optimize",
			Handler:    optimizeHandler,
		},
		{
			MethodName: "GetResult",
			Handler:    getResultHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "buildopt/v1alpha1/optimizer.proto",
}

// OptimizerServiceClient is the client API for the optimizer service
type OptimizerServiceClient interface {
	Optimize(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetResult(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type optimizerServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewOptimizerServiceClient creates a client on cc
func NewOptimizerServiceClient(cc grpc.ClientConnInterface) OptimizerServiceClient {
	return &optimizerServiceClient{cc: cc}
}

func (c *optimizerServiceClient) Optimize(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, OptimizeFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *optimizerServiceClient) GetResult(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetResultFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
