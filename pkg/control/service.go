package control

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// The service carries google.protobuf.Struct messages:
//
//	GetLimit   {name}            -> {soft, hard}
//	SetLimit   {name, update}    -> {}
//	ListLimits {}                -> {limits: [{name, soft, hard, error?}]}
//
// Limits travel as decimal strings, or null for unbounded, so that values
// above 2^53 survive the float64 numbers of Struct.
const serviceName = "hsu.rlimit.v1.RlimitService"

const (
	methodGetLimit   = "/" + serviceName + "/GetLimit"
	methodSetLimit   = "/" + serviceName + "/SetLimit"
	methodListLimits = "/" + serviceName + "/ListLimits"
)

// errnoTrailer carries the OS error number of a failed kernel call
const errnoTrailer = "rlimit-errno"

type rlimitServiceServer interface {
	GetLimit(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetLimit(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListLimits(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(rlimitServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		server := srv.(rlimitServiceServer)
		if interceptor == nil {
			return call(server, ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(server, ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var rlimitServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*rlimitServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetLimit",
			Handler:    unaryHandler(methodGetLimit, rlimitServiceServer.GetLimit),
		},
		{
			MethodName: "SetLimit",
			Handler:    unaryHandler(methodSetLimit, rlimitServiceServer.SetLimit),
		},
		{
			MethodName: "ListLimits",
			Handler:    unaryHandler(methodListLimits, rlimitServiceServer.ListLimits),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rlimit.proto",
}
