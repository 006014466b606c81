package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// 对局服务没有单独的 proto 消息，请求和响应都是 google.protobuf.Struct，
// 字段与 HTTP 接口的 json 一致。

const ServiceName = "village.v1.GameService"

const (
	methodCreate  = "Create"
	methodCommand = "Command"
	methodState   = "State"
	methodReport  = "Report"
	methodReports = "Reports"
)

type GameServiceServer interface {
	Create(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Command(context.Context, *structpb.Struct) (*structpb.Struct, error)
	State(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Report(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Reports(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func RegisterGameServiceServer(s grpc.ServiceRegistrar, srv GameServiceServer) {
	s.RegisterService(&GameServiceDesc, srv)
}

var GameServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*GameServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: methodCreate, Handler: unaryHandler(methodCreate, GameServiceServer.Create)},
		{MethodName: methodCommand, Handler: unaryHandler(methodCommand, GameServiceServer.Command)},
		{MethodName: methodState, Handler: unaryHandler(methodState, GameServiceServer.State)},
		{MethodName: methodReport, Handler: unaryHandler(methodReport, GameServiceServer.Report)},
		{MethodName: methodReports, Handler: unaryHandler(methodReports, GameServiceServer.Reports)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "village/v1/game.proto",
}

type unaryMethod func(GameServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(name string, call unaryMethod) grpc.MethodHandler {
	fullMethod := "/" + ServiceName + "/" + name
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(GameServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(GameServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// GameServiceClient 原始客户端桩，业务侧用 Client。
type GameServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewGameServiceClient(cc grpc.ClientConnInterface) *GameServiceClient {
	return &GameServiceClient{cc: cc}
}

func (c *GameServiceClient) Invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
