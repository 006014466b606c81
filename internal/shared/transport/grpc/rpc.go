package grpc

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"VillageDefense/modules/kit/logx"
)

// Dial 建立带 trace 透传的客户端连接，target 如 "127.0.0.1:9004"。
func Dial(target string, extra ...gogrpc.DialOption) (*gogrpc.ClientConn, error) {
	opts := []gogrpc.DialOption{
		gogrpc.WithTransportCredentials(insecure.NewCredentials()),
		gogrpc.WithChainUnaryInterceptor(UnaryClientTraceInterceptor()),
		gogrpc.WithChainStreamInterceptor(StreamClientTraceInterceptor()),
	}
	opts = append(opts, extra...)
	conn, err := gogrpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial %s failed: %w", target, err)
	}
	return conn, nil
}

// NewServer 服务端统一装配：trace 提取 + access 日志。
func NewServer(log logx.Logger, extra ...gogrpc.ServerOption) *gogrpc.Server {
	opts := []gogrpc.ServerOption{
		gogrpc.ChainUnaryInterceptor(UnaryServerTraceInterceptor(), UnaryServerAccessLogInterceptor(log)),
		gogrpc.ChainStreamInterceptor(StreamServerTraceInterceptor()),
	}
	opts = append(opts, extra...)
	return gogrpc.NewServer(opts...)
}

// UnaryServerAccessLogInterceptor 每个 unary 调用记一条 access 日志，业务码取 grpc status code。
func UnaryServerAccessLogInterceptor(log logx.Logger) gogrpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *gogrpc.UnaryServerInfo, handler gogrpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := 0
		if err != nil {
			st, _ := status.FromError(err)
			code = int(st.Code())
			if code >= 13 {
				code += 500
			}
		}
		logx.ReportAccessWithLoggerContext(ctx, log, info.FullMethod, code,
			zap.Duration("latency", time.Since(start)),
			zap.String("protocol", "grpc"),
		)
		return resp, err
	}
}
