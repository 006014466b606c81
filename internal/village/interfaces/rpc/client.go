package rpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"

	"VillageDefense/internal/shared/transport"
	transportgrpc "VillageDefense/internal/shared/transport/grpc"
)

// Reply 统一响应，Data 是 json 形态的 map/slice。
type Reply struct {
	Code transport.BizCode
	Msg  string
	Data any
}

func (r Reply) OK() bool { return r.Code == transport.OK }

// DataMap Data 为对象时返回 map，否则 nil。
func (r Reply) DataMap() map[string]any {
	m, _ := r.Data.(map[string]any)
	return m
}

type Client struct {
	conn *grpc.ClientConn
	raw  *GameServiceClient
}

// Dial 连对局服务，target 如 "127.0.0.1:9004"。
func Dial(target string, extra ...grpc.DialOption) (*Client, error) {
	conn, err := transportgrpc.Dial(target, extra...)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn, raw: NewGameServiceClient(conn)}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) Create(ctx context.Context) (Reply, error) {
	return c.call(ctx, "", methodCreate, map[string]any{})
}

// Command action 见 Action* 常量，args 是 input/build 的参数。
func (c *Client) Command(ctx context.Context, token, sessionID, action string, args map[string]any) (Reply, error) {
	in := map[string]any{"session_id": sessionID, "action": action}
	for k, v := range args {
		in[k] = v
	}
	return c.call(ctx, token, methodCommand, in)
}

func (c *Client) State(ctx context.Context, token, sessionID string, notices int) (Reply, error) {
	return c.call(ctx, token, methodState, map[string]any{"session_id": sessionID, "notices": notices})
}

func (c *Client) Report(ctx context.Context, sessionID string) (Reply, error) {
	return c.call(ctx, "", methodReport, map[string]any{"session_id": sessionID})
}

func (c *Client) Reports(ctx context.Context, limit int) (Reply, error) {
	return c.call(ctx, "", methodReports, map[string]any{"limit": limit})
}

func (c *Client) call(ctx context.Context, token, method string, in map[string]any) (Reply, error) {
	req, err := structpb.NewStruct(in)
	if err != nil {
		return Reply{}, fmt.Errorf("build %s request: %w", method, err)
	}
	if token != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, TokenMetadataKey, token)
	}
	out, err := c.raw.Invoke(ctx, method, req)
	if err != nil {
		return Reply{}, err
	}
	m := out.AsMap()
	code, _ := m["code"].(float64)
	msg, _ := m["msg"].(string)
	return Reply{Code: transport.BizCode(code), Msg: msg, Data: m["data"]}, nil
}
