package rpc

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"VillageDefense/internal/shared/security"
	"VillageDefense/internal/shared/transport"
	"VillageDefense/internal/village/controller"
	"VillageDefense/internal/village/interfaces/handler"
)

// TokenMetadataKey 会话 token 放在 metadata 里。
const TokenMetadataKey = "x-session-token"

const (
	ActionStart = "start"
	ActionStop  = "stop"
	ActionClose = "close"
	ActionInput = "input"
	ActionBuild = "build"
)

type CommandReq struct {
	SessionID string  `json:"session_id"`
	Action    string  `json:"action"`
	Type      string  `json:"type"`
	Key       string  `json:"key"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Template  *int    `json:"template"`
}

type StateReq struct {
	SessionID string `json:"session_id"`
	Notices   *int   `json:"notices"`
}

type ReportReq struct {
	SessionID string `json:"session_id"`
	Limit     int    `json:"limit"`
}

// Server 业务拒绝放在响应的 code 字段里，和 HTTP 一样；只有系统错误才返回 grpc status。
type Server struct {
	village *handler.Village
}

func NewServer(v *handler.Village) *Server {
	return &Server{village: v}
}

var _ GameServiceServer = (*Server)(nil)

func (s *Server) Create(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	resp, err := s.village.Create(ctx)
	return s.reply(ctx, resp, err)
}

func (s *Server) Command(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req CommandReq
	if err := bind(in, &req); err != nil || req.SessionID == "" {
		return envelope(transport.InvalidParam, "参数有误", nil)
	}
	if !authorized(ctx, req.SessionID) {
		return envelope(transport.TokenInvalid, transport.TokenInvalid.Text(), nil)
	}

	rt := s.village.Runtime
	switch req.Action {
	case ActionStart:
		state, err := rt.Start(ctx, req.SessionID)
		return s.reply(ctx, map[string]any{"state": state}, err)
	case ActionStop:
		state, err := rt.Stop(ctx, req.SessionID)
		return s.reply(ctx, map[string]any{"state": state}, err)
	case ActionClose:
		return s.reply(ctx, nil, s.village.Close(ctx, req.SessionID))
	case ActionInput:
		if req.Type == "" {
			return envelope(transport.InvalidParam, "参数有误", nil)
		}
		st, err := rt.Input(ctx, req.SessionID, controller.Input{
			Type: controller.InputType(req.Type),
			Key:  req.Key,
			X:    req.X,
			Y:    req.Y,
		})
		return s.reply(ctx, st, err)
	case ActionBuild:
		tpl := -1
		if req.Template != nil {
			tpl = *req.Template
		}
		st, err := rt.Place(ctx, req.SessionID, req.X, req.Y, tpl)
		return s.reply(ctx, st, err)
	}
	return envelope(transport.InvalidParam, "未知指令", nil)
}

func (s *Server) State(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req StateReq
	if err := bind(in, &req); err != nil || req.SessionID == "" {
		return envelope(transport.InvalidParam, "参数有误", nil)
	}
	if !authorized(ctx, req.SessionID) {
		return envelope(transport.TokenInvalid, transport.TokenInvalid.Text(), nil)
	}
	notices := -1
	if req.Notices != nil {
		notices = *req.Notices
	}
	st, err := s.village.Runtime.State(ctx, req.SessionID, notices)
	return s.reply(ctx, st, err)
}

func (s *Server) Report(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req ReportReq
	if err := bind(in, &req); err != nil || req.SessionID == "" {
		return envelope(transport.InvalidParam, "参数有误", nil)
	}
	report, err := s.village.Report(ctx, req.SessionID)
	return s.reply(ctx, report, err)
}

func (s *Server) Reports(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req ReportReq
	if err := bind(in, &req); err != nil {
		return envelope(transport.InvalidParam, "参数有误", nil)
	}
	list, err := s.village.ListReports(ctx, req.Limit)
	return s.reply(ctx, list, err)
}

func (s *Server) reply(ctx context.Context, data any, err error) (*structpb.Struct, error) {
	if err != nil {
		code, msg := handler.HandleError(ctx, err)
		if code == transport.UpstreamTimeout {
			return nil, status.Error(codes.DeadlineExceeded, msg)
		}
		if code >= transport.SystemError {
			return nil, status.Error(codes.Internal, msg)
		}
		return envelope(code, msg, nil)
	}
	return envelope(transport.OK, transport.OK.Text(), data)
}

func envelope(code transport.BizCode, msg string, data any) (*structpb.Struct, error) {
	v, err := toValue(data)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	out, err := toStruct(map[string]any{
		"code": int(code),
		"msg":  msg,
		"data": v,
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func authorized(ctx context.Context, sessionID string) bool {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return false
	}
	tokens := md.Get(TokenMetadataKey)
	if len(tokens) == 0 {
		return false
	}
	return security.VerifySession(tokens[0], sessionID) == nil
}
