package ws

import (
	"context"

	"VillageDefense/internal/shared/security"
	"VillageDefense/internal/shared/transport"
	"VillageDefense/internal/shared/transport/ws"
	"VillageDefense/internal/village/controller"
	"VillageDefense/internal/village/interfaces/handler"
)

type WsHandler struct {
	village *handler.Village
}

func NewWsHandler(v *handler.Village) *WsHandler {
	return &WsHandler{village: v}
}

func (h *WsHandler) RegisterRoutes(r *ws.Router) {
	gameGroup := r.Group("game")
	gameGroup.Handle("create", h.Create)
	gameGroup.Handle("attach", h.Attach)
	gameGroup.Handle("start", h.Start)
	gameGroup.Handle("stop", h.Stop)
	gameGroup.Handle("close", h.Close)
	gameGroup.Handle("state", h.State)
	gameGroup.Handle("input", h.Input)
	gameGroup.Handle("build", h.Build)
	gameGroup.Handle("frame", h.Frame)
	gameGroup.Handle("notifications", h.Notifications)
}

// Create 新建对局并把当前连接绑为推送连接。
func (h *WsHandler) Create(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	if !valid(wsReq, wsResp) {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	resp, err := h.village.Create(ctx)
	if err != nil {
		h.error(ctx, wsResp, err)
		return
	}
	h.village.Sessions.Bind(resp.SessionID, wsReq.Conn)
	h.ok(wsResp, resp)
}

// Attach 用 token 把连接绑到已有对局，例如 HTTP 建的局改走 ws 推送。
func (h *WsHandler) Attach(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	if !valid(wsReq, wsResp) {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	var req AttachReq
	if err := ws.BindJSON(wsReq, &req); err != nil || req.SessionID == "" {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	if err := security.VerifySession(req.Token, req.SessionID); err != nil {
		h.fail(wsResp, transport.TokenInvalid, "")
		return
	}
	st, err := h.village.Runtime.State(ctx, req.SessionID, -1)
	if err != nil {
		h.error(ctx, wsResp, err)
		return
	}
	transport.SetSessionID(ctx, req.SessionID)
	h.village.Sessions.Bind(req.SessionID, wsReq.Conn)
	h.ok(wsResp, st)
}

func (h *WsHandler) Start(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	sid, ok := h.session(wsReq, wsResp)
	if !ok {
		return
	}
	state, err := h.village.Runtime.Start(ctx, sid)
	if err != nil {
		h.error(ctx, wsResp, err)
		return
	}
	h.ok(wsResp, AckResp{State: state})
}

func (h *WsHandler) Stop(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	sid, ok := h.session(wsReq, wsResp)
	if !ok {
		return
	}
	state, err := h.village.Runtime.Stop(ctx, sid)
	if err != nil {
		h.error(ctx, wsResp, err)
		return
	}
	h.ok(wsResp, AckResp{State: state})
}

func (h *WsHandler) Close(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	sid, ok := h.session(wsReq, wsResp)
	if !ok {
		return
	}
	if err := h.village.Close(ctx, sid); err != nil {
		h.error(ctx, wsResp, err)
		return
	}
	wsReq.Conn.RemoveProperty(ws.ConnKeySession)
	h.ok(wsResp, nil)
}

func (h *WsHandler) State(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	sid, ok := h.session(wsReq, wsResp)
	if !ok {
		return
	}
	notices := -1
	if wsReq.Body.Msg != nil {
		var req StateReq
		if err := ws.BindJSON(wsReq, &req); err != nil {
			h.fail(wsResp, transport.InvalidParam, "参数有误")
			return
		}
		if req.Notices != nil {
			notices = *req.Notices
		}
	}
	st, err := h.village.Runtime.State(ctx, sid, notices)
	if err != nil {
		h.error(ctx, wsResp, err)
		return
	}
	h.ok(wsResp, st)
}

func (h *WsHandler) Input(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	sid, ok := h.session(wsReq, wsResp)
	if !ok {
		return
	}
	var req InputReq
	if err := ws.BindJSON(wsReq, &req); err != nil || req.Type == "" {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	st, err := h.village.Runtime.Input(ctx, sid, controller.Input{
		Type: controller.InputType(req.Type),
		Key:  req.Key,
		X:    req.X,
		Y:    req.Y,
	})
	if err != nil {
		h.error(ctx, wsResp, err)
		return
	}
	h.ok(wsResp, st)
}

func (h *WsHandler) Build(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	sid, ok := h.session(wsReq, wsResp)
	if !ok {
		return
	}
	var req BuildReq
	if err := ws.BindJSON(wsReq, &req); err != nil {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	tpl := -1
	if req.Template != nil {
		tpl = *req.Template
	}
	st, err := h.village.Runtime.Place(ctx, sid, req.X, req.Y, tpl)
	if err != nil {
		h.error(ctx, wsResp, err)
		return
	}
	h.ok(wsResp, st)
}

func (h *WsHandler) Frame(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	sid, ok := h.session(wsReq, wsResp)
	if !ok {
		return
	}
	frame, err := h.village.Runtime.Frame(ctx, sid)
	if err != nil {
		h.error(ctx, wsResp, err)
		return
	}
	h.ok(wsResp, frame)
}

func (h *WsHandler) Notifications(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	sid, ok := h.session(wsReq, wsResp)
	if !ok {
		return
	}
	var req NotificationsReq
	if wsReq.Body.Msg != nil {
		if err := ws.BindJSON(wsReq, &req); err != nil {
			h.fail(wsResp, transport.InvalidParam, "参数有误")
			return
		}
	}
	notes, err := h.village.Runtime.Notifications(ctx, sid, req.After)
	if err != nil {
		h.error(ctx, wsResp, err)
		return
	}
	h.ok(wsResp, notes)
}

// session 取连接绑定的对局，未绑定时直接写失败响应。
func (h *WsHandler) session(wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) (string, bool) {
	if !valid(wsReq, wsResp) {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return "", false
	}
	sid, ok := h.village.Sessions.GetSession(wsReq.Conn)
	if !ok {
		h.fail(wsResp, transport.SessionNotFound, "连接未绑定对局")
		return "", false
	}
	return sid, true
}

func valid(wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) bool {
	return wsReq != nil && wsReq.Body != nil && wsReq.Conn != nil && wsResp != nil && wsResp.Body != nil
}

func (h *WsHandler) ok(resp *ws.WsMsgResp, data any) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = int(transport.OK)
	resp.Body.Msg = data
}

func (h *WsHandler) fail(resp *ws.WsMsgResp, code transport.BizCode, msg string) {
	if resp == nil || resp.Body == nil {
		return
	}
	if msg == "" {
		msg = code.Text()
	}
	resp.Body.Code = int(code)
	resp.Body.Msg = msg
}

func (h *WsHandler) error(ctx context.Context, resp *ws.WsMsgResp, err error) {
	code, msg := handler.HandleError(ctx, err)
	h.fail(resp, code, msg)
}
