package ws

import (
	"context"
	"strings"

	"VillageDefense/internal/shared/transport"
	"VillageDefense/modules/kit/logx"
)

type Group struct {
	prefix   string
	handlers map[string]HandlerFunc
}

type HandlerFunc func(ctx context.Context, req *WsMsgReq, resp *WsMsgResp)

func (g *Group) Handle(name string, h HandlerFunc) {
	g.handlers[name] = h
}

type Router struct {
	groups map[string]*Group
	log    logx.Logger
}

func NewRouter(l logx.Logger) *Router {
	if l == nil {
		l = logx.Nop()
	}
	return &Router{
		groups: make(map[string]*Group),
		log:    l,
	}
}

func (r *Router) Group(prefix string) *Group {
	group := r.groups[prefix]
	if group == nil {
		group = &Group{prefix: prefix, handlers: make(map[string]HandlerFunc)}
		r.groups[prefix] = group
	}
	return group
}

// Dispatch 按 "组.处理器" 路由，例如 game.start。
func (r *Router) Dispatch(req *WsMsgReq, resp *WsMsgResp) {
	ctx := r.prepareDispatchContext(req, resp)
	defer r.writeAccessLog(ctx, resp)

	if req == nil || req.Body == nil || resp == nil || resp.Body == nil {
		r.setErrorResponse(resp, transport.InvalidParam, "参数有误")
		return
	}
	handlerFunc := r.findHandler(req.Body.Name, resp)
	if handlerFunc == nil {
		return
	}
	handlerFunc(ctx, req, resp)
}

func (r *Router) prepareDispatchContext(req *WsMsgReq, resp *WsMsgResp) context.Context {
	action := "WS unknown"
	if req != nil && req.Body != nil {
		action = "WS " + req.Body.Name
	}
	ctx := transport.NewContext(action)
	if req != nil && req.Conn != nil {
		if sid, ok := req.Conn.GetProperty(ConnKeySession).(string); ok {
			transport.SetSessionID(ctx, sid)
		}
	}
	if resp != nil && resp.Body != nil {
		// 先置系统错误，handler 漏设时不会出现成功假象
		resp.Body.Code = int(transport.SystemError)
		resp.Body.Msg = nil
	}
	return ctx
}

func (r *Router) findHandler(route string, resp *WsMsgResp) HandlerFunc {
	prefix, handler, ok := parseRouteName(route)
	if !ok {
		r.setErrorResponse(resp, transport.InvalidParam, "路由参数有误")
		return nil
	}
	group := r.groups[prefix]
	if group == nil {
		r.setErrorResponse(resp, transport.InvalidParam, "路由组不存在")
		return nil
	}
	handlerFunc := group.handlers[handler]
	if handlerFunc == nil {
		r.setErrorResponse(resp, transport.InvalidParam, "路由处理器不存在")
		return nil
	}
	return handlerFunc
}

func parseRouteName(name string) (string, string, bool) {
	prefix, handler, found := strings.Cut(name, ".")
	if !found || prefix == "" || handler == "" || strings.Contains(handler, ".") {
		return "", "", false
	}
	return prefix, handler, true
}

func (r *Router) setErrorResponse(resp *WsMsgResp, code transport.BizCode, msg string) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = int(code)
	resp.Body.Msg = msg
}

func (r *Router) writeAccessLog(ctx context.Context, resp *WsMsgResp) {
	bizCode := transport.SystemError
	if resp != nil && resp.Body != nil {
		bizCode = transport.BizCode(resp.Body.Code)
	}
	transport.SetBizCode(ctx, bizCode)
	transport.WriteAccessLog(ctx, r.log)
}

// Registrar 业务模块向 ws 路由注册处理器。
type Registrar interface {
	WsRegister(r *Router)
}
