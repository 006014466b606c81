package http

import (
	"context"
	nethttp "net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"VillageDefense/internal/shared/security"
	"VillageDefense/internal/shared/transport"
	transporthttp "VillageDefense/internal/shared/transport/http"
	"VillageDefense/internal/village/controller"
	"VillageDefense/internal/village/interfaces/handler"
)

const (
	tokenHeader  = "X-Session-Token"
	bearerPrefix = "Bearer "
)

type HttpHandler struct {
	village *handler.Village
}

func NewHttpHandler(v *handler.Village) *HttpHandler {
	return &HttpHandler{village: v}
}

func (h *HttpHandler) RegisterRoutes(group *gin.RouterGroup) {
	gameGroup := group.Group("/game")
	gameGroup.POST("/session", h.Create)

	sessionGroup := gameGroup.Group("/:session", h.requireToken)
	sessionGroup.POST("/start", h.Start)
	sessionGroup.POST("/stop", h.Stop)
	sessionGroup.POST("/close", h.Close)
	sessionGroup.POST("/input", h.Input)
	sessionGroup.POST("/build", h.Build)
	sessionGroup.GET("/state", h.State)
	sessionGroup.GET("/frame", h.Frame)
	sessionGroup.GET("/notifications", h.Notifications)

	reportGroup := group.Group("/reports")
	reportGroup.GET("", h.ListReports)
	reportGroup.GET("/:session", h.Report)
}

func (h *HttpHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	resp, err := h.village.Create(ctx)
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, resp)
}

func (h *HttpHandler) Start(c *gin.Context) {
	ctx := c.Request.Context()
	state, err := h.village.Runtime.Start(ctx, c.Param("session"))
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, AckResp{State: state})
}

func (h *HttpHandler) Stop(c *gin.Context) {
	ctx := c.Request.Context()
	state, err := h.village.Runtime.Stop(ctx, c.Param("session"))
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, AckResp{State: state})
}

func (h *HttpHandler) Close(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.village.Close(ctx, c.Param("session")); err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, nil)
}

func (h *HttpHandler) Input(c *gin.Context) {
	ctx := c.Request.Context()

	var req InputReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}
	st, err := h.village.Runtime.Input(ctx, c.Param("session"), controller.Input{
		Type: controller.InputType(req.Type),
		Key:  req.Key,
		X:    req.X,
		Y:    req.Y,
	})
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, st)
}

func (h *HttpHandler) Build(c *gin.Context) {
	ctx := c.Request.Context()

	var req BuildReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}
	tpl := -1
	if req.Template != nil {
		tpl = *req.Template
	}
	st, err := h.village.Runtime.Place(ctx, c.Param("session"), req.X, req.Y, tpl)
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, st)
}

// State ?notices=N 附带最近 N 条通知，不传用默认条数。
func (h *HttpHandler) State(c *gin.Context) {
	ctx := c.Request.Context()
	notices := -1
	if raw := c.Query("notices"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.fail(c, transport.InvalidParam, "参数有误")
			return
		}
		notices = n
	}
	st, err := h.village.Runtime.State(ctx, c.Param("session"), notices)
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, st)
}

func (h *HttpHandler) Frame(c *gin.Context) {
	ctx := c.Request.Context()
	frame, err := h.village.Runtime.Frame(ctx, c.Param("session"))
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, frame)
}

// Notifications ?after=seq 只返回更新的通知。
func (h *HttpHandler) Notifications(c *gin.Context) {
	ctx := c.Request.Context()
	var after uint64
	if raw := c.Query("after"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			h.fail(c, transport.InvalidParam, "参数有误")
			return
		}
		after = n
	}
	notes, err := h.village.Runtime.Notifications(ctx, c.Param("session"), after)
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, notes)
}

func (h *HttpHandler) Report(c *gin.Context) {
	ctx := c.Request.Context()
	report, err := h.village.Report(ctx, c.Param("session"))
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, report)
}

func (h *HttpHandler) ListReports(c *gin.Context) {
	ctx := c.Request.Context()
	limit, _ := strconv.Atoi(c.Query("limit"))
	list, err := h.village.ListReports(ctx, limit)
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, list)
}

// requireToken 会话接口必须带本会话签发的 token。
func (h *HttpHandler) requireToken(c *gin.Context) {
	token := c.GetHeader(tokenHeader)
	if token == "" {
		token = strings.TrimPrefix(c.GetHeader("Authorization"), bearerPrefix)
	}
	if token == "" || security.VerifySession(token, c.Param("session")) != nil {
		transporthttp.Abort(c, nethttp.StatusUnauthorized, transport.TokenInvalid)
		return
	}
	c.Next()
}

func (h *HttpHandler) ok(c *gin.Context, data any) {
	transporthttp.Success(c, data)
}

func (h *HttpHandler) fail(c *gin.Context, code transport.BizCode, msg string) {
	transporthttp.Fail(c, code, msg)
}

func (h *HttpHandler) error(ctx context.Context, c *gin.Context, err error) {
	code, msg := handler.HandleError(ctx, err)
	h.fail(c, code, msg)
}
