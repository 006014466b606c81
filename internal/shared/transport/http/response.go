package http

import (
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"VillageDefense/internal/shared/transport"
)

// Response 统一响应体，access 日志中间件从 code 字段取业务码。
type Response struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}

func Success(c *gin.Context, data any) {
	c.JSON(nethttp.StatusOK, Response{Code: int(transport.OK), Msg: transport.OK.Text(), Data: data})
}

// Fail 业务拒绝仍返回 200，系统错误返回 500。
func Fail(c *gin.Context, code transport.BizCode, msg string) {
	if msg == "" {
		msg = code.Text()
	}
	status := nethttp.StatusOK
	if code >= transport.SystemError {
		status = nethttp.StatusInternalServerError
	}
	c.JSON(status, Response{Code: int(code), Msg: msg})
}

// Abort 中间件里拒绝请求。
func Abort(c *gin.Context, status int, code transport.BizCode) {
	c.AbortWithStatusJSON(status, Response{Code: int(code), Msg: code.Text()})
}
