package http

import (
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"VillageDefense/internal/shared/transport"
	"VillageDefense/modules/kit/logx"
)

func TestNewHttpServer_Healthz(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := NewHttpServer(":0", gin.New(), logx.Nop())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(nethttp.MethodGet, "/healthz", nil)
	s.Engine().ServeHTTP(w, req)

	if w.Code != nethttp.StatusOK {
		t.Fatalf("unexpected status code: got=%d want=%d", w.Code, nethttp.StatusOK)
	}
}

func TestFail_系统错误返回500_业务拒绝返回200(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := NewHttpServer(":0", gin.New(), logx.Nop())
	s.Group().GET("/biz", func(c *gin.Context) { Fail(c, transport.InsufficientCoins, "") })
	s.Group().GET("/sys", func(c *gin.Context) { Fail(c, transport.SystemError, "boom") })

	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, httptest.NewRequest(nethttp.MethodGet, "/biz", nil))
	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if w.Code != nethttp.StatusOK || resp.Code != int(transport.InsufficientCoins) || resp.Msg != "金币不足" {
		t.Fatalf("status=%d resp=%+v", w.Code, resp)
	}

	w = httptest.NewRecorder()
	s.Engine().ServeHTTP(w, httptest.NewRequest(nethttp.MethodGet, "/sys", nil))
	if w.Code != nethttp.StatusInternalServerError {
		t.Fatalf("期望 500, got=%d", w.Code)
	}
}

func TestCors_预检请求放行(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := NewHttpServer(":0", gin.New(), logx.Nop())
	s.Group().POST("/game/session", func(c *gin.Context) { Success(c, nil) })

	req := httptest.NewRequest(nethttp.MethodOptions, "/game/session", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Fatalf("期望返回 Access-Control-Allow-Origin, headers=%v", w.Header())
	}
}
