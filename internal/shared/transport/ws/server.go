package ws

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"VillageDefense/modules/kit/logx"
)

type Server struct {
	router     *Router
	log        logx.Logger
	needSecret bool
	upgrader   websocket.Upgrader
}

// NewServer needSecret 为 false 时握手下发空密钥，报文只压缩不加密。
func NewServer(r *Router, l logx.Logger, needSecret bool) *Server {
	return &Server{
		router:     r,
		log:        l,
		needSecret: needSecret,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (s *Server) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	wsConn, err := s.upgrader.Upgrade(resp, req, nil)
	if err != nil {
		s.log.Error("websocket upgrade error", zap.Error(err))
		return
	}
	s.log.Info("websocket upgrade success", zap.String("addr", wsConn.RemoteAddr().String()))

	wsServer := NewWsServer(wsConn, s.log, s.needSecret)
	wsServer.Router(s.router)
	wsServer.Run()
	wsServer.handshake()
}
