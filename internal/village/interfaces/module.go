package interfaces

import (
	"github.com/gin-gonic/gin"
	"google.golang.org/grpc"

	"VillageDefense/internal/shared/session"
	transporthttp "VillageDefense/internal/shared/transport/http"
	"VillageDefense/internal/shared/transport/ws"
	"VillageDefense/internal/village/actor"
	"VillageDefense/internal/village/app"
	"VillageDefense/internal/village/interfaces/handler"
	"VillageDefense/internal/village/interfaces/handler/http"
	wshandler "VillageDefense/internal/village/interfaces/handler/ws"
	"VillageDefense/internal/village/interfaces/rpc"
)

type Module struct {
	wsHandler   *wshandler.WsHandler
	httpHandler *http.HttpHandler
	rpcServer   *rpc.Server
}

func New(rt *actor.Runtime, reports *app.ReportService, s session.Manager) *Module {
	village := handler.NewVillage(rt, reports, s)
	return &Module{
		wsHandler:   wshandler.NewWsHandler(village),
		httpHandler: http.NewHttpHandler(village),
		rpcServer:   rpc.NewServer(village),
	}
}

func (m *Module) WsRegister(r *ws.Router) {
	m.wsHandler.RegisterRoutes(r)
}

func (m *Module) HttpRegister(g *gin.RouterGroup) {
	m.httpHandler.RegisterRoutes(g)
}

func (m *Module) RpcRegister(s grpc.ServiceRegistrar) {
	rpc.RegisterGameServiceServer(s, m.rpcServer)
}

var _ ws.Registrar = (*Module)(nil)
var _ transporthttp.Registrar = (*Module)(nil)
