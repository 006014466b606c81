package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"VillageDefense/internal/shared/logs"
	"VillageDefense/internal/shared/serverconfig"
	"VillageDefense/internal/shared/session"
	transportgrpc "VillageDefense/internal/shared/transport/grpc"
	transporthttp "VillageDefense/internal/shared/transport/http"
	"VillageDefense/internal/shared/transport/ws"
	"VillageDefense/internal/village/actor"
	"VillageDefense/internal/village/actors"
	"VillageDefense/internal/village/app"
	"VillageDefense/internal/village/gameconfig"
	"VillageDefense/internal/village/interfaces"
	wshandler "VillageDefense/internal/village/interfaces/handler/ws"
	"VillageDefense/modules/kit/logx"
)

func main() {
	confPath := flag.String("conf", "", "配置文件路径，默认向上查找 configs/conf.yml")
	flag.Parse()

	// .env 不存在时忽略，环境变量优先于配置文件
	_ = godotenv.Load()
	serverconfig.Load(*confPath)
	if err := logs.Init("village", serverconfig.Conf.Log); err != nil {
		panic(err)
	}
	defer logs.Sync()
	logs.Info("conf", zap.Any("conf", serverconfig.Conf))

	gameConf := serverconfig.Conf.Game
	catalog := gameconfig.MustDefault()
	if gameConf.CatalogFile != "" {
		c, err := gameconfig.Load(gameConf.CatalogFile)
		if err != nil {
			logs.Fatal("load catalog failed", zap.String("file", gameConf.CatalogFile), zap.Error(err))
		}
		catalog = c
	}
	logs.Info("catalog loaded",
		zap.Int("weapons", len(catalog.Weapons)),
		zap.Int("buildings", len(catalog.Buildings)),
		zap.Int("enemies", len(catalog.Enemies)),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := openReportRepo(ctx, serverconfig.Conf)
	if err != nil {
		logs.Fatal("open report store failed", zap.String("store", gameConf.ReportStore), zap.Error(err))
	}
	defer closeRepo()

	reports, err := app.NewReportService(repo, gameConf.CacheTTL())
	if err != nil {
		logs.Fatal("new report service failed", zap.Error(err))
	}
	defer reports.Close()

	baseLogger := logx.NewZapLogger(logs.Logger())
	sessMgr := session.NewSessMgr()
	runtime := actor.NewRuntime(actors.Options{
		Catalog: catalog,
		Game:    gameConf,
		Repo:    repo,
		Sink:    wshandler.NewNotifier(sessMgr),
		Log:     baseLogger,
	}, gameConf.AskTimeout())

	village := interfaces.New(runtime, reports, sessMgr)

	wsRouter := ws.NewRouter(baseLogger)
	village.WsRegister(wsRouter)
	wsServer := ws.NewServer(wsRouter, baseLogger, serverconfig.Conf.GameServer.NeedSecret)

	httpServer := transporthttp.NewHttpServer(serverconfig.Conf.GameServer.Addr(), nil, baseLogger)
	village.HttpRegister(httpServer.Group())
	httpServer.Handle("/ws", wsServer)

	rpcServer := transportgrpc.NewServer(baseLogger)
	village.RpcRegister(rpcServer)
	rpcAddr := serverconfig.Conf.RPCServer.Addr()
	lis, err := net.Listen("tcp", rpcAddr)
	if err != nil {
		logs.Fatal("listen village grpc failed", zap.Error(err))
	}

	errCh := make(chan error, 2)
	go func() {
		logs.Info("village http server started", zap.String("addr", serverconfig.Conf.GameServer.Addr()))
		if err := httpServer.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- fmt.Errorf("village http server start failed: %w", err)
		}
	}()
	go func() {
		logs.Info("village grpc server started", zap.String("addr", rpcAddr))
		if err := rpcServer.Serve(lis); err != nil {
			errCh <- fmt.Errorf("village grpc serve failed: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logs.Info("收到退出信号，准备优雅退出")
	case err := <-errCh:
		logs.Error("服务异常退出", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)

	stopCh := make(chan struct{})
	go func() {
		rpcServer.GracefulStop()
		close(stopCh)
	}()
	select {
	case <-stopCh:
	case <-shutdownCtx.Done():
		rpcServer.Stop()
	}

	// 停掉所有对局，未结束的对局在这里落最后一份战报
	runtime.Shutdown()
	logs.Info("village server stopped")
}
