package cmd

import (
	"testing"

	"VillageDefense/internal/shared/serverconfig"
)

func TestReadConfig(t *testing.T) {
	serverconfig.Load("")
	conf := serverconfig.Conf
	if conf.GameServer.Port == 0 || conf.RPCServer.Port == 0 {
		t.Fatalf("端口未配置: %+v", conf)
	}
	if conf.Game.ReportStore != "memory" || conf.Game.FrameRate != 60 {
		t.Fatalf("game 配置读取错误: %+v", conf.Game)
	}
}
