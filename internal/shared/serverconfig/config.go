package serverconfig

import (
	"os"

	"VillageDefense/internal/shared/config"
)

const defaultConfigRelPath = "configs/conf.yml"

var Conf Config

// Load 加载 configs/conf.yml，path 非空时优先使用。
func Load(path string) {
	if path == "" {
		path = defaultConfigRelPath
	}
	config.Load(path, &Conf)
	Conf.Game.applyDefaults()
	// 环境变量优先；未设置时回填配置中的 jwt_secret，兼容本地开发。
	if os.Getenv("JWT_SECRET") == "" && Conf.JWTSecret != "" {
		_ = os.Setenv("JWT_SECRET", Conf.JWTSecret)
	}
}
