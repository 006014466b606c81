package config

import (
	"os"
	"path/filepath"
)

// Load 读取配置到 out，失败直接 panic（启动期）。
// 约定：
// 1) cfgName 是绝对路径或相对当前目录存在时直接使用；
// 2) 否则从当前目录开始向上查找 cfgName。
func Load(cfgName string, out any) {
	curDir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	if filepath.IsAbs(cfgName) {
		load(cfgName, out)
		return
	}
	direct := filepath.Join(curDir, cfgName)
	if fileExist(direct) {
		load(direct, out)
		return
	}
	load(FindUpward(curDir, cfgName), out)
}

// FindUpward 从 startDir 逐级向上查找 rel，找不到 panic。
func FindUpward(startDir, rel string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, rel)
		if fileExist(candidate) {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			panic("config file not exist, searched " + rel + " from: " + startDir)
		}
		dir = parent
	}
}
