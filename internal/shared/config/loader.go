package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// 热更新和读取方并发时由调用方自己决定是否加锁，这里只保证 Unmarshal 串行。
var reloadMu sync.Mutex

func load(configPath string, out any) {
	if !fileExist(configPath) {
		panic(fmt.Sprintf("config file not exist, configPath=%v", configPath))
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.OnConfigChange(func(e fsnotify.Event) {
		log.Println("配置文件变更", e.Name)
		reloadMu.Lock()
		defer reloadMu.Unlock()
		if err := v.Unmarshal(out); err != nil {
			log.Printf("viper unmarshal change config data failed, err=%v\n", err)
		}
	})
	v.WatchConfig()

	if err := v.ReadInConfig(); err != nil {
		panic(err)
	}
	if err := v.Unmarshal(out); err != nil {
		panic(err)
	}
}

// LoadReader 从内存数据读取（内嵌配置表），configType 如 "json"/"yaml"。
func LoadReader(r io.Reader, configType string, out any) error {
	v := viper.New()
	v.SetConfigType(configType)
	if err := v.ReadConfig(r); err != nil {
		return fmt.Errorf("read %s config: %w", configType, err)
	}
	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("unmarshal %s config: %w", configType, err)
	}
	return nil
}

// LoadFile 读取一次，不监听变更；找不到文件返回 error。
func LoadFile(configPath string, out any) error {
	if !fileExist(configPath) {
		return fmt.Errorf("config file not exist, configPath=%v", configPath)
	}
	v := viper.New()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return err
	}
	return v.Unmarshal(out)
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
