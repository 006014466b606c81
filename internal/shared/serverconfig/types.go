package serverconfig

import (
	"fmt"
	"time"
)

type Config struct {
	MySQL      MySQLConfig      `yaml:"mysql" mapstructure:"mysql"`
	MongoDB    MongoDBConfig    `yaml:"mongodb" mapstructure:"mongodb"`
	GameServer GameServerConfig `yaml:"gameserver" mapstructure:"gameserver"`
	RPCServer  RPCServerConfig  `yaml:"rpcserver" mapstructure:"rpcserver"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	Game       GameConfig       `yaml:"game" mapstructure:"game"`
	JWTSecret  string           `yaml:"jwt_secret" mapstructure:"jwt_secret"`
}

type MySQLConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	Charset  string `yaml:"charset" mapstructure:"charset"`
	MaxIdle  int    `yaml:"max_idle" mapstructure:"max_idle"`
	MaxConn  int    `yaml:"max_conn" mapstructure:"max_conn"`
}

func (c MySQLConfig) DSN() string {
	charset := c.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.DBName, charset)
}

type MongoDBConfig struct {
	URI      string `yaml:"uri" mapstructure:"uri"`
	Database string `yaml:"database" mapstructure:"database"`
}

type GameServerConfig struct {
	Host       string `yaml:"host" mapstructure:"host"`
	Port       int    `yaml:"port" mapstructure:"port"`
	NeedSecret bool   `yaml:"need_secret" mapstructure:"need_secret"`
}

func (c GameServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type RPCServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

func (c RPCServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"` // debug/info/warn/error...
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}

// GameConfig 对局运行参数，时间单位为秒。
type GameConfig struct {
	Width          float64 `yaml:"width" mapstructure:"width"`
	Height         float64 `yaml:"height" mapstructure:"height"`
	FrameRate      int     `yaml:"frame_rate" mapstructure:"frame_rate"`
	TickRate       int     `yaml:"tick_rate" mapstructure:"tick_rate"`
	CycleSeconds   float64 `yaml:"cycle_seconds" mapstructure:"cycle_seconds"`
	WaveInterval   float64 `yaml:"wave_interval" mapstructure:"wave_interval"`
	SpawnStagger   float64 `yaml:"spawn_stagger" mapstructure:"spawn_stagger"`
	CatalogFile    string  `yaml:"catalog_file" mapstructure:"catalog_file"`
	ReportStore    string  `yaml:"report_store" mapstructure:"report_store"` // memory/mongodb/mysql
	ReportCacheTTL int     `yaml:"report_cache_ttl" mapstructure:"report_cache_ttl"`
	NotifyBuffer   int     `yaml:"notify_buffer" mapstructure:"notify_buffer"`
	AskTimeoutMs   int     `yaml:"ask_timeout_ms" mapstructure:"ask_timeout_ms"`
}

func (g *GameConfig) applyDefaults() {
	if g.Width <= 0 {
		g.Width = 800
	}
	if g.Height <= 0 {
		g.Height = 600
	}
	if g.FrameRate <= 0 {
		g.FrameRate = 60
	}
	if g.TickRate <= 0 {
		g.TickRate = 60
	}
	if g.CycleSeconds <= 0 {
		g.CycleSeconds = 120
	}
	if g.WaveInterval <= 0 {
		g.WaveInterval = 60
	}
	if g.SpawnStagger <= 0 {
		g.SpawnStagger = 2
	}
	if g.ReportStore == "" {
		g.ReportStore = "memory"
	}
	if g.ReportCacheTTL <= 0 {
		g.ReportCacheTTL = 300
	}
	if g.NotifyBuffer <= 0 {
		g.NotifyBuffer = 64
	}
	if g.AskTimeoutMs <= 0 {
		g.AskTimeoutMs = 2000
	}
}

// Defaults 返回补齐默认值后的副本。
func (g GameConfig) Defaults() GameConfig {
	g.applyDefaults()
	return g
}

func (g GameConfig) AskTimeout() time.Duration {
	return time.Duration(g.AskTimeoutMs) * time.Millisecond
}

func (g GameConfig) CacheTTL() time.Duration {
	return time.Duration(g.ReportCacheTTL) * time.Second
}
