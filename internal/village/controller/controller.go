package controller

import (
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"VillageDefense/internal/village/engine"
	"VillageDefense/internal/village/entity"
	"VillageDefense/internal/village/gameconfig"
	"VillageDefense/modules/kit/logx"
)

// State 控制器状态：idle -> running -> gameOver，gameOver 为终态。
type State int

const (
	StateIdle State = iota
	StateRunning
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateGameOver:
		return "game_over"
	}
	return "unknown"
}

// 失败提示文案，客户端直接展示。
const (
	MsgPlayerDied      = "Player died! The village is lost!"
	MsgCenterDestroyed = "Village center destroyed!"
	MsgVillageDepleted = "Village health depleted!"
)

type Config struct {
	WaveInterval float64 // 波次检查间隔（模拟秒）
	SpawnStagger float64 // 同一波敌人出生间隔
	NotifyBuffer int
	Seed         uint64 // 0 表示随机
}

func (c *Config) applyDefaults() {
	if c.WaveInterval <= 0 {
		c.WaveInterval = 60
	}
	if c.SpawnStagger < 0 {
		c.SpawnStagger = 0
	}
	if c.NotifyBuffer <= 0 {
		c.NotifyBuffer = 64
	}
}

// Stats 本局累计数据，结算报告用。
type Stats struct {
	Kills          int
	CoinsEarned    int
	BuildingsBuilt int
	BuildingsLost  int
	GuardsLost     int
}

// Result 对局结果（进行中也可取）。
type Result struct {
	State      State
	Message    string
	Wave       int
	Coins      int
	SimSeconds float64
	Stats      Stats
}

// Controller 战斗/波次控制器：输入、刷怪、索敌、伤害结算、经济、胜负。
// 与 Engine 一样只在单个 actor 内使用，不加锁。
type Controller struct {
	cfg     Config
	catalog *gameconfig.Catalog
	rules   gameconfig.Rules
	engine  *engine.Engine
	player  *entity.Player
	rng     *rand.Rand

	enemies []*entity.Enemy
	guards  []*entity.Guard

	state     State
	message   string
	wave      int
	waveTimer float64
	lastNight int // 已出过波次的夜晚序号，同一夜只出一波
	simTime   float64
	pending   []scheduled

	villageHealth    int
	maxVillageHealth int

	buildMode  bool
	held       map[string]bool
	keyActions map[string]string
	mouse      entity.Vec2

	stats      Stats
	notes      *notifier
	onGameOver []func(Result)
	log        logx.Logger
}

func New(cfg Config, eng *engine.Engine, catalog *gameconfig.Catalog, log logx.Logger) *Controller {
	cfg.applyDefaults()
	if log == nil {
		log = logx.Nop()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	p := catalog.Player
	player := entity.NewPlayer(entity.PlayerConfig{
		Center:    entity.Vec2{p.X, p.Y},
		Width:     p.Width,
		Height:    p.Height,
		Speed:     p.Speed,
		MaxHealth: p.MaxHealth,
		Coins:     p.Coins,
		Weapons:   catalog.NewWeapons(),
		Templates: catalog.Templates(),
	})
	c := &Controller{
		cfg:              cfg,
		catalog:          catalog,
		rules:            catalog.Rules,
		engine:           eng,
		player:           player,
		rng:              rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		lastNight:        -1,
		villageHealth:    catalog.Village.Health,
		maxVillageHealth: catalog.Village.Health,
		held:             make(map[string]bool),
		keyActions:       catalog.KeyActions(),
		notes:            newNotifier(cfg.NotifyBuffer),
		log:              log,
	}
	eng.Add(player)
	c.seedVillage()
	eng.OnResourceGenerated(c.onResource)
	return c
}

// seedVillage 摆放村庄中心和初始房屋。
func (c *Controller) seedVillage() {
	v := c.catalog.Village
	if t, ok := c.catalog.Template(entity.CategoryVillageCenter); ok {
		c.engine.AddBuilding(entity.NewBuilding(t, entity.Vec2{v.Center.X, v.Center.Y}))
	}
	if t, ok := c.catalog.Template(entity.CategoryHouse); ok {
		for _, h := range v.Houses {
			c.engine.AddBuilding(entity.NewBuilding(t, entity.Vec2{h.X, h.Y}))
		}
	}
}

func (c *Controller) Engine() *engine.Engine {
	return c.engine
}

func (c *Controller) Player() *entity.Player {
	return c.player
}

func (c *Controller) State() State {
	return c.state
}

func (c *Controller) Wave() int {
	return c.wave
}

func (c *Controller) VillageHealth() int {
	return c.villageHealth
}

// Enemies 活跃敌人列表的拷贝。
func (c *Controller) Enemies() []*entity.Enemy {
	return append([]*entity.Enemy(nil), c.enemies...)
}

func (c *Controller) Guards() []*entity.Guard {
	return append([]*entity.Guard(nil), c.guards...)
}

// PendingSpawns 已排期未出生的数量（敌人和守卫）。
func (c *Controller) PendingSpawns() int {
	return len(c.pending)
}

func (c *Controller) SimTime() float64 {
	return c.simTime
}

// active 运行中且帧循环没有暂停。
func (c *Controller) active() bool {
	return c.state == StateRunning && c.engine.Running()
}

func (c *Controller) requireActive() error {
	switch {
	case c.state == StateGameOver:
		return ErrGameOver
	case !c.active():
		return ErrNotRunning
	}
	return nil
}

// Start idle 进入 running；已停止的局恢复帧循环。结束后再 start 返回 ErrGameOver。
func (c *Controller) Start() error {
	switch c.state {
	case StateGameOver:
		return ErrGameOver
	case StateIdle:
		c.state = StateRunning
		c.notify(NoticeInfo, "Defend the village! Enemies attack at night.")
		c.log.Info("game start", zap.Int("coins", c.player.Coins()))
	}
	c.engine.Start()
	return nil
}

// Stop 停帧循环。已排期的出生也一起冻结，Start 后按模拟时间继续。
func (c *Controller) Stop() {
	if c.state != StateRunning {
		return
	}
	c.engine.Stop()
}

func (c *Controller) OnGameOver(fn func(Result)) {
	if fn != nil {
		c.onGameOver = append(c.onGameOver, fn)
	}
}

func (c *Controller) OnNotify(fn func(Notification)) {
	if fn != nil {
		c.notes.listeners = append(c.notes.listeners, fn)
	}
}

// Notifications 返回 seq 之后的通知。
func (c *Controller) Notifications(after uint64) []Notification {
	return c.notes.since(after)
}

func (c *Controller) RecentNotifications(limit int) []Notification {
	return c.notes.recent(limit)
}

func (c *Controller) notify(kind NoticeKind, msg string) {
	c.notes.push(kind, msg, c.simTime)
}

func (c *Controller) notifyf(kind NoticeKind, format string, args ...any) {
	c.notify(kind, fmt.Sprintf(format, args...))
}

func (c *Controller) Result() Result {
	return Result{
		State:      c.state,
		Message:    c.message,
		Wave:       c.wave,
		Coins:      c.player.Coins(),
		SimSeconds: c.simTime,
		Stats:      c.stats,
	}
}

// Tick 60Hz 模拟步。结束或暂停时什么都不做。
func (c *Controller) Tick(delta float64) {
	if !c.active() || delta <= 0 {
		return
	}
	c.simTime += delta

	c.applyMovement(delta)

	c.waveTimer += delta
	for c.waveTimer >= c.cfg.WaveInterval {
		c.waveTimer -= c.cfg.WaveInterval
		c.CheckWave()
	}
	c.runDue()

	c.stepEnemies(delta)
	c.stepGuards(delta)
	c.stepTowers(delta)
	if c.state == StateGameOver {
		return
	}
	c.resolveCollisions()
	if c.state == StateGameOver {
		return
	}
	if c.villageHealth <= 0 {
		c.endGame(MsgVillageDepleted)
	}
}

// endGame 第一个触发者生效，后续同一 tick 内的失败条件全部忽略。
func (c *Controller) endGame(msg string) {
	if c.state == StateGameOver {
		return
	}
	c.state = StateGameOver
	c.message = msg
	c.engine.Stop()
	c.pending = nil
	c.held = make(map[string]bool)
	c.notify(NoticeGameOver, msg)
	c.log.Info("game over",
		zap.String("message", msg),
		zap.Int("wave", c.wave),
		zap.Int("kills", c.stats.Kills),
		zap.Float64("sim_seconds", c.simTime),
	)
	r := c.Result()
	for _, fn := range c.onGameOver {
		fn(r)
	}
}

func (c *Controller) applyMovement(delta float64) {
	var dir entity.Vec2
	if c.held["up"] {
		dir[1]--
	}
	if c.held["down"] {
		dir[1]++
	}
	if c.held["left"] {
		dir[0]--
	}
	if c.held["right"] {
		dir[0]++
	}
	c.player.Move(dir, delta, c.engine.Width(), c.engine.Height())
}

func (c *Controller) onResource(ev engine.ResourceEvent) {
	if c.state != StateRunning {
		return
	}
	reward := c.rules.ResourceReward
	c.player.AddCoins(reward)
	c.stats.CoinsEarned += reward
	c.notifyf(NoticeResource, "+%d coins from %s", reward, ev.Category)
}
