package controller

import (
	"go.uber.org/zap"

	"VillageDefense/internal/village/entity"
)

type spawnKind int

const (
	spawnEnemy spawnKind = iota
	spawnGuard
)

// scheduled 按模拟时间排期的一次出生。
type scheduled struct {
	at   float64
	kind spawnKind
	wave int
	post entity.ID
}

// EnemyCount 第 wave 波的敌人数：3 + floor(wave/2)。
func EnemyCount(base, wave int) int {
	if base <= 0 {
		base = 3
	}
	return base + wave/2
}

// CheckWave 夜晚且本夜还没出过波次时开新一波，返回是否开波。
func (c *Controller) CheckWave() bool {
	if c.state != StateRunning {
		return false
	}
	clock := c.engine.Clock()
	if !clock.IsNight() || clock.NightIndex() == c.lastNight {
		return false
	}
	c.lastNight = clock.NightIndex()
	c.wave++
	count := EnemyCount(c.rules.BaseEnemies, c.wave)
	for i := 0; i < count; i++ {
		c.pending = append(c.pending, scheduled{
			at:   c.simTime + float64(i)*c.cfg.SpawnStagger,
			kind: spawnEnemy,
			wave: c.wave,
		})
	}
	c.notifyf(NoticeWave, "Wave %d incoming! %d enemies approach!", c.wave, count)
	c.log.Info("wave start", zap.Int("wave", c.wave), zap.Int("count", count))
	c.runDue()
	return true
}

// runDue 执行到点的排期，保持排期顺序。
func (c *Controller) runDue() {
	if len(c.pending) == 0 {
		return
	}
	rest := c.pending[:0]
	var due []scheduled
	for _, s := range c.pending {
		if s.at <= c.simTime {
			due = append(due, s)
		} else {
			rest = append(rest, s)
		}
	}
	c.pending = rest
	for _, s := range due {
		if c.state != StateRunning {
			return
		}
		switch s.kind {
		case spawnEnemy:
			c.spawnEnemy(s.wave)
		case spawnGuard:
			c.spawnGuard(s.post)
		}
	}
}

func (c *Controller) spawnEnemy(wave int) *entity.Enemy {
	pool := c.catalog.EnemyPool(wave)
	if len(pool) == 0 {
		return nil
	}
	stats := pool[c.rng.IntN(len(pool))]
	return c.addEnemy(stats, c.spawnPoint(), c.pickTarget())
}

func (c *Controller) addEnemy(stats entity.EnemyStats, at, target entity.Vec2) *entity.Enemy {
	e := entity.NewEnemy(stats, at, target)
	c.enemies = append(c.enemies, e)
	c.engine.Add(e)
	return e
}

// spawnPoint 随机一条边，位于画布外 spawn_offset 处。
func (c *Controller) spawnPoint() entity.Vec2 {
	w, h := c.engine.Width(), c.engine.Height()
	off := c.rules.SpawnOffset
	switch c.rng.IntN(4) {
	case 0:
		return entity.Vec2{c.rng.Float64() * w, -off}
	case 1:
		return entity.Vec2{w + off, c.rng.Float64() * h}
	case 2:
		return entity.Vec2{c.rng.Float64() * w, h + off}
	default:
		return entity.Vec2{-off, c.rng.Float64() * h}
	}
}

// pickTarget 出生时定死目标：一定概率选随机建筑中心，否则选玩家当前位置。
func (c *Controller) pickTarget() entity.Vec2 {
	buildings := c.engine.Buildings()
	if len(buildings) > 0 && c.rng.Float64() < c.rules.BuildingTargetChance {
		return buildings[c.rng.IntN(len(buildings))].Center()
	}
	return c.player.Center()
}

func (c *Controller) scheduleGuard(post *entity.Building) {
	c.pending = append(c.pending, scheduled{
		at:   c.simTime + c.rules.GuardSpawnDelay,
		kind: spawnGuard,
		post: post.ID(),
	})
}

// spawnGuard 哨所还在才出守卫，站在哨所下方。
func (c *Controller) spawnGuard(postID entity.ID) *entity.Guard {
	var post *entity.Building
	for _, b := range c.engine.Buildings() {
		if b.ID() == postID {
			post = b
			break
		}
	}
	if post == nil {
		return nil
	}
	stats := c.catalog.GuardStats()
	r := post.Bounds()
	at := entity.Vec2{post.Center().X(), r.Y + r.H + stats.Height/2 + 2}
	g := entity.NewGuard(stats, at, postID)
	c.guards = append(c.guards, g)
	c.engine.Add(g)
	c.notify(NoticeGuard, "A guard has joined the defense!")
	return g
}
