package entity

import "VillageDefense/internal/village/render"

type GuardStats struct {
	MaxHealth      int
	Damage         int
	DetectionRange float64
	AttackRange    float64
	Speed          float64
	Cooldown       float64
	Width          float64
	Height         float64
}

// Guard 由哨所生成，每个模拟步重新选择最近的敌人。
type Guard struct {
	body
	stats       GuardStats
	health      int
	attackTimer float64
	target      *Enemy
	postID      ID
}

func NewGuard(stats GuardStats, center Vec2, postID ID) *Guard {
	return &Guard{
		body:   body{id: NextID(), kind: KindGuard, rect: RectAround(center, stats.Width, stats.Height)},
		stats:  stats,
		health: max(1, stats.MaxHealth),
		postID: postID,
	}
}

func (g *Guard) Health() int {
	return g.health
}

func (g *Guard) Damage() int {
	return g.stats.Damage
}

func (g *Guard) PostID() ID {
	return g.postID
}

func (g *Guard) Target() *Enemy {
	return g.target
}

func (g *Guard) Dead() bool {
	return g.health <= 0
}

func (g *Guard) TakeDamage(amount int) bool {
	if amount > 0 {
		g.health = max(0, g.health-amount)
	}
	return g.Dead()
}

// Acquire 选侦测范围内最近的存活敌人，距离相同取先出现的。
func (g *Guard) Acquire(enemies []*Enemy) *Enemy {
	g.target = nil
	best := g.stats.DetectionRange
	center := g.Center()
	for _, e := range enemies {
		if e.Dead() {
			continue
		}
		d := Distance(center, e.Center())
		if d > g.stats.DetectionRange {
			continue
		}
		if g.target == nil || d < best {
			g.target = e
			best = d
		}
	}
	return g.target
}

// Step 向目标靠近，进入攻击距离且冷却结束时出手，返回被攻击的敌人（没有出手返回 nil）。
func (g *Guard) Step(delta float64) *Enemy {
	if g.attackTimer > 0 {
		g.attackTimer = max(0, g.attackTimer-delta)
	}
	if g.target == nil {
		return nil
	}
	aim := g.target.Center()
	next, inRange := MoveToward(g.Center(), aim, g.stats.Speed*delta, g.stats.AttackRange)
	g.moveCenterTo(next)
	if !inRange && Distance(next, aim) > g.stats.AttackRange {
		return nil
	}
	if g.attackTimer > 0 {
		return nil
	}
	g.attackTimer = g.stats.Cooldown
	return g.target
}

func (g *Guard) Render(c render.Canvas) {
	r := g.rect
	c.FillRect(r.X, r.Y, r.W, r.H, "#f1c40f")
	render.HealthBar(c, r.X, r.Y, r.W, g.health, g.stats.MaxHealth)
}
