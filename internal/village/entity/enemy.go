package entity

import "VillageDefense/internal/village/render"

type EnemyKind string

// ArriveDistance 距离目标点不超过该值即停下。
const ArriveDistance = 5.0

// EnemyStats 每种敌人的固定数值。
type EnemyStats struct {
	Kind          EnemyKind
	Speed         float64
	MaxHealth     int
	Damage        int
	Reward        int
	Flying        bool
	AnimationRate float64 // 每秒帧数
	Width         float64
	Height        float64
	UnlockWave    int
	Color         string
}

// Enemy 目标点在生成时确定，之后不再改变。
type Enemy struct {
	body
	stats       EnemyStats
	health      int
	attackTimer float64
	target      Vec2
	frame       int
	animTimer   float64
}

func NewEnemy(stats EnemyStats, center, target Vec2) *Enemy {
	return &Enemy{
		body:   body{id: NextID(), kind: KindEnemy, rect: RectAround(center, stats.Width, stats.Height)},
		stats:  stats,
		health: max(1, stats.MaxHealth),
		target: target,
	}
}

func (e *Enemy) EnemyKind() EnemyKind {
	return e.stats.Kind
}

func (e *Enemy) Stats() EnemyStats {
	return e.stats
}

func (e *Enemy) Health() int {
	return e.health
}

func (e *Enemy) Damage() int {
	return e.stats.Damage
}

func (e *Enemy) Reward() int {
	return e.stats.Reward
}

func (e *Enemy) Flying() bool {
	return e.stats.Flying
}

func (e *Enemy) Target() Vec2 {
	return e.target
}

func (e *Enemy) Frame() int {
	return e.frame
}

func (e *Enemy) Dead() bool {
	return e.health <= 0
}

// TakeDamage 血量下限为 0，返回是否死亡。
func (e *Enemy) TakeDamage(amount int) bool {
	if amount > 0 {
		e.health = max(0, e.health-amount)
	}
	return e.Dead()
}

func (e *Enemy) CanAttack() bool {
	return e.attackTimer <= 0
}

func (e *Enemy) ResetAttack(cooldown float64) {
	e.attackTimer = cooldown
}

// Step 模拟步：向目标点直线移动并推进攻击冷却，返回是否已到达。
func (e *Enemy) Step(delta float64) bool {
	if e.attackTimer > 0 {
		e.attackTimer = max(0, e.attackTimer-delta)
	}
	next, arrived := MoveToward(e.Center(), e.target, e.stats.Speed*delta, ArriveDistance)
	e.moveCenterTo(next)
	return arrived
}

// Update 帧循环里推进动画帧。
func (e *Enemy) Update(delta float64) {
	if e.stats.AnimationRate <= 0 {
		return
	}
	e.animTimer += delta
	period := 1 / e.stats.AnimationRate
	for e.animTimer >= period {
		e.animTimer -= period
		e.frame = (e.frame + 1) % 4
	}
}

func (e *Enemy) Render(c render.Canvas) {
	r := e.rect
	color := render.Color(e.stats.Color)
	if color == "" {
		color = "#c0392b"
	}
	if e.stats.Flying {
		// 扇翅：奇数帧上移两像素
		offset := float64(e.frame%2) * 2
		c.FillCircle(r.X+r.W/2, r.Y+r.H/2-offset, r.W/2, color)
	} else {
		c.FillRect(r.X, r.Y, r.W, r.H, color)
	}
	render.HealthBar(c, r.X, r.Y, r.W, e.health, e.stats.MaxHealth)
}
