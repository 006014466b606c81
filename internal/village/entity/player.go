package entity

import (
	"math"

	"VillageDefense/internal/village/render"
)

type Direction int

const (
	FacingDown Direction = iota
	FacingUp
	FacingLeft
	FacingRight
)

// AttackAnimation 攻击动画持续时间（秒）。
const AttackAnimation = 0.2

type PlayerConfig struct {
	Center    Vec2
	Width     float64
	Height    float64
	Speed     float64
	MaxHealth int
	Coins     int
	Weapons   []*Weapon
	Templates []BuildingTemplate
}

type Player struct {
	body
	health     int
	maxHealth  int
	coins      int
	speed      float64
	weapons    []*Weapon
	current    int
	templates  []BuildingTemplate
	selected   int
	facing     Direction
	attackAnim float64
}

func NewPlayer(cfg PlayerConfig) *Player {
	weapons := cfg.Weapons
	if len(weapons) == 0 {
		weapons = []*Weapon{NewWeapon("Fists", 5, 40, 0.5)}
	}
	maxHealth := max(1, cfg.MaxHealth)
	p := &Player{
		body:      body{id: PlayerID, kind: KindPlayer, rect: RectAround(cfg.Center, cfg.Width, cfg.Height)},
		health:    maxHealth,
		maxHealth: maxHealth,
		coins:     max(0, cfg.Coins),
		speed:     cfg.Speed,
		weapons:   weapons,
		templates: append([]BuildingTemplate(nil), cfg.Templates...),
	}
	return p
}

func (p *Player) Health() int {
	return p.health
}

func (p *Player) MaxHealth() int {
	return p.maxHealth
}

// HealthPercent 0~100。
func (p *Player) HealthPercent() int {
	return p.health * 100 / p.maxHealth
}

func (p *Player) Dead() bool {
	return p.health <= 0
}

func (p *Player) Coins() int {
	return p.coins
}

func (p *Player) Facing() Direction {
	return p.facing
}

func (p *Player) CurrentWeapon() *Weapon {
	return p.weapons[p.current]
}

func (p *Player) WeaponCount() int {
	return len(p.weapons)
}

// SwitchWeapon 切到下一把，末尾回到第一把。
func (p *Player) SwitchWeapon() *Weapon {
	p.current = (p.current + 1) % len(p.weapons)
	return p.weapons[p.current]
}

// Attack 当前武器冷却结束才会出手，返回是否真的出手。
func (p *Player) Attack() bool {
	if !p.CurrentWeapon().trigger() {
		return false
	}
	p.attackAnim = AttackAnimation
	return true
}

func (p *Player) Attacking() bool {
	return p.attackAnim > 0
}

func (p *Player) Heal(amount int) {
	if amount <= 0 {
		return
	}
	p.health = min(p.maxHealth, p.health+amount)
}

// TakeDamage 返回是否死亡。
func (p *Player) TakeDamage(amount int) bool {
	if amount > 0 {
		p.health = max(0, p.health-amount)
	}
	return p.Dead()
}

func (p *Player) AddCoins(amount int) {
	if amount > 0 {
		p.coins += amount
	}
}

// UseCoins 余额不足时返回 false，不扣款。
func (p *Player) UseCoins(amount int) bool {
	if amount < 0 || p.coins < amount {
		return false
	}
	p.coins -= amount
	return true
}

func (p *Player) Templates() []BuildingTemplate {
	return append([]BuildingTemplate(nil), p.templates...)
}

func (p *Player) SelectedIndex() int {
	return p.selected
}

func (p *Player) SelectedTemplate() (BuildingTemplate, bool) {
	if len(p.templates) == 0 {
		return BuildingTemplate{}, false
	}
	return p.templates[p.selected], true
}

// SelectTemplate 越界返回 false，不改变当前选择。
func (p *Player) SelectTemplate(index int) bool {
	if index < 0 || index >= len(p.templates) {
		return false
	}
	p.selected = index
	return true
}

func (p *Player) NextTemplate() {
	if n := len(p.templates); n > 0 {
		p.selected = (p.selected + 1) % n
	}
}

func (p *Player) PrevTemplate() {
	if n := len(p.templates); n > 0 {
		p.selected = (p.selected - 1 + n) % n
	}
}

// Move 按方向向量移动（斜向归一化），并限制在画布内。
func (p *Player) Move(dir Vec2, delta, width, height float64) {
	if (dir.X() == 0 && dir.Y() == 0) || delta <= 0 {
		return
	}
	switch {
	case math.Abs(dir.X()) >= math.Abs(dir.Y()) && dir.X() < 0:
		p.facing = FacingLeft
	case math.Abs(dir.X()) >= math.Abs(dir.Y()):
		p.facing = FacingRight
	case dir.Y() < 0:
		p.facing = FacingUp
	default:
		p.facing = FacingDown
	}
	step := dir.Normalize().Mul(p.speed * delta)
	p.rect.X += step.X()
	p.rect.Y += step.Y()
	p.rect = ClampInto(p.rect, width, height)
}

// Update 推进武器冷却与攻击动画。
func (p *Player) Update(delta float64) {
	for _, w := range p.weapons {
		w.tick(delta)
	}
	if p.attackAnim > 0 {
		p.attackAnim = max(0, p.attackAnim-delta)
	}
}

func (p *Player) Render(c render.Canvas) {
	r := p.rect
	c.FillRect(r.X, r.Y, r.W, r.H, "#3498db")
	if p.Attacking() {
		center := r.Center()
		c.FillCircle(center.X(), center.Y(), p.CurrentWeapon().Range(), "rgba(255,255,255,0.25)")
	}
	render.HealthBar(c, r.X, r.Y, r.W, p.health, p.maxHealth)
}
