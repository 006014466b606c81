package entity

// Weapon 数值不可变，lastUsed 为冷却倒计时，归零后才能再次攻击。
type Weapon struct {
	name     string
	damage   int
	rng      float64
	cooldown float64
	lastUsed float64
}

func NewWeapon(name string, damage int, rng, cooldown float64) *Weapon {
	return &Weapon{name: name, damage: damage, rng: rng, cooldown: max(0, cooldown)}
}

func (w *Weapon) Name() string {
	return w.name
}

func (w *Weapon) Damage() int {
	return w.damage
}

func (w *Weapon) Range() float64 {
	return w.rng
}

func (w *Weapon) Cooldown() float64 {
	return w.cooldown
}

func (w *Weapon) LastUsed() float64 {
	return w.lastUsed
}

func (w *Weapon) Ready() bool {
	return w.lastUsed <= 0
}

func (w *Weapon) trigger() bool {
	if !w.Ready() {
		return false
	}
	w.lastUsed = w.cooldown
	return true
}

func (w *Weapon) tick(delta float64) {
	if w.lastUsed <= 0 || delta <= 0 {
		return
	}
	w.lastUsed = max(0, w.lastUsed-delta)
}
