package entity

import "testing"

func goblin() EnemyStats {
	return EnemyStats{Kind: "goblin", Speed: 60, MaxHealth: 20, Damage: 5, Reward: 5, Width: 24, Height: 24, AnimationRate: 4}
}

func TestEnemy_TakeDamage_血量夹到0并报告死亡(t *testing.T) {
	e := NewEnemy(goblin(), Vec2{0, 0}, Vec2{100, 0})
	if !e.TakeDamage(25) {
		t.Fatalf("20 血受 25 伤害应死亡")
	}
	if e.Health() != 0 {
		t.Fatalf("血量应夹到 0, got=%d", e.Health())
	}
}

func TestEnemy_Step_直线靠近固定目标(t *testing.T) {
	e := NewEnemy(goblin(), Vec2{0, 0}, Vec2{100, 0})
	for i := 0; i < 200; i++ {
		e.Step(1.0 / 60)
	}
	if d := Distance(e.Center(), e.Target()); d > ArriveDistance {
		t.Fatalf("应停在目标 5 以内, d=%v", d)
	}
	if e.Target() != (Vec2{100, 0}) {
		t.Fatalf("目标点不应改变")
	}
}

func TestEnemy_攻击冷却(t *testing.T) {
	e := NewEnemy(goblin(), Vec2{0, 0}, Vec2{0, 0})
	if !e.CanAttack() {
		t.Fatalf("初始可攻击")
	}
	e.ResetAttack(1)
	e.Step(0.5)
	if e.CanAttack() {
		t.Fatalf("冷却未结束")
	}
	e.Step(0.5)
	if !e.CanAttack() {
		t.Fatalf("1s 后应可攻击")
	}
}

func TestEnemy_动画帧(t *testing.T) {
	e := NewEnemy(goblin(), Vec2{0, 0}, Vec2{0, 0})
	e.Update(0.6)
	if e.Frame() != 2 {
		t.Fatalf("4fps 下 0.6s 应推进 2 帧, got=%d", e.Frame())
	}
}
