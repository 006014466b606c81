package controller

import (
	"slices"

	"go.uber.org/zap"

	"VillageDefense/internal/village/entity"
)

// Attack 玩家出手，冷却中返回 false；射程内所有敌人吃当前武器伤害。
func (c *Controller) Attack() bool {
	if !c.active() {
		return false
	}
	if !c.player.Attack() {
		return false
	}
	w := c.player.CurrentWeapon()
	at := c.player.Center()
	for _, e := range c.Enemies() {
		if entity.Distance(at, e.Center()) > w.Range() {
			continue
		}
		if e.TakeDamage(w.Damage()) {
			c.killEnemy(e)
		}
	}
	return true
}

func (c *Controller) stepEnemies(delta float64) {
	for _, e := range c.enemies {
		e.Step(delta)
	}
}

func (c *Controller) stepGuards(delta float64) {
	for _, g := range c.Guards() {
		g.Acquire(c.enemies)
		hit := g.Step(delta)
		if hit == nil {
			continue
		}
		if hit.TakeDamage(g.Damage()) {
			c.killEnemy(hit)
		}
	}
}

// stepTowers 箭塔打射程内最近的敌人，伤害取模板防御值。
func (c *Controller) stepTowers(delta float64) {
	for _, b := range c.engine.Buildings() {
		if !b.ReadyToShoot(delta) {
			continue
		}
		target := c.nearestEnemy(b.Center(), b.Template().Range)
		if target == nil {
			continue
		}
		b.Fired()
		if target.TakeDamage(b.Defense()) {
			c.killEnemy(target)
		}
	}
}

func (c *Controller) nearestEnemy(at entity.Vec2, within float64) *entity.Enemy {
	var best *entity.Enemy
	bestDist := within
	for _, e := range c.enemies {
		d := entity.Distance(at, e.Center())
		if d > within {
			continue
		}
		if best == nil || d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}

// resolveCollisions 敌人与玩家、建筑、守卫的 AABB 碰撞。每个敌人每次冷却只打一个目标。
func (c *Controller) resolveCollisions() {
	cooldown := c.rules.EnemyAttackCooldown
	for _, e := range c.Enemies() {
		if c.state == StateGameOver {
			return
		}
		if !e.CanAttack() {
			continue
		}
		if entity.Overlaps(e.Bounds(), c.player.Bounds()) {
			e.ResetAttack(cooldown)
			if c.player.TakeDamage(e.Damage()) {
				c.endGame(MsgPlayerDied)
				return
			}
			continue
		}
		if c.hitBuilding(e, cooldown) {
			continue
		}
		c.hitGuard(e, cooldown)
	}
}

func (c *Controller) hitBuilding(e *entity.Enemy, cooldown float64) bool {
	for _, b := range c.engine.Buildings() {
		if !entity.Overlaps(e.Bounds(), b.Bounds()) {
			continue
		}
		e.ResetAttack(cooldown)
		if b.TakeDamage(e.Damage()) {
			c.destroyBuilding(b)
		}
		return true
	}
	return false
}

func (c *Controller) hitGuard(e *entity.Enemy, cooldown float64) bool {
	for _, g := range c.guards {
		if !entity.Overlaps(e.Bounds(), g.Bounds()) {
			continue
		}
		e.ResetAttack(cooldown)
		if g.TakeDamage(e.Damage()) {
			c.removeGuard(g)
			c.stats.GuardsLost++
			c.notify(NoticeDestroyed, "A guard has fallen!")
		}
		return true
	}
	return false
}

// destroyBuilding 移除建筑并扣村庄总血量；村庄中心被毁直接结束。
func (c *Controller) destroyBuilding(b *entity.Building) {
	if !c.engine.RemoveBuilding(b.ID()) {
		return
	}
	c.stats.BuildingsLost++
	c.villageHealth = max(0, c.villageHealth-b.Template().VillageDamage)
	c.log.Debug("building destroyed",
		zap.String("name", b.Name()),
		zap.Int("village_health", c.villageHealth),
	)
	if b.Category() == entity.CategoryVillageCenter {
		c.endGame(MsgCenterDestroyed)
		return
	}
	c.notifyf(NoticeDestroyed, "%s destroyed!", b.Name())
}

// killEnemy 从活跃列表和注册表同时移除，并给玩家发赏金。
func (c *Controller) killEnemy(e *entity.Enemy) {
	i := slices.Index(c.enemies, e)
	if i < 0 {
		return
	}
	c.enemies = slices.Delete(c.enemies, i, i+1)
	c.engine.Remove(e.ID())
	reward := e.Reward()
	c.player.AddCoins(reward)
	c.stats.Kills++
	c.stats.CoinsEarned += reward
	c.notifyf(NoticeReward, "Enemy defeated! +%d coins", reward)
}

func (c *Controller) removeGuard(g *entity.Guard) {
	i := slices.Index(c.guards, g)
	if i < 0 {
		return
	}
	c.guards = slices.Delete(c.guards, i, i+1)
	c.engine.Remove(g.ID())
}
