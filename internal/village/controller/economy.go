package controller

import (
	"VillageDefense/internal/village/entity"
)

// PlaceBuilding 以 (x, y) 为中心放下当前选中的模板。
// 先查重叠再查金币：重叠时不论钱够不够都拒绝，且不扣钱。
func (c *Controller) PlaceBuilding(x, y float64) error {
	if err := c.requireActive(); err != nil {
		return err
	}
	t, ok := c.player.SelectedTemplate()
	if !ok {
		return ErrInvalidInput.WithData("reason", "no template selected")
	}
	center := entity.Vec2{x, y}
	if _, hit := c.engine.Overlapping(t.Footprint(center)); hit {
		c.notify(NoticeRejected, "Cannot build here - space occupied!")
		return ErrPlacementOccupied.WithData("x", x).WithData("y", y)
	}
	if !c.player.UseCoins(t.Cost) {
		c.notifyf(NoticeRejected, "Not enough coins! Need %d coins for %s", t.Cost, t.Name)
		return ErrInsufficientCoins.WithData("need", t.Cost).WithData("have", c.player.Coins())
	}
	b := entity.NewBuilding(t, center)
	c.engine.AddBuilding(b)
	c.stats.BuildingsBuilt++
	c.notifyf(NoticeBuild, "Built %s!", t.Name)
	if t.Category == entity.CategoryGuardPost {
		c.scheduleGuard(b)
	}
	return nil
}

// Heal 花 heal_cost 回 heal_amount 血，钱不够拒绝。
func (c *Controller) Heal() error {
	if err := c.requireActive(); err != nil {
		return err
	}
	cost := c.rules.HealCost
	if !c.player.UseCoins(cost) {
		c.notifyf(NoticeRejected, "Not enough coins to heal! Need %d coins", cost)
		return ErrInsufficientCoins.WithData("need", cost).WithData("have", c.player.Coins())
	}
	c.player.Heal(c.rules.HealAmount)
	c.notifyf(NoticeHeal, "Healed! +%d health", c.rules.HealAmount)
	return nil
}
