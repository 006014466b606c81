package gameconfig

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"VillageDefense/internal/shared/config"
	"VillageDefense/internal/village/entity"
)

//go:embed catalog.json
var defaultCatalog []byte

type PlayerDef struct {
	MaxHealth int     `mapstructure:"max_health"`
	Coins     int     `mapstructure:"coins"`
	Speed     float64 `mapstructure:"speed"`
	Width     float64 `mapstructure:"width"`
	Height    float64 `mapstructure:"height"`
	X         float64 `mapstructure:"x"`
	Y         float64 `mapstructure:"y"`
}

type WeaponDef struct {
	Name     string  `mapstructure:"name"`
	Damage   int     `mapstructure:"damage"`
	Range    float64 `mapstructure:"range"`
	Cooldown float64 `mapstructure:"cooldown"`
}

type BuildingDef struct {
	Name           string  `mapstructure:"name"`
	Category       string  `mapstructure:"category"`
	Cost           int     `mapstructure:"cost"`
	Health         int     `mapstructure:"health"`
	Defense        int     `mapstructure:"defense"`
	Description    string  `mapstructure:"description"`
	Width          float64 `mapstructure:"width"`
	Height         float64 `mapstructure:"height"`
	ActionInterval float64 `mapstructure:"action_interval"`
	Range          float64 `mapstructure:"range"`
	Cooldown       float64 `mapstructure:"cooldown"`
	VillageDamage  int     `mapstructure:"village_damage"`
	Purchasable    bool    `mapstructure:"purchasable"`
}

type EnemyDef struct {
	Kind          string  `mapstructure:"kind"`
	Speed         float64 `mapstructure:"speed"`
	MaxHealth     int     `mapstructure:"max_health"`
	Damage        int     `mapstructure:"damage"`
	Reward        int     `mapstructure:"reward"`
	Flying        bool    `mapstructure:"flying"`
	AnimationRate float64 `mapstructure:"animation_rate"`
	Width         float64 `mapstructure:"width"`
	Height        float64 `mapstructure:"height"`
	UnlockWave    int     `mapstructure:"unlock_wave"`
	Color         string  `mapstructure:"color"`
}

type GuardDef struct {
	MaxHealth      int     `mapstructure:"max_health"`
	Damage         int     `mapstructure:"damage"`
	DetectionRange float64 `mapstructure:"detection_range"`
	AttackRange    float64 `mapstructure:"attack_range"`
	Speed          float64 `mapstructure:"speed"`
	Cooldown       float64 `mapstructure:"cooldown"`
	Width          float64 `mapstructure:"width"`
	Height         float64 `mapstructure:"height"`
}

type Point struct {
	X float64 `mapstructure:"x"`
	Y float64 `mapstructure:"y"`
}

type VillageDef struct {
	Health int     `mapstructure:"health"`
	Center Point   `mapstructure:"center"`
	Houses []Point `mapstructure:"houses"`
}

type Rules struct {
	HealCost             int     `mapstructure:"heal_cost"`
	HealAmount           int     `mapstructure:"heal_amount"`
	ResourceReward       int     `mapstructure:"resource_reward"`
	EnemyAttackCooldown  float64 `mapstructure:"enemy_attack_cooldown"`
	GuardSpawnDelay      float64 `mapstructure:"guard_spawn_delay"`
	BuildingTargetChance float64 `mapstructure:"building_target_chance"`
	SpawnOffset          float64 `mapstructure:"spawn_offset"`
	BaseEnemies          int     `mapstructure:"base_enemies"`
}

// Catalog 静态配置表：武器、建筑模板、敌人、守卫、村庄布局、规则数值、按键。
type Catalog struct {
	Player    PlayerDef           `mapstructure:"player"`
	Weapons   []WeaponDef         `mapstructure:"weapons"`
	Buildings []BuildingDef       `mapstructure:"buildings"`
	Enemies   []EnemyDef          `mapstructure:"enemies"`
	Guard     GuardDef            `mapstructure:"guard"`
	Village   VillageDef          `mapstructure:"village"`
	Rules     Rules               `mapstructure:"rules"`
	Keys      map[string][]string `mapstructure:"keys"`
}

// Load path 为空时使用内嵌配置表。
func Load(path string) (*Catalog, error) {
	c := &Catalog{}
	var err error
	if path == "" {
		err = config.LoadReader(bytes.NewReader(defaultCatalog), "json", c)
	} else {
		err = config.LoadFile(path, c)
	}
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// MustDefault 内嵌配置表，测试和工具使用。
func MustDefault() *Catalog {
	c, err := Load("")
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Validate() error {
	if len(c.Weapons) == 0 {
		return errors.New("catalog: no weapons")
	}
	if len(c.Enemies) == 0 {
		return errors.New("catalog: no enemies")
	}
	if len(c.Templates()) == 0 {
		return errors.New("catalog: no purchasable buildings")
	}
	if _, ok := c.Template(entity.CategoryVillageCenter); !ok {
		return errors.New("catalog: village_center template missing")
	}
	if c.Village.Health <= 0 {
		return errors.New("catalog: village health must be positive")
	}
	return nil
}

// Weapons 每局新建一份，冷却状态不共享。
func (c *Catalog) NewWeapons() []*entity.Weapon {
	out := make([]*entity.Weapon, 0, len(c.Weapons))
	for _, w := range c.Weapons {
		out = append(out, entity.NewWeapon(w.Name, w.Damage, w.Range, w.Cooldown))
	}
	return out
}

// Templates 可购买的建筑模板，按配置顺序。
func (c *Catalog) Templates() []entity.BuildingTemplate {
	out := make([]entity.BuildingTemplate, 0, len(c.Buildings))
	for _, b := range c.Buildings {
		if b.Purchasable {
			out = append(out, b.template())
		}
	}
	return out
}

// Template 按类别查模板，含不可购买的（村庄中心）。
func (c *Catalog) Template(category entity.Category) (entity.BuildingTemplate, bool) {
	for _, b := range c.Buildings {
		if entity.Category(b.Category) == category {
			return b.template(), true
		}
	}
	return entity.BuildingTemplate{}, false
}

func (b BuildingDef) template() entity.BuildingTemplate {
	return entity.BuildingTemplate{
		Name:           b.Name,
		Category:       entity.Category(b.Category),
		Cost:           b.Cost,
		Health:         b.Health,
		Defense:        b.Defense,
		Description:    b.Description,
		Width:          b.Width,
		Height:         b.Height,
		ActionInterval: b.ActionInterval,
		Range:          b.Range,
		Cooldown:       b.Cooldown,
		VillageDamage:  b.VillageDamage,
	}
}

func (e EnemyDef) stats() entity.EnemyStats {
	return entity.EnemyStats{
		Kind:          entity.EnemyKind(e.Kind),
		Speed:         e.Speed,
		MaxHealth:     e.MaxHealth,
		Damage:        e.Damage,
		Reward:        e.Reward,
		Flying:        e.Flying,
		AnimationRate: e.AnimationRate,
		Width:         e.Width,
		Height:        e.Height,
		UnlockWave:    e.UnlockWave,
		Color:         e.Color,
	}
}

// EnemyPool 第 wave 波可出现的敌人，解锁后不会移除。
func (c *Catalog) EnemyPool(wave int) []entity.EnemyStats {
	out := make([]entity.EnemyStats, 0, len(c.Enemies))
	for _, e := range c.Enemies {
		if e.UnlockWave <= wave {
			out = append(out, e.stats())
		}
	}
	return out
}

func (c *Catalog) GuardStats() entity.GuardStats {
	g := c.Guard
	return entity.GuardStats{
		MaxHealth:      g.MaxHealth,
		Damage:         g.Damage,
		DetectionRange: g.DetectionRange,
		AttackRange:    g.AttackRange,
		Speed:          g.Speed,
		Cooldown:       g.Cooldown,
		Width:          g.Width,
		Height:         g.Height,
	}
}

// KeyActions 按键 -> 动作，按键统一小写。
func (c *Catalog) KeyActions() map[string]string {
	out := make(map[string]string)
	for action, keys := range c.Keys {
		for _, k := range keys {
			out[strings.ToLower(k)] = action
		}
	}
	return out
}
