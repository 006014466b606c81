package entity

type Category string

const (
	CategoryVillageCenter Category = "village_center"
	CategoryHouse         Category = "house"
	CategoryWall          Category = "wall"
	CategoryTower         Category = "tower"
	CategoryFarm          Category = "farm"
	CategoryGuardPost     Category = "guard_post"
)

// BuildingTemplate 可购买的建筑条目，创建后不可变。
type BuildingTemplate struct {
	Name           string
	Category       Category
	Cost           int
	Health         int
	Defense        int
	Description    string
	Width          float64
	Height         float64
	ActionInterval float64 // >0 时为资源建筑
	Range          float64 // 箭塔射程
	Cooldown       float64 // 箭塔射击间隔
	VillageDamage  int     // 被摧毁时扣村庄总血量
}

func (t BuildingTemplate) IsResource() bool {
	return t.ActionInterval > 0
}

func (t BuildingTemplate) Shoots() bool {
	return t.Category == CategoryTower && t.Range > 0 && t.Defense > 0
}

// Footprint 以 center 为中心的占地矩形。
func (t BuildingTemplate) Footprint(center Vec2) Rect {
	return RectAround(center, t.Width, t.Height)
}

type Building struct {
	body
	template    BuildingTemplate
	health      int
	lastAction  float64
	attackTimer float64
}

func NewBuilding(t BuildingTemplate, center Vec2) *Building {
	return &Building{
		body:     body{id: NextID(), kind: KindBuilding, rect: t.Footprint(center)},
		template: t,
		health:   max(1, t.Health),
	}
}

func (b *Building) Name() string {
	return b.template.Name
}

func (b *Building) Category() Category {
	return b.template.Category
}

func (b *Building) Template() BuildingTemplate {
	return b.template
}

func (b *Building) Health() int {
	return b.health
}

func (b *Building) MaxHealth() int {
	return max(1, b.template.Health)
}

func (b *Building) Defense() int {
	return b.template.Defense
}

func (b *Building) Destroyed() bool {
	return b.health <= 0
}

// TakeDamage 返回是否被摧毁。
func (b *Building) TakeDamage(amount int) bool {
	if amount > 0 {
		b.health = max(0, b.health-amount)
	}
	return b.Destroyed()
}

func (b *Building) LastAction() float64 {
	return b.lastAction
}

// AdvanceResource 资源计时到点时归零并返回 true。
func (b *Building) AdvanceResource(delta float64) bool {
	if !b.template.IsResource() || delta <= 0 {
		return false
	}
	b.lastAction += delta
	if b.lastAction >= b.template.ActionInterval {
		b.lastAction = 0
		return true
	}
	return false
}

// ReadyToShoot 推进射击冷却。
func (b *Building) ReadyToShoot(delta float64) bool {
	if !b.template.Shoots() {
		return false
	}
	if b.attackTimer > 0 {
		b.attackTimer = max(0, b.attackTimer-delta)
	}
	return b.attackTimer <= 0
}

func (b *Building) Fired() {
	b.attackTimer = b.template.Cooldown
}
