package battle

// Element is a creature's or ability's elemental affinity. The effectiveness
// of one element against another comes from the catalog's element matrix.
type Element string

const (
	Neutral  Element = "neutral"
	Fire     Element = "fire"
	Water    Element = "water"
	Earth    Element = "earth"
	Wind     Element = "wind"
	Electric Element = "electric"
	Ice      Element = "ice"
	Nature   Element = "nature"
	Metal    Element = "metal"
	Shadow   Element = "shadow"
	Spirit   Element = "spirit"
)

// Elements lists every known element in a fixed order.
var Elements = []Element{
	Neutral, Fire, Water, Earth, Wind, Electric, Ice, Nature, Metal, Shadow, Spirit,
}

// IsValid reports whether e is one of the known elements.
func (e Element) IsValid() bool {
	for _, known := range Elements {
		if e == known {
			return true
		}
	}
	return false
}

// Stat identifies one of a creature's five modifiable battle stats. Hit
// points are tracked directly on the creature and have no stage.
type Stat string

const (
	StatAttack    Stat = "attack"
	StatDefense   Stat = "defense"
	StatSpAttack  Stat = "sp_attack"
	StatSpDefense Stat = "sp_defense"
	StatSpeed     Stat = "speed"
)

// Stats lists every stageable stat in a fixed order.
var Stats = []Stat{StatAttack, StatDefense, StatSpAttack, StatSpDefense, StatSpeed}

// Category splits abilities into physical, special and status-only kinds.
// Physical abilities use attack vs. defense, special abilities use
// sp_attack vs. sp_defense, status abilities deal no direct damage.
type Category string

const (
	CategoryPhysical Category = "physical"
	CategorySpecial  Category = "special"
	CategoryStatus   Category = "status"
)

// Condition is a primary volatile status condition. A creature carries at
// most one at a time; applying a second while one is active is refused.
type Condition string

const (
	ConditionNone      Condition = ""
	ConditionBurn      Condition = "burn"
	ConditionFreeze    Condition = "freeze"
	ConditionParalysis Condition = "paralysis"
	ConditionPoison    Condition = "poison"
	ConditionSleep     Condition = "sleep"
	ConditionConfusion Condition = "confusion"
)
