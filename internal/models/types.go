package models

// ========================= Domain Models =========================
// Minimal shapes for fight resolution. API requests are mapped into this.

// Stance shifts derived probabilities between offense and defense.
type Stance string

const (
	StanceDefensive Stance = "defensive"
	StanceBalanced  Stance = "balanced"
	StanceOffensive Stance = "offensive"
)

// Valid reports whether s is one of the three known stances.
func (s Stance) Valid() bool {
	return s == StanceDefensive || s == StanceBalanced || s == StanceOffensive
}

// Profile fully specifies one fighter for a single fight. Progression,
// specialization unlocks and equipment legality are resolved upstream;
// the engine only validates ranges and table ids.
type Profile struct {
	Strength     int `json:"strength"`
	Constitution int `json:"constitution"`
	Size         int `json:"size"`
	Agility      int `json:"agility"`
	Stamina      int `json:"stamina"`
	Luck         int `json:"luck"`

	WeaponID string `json:"weapon"`
	ArmorID  string `json:"armor"`
	Stance   Stance `json:"stance"`
	Level    int    `json:"level"`

	// Optional specializations; empty string means none.
	WeaponSpec string `json:"weapon_spec,omitempty"`
	ArmorSpec  string `json:"armor_spec,omitempty"`
}

// Statblock holds the derived capabilities for one fighter. All chance
// fields are percentages in [0,100]. Immutable once derived; the simulator
// keeps its own mutable health/stamina state.
type Statblock struct {
	MaxHealth  int `json:"max_health"`
	MaxStamina int `json:"max_stamina"`

	HitChance     int `json:"hit_chance"`
	CritChance    int `json:"crit_chance"`
	BlockChance   int `json:"block_chance"`
	ParryChance   int `json:"parry_chance"`
	DodgeChance   int `json:"dodge_chance"`
	CounterChance int `json:"counter_chance"`
	RiposteChance int `json:"riposte_chance"`

	DamageMin int `json:"damage_min"`
	DamageMax int `json:"damage_max"`

	Initiative   int `json:"initiative"`
	ArmorDefense int `json:"armor_defense"`
	StaminaCost  int `json:"stamina_cost"`

	// Carried through for deterministic tiebreaks.
	Luck int `json:"luck"`
}

// AttackCode is the attacker-side result of one round.
type AttackCode uint8

const (
	AttackMiss AttackCode = iota
	AttackLands
	AttackCrit
)

func (a AttackCode) String() string {
	switch a {
	case AttackMiss:
		return "miss"
	case AttackLands:
		return "hit"
	case AttackCrit:
		return "critical"
	}
	return "unknown"
}

// DefenseCode is the defender-side result of one round. HitTaken doubles as
// the no-op code for rounds where the attack missed outright.
type DefenseCode uint8

const (
	DefenseHitTaken DefenseCode = iota
	DefenseBlocked
	DefenseParried
	DefenseDodged
	DefenseCountered
	DefenseCritCountered
	DefenseRiposted
	DefenseCritRiposted
)

func (d DefenseCode) String() string {
	switch d {
	case DefenseHitTaken:
		return "hit taken"
	case DefenseBlocked:
		return "blocked"
	case DefenseParried:
		return "parried"
	case DefenseDodged:
		return "dodged"
	case DefenseCountered:
		return "countered"
	case DefenseCritCountered:
		return "critical counter"
	case DefenseRiposted:
		return "riposted"
	case DefenseCritRiposted:
		return "critical riposte"
	}
	return "unknown"
}

// RoundOutcome records one resolved round. Exactly one side attacks and one
// defends; damage fields are 0 for the side that took none.
type RoundOutcome struct {
	AttackerIsA bool        `json:"attacker_is_a"`
	Attack      AttackCode  `json:"attack"`
	Defense     DefenseCode `json:"defense"`
	DamageToA   int         `json:"damage_to_a"`
	DamageToB   int         `json:"damage_to_b"`
}

// WinCondition is the category of reason a fight ended.
type WinCondition uint8

const (
	WinByHealth WinCondition = iota
	WinByExhaustion
	WinByDeath
)

func (w WinCondition) String() string {
	switch w {
	case WinByHealth:
		return "health"
	case WinByExhaustion:
		return "exhaustion"
	case WinByDeath:
		return "death"
	}
	return "unknown"
}

// FightResult is the final, complete record of one fight.
type FightResult struct {
	WinnerIsA bool           `json:"winner_is_a"`
	Condition WinCondition   `json:"condition"`
	Rounds    []RoundOutcome `json:"rounds"`
}
