package game

import (
	"errors"
	"fmt"

	"github.com/pefman/arena-duel/internal/models"
	"github.com/pefman/arena-duel/internal/tables"
)

var ErrInvalidProfile = errors.New("invalid profile")

const (
	attrMin  = 1
	attrMax  = 25
	levelMin = 1
	levelMax = 10

	critMultiplierPct = 150
	levelStepPct      = 4

	// Defensive alternatives are rescaled so at least 5% of every defended
	// round is left for the hit-taken residual.
	defenseBudget = 95
)

// classMod weights one weapon class's probability/damage subset.
// scalesWithAgility selects the attribute that drives damage.
type classMod struct {
	scalesWithAgility bool
	hit               int
	crit              int
	block             int
	parry             int
	dodge             int
	counter           int
	riposte           int
	damageBonusPct    int
}

var classMods = map[tables.WeaponClass]classMod{
	tables.ClassLightFinesse:    {scalesWithAgility: true, hit: 5, crit: 6, parry: 4, dodge: 3, riposte: 3},
	tables.ClassHeavyDemolition: {hit: -5, crit: 4, parry: -4, damageBonusPct: 15},
	tables.ClassPureBlunt:       {hit: 2, block: 5, counter: 1},
	tables.ClassReachControl:    {parry: 3, counter: 4, riposte: 4},
	tables.ClassDualWieldBrute:  {hit: 6, crit: 2, block: -3, dodge: -2, damageBonusPct: 8},
}

// Weapon specializations amplify the matching class only.
var weaponSpecs = map[string]tables.WeaponClass{
	"finesse-mastery":    tables.ClassLightFinesse,
	"demolition-mastery": tables.ClassHeavyDemolition,
	"blunt-mastery":      tables.ClassPureBlunt,
	"reach-mastery":      tables.ClassReachControl,
	"dual-mastery":       tables.ClassDualWieldBrute,
}

// Armor specializations amplify the matching armor type only.
var armorSpecs = map[string]tables.ArmorType{
	"light-training":  tables.ArmorLight,
	"medium-training": tables.ArmorMedium,
	"heavy-training":  tables.ArmorHeavy,
}

func clampPct(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ValidateProfile checks ranges and resolves every selector. These are
// integration errors: callers resolve equipment upstream, so any failure
// here is fatal, never retried.
func ValidateProfile(p models.Profile) error {
	attrs := []struct {
		name string
		v    int
	}{
		{"strength", p.Strength},
		{"constitution", p.Constitution},
		{"size", p.Size},
		{"agility", p.Agility},
		{"stamina", p.Stamina},
		{"luck", p.Luck},
	}
	for _, a := range attrs {
		if a.v < attrMin || a.v > attrMax {
			return fmt.Errorf("%w: %s %d out of range [%d,%d]", ErrInvalidProfile, a.name, a.v, attrMin, attrMax)
		}
	}
	if p.Level < levelMin || p.Level > levelMax {
		return fmt.Errorf("%w: level %d out of range [%d,%d]", ErrInvalidProfile, p.Level, levelMin, levelMax)
	}
	if !p.Stance.Valid() {
		return fmt.Errorf("%w: unknown stance %q", ErrInvalidProfile, p.Stance)
	}
	if _, err := tables.WeaponByID(p.WeaponID); err != nil {
		return err
	}
	if _, err := tables.ArmorByID(p.ArmorID); err != nil {
		return err
	}
	if p.WeaponSpec != "" {
		if _, ok := weaponSpecs[p.WeaponSpec]; !ok {
			return fmt.Errorf("%w: unknown weapon specialization %q", ErrInvalidProfile, p.WeaponSpec)
		}
	}
	if p.ArmorSpec != "" {
		if _, ok := armorSpecs[p.ArmorSpec]; !ok {
			return fmt.Errorf("%w: unknown armor specialization %q", ErrInvalidProfile, p.ArmorSpec)
		}
	}
	return nil
}

// CalculateStats derives the full statblock for one fighter. Pure: the same
// profile always yields the same statblock.
func CalculateStats(p models.Profile) (models.Statblock, error) {
	if err := ValidateProfile(p); err != nil {
		return models.Statblock{}, err
	}
	weapon, _ := tables.WeaponByID(p.WeaponID)
	armor, _ := tables.ArmorByID(p.ArmorID)
	mod := classMods[weapon.Class]

	weaponSpecMatch := p.WeaponSpec != "" && weaponSpecs[p.WeaponSpec] == weapon.Class
	armorSpecMatch := p.ArmorSpec != "" && armorSpecs[p.ArmorSpec] == armor.Type

	mobility := armor.MobilityPenalty
	if armorSpecMatch {
		mobility /= 2 // trained fighters carry their armor better
	}

	// Stance trades offense for defense (or the inverse).
	stanceOff, stanceDef := 0, 0
	switch p.Stance {
	case models.StanceDefensive:
		stanceOff, stanceDef = -10, 8
	case models.StanceOffensive:
		stanceOff, stanceDef = 10, -8
	}

	specHit, specCrit, specDmgPct := 0, 0, 0
	if weaponSpecMatch {
		specHit, specCrit, specDmgPct = 5, 3, 10
	}
	specBlock := 0
	if armorSpecMatch {
		specBlock = 3
	}

	lvlPct := 100 + levelStepPct*(p.Level-1)

	sb := models.Statblock{
		MaxHealth:  (40 + p.Constitution*6 + p.Size*3) * lvlPct / 100,
		MaxStamina: 30 + p.Stamina*5 + p.Constitution*2,

		HitChance:  clampPct(55 + p.Agility/2 + p.Luck/4 + mod.hit + stanceOff + specHit),
		CritChance: clampPct(3 + p.Luck/2 + mod.crit + stanceOff/2 + specCrit),

		BlockChance:   clampPct(4 + armor.Defense*2 + mod.block + stanceDef + specBlock),
		ParryChance:   clampPct(4 + weapon.Speed + p.Agility/4 + mod.parry + stanceDef - mobility/2),
		DodgeChance:   clampPct(3 + p.Agility - mobility + mod.dodge + stanceDef),
		CounterChance: clampPct(2 + p.Agility/3 + p.Luck/4 + mod.counter + stanceDef/2),
		RiposteChance: clampPct(2 + weapon.Speed/2 + p.Luck/4 + mod.riposte + stanceDef/2),

		Initiative:   p.Agility*2 + weapon.Speed - mobility,
		ArmorDefense: armor.Defense,
		StaminaCost:  weapon.StaminaCost + mobility/4,
		Luck:         p.Luck,
	}
	if sb.Initiative < 1 {
		sb.Initiative = 1
	}

	scaleAttr := p.Strength
	if mod.scalesWithAgility {
		scaleAttr = p.Agility
	}
	dmgPct := 100 + mod.damageBonusPct + specDmgPct
	sb.DamageMin = (weapon.DamageMin + scaleAttr/2) * dmgPct / 100 * lvlPct / 100
	sb.DamageMax = (weapon.DamageMax + scaleAttr/2) * dmgPct / 100 * lvlPct / 100
	if sb.DamageMin < 1 {
		sb.DamageMin = 1
	}
	if sb.DamageMax < sb.DamageMin {
		sb.DamageMax = sb.DamageMin
	}

	// The five defensive alternatives plus hit-taken share one round; keep
	// their sum inside the budget so hit-taken stays the residual.
	sum := sb.BlockChance + sb.ParryChance + sb.DodgeChance + sb.CounterChance + sb.RiposteChance
	if sum > defenseBudget {
		sb.BlockChance = sb.BlockChance * defenseBudget / sum
		sb.ParryChance = sb.ParryChance * defenseBudget / sum
		sb.DodgeChance = sb.DodgeChance * defenseBudget / sum
		sb.CounterChance = sb.CounterChance * defenseBudget / sum
		sb.RiposteChance = sb.RiposteChance * defenseBudget / sum
	}

	return sb, nil
}
