package game

import (
	"github.com/pefman/arena-duel/internal/engine"
	"github.com/pefman/arena-duel/internal/models"
)

// HaltReason is the terminal state the simulator stopped in.
type HaltReason uint8

const (
	HaltHealth HaltReason = iota
	HaltExhaustion
	HaltDeath
)

// RoundCap bounds every fight; reaching it resolves by health comparison.
const RoundCap = 100

// Fixed draw indices within one round. Every random value the simulator
// consumes is keyed by (seed, round, draw), so a draw never shifts because
// an earlier one was skipped.
const (
	drawTurnOrder = iota
	drawOffense
	drawDefense
	drawDamage
	drawLethal
)

// Stamina spent on active defensive maneuvers.
var maneuverCost = map[models.DefenseCode]int{
	models.DefenseBlocked:       2,
	models.DefenseParried:       2,
	models.DefenseDodged:        3,
	models.DefenseCountered:     4,
	models.DefenseCritCountered: 4,
	models.DefenseRiposted:      3,
	models.DefenseCritRiposted:  3,
}

// FinalState is the runtime state at the moment the fight halted. It exists
// only for classification and inspection; it is not part of the encoded log.
type FinalState struct {
	HealthA  int `json:"health_a"`
	HealthB  int `json:"health_b"`
	StaminaA int `json:"stamina_a"`
	StaminaB int `json:"stamina_b"`
}

type fighter struct {
	stats   models.Statblock
	health  int
	stamina int
	downed  bool
}

func (f *fighter) damage(n int) {
	f.health -= n
	if f.health < 0 {
		f.health = 0
	}
}

func (f *fighter) spend(n int) {
	f.stamina -= n
	if f.stamina < 0 {
		f.stamina = 0
	}
}

// Simulate resolves one fight between two derived statblocks. All
// randomness is a pure function of (seed, round index, draw index); a
// replay with identical inputs reproduces the identical round sequence.
func Simulate(a, b models.Statblock, seed int64, lethality int) ([]models.RoundOutcome, HaltReason, FinalState) {
	src := engine.New(seed)
	fa := &fighter{stats: a, health: a.MaxHealth, stamina: a.MaxStamina}
	fb := &fighter{stats: b, health: b.MaxHealth, stamina: b.MaxStamina}

	var rounds []models.RoundOutcome
	halt := HaltHealth

loop:
	for round := 0; round < RoundCap; round++ {
		// Turn order: both initiative values weigh one draw, so the faster
		// fighter attacks more often but both realistically get to act.
		roll := src.Intn(round, drawTurnOrder, a.Initiative+b.Initiative)
		attackerIsA := roll < a.Initiative
		att, def := fa, fb
		if !attackerIsA {
			att, def = fb, fa
		}

		out := models.RoundOutcome{AttackerIsA: attackerIsA}
		att.spend(att.stats.StaminaCost)

		out.Attack = drawAttack(src, round, att.stats)
		if out.Attack != models.AttackMiss {
			out.Defense = drawDefenseOutcome(src, round, def.stats)
			dmgToDef, dmgToAtt := resolveDamage(src, round, out, att, def)
			def.damage(dmgToDef)
			att.damage(dmgToAtt)
			def.spend(maneuverCost[out.Defense])
			if attackerIsA {
				out.DamageToA, out.DamageToB = dmgToAtt, dmgToDef
			} else {
				out.DamageToA, out.DamageToB = dmgToDef, dmgToAtt
			}
		}
		rounds = append(rounds, out)

		// Halt checks, in order: lethal damage, then both fighters down,
		// then decisive exhaustion. The round cap resolves by health.
		for _, f := range []*fighter{fa, fb} {
			if f.health == 0 && !f.downed {
				f.downed = true
				other := fb
				if f == fb {
					other = fa
				}
				// Death only escalates while the opponent is still
				// standing; two downed fighters resolve by comparison.
				if other.health > 0 && src.Chance(round, drawLethal, lethality) {
					halt = HaltDeath
					break loop
				}
			}
		}
		if fa.health == 0 && fb.health == 0 {
			halt = HaltHealth
			break loop
		}
		if fa.stamina == 0 || fb.stamina == 0 {
			// Outlasting only decides fights between standing fighters; a
			// downed opponent already lost the health comparison.
			if fa.health > 0 && fb.health > 0 {
				halt = HaltExhaustion
			} else {
				halt = HaltHealth
			}
			break loop
		}
	}

	final := FinalState{
		HealthA:  fa.health,
		HealthB:  fb.health,
		StaminaA: fa.stamina,
		StaminaB: fb.stamina,
	}
	return rounds, halt, final
}

// drawAttack resolves miss / hit / critical in one weighted draw.
func drawAttack(src engine.Source, round int, att models.Statblock) models.AttackCode {
	crit := att.CritChance
	if crit > att.HitChance {
		crit = att.HitChance
	}
	land := att.HitChance - crit
	miss := 100 - att.HitChance
	switch src.WeightedPick(round, drawOffense, []int{crit, land, miss}) {
	case 0:
		return models.AttackCrit
	case 1:
		return models.AttackLands
	}
	return models.AttackMiss
}

// drawDefenseOutcome resolves the defender's answer to a landed attack.
// Counters and ripostes split into normal and critical variants by the
// defender's own crit chance; hit-taken is the residual.
func drawDefenseOutcome(src engine.Source, round int, def models.Statblock) models.DefenseCode {
	critCounter := def.CounterChance * def.CritChance / 100
	counter := def.CounterChance - critCounter
	critRiposte := def.RiposteChance * def.CritChance / 100
	riposte := def.RiposteChance - critRiposte

	weights := []int{
		def.BlockChance,
		def.ParryChance,
		def.DodgeChance,
		counter,
		critCounter,
		riposte,
		critRiposte,
	}
	total := 0
	for _, w := range weights {
		total += w
	}
	weights = append(weights, 100-total) // hit-taken residual

	switch src.WeightedPick(round, drawDefense, weights) {
	case 0:
		return models.DefenseBlocked
	case 1:
		return models.DefenseParried
	case 2:
		return models.DefenseDodged
	case 3:
		return models.DefenseCountered
	case 4:
		return models.DefenseCritCountered
	case 5:
		return models.DefenseRiposted
	case 6:
		return models.DefenseCritRiposted
	}
	return models.DefenseHitTaken
}

// resolveDamage computes damage to each side for one landed attack. A
// downed fighter deals zero damage forever, including through counters.
func resolveDamage(src engine.Source, round int, out models.RoundOutcome, att, def *fighter) (toDefender, toAttacker int) {
	switch out.Defense {
	case models.DefenseHitTaken:
		if att.downed {
			return 0, 0
		}
		dmg := src.Range(round, drawDamage, att.stats.DamageMin, att.stats.DamageMax)
		if out.Attack == models.AttackCrit {
			dmg = dmg * critMultiplierPct / 100
		}
		dmg -= def.stats.ArmorDefense
		if dmg < 0 {
			dmg = 0
		}
		return dmg, 0

	case models.DefenseCountered, models.DefenseCritCountered,
		models.DefenseRiposted, models.DefenseCritRiposted:
		// The defender becomes the instantaneous attacker with their own
		// weapon; the original swing never connects.
		if def.downed {
			return 0, 0
		}
		dmg := src.Range(round, drawDamage, def.stats.DamageMin, def.stats.DamageMax)
		if out.Defense == models.DefenseCritCountered || out.Defense == models.DefenseCritRiposted {
			dmg = dmg * critMultiplierPct / 100
		}
		if out.Defense == models.DefenseRiposted || out.Defense == models.DefenseCritRiposted {
			dmg = dmg * 2 / 3 // a riposte is a glancing opportunity strike
		}
		dmg -= att.stats.ArmorDefense
		if dmg < 0 {
			dmg = 0
		}
		return 0, dmg
	}

	// Blocked, parried and dodged attacks deal nothing either way.
	return 0, 0
}
