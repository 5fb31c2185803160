package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pefman/arena-duel/internal/models"
)

func mustStats(t *testing.T, p models.Profile) models.Statblock {
	t.Helper()
	sb, err := CalculateStats(p)
	require.NoError(t, err)
	return sb
}

func strongProfile() models.Profile {
	return models.Profile{
		Strength: 20, Constitution: 20, Size: 20, Agility: 20, Stamina: 20, Luck: 20,
		WeaponID: "warhammer", ArmorID: "halfplate",
		Stance: models.StanceBalanced, Level: 9,
	}
}

func weakProfile() models.Profile {
	return models.Profile{
		Strength: 6, Constitution: 6, Size: 6, Agility: 6, Stamina: 6, Luck: 6,
		WeaponID: "dagger", ArmorID: "leather",
		Stance: models.StanceBalanced, Level: 2,
	}
}

func TestSimulateDeterminism(t *testing.T) {
	a := mustStats(t, strongProfile())
	b := mustStats(t, weakProfile())

	for _, seed := range []int64{0, 1, -1, 42, 1 << 40} {
		r1, h1, f1 := Simulate(a, b, seed, 25)
		r2, h2, f2 := Simulate(a, b, seed, 25)
		assert.Equal(t, r1, r2, "seed %d", seed)
		assert.Equal(t, h1, h2, "seed %d", seed)
		assert.Equal(t, f1, f2, "seed %d", seed)
	}
}

func TestSimulateBasicInvariants(t *testing.T) {
	a := mustStats(t, strongProfile())
	b := mustStats(t, weakProfile())

	for seed := int64(0); seed < 100; seed++ {
		rounds, _, final := Simulate(a, b, seed, 25)

		require.NotEmpty(t, rounds, "seed %d", seed)
		assert.LessOrEqual(t, len(rounds), RoundCap, "seed %d", seed)

		assert.GreaterOrEqual(t, final.HealthA, 0)
		assert.GreaterOrEqual(t, final.HealthB, 0)
		assert.GreaterOrEqual(t, final.StaminaA, 0)
		assert.GreaterOrEqual(t, final.StaminaB, 0)

		for i, r := range rounds {
			// One side attacks, one defends; at most one side takes damage.
			assert.False(t, r.DamageToA > 0 && r.DamageToB > 0,
				"seed %d round %d damaged both sides", seed, i)
			assert.GreaterOrEqual(t, r.DamageToA, 0)
			assert.GreaterOrEqual(t, r.DamageToB, 0)
			if r.Attack == models.AttackMiss {
				assert.Zero(t, r.DamageToA, "seed %d round %d", seed, i)
				assert.Zero(t, r.DamageToB, "seed %d round %d", seed, i)
			}
		}
	}
}

// Once cumulative damage downs a fighter, that fighter deals zero damage in
// every later round, counters included.
func TestDownedFighterDealsNothing(t *testing.T) {
	a := mustStats(t, strongProfile())
	b := mustStats(t, weakProfile())

	downedSeen := false
	for seed := int64(0); seed < 200; seed++ {
		rounds, _, _ := Simulate(a, b, seed, 0)
		takenA, takenB := 0, 0
		for i, r := range rounds {
			if takenA >= a.MaxHealth {
				assert.Zero(t, r.DamageToB, "seed %d round %d: downed A dealt damage", seed, i)
			}
			if takenB >= b.MaxHealth {
				assert.Zero(t, r.DamageToA, "seed %d round %d: downed B dealt damage", seed, i)
				downedSeen = true
			}
			takenA += r.DamageToA
			takenB += r.DamageToB
		}
	}
	assert.True(t, downedSeen, "scenario never downed a fighter; weaken the weak profile")
}

func TestLethalityZeroNeverKills(t *testing.T) {
	a := mustStats(t, strongProfile())
	b := mustStats(t, weakProfile())
	for seed := int64(0); seed < 200; seed++ {
		_, halt, _ := Simulate(a, b, seed, 0)
		assert.NotEqual(t, HaltDeath, halt, "seed %d", seed)
	}
}

// Raising lethality must not lower the death rate: the fight trajectory
// does not depend on the knob, only the escalation decision does.
func TestLethalityMonotonicity(t *testing.T) {
	a := mustStats(t, strongProfile())
	b := mustStats(t, weakProfile())

	deaths := func(lethality int) int {
		n := 0
		for seed := int64(0); seed < 300; seed++ {
			if _, halt, _ := Simulate(a, b, seed, lethality); halt == HaltDeath {
				n++
			}
		}
		return n
	}

	prev := deaths(0)
	assert.Zero(t, prev)
	for _, lethality := range []int{25, 50, 75, 100} {
		cur := deaths(lethality)
		assert.GreaterOrEqual(t, cur, prev, "lethality %d", lethality)
		prev = cur
	}
	assert.Greater(t, prev, 0, "lethality 100 never killed; downs are not escalating")
}

func TestStrongerProfileDominates(t *testing.T) {
	wins := 0
	for seed := int64(0); seed < 100; seed++ {
		res, _, err := ResolveFight(strongProfile(), weakProfile(), seed, 25)
		require.NoError(t, err)
		if res.WinnerIsA {
			wins++
		}
	}
	assert.GreaterOrEqual(t, wins, 70, "strong profile won only %d/100", wins)
}

// A defender whose armor defense covers the attacker's maximum possible
// damage (crit included) can never be brought to zero health, so can never
// lose by death, even at maximum lethality.
func TestImpenetrableArmorNeverDies(t *testing.T) {
	feeble := models.Profile{
		Strength: 1, Constitution: 10, Size: 10, Agility: 1, Stamina: 25, Luck: 10,
		WeaponID: "dagger", ArmorID: "none",
		Stance: models.StanceOffensive, Level: 1,
	}
	walled := models.Profile{
		Strength: 10, Constitution: 10, Size: 10, Agility: 10, Stamina: 10, Luck: 10,
		WeaponID: "mace", ArmorID: "bulwark",
		Stance: models.StanceBalanced, Level: 1,
	}
	attacker := mustStats(t, feeble)
	defender := mustStats(t, walled)
	require.LessOrEqual(t, attacker.DamageMax*critMultiplierPct/100, defender.ArmorDefense,
		"scenario needs armor to cover the crit ceiling")

	for seed := int64(0); seed < 150; seed++ {
		res, final, err := ResolveFight(feeble, walled, seed, 100)
		require.NoError(t, err)
		assert.Equal(t, defender.MaxHealth, final.HealthB, "seed %d: the wall took damage", seed)
		if res.Condition == models.WinByDeath {
			assert.False(t, res.WinnerIsA, "seed %d: the wall lost by death", seed)
		}
	}
}
