package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pefman/arena-duel/internal/models"
	"github.com/pefman/arena-duel/internal/tables"
)

// Identical inputs must produce byte-identical encoded logs.
func TestProcessGameDeterminism(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		first, err := ProcessGame(strongProfile(), weakProfile(), seed, 30)
		require.NoError(t, err)
		second, err := ProcessGame(strongProfile(), weakProfile(), seed, 30)
		require.NoError(t, err)
		assert.Equal(t, first, second, "seed %d", seed)
	}
}

func TestProcessGameRoundTrip(t *testing.T) {
	buf, err := ProcessGame(strongProfile(), weakProfile(), 7, 30)
	require.NoError(t, err)

	decoded, err := DecodeCombatLog(buf)
	require.NoError(t, err)

	res, _, err := ResolveFight(strongProfile(), weakProfile(), 7, 30)
	require.NoError(t, err)
	assert.Equal(t, res, decoded.FightResult)
}

func TestProcessGameRejectsBadProfiles(t *testing.T) {
	bad := strongProfile()
	bad.WeaponID = "chainsaw"
	_, err := ProcessGame(bad, weakProfile(), 1, 30)
	assert.ErrorIs(t, err, tables.ErrUnknownWeapon)

	bad = weakProfile()
	bad.Level = 99
	_, err = ProcessGame(strongProfile(), bad, 1, 30)
	assert.ErrorIs(t, err, ErrInvalidProfile)
}

// Win-condition consistency across a seed sample: a death needs a dead
// loser and a standing winner; a health win never goes to the side with
// strictly less health.
func TestWinConditionConsistency(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		res, final, err := ResolveFight(strongProfile(), weakProfile(), seed, 60)
		require.NoError(t, err)

		winnerHP, loserHP := final.HealthA, final.HealthB
		if !res.WinnerIsA {
			winnerHP, loserHP = loserHP, winnerHP
		}
		switch res.Condition {
		case models.WinByDeath:
			assert.Zero(t, loserHP, "seed %d", seed)
			assert.Greater(t, winnerHP, 0, "seed %d", seed)
		case models.WinByHealth:
			assert.GreaterOrEqual(t, winnerHP, loserHP, "seed %d", seed)
		case models.WinByExhaustion:
			winnerSP, loserSP := final.StaminaA, final.StaminaB
			if !res.WinnerIsA {
				winnerSP, loserSP = loserSP, winnerSP
			}
			if winnerSP == 0 {
				// Simultaneous exhaustion resolved by health.
				assert.Zero(t, loserSP, "seed %d", seed)
				assert.GreaterOrEqual(t, winnerHP, loserHP, "seed %d", seed)
			} else {
				assert.Zero(t, loserSP, "seed %d", seed)
			}
		}
	}
}
