package game

import "github.com/pefman/arena-duel/internal/models"

// Classify maps the halt state to a winner and a win-condition tag. Every
// branch ends in a deterministic decision; exact ties fall through to luck
// and finally to combatant order, so two replays can never disagree.
func Classify(halt HaltReason, final FinalState, a, b models.Statblock) (winnerIsA bool, condition models.WinCondition) {
	switch halt {
	case HaltDeath:
		// The simulator only escalates to death while the opponent still
		// stands, so exactly one side is at zero health here.
		return final.HealthA > 0, models.WinByDeath

	case HaltExhaustion:
		if final.StaminaA == 0 && final.StaminaB == 0 {
			return healthierIsA(final, a, b), models.WinByExhaustion
		}
		return final.StaminaA > 0, models.WinByExhaustion

	default:
		return healthierIsA(final, a, b), models.WinByHealth
	}
}

func healthierIsA(final FinalState, a, b models.Statblock) bool {
	if final.HealthA != final.HealthB {
		return final.HealthA > final.HealthB
	}
	if a.Luck != b.Luck {
		return a.Luck > b.Luck
	}
	return true // first combatant wins exact ties
}
