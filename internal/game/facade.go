// Package game is the fight resolution engine: statblock derivation, the
// round-by-round simulator, outcome classification and the entry points
// callers drive them through. One fight is one synchronous call with no
// shared state, so any number of fights can run concurrently.
package game

import (
	"github.com/pefman/arena-duel/internal/codec"
	"github.com/pefman/arena-duel/internal/models"
)

// ProcessGame resolves one complete fight and returns the encoded log.
// Identical inputs produce a byte-identical log on every run and platform;
// the caller owns sourcing the seed and storing the buffer.
func ProcessGame(profileA, profileB models.Profile, seed int64, lethality int) ([]byte, error) {
	res, _, err := ResolveFight(profileA, profileB, seed, lethality)
	if err != nil {
		return nil, err
	}
	return codec.Encode(res)
}

// ResolveFight is ProcessGame without the encoding step, for callers that
// want the structured result and the final runtime state (the API's live
// stream, the terminal runner).
func ResolveFight(profileA, profileB models.Profile, seed int64, lethality int) (models.FightResult, FinalState, error) {
	sa, err := CalculateStats(profileA)
	if err != nil {
		return models.FightResult{}, FinalState{}, err
	}
	sb, err := CalculateStats(profileB)
	if err != nil {
		return models.FightResult{}, FinalState{}, err
	}
	rounds, halt, final := Simulate(sa, sb, seed, lethality)
	winnerIsA, condition := Classify(halt, final, sa, sb)
	return models.FightResult{
		WinnerIsA: winnerIsA,
		Condition: condition,
		Rounds:    rounds,
	}, final, nil
}

// DecodeCombatLog parses a stored fight log.
func DecodeCombatLog(buf []byte) (codec.DecodedFight, error) {
	return codec.Decode(buf)
}
