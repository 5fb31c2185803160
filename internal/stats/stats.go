// Package stats keeps in-memory bookkeeping about fights resolved by the
// API process. It is API-layer convenience, not engine state: the engine
// itself persists nothing.
package stats

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pefman/arena-duel/internal/models"
)

// FightRecord summarizes one resolved fight.
type FightRecord struct {
	ID        string              `json:"id"`
	WinnerIsA bool                `json:"winner_is_a"`
	Condition models.WinCondition `json:"condition"`
	Rounds    int                 `json:"rounds"`
	Seed      int64               `json:"seed"`
	At        time.Time           `json:"at"`
}

// MaxDamageRecord is the biggest single-round damage seen on a given day.
type MaxDamageRecord struct {
	FightID string `json:"fight_id"`
	Round   int    `json:"round"`
	Damage  int    `json:"damage"`
}

const recentLimit = 100

var (
	mu       sync.Mutex
	recent   []FightRecord
	dailyMax = make(map[string]MaxDamageRecord) // date YYYY-MM-DD UTC
)

// RecordFight stores a summary of a resolved fight and its per-round
// damage peaks, returning the assigned fight id.
func RecordFight(res models.FightResult, seed int64) FightRecord {
	rec := FightRecord{
		ID:        uuid.NewString(),
		WinnerIsA: res.WinnerIsA,
		Condition: res.Condition,
		Rounds:    len(res.Rounds),
		Seed:      seed,
		At:        time.Now().UTC(),
	}
	dateKey := rec.At.Format("2006-01-02")

	mu.Lock()
	defer mu.Unlock()
	recent = append(recent, rec)
	if len(recent) > recentLimit {
		recent = recent[len(recent)-recentLimit:]
	}
	for i, r := range res.Rounds {
		dmg := r.DamageToA
		if r.DamageToB > dmg {
			dmg = r.DamageToB
		}
		if cur, ok := dailyMax[dateKey]; !ok || dmg > cur.Damage {
			dailyMax[dateKey] = MaxDamageRecord{FightID: rec.ID, Round: i, Damage: dmg}
		}
	}
	return rec
}

// Recent returns up to n of the most recently recorded fights, newest first.
func Recent(n int) []FightRecord {
	mu.Lock()
	defer mu.Unlock()
	if n <= 0 || n > len(recent) {
		n = len(recent)
	}
	out := make([]FightRecord, 0, n)
	for i := len(recent) - 1; i >= len(recent)-n; i-- {
		out = append(out, recent[i])
	}
	return out
}

// MaxDamageToday returns today's biggest single-round damage, if any.
func MaxDamageToday() (MaxDamageRecord, bool) {
	dateKey := time.Now().UTC().Format("2006-01-02")
	mu.Lock()
	defer mu.Unlock()
	rec, ok := dailyMax[dateKey]
	return rec, ok
}

// Reset clears all recorded state. Intended for tests and dev convenience.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	recent = nil
	for k := range dailyMax {
		delete(dailyMax, k)
	}
}
