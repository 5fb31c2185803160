package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntnDeterminism(t *testing.T) {
	a := New(42)
	b := New(42)
	for round := 0; round < 50; round++ {
		for draw := 0; draw < 5; draw++ {
			assert.Equal(t, a.Intn(round, draw, 100), b.Intn(round, draw, 100),
				"round %d draw %d", round, draw)
		}
	}
}

func TestIntnKeyIndependence(t *testing.T) {
	src := New(7)

	// A draw must not depend on whether earlier draws happened.
	late := src.Intn(30, 2, 1000)
	_ = src.Intn(0, 0, 1000)
	_ = src.Intn(30, 1, 1000)
	assert.Equal(t, late, src.Intn(30, 2, 1000))

	// Different keys should differ somewhere over a decent sample.
	same := 0
	for round := 0; round < 100; round++ {
		if src.Intn(round, 0, 1000) == src.Intn(round, 1, 1000) {
			same++
		}
	}
	assert.Less(t, same, 10, "draw index appears to be ignored")
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)
	same := 0
	for round := 0; round < 100; round++ {
		if a.Intn(round, 0, 1000) == b.Intn(round, 0, 1000) {
			same++
		}
	}
	assert.Less(t, same, 10, "seed appears to be ignored")
}

func TestRange(t *testing.T) {
	src := New(3)
	for round := 0; round < 200; round++ {
		v := src.Range(round, 0, 5, 12)
		assert.GreaterOrEqual(t, v, 5)
		assert.LessOrEqual(t, v, 12)
	}
	assert.Equal(t, 9, src.Range(0, 0, 9, 9), "degenerate range collapses to lo")
	assert.Equal(t, 9, src.Range(0, 0, 9, 4), "inverted range collapses to lo")
}

func TestWeightedPick(t *testing.T) {
	src := New(11)

	tests := []struct {
		name    string
		weights []int
		allowed []int
	}{
		{"single weight", []int{100}, []int{0}},
		{"zero weight never picked", []int{0, 100, 0}, []int{1}},
		{"all zero falls to residual", []int{0, 0, 0}, []int{2}},
		{"negative treated as zero", []int{-5, 100}, []int{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for round := 0; round < 100; round++ {
				assert.Contains(t, tt.allowed, src.WeightedPick(round, 0, tt.weights))
			}
		})
	}

	// Every index with weight should show up over a large sample.
	seen := map[int]bool{}
	for round := 0; round < 2000; round++ {
		seen[src.WeightedPick(round, 0, []int{20, 30, 50})] = true
	}
	assert.Len(t, seen, 3)
}

func TestChance(t *testing.T) {
	src := New(5)
	hits := 0
	for round := 0; round < 1000; round++ {
		assert.False(t, src.Chance(round, 0, 0), "zero pct must never succeed")
		assert.True(t, src.Chance(round, 0, 100), "full pct must always succeed")
		if src.Chance(round, 1, 50) {
			hits++
		}
	}
	assert.Greater(t, hits, 350)
	assert.Less(t, hits, 650)
}
