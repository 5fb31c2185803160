package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pefman/arena-duel/internal/game"
	"github.com/pefman/arena-duel/internal/models"
	"github.com/pefman/arena-duel/internal/stats"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// WebSocket message envelope
type wsMsg struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

type liveRequest struct {
	fightRequest
	// Milliseconds between streamed rounds; clamped to [0,2000].
	DelayMS int `json:"delay_ms"`
}

type liveRound struct {
	Round   int                 `json:"round"`
	Outcome models.RoundOutcome `json:"outcome"`
}

type liveResult struct {
	ID     string              `json:"id"`
	Winner string              `json:"winner"`
	Reason models.WinCondition `json:"reason"`
	Final  game.FinalState     `json:"final"`
}

// handleLiveFight resolves one fight up front, then replays it to the
// client round by round. The fight itself is still a single deterministic
// call; only the delivery is paced.
func (s *server) handleLiveFight(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	var req liveRequest
	if err := conn.ReadJSON(&req); err != nil {
		_ = conn.WriteJSON(wsMsg{Type: "error", Data: "bad request: " + err.Error()})
		return
	}
	delay := time.Duration(req.DelayMS) * time.Millisecond
	if delay < 0 {
		delay = 0
	}
	if delay > 2*time.Second {
		delay = 2 * time.Second
	}

	result, final, err := game.ResolveFight(req.ProfileA, req.ProfileB, req.Seed, s.lethality(req.fightRequest))
	if err != nil {
		_ = conn.WriteJSON(wsMsg{Type: "error", Data: err.Error()})
		return
	}

	for i, round := range result.Rounds {
		if err := conn.WriteJSON(wsMsg{Type: "round", Data: liveRound{Round: i, Outcome: round}}); err != nil {
			return
		}
		if delay > 0 {
			time.Sleep(delay)
		}
	}

	rec := stats.RecordFight(result, req.Seed)
	winner := "a"
	if !result.WinnerIsA {
		winner = "b"
	}
	_ = conn.WriteJSON(wsMsg{Type: "result", Data: liveResult{
		ID:     rec.ID,
		Winner: winner,
		Reason: result.Condition,
		Final:  final,
	}})
}
