package main

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/pefman/arena-duel/internal/codec"
	"github.com/pefman/arena-duel/internal/game"
	"github.com/pefman/arena-duel/internal/models"
	"github.com/pefman/arena-duel/internal/stats"
	"github.com/pefman/arena-duel/internal/tables"
)

type fightRequest struct {
	ProfileA models.Profile `json:"profile_a"`
	ProfileB models.Profile `json:"profile_b"`
	Seed     int64          `json:"seed"`
	// Optional override of the configured lethality knob.
	Lethality *int `json:"lethality,omitempty"`
}

type fightResponse struct {
	ID     string             `json:"id"`
	Log    string             `json:"log"` // base64 encoded fight log
	Result models.FightResult `json:"result"`
	Final  game.FinalState    `json:"final"`
}

type decodeRequest struct {
	Log string `json:"log"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// statusFor maps engine errors onto HTTP statuses. Every engine error is an
// integration error on the caller's side, so they all land in the 400s.
func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrInvalidProfile),
		errors.Is(err, tables.ErrUnknownWeapon),
		errors.Is(err, tables.ErrUnknownArmor),
		errors.Is(err, codec.ErrUnknownVersion),
		errors.Is(err, codec.ErrTruncated),
		errors.Is(err, codec.ErrCorrupt):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":          true,
		"version":     buildVersion,
		"log_version": codec.Version,
	})
}

func (s *server) handleWeapons(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, tables.Weapons())
}

func (s *server) handleWeapon(w http.ResponseWriter, r *http.Request) {
	weapon, err := tables.WeaponByID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, weapon)
}

func (s *server) handleArmors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, tables.Armors())
}

func (s *server) handleArmor(w http.ResponseWriter, r *http.Request) {
	armor, err := tables.ArmorByID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, armor)
}

func (s *server) handleCalcStats(w http.ResponseWriter, r *http.Request) {
	var profile models.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	sb, err := game.CalculateStats(profile)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, sb)
}

func (s *server) lethality(req fightRequest) int {
	if req.Lethality != nil {
		return *req.Lethality
	}
	return s.cfg.Lethality
}

func (s *server) handleFight(w http.ResponseWriter, r *http.Request) {
	var req fightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	result, final, err := game.ResolveFight(req.ProfileA, req.ProfileB, req.Seed, s.lethality(req))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	buf, err := codec.Encode(result)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	rec := stats.RecordFight(result, req.Seed)
	writeJSON(w, http.StatusOK, fightResponse{
		ID:     rec.ID,
		Log:    base64.StdEncoding.EncodeToString(buf),
		Result: result,
		Final:  final,
	})
}

func (s *server) handleDecode(w http.ResponseWriter, r *http.Request) {
	var req decodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	buf, err := base64.StdEncoding.DecodeString(req.Log)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	decoded, err := game.DecodeCombatLog(buf)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, decoded)
}

func (s *server) handleRecentFights(w http.ResponseWriter, r *http.Request) {
	n := 20
	if q := r.URL.Query().Get("n"); q != "" {
		if v, err := strconv.Atoi(q); err == nil && v > 0 {
			n = v
		}
	}
	writeJSON(w, http.StatusOK, stats.Recent(n))
}

func (s *server) handleMaxDamageToday(w http.ResponseWriter, r *http.Request) {
	rec, ok := stats.MaxDamageToday()
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
