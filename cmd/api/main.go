package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/pefman/arena-duel/internal/config"
	"github.com/pefman/arena-duel/internal/logging"
)

// Build metadata injected via -ldflags at build time
var (
	buildVersion = "dev"
	buildTime    = ""
)

type server struct {
	cfg    config.Config
	router *mux.Router
}

func newServer(cfg config.Config) *server {
	s := &server{cfg: cfg, router: mux.NewRouter()}
	s.routes()
	return s
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *server) routes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	api.HandleFunc("/weapons", s.handleWeapons).Methods(http.MethodGet)
	api.HandleFunc("/weapons/{id}", s.handleWeapon).Methods(http.MethodGet)
	api.HandleFunc("/armors", s.handleArmors).Methods(http.MethodGet)
	api.HandleFunc("/armors/{id}", s.handleArmor).Methods(http.MethodGet)
	api.HandleFunc("/stats/calc", s.handleCalcStats).Methods(http.MethodPost)
	api.HandleFunc("/fight", s.handleFight).Methods(http.MethodPost)
	api.HandleFunc("/decode", s.handleDecode).Methods(http.MethodPost)
	api.HandleFunc("/fights/recent", s.handleRecentFights).Methods(http.MethodGet)
	api.HandleFunc("/fights/max-damage/today", s.handleMaxDamageToday).Methods(http.MethodGet)
	api.HandleFunc("/fight/live", s.handleLiveFight).Methods(http.MethodGet)
}

func withCORS(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogFormat)

	addr := ":" + cfg.Port
	slog.Info("arena-duel api listening", "addr", addr, "version", buildVersion, "built", buildTime)
	if err := http.ListenAndServe(addr, withCORS(cfg.CORSOrigin, newServer(cfg))); err != nil {
		slog.Error("server exited", "err", err)
		os.Exit(1)
	}
}
