package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/google/uuid"

	"civitech/internal/adapter/ai/gemini"
	"civitech/internal/adapter/ai/mock"
	httpadapter "civitech/internal/adapter/http"
	metricsinmem "civitech/internal/adapter/metrics/inmemory"
	gormrepo "civitech/internal/adapter/repo/gorm"
	"civitech/internal/adapter/repo/memory"
	"civitech/internal/app/advisor"
	"civitech/internal/app/ledger"
	"civitech/internal/app/lobby"
	"civitech/internal/app/play"
	"civitech/internal/app/ports"
	"civitech/internal/app/results"
	"civitech/internal/content"
	"civitech/internal/domain/sim"
)

type repos struct {
	tx       ports.TxManager
	games    ports.GameRepository
	profiles ports.ProfileRepository
	stats    ports.StatsRepository
	sessions ports.SessionRepository
	results  ports.ResultRepository
}

type aiStack struct {
	generator ports.ScenarioGenerator
	advisor   ports.Advisor
	analyzer  ports.Analyzer
	close     func()
}

func main() {
	ctx := context.Background()

	r := mustBuildRepos(ctx)
	ai := buildAIFromEnv(ctx)
	defer ai.close()

	cfg := mustLoadContent()
	kpiRecorder := metricsinmem.NewRecorder()
	dice := sim.NewDice(time.Now().UnixNano())

	h := httpadapter.Handler{
		PlayUC: play.UseCase{
			TxManager: r.tx,
			Games:     r.games,
			Profiles:  r.profiles,
			Stats:     r.stats,
			Sessions:  r.sessions,
			Results:   r.results,
			Generator: ai.generator,
			Metrics:   kpiRecorder,
			Content:   cfg,
			Dice:      dice,
			Now:       time.Now,
		},
		LedgerUC: ledger.UseCase{
			TxManager: r.tx,
			Profiles:  r.profiles,
			Stats:     r.stats,
			Content:   cfg,
			Now:       time.Now,
		},
		LobbyUC: lobby.UseCase{
			TxManager: r.tx,
			Sessions:  r.sessions,
			Dice:      dice,
			NewID:     func() string { return "sess-" + uuid.NewString() },
			Now:       time.Now,
		},
		ResultsUC: results.UseCase{
			Sessions: r.sessions,
			Results:  r.results,
		},
		AdvisorUC: advisor.UseCase{
			Games:    r.games,
			Advisor:  ai.advisor,
			Analyzer: ai.analyzer,
		},
		KPI: kpiRecorder,
	}

	addr := addrEnv()
	s := server.Default(server.WithHostPorts(addr))
	h.RegisterRoutes(s)

	log.Printf("civitech server listening on %s", addr)
	s.Spin()
}

// mustBuildRepos wires Postgres when CIVITECH_DB_DSN is set and falls back
// to the in-memory store otherwise. The memory store loses everything on
// restart; it exists for local play and demos.
func mustBuildRepos(ctx context.Context) repos {
	dsn := strings.TrimSpace(os.Getenv("CIVITECH_DB_DSN"))
	if dsn == "" {
		log.Println("CIVITECH_DB_DSN not set, using in-memory store")
		store := memory.NewStore()
		return repos{
			tx:       memory.NewTxManager(store),
			games:    memory.NewGameRepo(store),
			profiles: memory.NewProfileRepo(store),
			stats:    memory.NewStatsRepo(store),
			sessions: memory.NewSessionRepo(store),
			results:  memory.NewResultRepo(store),
		}
	}

	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	migrations := envOr("CIVITECH_MIGRATIONS_DIR", "./migrations")
	if err := gormrepo.ApplyMigrations(ctx, db, migrations); err != nil {
		log.Fatalf("apply migrations from %s: %v", migrations, err)
	}
	return repos{
		tx:       gormrepo.NewTxManager(db),
		games:    gormrepo.NewGameRepo(db),
		profiles: gormrepo.NewProfileRepo(db),
		stats:    gormrepo.NewStatsRepo(db),
		sessions: gormrepo.NewSessionRepo(db),
		results:  gormrepo.NewResultRepo(db),
	}
}

// buildAIFromEnv picks Gemini when an API key is present and the canned
// mock provider otherwise, so the game stays playable without a key.
func buildAIFromEnv(ctx context.Context) aiStack {
	apiKey := strings.TrimSpace(os.Getenv("CIVITECH_GEMINI_API_KEY"))
	if apiKey == "" {
		log.Println("CIVITECH_GEMINI_API_KEY not set, using mock AI provider")
		p := mock.Provider{}
		return aiStack{generator: p, advisor: p, analyzer: p, close: func() {}}
	}
	engine, err := gemini.New(ctx, apiKey, os.Getenv("CIVITECH_GEMINI_MODEL"))
	if err != nil {
		log.Fatalf("init gemini client: %v", err)
	}
	return aiStack{
		generator: engine,
		advisor:   engine,
		analyzer:  engine,
		close: func() {
			if err := engine.Close(); err != nil {
				log.Printf("close gemini client: %v", err)
			}
		},
	}
}

func mustLoadContent() content.Config {
	path := strings.TrimSpace(os.Getenv("CIVITECH_CONTENT_PATH"))
	if path == "" {
		return content.Default()
	}
	cfg, err := content.Load(path)
	if err != nil {
		log.Fatalf("load content from %s: %v", path, err)
	}
	return cfg
}

func addrEnv() string {
	if port := intEnv("CIVITECH_PORT", 0); port > 0 {
		return ":" + strconv.Itoa(port)
	}
	return envOr("CIVITECH_ADDR", ":8080")
}

func envOr(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
