package daemon

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deepwarren/deepwarren/internal/api"
	"github.com/deepwarren/deepwarren/internal/domain"
	"github.com/deepwarren/deepwarren/internal/engine"
	"github.com/deepwarren/deepwarren/internal/health"
	"github.com/deepwarren/deepwarren/internal/infra/gencache"
	"github.com/deepwarren/deepwarren/internal/infra/llm"
	"github.com/deepwarren/deepwarren/internal/infra/sqlite"
	"github.com/deepwarren/deepwarren/internal/nav"
	"github.com/deepwarren/deepwarren/internal/nav/frontier"
	"github.com/deepwarren/deepwarren/internal/skill"
	"github.com/deepwarren/deepwarren/internal/turn"
	"github.com/deepwarren/deepwarren/internal/worldgen"
)

// generationCacheCapacity bounds the in-memory completed-chunk LRU (C2).
const generationCacheCapacity = 256

// Daemon is the core DeepWarren runtime: one sqlite-backed world, one
// Intent engine, one HTTP API. Grounded on the teacher's Daemon shape
// (Config/DB/Server/cancel plus a New/NewWithConfig/Serve/Close
// lifecycle) with every P2P/federation/marketplace component stripped —
// this server has exactly one process to run, not a mesh to join.
type Daemon struct {
	Config Config
	DB     *sqlite.DB
	Engine *engine.Engine
	Server *api.Server
	Health *health.Checker
	Hub    *api.EventHub
	cancel context.CancelFunc
}

// New creates a Daemon from the on-disk config (or defaults).
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig wires every subsystem: storage, world generation, the
// Intent engine, health checks, and the HTTP API, then bootstraps the
// dungeon's starting town if it does not already exist (C6).
func NewWithConfig(cfg Config) (*Daemon, error) {
	db, err := sqlite.Open(cfg.Storage.Dir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	repos := engine.Repos{
		Seeds:     db,
		Chunks:    db,
		Spaces:    db,
		Entities:  db,
		Players:   db,
		Quests:    db,
		Corpses:   db,
		Templates: db,
		Treasure:  db,
	}

	llmClient, err := llm.New(resolveAPIKey(cfg.Model.APIKeyEnv))
	var domainLLM domain.LlmClient
	if err != nil {
		if err != domain.ErrNoAPIKey {
			db.Close()
			return nil, fmt.Errorf("init llm client: %w", err)
		}
		log.Printf("[daemon] no model API key configured (%s) — world generation falls back to deterministic prose", cfg.Model.APIKeyEnv)
	} else {
		domainLLM = llmClient
	}

	cache := gencache.New(generationCacheCapacity)
	lore := worldgen.NewLore(domainLLM, cfg.Model.Default)
	generator := worldgen.NewGenerator(db, db, cache, lore, domainLLM, cfg.Model.Default)
	expander := frontier.New(db, generator)
	skillEngine := skill.NewEngine()
	navState := nav.NewState(db, db, db, skillEngine, expander)

	seed := cfg.World.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	init := worldgen.NewInitializer(db, db, db, db, generator)
	globalLore := fmt.Sprintf("The dungeon beneath %s: a forgotten warren carved into the bedrock, older than any living memory.", cfg.World.Name)
	if _, err := init.Ensure(context.Background(), uint64(seed), globalLore, "damp limestone caverns"); err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrap world: %w", err)
	}

	eng := engine.New(repos, navState, skillEngine, turn.NewQueue(), domainLLM, cfg.Model.Default, seed)

	healthChecker := health.NewChecker(db, cfg.Storage.Dir)
	hub := api.NewEventHub()

	srv := api.NewServer(healthChecker, hub, cfg.API.CORSOrigins)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}

	return &Daemon{
		Config: cfg,
		DB:     db,
		Engine: eng,
		Server: srv,
		Health: healthChecker,
		Hub:    hub,
	}, nil
}

// resolveAPIKey reads the environment variable named by envVar. DeepWarren
// never stores a literal key in config — only the name of the variable
// that holds one (§6's model-call fallback discipline starts here: no
// key configured is a normal, supported state, not an error).
func resolveAPIKey(envVar string) string {
	if envVar == "" {
		return ""
	}
	return os.Getenv(envVar)
}

// Serve starts the health-check loop and the HTTP API, blocking until the
// server stops or ctx is canceled. SIGINT/SIGTERM trigger a graceful
// shutdown with a 30s drain, same as the teacher's daemon.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	go d.Health.Run(ctx)

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("DeepWarren serving %q on http://%s\n", d.Config.World.Name, addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close releases the daemon's resources without waiting for a signal —
// used by the interactive CLI session runner, which never opens a
// listening socket.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
