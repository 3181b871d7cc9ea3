package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/KirkDiggler/pokeduel/internal/dex"
	"github.com/KirkDiggler/pokeduel/internal/discord"
	"github.com/KirkDiggler/pokeduel/internal/errors"
	"github.com/KirkDiggler/pokeduel/internal/narration"
	"github.com/KirkDiggler/pokeduel/internal/observe"
	"github.com/KirkDiggler/pokeduel/internal/orchestrators/duel"
	"github.com/KirkDiggler/pokeduel/internal/pkg/idgen"
	"github.com/KirkDiggler/pokeduel/internal/render"
)

var (
	guildID       string
	storeInterval time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Discord bot",
	Long:  `Connect to Discord and serve duels, with Prometheus metrics and a gRPC health endpoint alongside.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&guildID, "guild", "", "register commands in one guild only")
	serveCmd.Flags().DurationVar(&storeInterval, "store-check-interval", 15*time.Second, "how often to ping the store")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	token, err := cfg.DiscordToken()
	if err != nil {
		return err
	}

	store, err := dex.Default()
	if err != nil {
		return errors.Wrap(err, "failed to load reference data")
	}

	repos, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer repos.Close()

	provider, err := observe.NewProvider(observe.ProviderConfig{Global: true})
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			slog.Warn("Failed to shut down metrics", "error", err)
		}
	}()

	metrics, err := observe.New(provider.Meter())
	if err != nil {
		return err
	}
	bus := events.NewBus()
	metrics.Subscribe(bus)

	router := discord.NewRouter()
	bot, err := discord.NewBot(&discord.BotConfig{Token: token, GuildID: guildID}, router)
	if err != nil {
		return err
	}

	sink, err := discord.NewChannelSink(&discord.SinkConfig{Session: bot.Session(), Duels: repos.duels})
	if err != nil {
		return err
	}

	svc, err := duel.NewOrchestrator(&duel.Config{
		IDGenerator: idgen.NewUUID("duel"),
		UserConfig:  repos.userConfig,
		Duels:       repos.duels,
		Dex:         store,
		Sink:        narration.Fanout{narration.NewLogSink(slog.Default().With("component", "narration")), sink},
		EventBus:    bus,
		Threads:     sink,
		Sprites:     render.SpriteIndex(cfg.Discord.Sprites),
	})
	if err != nil {
		return errors.Wrap(err, "failed to create duel orchestrator")
	}

	commands, err := discord.NewCommands(&discord.CommandsConfig{
		Duel:       svc,
		Duels:      repos.duels,
		UserConfig: repos.userConfig,
	})
	if err != nil {
		return err
	}
	commands.Register(router)

	if err := bot.Open(); err != nil {
		return err
	}
	defer func() {
		if err := bot.Close(); err != nil {
			slog.Warn("Failed to close discord session", "error", err)
		}
	}()

	healthServer := health.NewServer()
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(storeService, grpc_health_v1.HealthCheckResponse_SERVING)
	grpcServer := newGRPCServer(healthServer)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return bot.Run(gctx) })
	g.Go(func() error { return serveGRPC(gctx, grpcServer, cfg.Health.Addr) })
	g.Go(func() error { return serveMetrics(gctx, cfg.Metrics.Addr, provider.Handler()) })
	if repos.redis != nil {
		g.Go(func() error {
			watchStore(gctx, repos.redis, healthServer, storeInterval)
			return nil
		})
	}

	slog.Info("Bot running",
		"store", cfg.Store.Backend,
		"metrics_addr", cfg.Metrics.Addr,
		"health_addr", cfg.Health.Addr,
	)

	err = g.Wait()
	healthServer.Shutdown()
	slog.Info("Bot stopped")
	return err
}

// serveMetrics serves /metrics on addr until ctx is done.
func serveMetrics(ctx context.Context, addr string, handler http.Handler) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("Metrics server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- errors.WrapWithCode(err, errors.CodeUnavailable, "failed to serve metrics")
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "failed to shut down metrics server")
		}
		return nil
	case err := <-errChan:
		return err
	}
}
