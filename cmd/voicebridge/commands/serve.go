package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/voicebridge/voicebridge/cmd/voicebridge/internal/config"
	"github.com/voicebridge/voicebridge/pkg/azrealtime"
	"github.com/voicebridge/voicebridge/pkg/relay"
)

var (
	flagAddr      string
	flagConfig    string
	flagStaticDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the relay server",
	Long: `Run the relay server.

Listens for browser WebSocket connections on /ws and bridges each one
to its own Azure OpenAI Realtime session. Without configured
credentials the server still starts; clients get a configuration error
when they try to start a session.

Endpoints:
  GET /ws                client session channel (WebSocket)
  GET /api/voice-config  voice catalog and option ranges (JSON)
  GET /                  static UI files`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "HTTP listen address (default :8080)")
	serveCmd.Flags().StringVar(&flagConfig, "config", "", "YAML config file")
	serveCmd.Flags().StringVar(&flagStaticDir, "static", "", "static UI directory (default static)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// Best-effort: a missing .env just means plain environment config.
	_ = godotenv.Load()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagAddr != "" {
		cfg.Addr = flagAddr
	}
	if flagStaticDir != "" {
		cfg.StaticDir = flagStaticDir
	}

	level := slog.LevelInfo
	if IsVerbose() {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
	logger := slog.Default()

	var dial relay.Dialer
	if cfg.HasCredentials() {
		client, err := azrealtime.NewClient(cfg.Azure.Endpoint, cfg.Azure.APIKey,
			azrealtime.WithDeployment(cfg.Azure.Deployment),
			azrealtime.WithAPIVersion(cfg.Azure.APIVersion),
		)
		if err != nil {
			return fmt.Errorf("configure upstream client: %w", err)
		}
		dial = func(ctx context.Context) (relay.Upstream, error) {
			return client.Connect(ctx)
		}
	} else {
		logger.Warn("Azure OpenAI credentials not configured, sessions will be rejected")
	}

	gateway := relay.NewGateway(dial, relay.WithLogger(logger))

	mux := http.NewServeMux()
	mux.Handle("/ws", &relay.Handler{Gateway: gateway, Logger: logger})
	mux.Handle("/api/voice-config", relay.VoiceConfigHandler())
	if info, err := os.Stat(cfg.StaticDir); err == nil && info.IsDir() {
		mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))
	} else {
		logger.Info("static directory not found, UI serving disabled", "dir", cfg.StaticDir)
	}

	srv := &http.Server{Addr: cfg.Addr, Handler: mux}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("Shutting down...")
		cancel()
	}()

	fmt.Println(banner(cfg))
	logger.Info("server listening", "addr", cfg.Addr,
		"deployment", cfg.Azure.Deployment, "api_version", cfg.Azure.APIVersion)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}

	logger.Info("server stopped")
	return nil
}

// banner renders the startup banner.
func banner(cfg *config.Config) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff9f"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("#6e7681"))

	upstream := "not configured"
	if cfg.HasCredentials() {
		upstream = cfg.Azure.Endpoint
	}

	return title.Render("voicebridge") + "\n" +
		dim.Render("  listen:   ") + cfg.Addr + "\n" +
		dim.Render("  upstream: ") + upstream + "\n" +
		dim.Render("  ws:       ") + "/ws" + "\n" +
		dim.Render("  config:   ") + "/api/voice-config"
}
