package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/learn-arcade/internal/config"
	"github.com/vovakirdan/learn-arcade/internal/platform/tui"
	"github.com/vovakirdan/learn-arcade/internal/platform/web"
	"github.com/vovakirdan/learn-arcade/internal/storage"
)

var (
	flagSSHAddr  string
	flagHTTPAddr string
	flagHostKey  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the games over SSH and HTTP",
	Long: `Start an SSH server with the game menu and an HTTP server with the
JSON API and websocket play.

Each SSH connection gets its own session with the game picker menu. Web
clients open /api/games/{game}/play as a websocket. The API is described
at /openapi.json and browsable at /docs.

Settings come from the environment and flags override them:
  LEARNARCADE_SSH_ADDR      SSH listen address (default :23234, "off" disables)
  LEARNARCADE_HTTP_ADDR     HTTP listen address (default :8080, "off" disables)
  LEARNARCADE_HOST_KEY      SSH host key path (auto-generated if unset)
  LEARNARCADE_DB            content library path
  LEARNARCADE_CONTENT_DIR   directory with <game>.yaml content files
  LEARNARCADE_LOG_LEVEL     debug, info, warn, error
  LEARNARCADE_IDLE_TIMEOUT  SSH idle timeout (default 30m)
  LEARNARCADE_TICK_RATE     websocket play tick rate (default 10)

Examples:
  learnarcade serve
  learnarcade serve --ssh :2222 --http :8081
  learnarcade serve --http off
  learnarcade serve --host-key ./my_host_key

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, \"off\" disables)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP server address (host:port, \"off\" disables)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
}

func runServe(cmd *cobra.Command, _ []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, cmd); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serve(ctx context.Context, cmd *cobra.Command) error {
	cfg, err := config.LoadServe()
	if err != nil {
		return err
	}
	applyServeFlags(&cfg, cmd)

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "learnarcade",
		Level:           cfg.Level(),
	})

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening content library: %w", err)
	}
	defer store.Close()
	logger.Info("content library ready", "path", cfg.DBPath)

	flagContentDir = cfg.ContentDir
	if err := setupGames(store, "", logger); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.SSHAddr != "off" {
		sshServer, err := tui.NewSSHServer(tui.SSHServerConfig{
			Address:     cfg.SSHAddr,
			HostKeyPath: cfg.HostKeyPath,
			IdleTimeout: cfg.IdleTimeout,
			TickRate:    flagFPS,
		}, logger.WithPrefix("ssh"))
		if err != nil {
			return fmt.Errorf("creating ssh server: %w", err)
		}
		g.Go(func() error { return sshServer.Run(gctx) })
	}

	if cfg.HTTPAddr != "off" {
		httpServer := web.New(web.Config{Addr: cfg.HTTPAddr, TickRate: cfg.TickRate}, logger.WithPrefix("http"), store)
		g.Go(func() error { return httpServer.Run(gctx) })
	}

	return g.Wait()
}

// applyServeFlags lets explicitly set flags win over the environment.
func applyServeFlags(cfg *config.ServeConfig, cmd *cobra.Command) {
	if cmd.Flags().Changed("ssh") {
		cfg.SSHAddr = flagSSHAddr
	}
	if cmd.Flags().Changed("http") {
		cfg.HTTPAddr = flagHTTPAddr
	}
	if cmd.Flags().Changed("host-key") {
		cfg.HostKeyPath = flagHostKey
	}
	if cmd.Flags().Changed("db") {
		cfg.DBPath = flagDBPath
	}
	if cmd.Flags().Changed("content-dir") {
		cfg.ContentDir = flagContentDir
	}
}
