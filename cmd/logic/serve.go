package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/logic-arcade/internal/platform/tui"
	"github.com/vovakirdan/logic-arcade/internal/transport/ws"
)

var (
	flagSSHAddr     string
	flagWSAddr      string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the game over SSH and WebSocket",
	Long: `Start an SSH server, a WebSocket server, or both.

Each SSH connection gets its own level select and play screen.
Each WebSocket connection plays one level, see the protocol below.
Stars are stored per server (all players share the same database).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.logic-arcade/host_ed25519

WebSocket protocol (JSON text frames on /ws):
  -> {"type":"HELLO","pack":"campaign","level":3}
  -> {"type":"TOGGLE","index":0}
  -> {"type":"RESET"}
  <- {"type":"STATE", ...snapshot}
  <- {"type":"ERROR","message":"..."}

Examples:
  logic serve                        # SSH on the configured address
  logic serve --ssh :2222            # Listen on port 2222
  logic serve --ws :8080             # SSH and WebSocket
  logic serve --ssh "" --ws :8080    # WebSocket only

Users can connect with:
  ssh localhost -p 2222`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from settings, empty to disable)")
	serveCmd.Flags().StringVar(&flagWSAddr, "ws", "", "WebSocket server address (disabled when empty)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) {
	env := mustSetup(false)
	defer env.Close()

	sshAddr := env.Settings.Server.SSHAddr
	if cmd.Flags().Changed("ssh") {
		sshAddr = flagSSHAddr
	}
	wsAddr := env.Settings.Server.WSAddr
	if cmd.Flags().Changed("ws") {
		wsAddr = flagWSAddr
	}
	hostKey := env.Settings.Server.HostKey
	if flagHostKey != "" {
		hostKey = flagHostKey
	}

	if sshAddr == "" && wsAddr == "" {
		fmt.Fprintln(os.Stderr, "Error: nothing to serve, set --ssh or --ws")
		env.Close()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	running := 0

	if sshAddr != "" {
		cfg := tui.DefaultSSHServerConfig()
		cfg.Address = sshAddr
		cfg.HostKeyPath = hostKey
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
		cfg.Runtime = env.Runtime

		svc := env.Services
		svc.Logger = svc.Logger.WithPrefix("logic-ssh")
		server, err := tui.NewSSHServer(cfg, svc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
			env.Close()
			os.Exit(1)
		}

		fmt.Printf("Starting SSH server on %s\n", server.Addr())
		running++
		go func() { errCh <- server.ListenAndServe(ctx) }()
	}

	if wsAddr != "" {
		server := ws.NewServer(env.Services, env.Services.Logger.WithPrefix("logic-ws"), env.Runtime.CountdownPeriod)
		fmt.Printf("Starting WebSocket server on %s (path /ws)\n", wsAddr)
		running++
		go func() { errCh <- server.ListenAndServe(ctx, wsAddr) }()
	}

	fmt.Println("Press Ctrl+C to stop")

	failed := false
	for range running {
		if err := <-errCh; err != nil {
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			failed = true
			// Bring the other server down too
			stop()
		}
	}
	if failed {
		env.Close()
		os.Exit(1)
	}
}
