// Command clipvaultd is the daemon (§6): it runs the selection monitor and
// serves captured events to any number of front-ends over the streaming
// transport.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"google.golang.org/grpc"

	"github.com/Sathamlet92/clipboard/internal/config"
	"github.com/Sathamlet92/clipboard/internal/monitor"
	"github.com/Sathamlet92/clipboard/internal/monitor/wayland"
	"github.com/Sathamlet92/clipboard/internal/monitor/x11"
	"github.com/Sathamlet92/clipboard/internal/transport"
)

var version = "dev"

func init() {
	pfset := rootCommand.PersistentFlags()
	pfset.CountP("verbose", "v", "set log level")
	pfset.BoolP("quiet", "q", false, "suppress all the logs")

	viper.SetEnvPrefix("clipvaultd")
	viper.AutomaticEnv()
}

var rootCommand = &cobra.Command{
	Use:   "clipvaultd [server_address]",
	Short: "Clipboard selection capture daemon",
	Args:  cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return err
		}

		level := log.ErrorLevel - log.Level(viper.GetInt("verbose")*4)
		if viper.GetBool("quiet") {
			level = log.Level(math.MaxInt32)
		}
		logger := log.NewWithOptions(os.Stderr, log.Options{TimeFormat: time.RFC822, Level: level})
		slog.SetDefault(slog.New(logger))
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		address := config.DefaultDaemonAddress
		if len(args) == 1 {
			address = args[0]
		}
		return run(cmd.Context(), address)
	},
}

func run(ctx context.Context, address string) error {
	network, path, err := parseAddress(address)
	if err != nil {
		return err
	}
	if network == "unix" {
		_ = os.Remove(path)
	}

	lis, err := net.Listen(network, path)
	if err != nil {
		return fmt.Errorf("clipvaultd: listen %s: %w", address, err)
	}
	defer lis.Close()

	server := transport.NewServer()
	grpcServer := grpc.NewServer()
	transport.RegisterClipboardServiceServer(grpcServer, server)

	backend := selectBackend()
	slog.Info("clipvaultd starting", "version", version, "address", address, "backend", backend)

	monCtx, cancelMonitor := context.WithCancel(ctx)
	defer cancelMonitor()

	go func() {
		err := backend.Run(monCtx, func(ev monitor.ClipboardData) {
			server.Broadcast(transport.ClipboardEvent{
				Data:        ev.Data,
				SourceApp:   ev.SourceApp,
				WindowTitle: ev.WindowTitle,
				Timestamp:   ev.TimestampMS / 1000,
				MimeType:    ev.MimeType,
				ContentType: transport.ContentType(ev.Type),
			})
		})
		if err != nil && monCtx.Err() == nil {
			slog.Error("selection monitor terminated", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		server.Close()
		grpcServer.GracefulStop()
	}()

	if err := grpcServer.Serve(lis); err != nil {
		return fmt.Errorf("clipvaultd: serve: %w", err)
	}
	return nil
}

// selectBackend implements §4.1's startup backend choice.
func selectBackend() monitor.Monitor {
	if monitor.SelectBackend() == "wayland" {
		return wayland.New()
	}
	return x11.New()
}

// parseAddress splits a "unix:///path" or "tcp://host:port"-style address
// into net.Listen's network and address arguments.
func parseAddress(address string) (network, path string, err error) {
	switch {
	case strings.HasPrefix(address, "unix://"):
		return "unix", strings.TrimPrefix(address, "unix://"), nil
	case strings.HasPrefix(address, "tcp://"):
		return "tcp", strings.TrimPrefix(address, "tcp://"), nil
	default:
		return "", "", fmt.Errorf("clipvaultd: unsupported address scheme %q", address)
	}
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := fang.Execute(
		ctx,
		rootCommand,
		fang.WithNotifySignal(syscall.SIGINT, syscall.SIGTERM),
		fang.WithVersion(version),
	)
	if err != nil {
		os.Exit(1)
	}
}
