// Command clipvault is the front-end (§6): it consumes the daemon's event
// stream, runs the enrichment pipeline, and serves search/delete/paste
// operations over the same store.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/carapace-sh/carapace"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Sathamlet92/clipboard/internal/config"
	"github.com/Sathamlet92/clipboard/internal/embedvec"
	"github.com/Sathamlet92/clipboard/internal/enrich"
	"github.com/Sathamlet92/clipboard/internal/langdetect"
	"github.com/Sathamlet92/clipboard/internal/ocr"
	"github.com/Sathamlet92/clipboard/internal/search"
	"github.com/Sathamlet92/clipboard/internal/store"
	"github.com/Sathamlet92/clipboard/internal/transport"
)

var version = "dev"

// app bundles every long-lived service the subcommands share, built once
// in rootCommand's PersistentPreRunE.
type app struct {
	paths    config.Paths
	store    *store.Store
	detector *langdetect.Detector
	embedder *embedvec.Service
	ocr      *ocr.Engine
	engine   *search.Engine
	pipeline *enrich.Pipeline
}

var current *app

func init() {
	pfset := rootCommand.PersistentFlags()
	pfset.CountP("verbose", "v", "set log level")
	pfset.BoolP("quiet", "q", false, "suppress all the logs")
	pfset.String("address", config.DefaultDaemonAddress, "daemon address to connect to")

	viper.SetEnvPrefix("clipvault")
	viper.AutomaticEnv()

	carapace.Gen(rootCommand)
}

var rootCommand = &cobra.Command{
	Use:   "clipvault",
	Short: "Clipboard history search and management",
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

		a, err := buildApp()
		if err != nil {
			return err
		}
		current = a
		return nil
	},
}

func buildApp() (*app, error) {
	paths, err := config.New()
	if err != nil {
		return nil, fmt.Errorf("clipvault: resolve paths: %w", err)
	}
	if err := paths.EnsureRoot(); err != nil {
		return nil, fmt.Errorf("clipvault: create %s: %w", paths.Root, err)
	}

	st, err := store.Open(paths.DatabasePath())
	if err != nil {
		return nil, err
	}

	detector := langdetect.New(paths.LanguageModelPath(), paths.LanguageModelDir(), langdetect.DefaultThreshold)
	embedder := embedvec.New(paths.EmbeddingModelPath())
	ocrEngine := ocr.New(paths.TessdataDir())

	engine := search.New(st, embedder)
	pipeline := enrich.New(st, detector, embedder, ocrEngine, nil)

	return &app{
		paths:    paths,
		store:    st,
		detector: detector,
		embedder: embedder,
		ocr:      ocrEngine,
		engine:   engine,
		pipeline: pipeline,
	}, nil
}

func (a *app) Close() {
	if a.detector != nil {
		a.detector.Close()
	}
	if a.embedder != nil {
		a.embedder.Close()
	}
	if a.ocr != nil {
		a.ocr.Close()
	}
	if a.store != nil {
		a.store.Close()
	}
}

func daemonClient() *transport.Client {
	return transport.NewClient(viper.GetString("address"))
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := fang.Execute(
		ctx,
		rootCommand,
		fang.WithVersion(version),
	)
	if current != nil {
		current.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}
