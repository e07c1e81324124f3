package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/vk/helix/internal/app"
	"github.com/vk/helix/internal/cli"
	"github.com/vk/helix/internal/config"
	"github.com/vk/helix/internal/hcl"
	"github.com/vk/helix/internal/yamlcfg"
)

// main is the entrypoint for the helix capability tool.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW, logW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	helixApp, err := app.NewApp(outW, logW, appConfig, loaderFor(appConfig.ManifestPath))
	if err != nil {
		return err
	}

	return helixApp.Run(ctx)
}

// loaderFor picks the manifest loader from the path extension. Directories
// default to the HCL loader, matching the primary manifest format.
func loaderFor(path string) config.Loader {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return yamlcfg.NewLoader()
	default:
		return hcl.NewLoader()
	}
}
