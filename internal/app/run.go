package app

import (
	"context"
	"fmt"

	"github.com/vk/helix/internal/ctxlog"
)

// Run executes the tool: start the optional status server, run the single
// resolution pass, and render the capability report. With a status port
// configured, Run then blocks serving HTTP until the context is cancelled,
// so operators can query /features and trigger re-resolution on hardware
// changes.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	serving := a.config.StatusPort > 0
	if serving {
		a.startStatusServer(ctx)
	}

	if err := a.features.Resolve(ctx); err != nil {
		return fmt.Errorf("feature resolution failed: %w", err)
	}

	if err := a.writeReport(a.outW); err != nil {
		return fmt.Errorf("failed to render capability report: %w", err)
	}

	if serving {
		<-ctx.Done()
		return a.Close()
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
