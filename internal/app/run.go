package app

import (
	"context"
	"fmt"

	"github.com/vk/framegraphgo/internal/arena"
	"github.com/vk/framegraphgo/internal/ctxlog"
)

// Run executes the main application logic: build the frame graph from the
// loaded model, compile it, and execute it against a fresh arena.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	graph, err := a.buildGraph(ctx)
	if err != nil {
		return fmt.Errorf("failed to build frame graph: %w", err)
	}
	a.logger.Debug("Frame graph declared.",
		"passes", len(a.model.Frame.Passes),
		"resources", len(a.model.Frame.Resources),
		"imports", len(a.model.Frame.Imports))

	if err := graph.Compile(ctx); err != nil {
		return fmt.Errorf("failed to compile frame graph: %w", err)
	}
	a.logger.Info("Frame graph compiled.")

	alloc, err := arena.New(a.config.PoolSize)
	if err != nil {
		return err
	}

	a.logger.Info("Executing frame...")
	if err := graph.Execute(ctx, alloc); err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	a.logger.Info("Frame executed.", "slots_allocated", alloc.Allocated(), "slots_reused", alloc.Reused())

	a.logger.Debug("App.Run method finished.")
	return nil
}
