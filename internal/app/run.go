package app

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/classkit/internal/ctxlog"
	"github.com/vk/classkit/internal/snapshot"
)

// Run executes the main application logic: construct a probe instance of
// every registered class to verify its defaults pipeline, report the class
// table, and write the snapshot image when configured.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	for _, c := range a.registry.Classes() {
		inst, err := a.registry.NewInstance(c.Name())
		if err != nil {
			return fmt.Errorf("probe construction of class %s failed: %w", c.Name(), err)
		}

		defaultsOnly := 0
		for i := 0; i < c.NumSlots(); i++ {
			if c.DefaultsOnlySlot(i) {
				defaultsOnly++
			}
		}
		base := "-"
		if c.Base() != nil {
			base = c.Base().Name()
		}
		fmt.Fprintf(a.outW, "class %-20s base=%-20s slots=%-3d defaults_only=%-3d custom=%d\n",
			c.Name(), base, inst.NumSlots(), defaultsOnly, len(c.CustomProperties()))
	}
	a.logger.Info("Class report complete.", "classes", len(a.registry.Classes()))

	if a.config.SnapshotPath != "" {
		img, err := snapshot.Build(a.registry)
		if err != nil {
			return fmt.Errorf("failed to build snapshot image: %w", err)
		}
		data, err := snapshot.Marshal(img)
		if err != nil {
			return fmt.Errorf("failed to marshal snapshot image: %w", err)
		}
		if err := os.WriteFile(a.config.SnapshotPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to write snapshot image: %w", err)
		}
		a.logger.Info("📦 Snapshot image written.", "path", a.config.SnapshotPath, "bytes", len(data))
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
