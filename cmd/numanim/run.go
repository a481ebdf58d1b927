package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ivlev/numanim/internal/config"
	"github.com/ivlev/numanim/internal/engine"
	"github.com/ivlev/numanim/internal/scenario"
	"github.com/ivlev/numanim/internal/system"
)

// runProject renders the scenario with cfg and prints where things went.
func runProject(ctx context.Context, cfg *config.Config, s *scenario.Scenario) error {
	if err := s.Validate(); err != nil {
		return err
	}
	system.InitResourceLimits()
	if err := os.MkdirAll(cfg.OutputPath, 0755); err != nil {
		return err
	}

	project, err := engine.NewProject(cfg, s.Items)
	if err != nil {
		return err
	}
	results, err := project.Run(ctx)
	if err != nil {
		return fmt.Errorf("ошибка проекта: %w", err)
	}

	for _, r := range results {
		fmt.Printf("[+++] %s: %s (%dx%d, %d кадров, %.2fs)\n",
			r.Name, r.Output, r.Width, r.Height, r.Frames+r.HoldFrames, r.Elapsed.Seconds())
	}
	return nil
}
