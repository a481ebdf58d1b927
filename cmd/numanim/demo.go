package main

import (
	"github.com/spf13/cobra"

	"github.com/ivlev/numanim/internal/config"
	"github.com/ivlev/numanim/internal/scenario"
)

const demoText = "123456"

func demoCmd() *cobra.Command {
	var ef exportFlags
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Показать оба эффекта на " + demoText,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ef.resolve()
			if err != nil {
				return err
			}
			odometer := config.FlipDefaults(demoText)
			odometer.Odometer = true
			s := &scenario.Scenario{
				Version: scenario.Version,
				Items: []scenario.Item{
					{Name: "demo_flip", Request: config.FlipDefaults(demoText)},
					{Name: "demo_odometer", Request: odometer},
					{Name: "demo_scroll", Request: config.ScrollDefaults(demoText)},
				},
			}
			return runProject(cmd.Context(), cfg, s)
		},
	}
	bindExport(cmd.Flags(), &ef)
	return cmd
}
