package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ivlev/numanim/internal/config"
	"github.com/ivlev/numanim/internal/scenario"
)

const autoPath = "auto"

func renderCmd() *cobra.Command {
	var (
		req  config.Request
		ef   exportFlags
		save string
	)
	cmd := &cobra.Command{
		Use:   "render [flags] TEXT...",
		Short: "Отрендерить анимацию для одного или нескольких значений",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ef.resolve()
			if err != nil {
				return err
			}
			s := scenario.Sequence(req, args)
			if save != "" {
				path := save
				if path == autoPath {
					if err := os.MkdirAll(scenario.DefaultDir, 0755); err != nil {
						return err
					}
					path = scenario.GenerateScenarioPath(scenario.DefaultDir)
				}
				if err := scenario.WriteScenario(s, path); err != nil {
					return fmt.Errorf("ошибка записи сценария: %w", err)
				}
				fmt.Printf("[*] Сценарий сохранён: %s\n", path)
			}
			return runProject(cmd.Context(), cfg, s)
		},
	}
	bindRequest(cmd.Flags(), &req)
	bindExport(cmd.Flags(), &ef)
	cmd.Flags().StringVar(&save, "save-scenario", "", "Сохранить запрос как сценарий (без значения - input/scenarios/scenario_<время>.yaml)")
	cmd.Flags().Lookup("save-scenario").NoOptDefVal = autoPath
	return cmd
}
