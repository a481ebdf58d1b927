package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ivlev/numanim/internal/scenario"
)

func batchCmd() *cobra.Command {
	var ef exportFlags
	cmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "Отрендерить все элементы сценария",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				if err := os.MkdirAll(scenario.DefaultDir, 0755); err != nil {
					return err
				}
				latest, err := scenario.FindLatestScenario(scenario.DefaultDir)
				if err != nil {
					return fmt.Errorf("%w. Положите сценарий в %s/", err, scenario.DefaultDir)
				}
				path = latest
				fmt.Printf("[*] Выбран сценарий: %s\n", path)
			}

			s, err := scenario.ReadScenario(path)
			if err != nil {
				return fmt.Errorf("ошибка чтения сценария: %w", err)
			}
			cfg, err := ef.resolve()
			if err != nil {
				return err
			}
			fmt.Printf("[*] Используется сценарий: %s (%d элементов)\n", path, len(s.Items))
			return runProject(cmd.Context(), cfg, s)
		},
	}
	bindExport(cmd.Flags(), &ef)
	return cmd
}
