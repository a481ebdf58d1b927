package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

// BuildVersion подставляется при сборке: -ldflags "-X main.BuildVersion=..."
var BuildVersion = "dev"

func main() {
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "numanim",
		Short: "Анимация чисел: flip и scroll",
		Long: `numanim renders numeric text animations.

flip cycles every digit until it locks on the target, optionally
right to left like an odometer. scroll rolls every digit through a
random distance and eases it to rest.`,
		Example: `  # одна анимация в GIF
  numanim render --effect flip --odometer 1,204

  # последовательность значений счётчика
  numanim render --effect scroll --format mp4 100 250 1000

  # сценарий (по умолчанию самый свежий в input/scenarios)
  numanim batch input/scenarios/dashboard.yaml

  # живой просмотр в терминале
  numanim preview 2024`,
		SilenceUsage: true,
		Version:      BuildVersion,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(debug)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Подробный лог")

	rootCmd.AddCommand(renderCmd(), batchCmd(), previewCmd(), demoCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "[-] Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
	})))
}
