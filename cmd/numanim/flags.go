package main

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/ivlev/numanim/internal/config"
	"github.com/ivlev/numanim/internal/system"
)

// bindRequest registers the animation options on fs.
func bindRequest(fs *pflag.FlagSet, req *config.Request) {
	fs.StringVarP(&req.Effect, "effect", "e", config.EffectFlip, "Эффект: flip или scroll")
	fs.Float64Var(&req.Duration, "duration", config.DefaultDuration, "Длительность анимации, мс")
	fs.StringVar(&req.Background, "background", "", "Цвет фона (CSS), по умолчанию прозрачный")
	fs.StringVar(&req.Color, "color", "", "Цвет текста (CSS)")
	fs.Var(&req.FontSize, "font-size", "Размер шрифта: 40, \"40px\" (по умолчанию 40px для flip, 12px для scroll)")
	fs.StringVar(&req.FontWeight, "font-weight", "", "Насыщенность: normal, bold, 700")
	fs.StringVar(&req.FontFamily, "font-family", "", "Семейство шрифта (monospace, sans-serif)")
	fs.Float64Var(&req.StopStep, "stop-step", 0, "flip: шаг остановки разрядов в режиме odometer, мс")
	fs.Float64Var(&req.SpeedMultiplier, "speed", 0, "flip: множитель скорости перебора цифр")
	fs.BoolVar(&req.Odometer, "odometer", false, "flip: останавливать разряды справа налево")
	fs.Float64Var(&req.Rolls, "rolls", 0, "scroll: сколько полных оборотов проходит цифра")
}

type exportFlags struct {
	cfg     config.Config
	encoder string
}

func bindExport(fs *pflag.FlagSet, ef *exportFlags) {
	fs.StringVarP(&ef.cfg.OutputPath, "out", "o", "output", "Каталог для результатов")
	fs.StringVarP(&ef.cfg.Format, "format", "f", "gif", "Формат: gif, mp4, mov, mkv, webm, png")
	fs.IntVar(&ef.cfg.FPS, "fps", 60, "FPS")
	fs.Float64Var(&ef.cfg.Hold, "hold", 500, "Сколько держать финальный кадр, мс")
	fs.IntVar(&ef.cfg.Workers, "workers", runtime.NumCPU(), "Потоки")
	fs.StringVar(&ef.encoder, "encoder", "auto", "Видеокодек ffmpeg (auto - лучший доступный H.264)")
	fs.IntVar(&ef.cfg.Quality, "quality", 0, "Качество видео (0 - авто, x264: CRF 1-51, VideoToolbox: битрейт = Q*100кбит/с)")
	fs.Int64Var(&ef.cfg.Seed, "seed", 0, "Зерно для scroll (0 - случайное)")
	fs.BoolVar(&ef.cfg.ShowStats, "stats", false, "Показать отчёт о производительности")
	fs.BoolVar(&ef.cfg.Verify, "verify", false, "Проверить, что финальный кадр показывает одну строку")
	fs.StringVar(&ef.cfg.Detector, "detector", "ink", "Детектор для --verify: ink или contrast")
}

// resolve fills the settings that depend on the environment.
func (ef *exportFlags) resolve() (*config.Config, error) {
	cfg := ef.cfg
	cfg.BuildVersion = BuildVersion
	cfg.Format = strings.ToLower(cfg.Format)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	switch cfg.Format {
	case "gif", "png":
	default:
		if !system.HasFFmpeg() {
			return nil, fmt.Errorf("для формата %s нужен ffmpeg в PATH", cfg.Format)
		}
		cfg.VideoEncoder = ef.encoder
		if cfg.VideoEncoder == "" || cfg.VideoEncoder == "auto" {
			name, _ := system.GetBestH264Encoder()
			cfg.VideoEncoder = name
			if name != "libx264" {
				fmt.Printf("[*] Обнаружено аппаратное ускорение: %s\n", name)
			}
		}
		if cfg.Quality == 0 {
			cfg.Quality = system.DefaultQuality(cfg.VideoEncoder)
		}
		if !system.CheckFilterSupport("pad") {
			fmt.Println("[!] ffmpeg не сообщает о фильтре pad, нечётные размеры могут не закодироваться")
		}
	}
	return &cfg, nil
}
