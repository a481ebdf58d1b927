package config

import (
	"fmt"
	"strings"
)

// Названия эффектов
const (
	EffectFlip   = "flip"
	EffectScroll = "scroll"
)

// Config описывает параметры экспорта (не самой анимации).
type Config struct {
	OutputPath   string // каталог для результатов
	Format       string // gif, mp4, mov, mkv, webm или png (последовательность кадров)
	FPS          int
	Hold         float64 // мс, сколько держать финальный кадр
	Workers      int
	VideoEncoder string
	Quality      int
	Seed         int64
	ShowStats    bool
	Verify       bool
	Detector     string // ink или contrast
	BuildVersion string
}

// Request is a single animation run. Any change to any field
// means a full re-run.
type Request struct {
	Effect     string  `yaml:"effect"`
	Text       string  `yaml:"text"`
	Duration   float64 `yaml:"duration,omitempty"`
	Background string  `yaml:"background,omitempty"`
	Color      string  `yaml:"color,omitempty"`
	FontSize   Size    `yaml:"fontSize,omitempty"`
	FontWeight string  `yaml:"fontWeight,omitempty"`
	FontFamily string  `yaml:"fontFamily,omitempty"`

	// flip
	StopStep        float64 `yaml:"stopStep,omitempty"`
	SpeedMultiplier float64 `yaml:"speedMultiplier,omitempty"`
	Odometer        bool    `yaml:"odometer,omitempty"`

	// scroll
	Rolls float64 `yaml:"rolls,omitempty"`
}

const (
	DefaultDuration        = 1000.0
	DefaultBackground      = "transparent"
	DefaultColor           = "#000000d9"
	DefaultFontWeight      = "normal"
	DefaultFontFamily      = "monospace"
	DefaultStopStep        = 100.0
	DefaultSpeedMultiplier = 5.0
	DefaultRolls           = 6.0

	// FallbackFontSize is used when the size string has no number in it.
	FallbackFontSize = 60.0
)

// FlipDefaults returns a flip request with every option at its default.
func FlipDefaults(text string) Request {
	return Request{
		Effect:          EffectFlip,
		Text:            text,
		Duration:        DefaultDuration,
		Background:      DefaultBackground,
		Color:           DefaultColor,
		FontSize:        SizeOf("40px"),
		FontWeight:      DefaultFontWeight,
		FontFamily:      DefaultFontFamily,
		StopStep:        DefaultStopStep,
		SpeedMultiplier: DefaultSpeedMultiplier,
	}
}

// ScrollDefaults returns a scroll request with every option at its default.
func ScrollDefaults(text string) Request {
	return Request{
		Effect:     EffectScroll,
		Text:       text,
		Duration:   DefaultDuration,
		Background: DefaultBackground,
		Color:      DefaultColor,
		FontSize:   SizeOf("12px"),
		FontWeight: DefaultFontWeight,
		FontFamily: DefaultFontFamily,
		Rolls:      DefaultRolls,
	}
}

// WithDefaults fills zero-valued fields from the effect's defaults.
// Odometer is a plain bool and is left as is.
func (r Request) WithDefaults() Request {
	var d Request
	switch strings.ToLower(r.Effect) {
	case EffectScroll:
		d = ScrollDefaults(r.Text)
	default:
		d = FlipDefaults(r.Text)
	}
	if r.Effect == "" {
		r.Effect = d.Effect
	}
	r.Effect = strings.ToLower(r.Effect)
	if r.Duration == 0 {
		r.Duration = d.Duration
	}
	if r.Background == "" {
		r.Background = d.Background
	}
	if r.Color == "" {
		r.Color = d.Color
	}
	if r.FontSize.IsZero() {
		r.FontSize = d.FontSize
	}
	if r.FontWeight == "" {
		r.FontWeight = d.FontWeight
	}
	if r.FontFamily == "" {
		r.FontFamily = d.FontFamily
	}
	if r.StopStep == 0 {
		r.StopStep = d.StopStep
	}
	if r.SpeedMultiplier == 0 {
		r.SpeedMultiplier = d.SpeedMultiplier
	}
	if r.Rolls == 0 {
		r.Rolls = d.Rolls
	}
	return r
}

// ResolvedFontSize returns the numeric font size in pixels.
func (r Request) ResolvedFontSize() float64 {
	return r.FontSize.Resolve(FallbackFontSize)
}

// Validate checks the request is something the CLI can render.
// The engines themselves accept anything.
func (r Request) Validate() error {
	switch r.Effect {
	case EffectFlip, EffectScroll:
	default:
		return fmt.Errorf("unknown effect %q (want %s or %s)", r.Effect, EffectFlip, EffectScroll)
	}
	if r.Duration < 0 {
		return fmt.Errorf("duration must not be negative: %v", r.Duration)
	}
	return nil
}

// Validate checks the export settings.
func (c *Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive: %d", c.FPS)
	}
	if c.Hold < 0 {
		return fmt.Errorf("hold must not be negative: %v", c.Hold)
	}
	switch strings.ToLower(c.Format) {
	case "", "gif", "png", "mp4", "mov", "mkv", "webm":
	default:
		return fmt.Errorf("unknown output format %q", c.Format)
	}
	return nil
}

// Ext returns the output file extension for Format. PNG sequences go to a
// directory and get none.
func (c *Config) Ext() string {
	switch f := strings.ToLower(c.Format); f {
	case "":
		return ".gif"
	case "png":
		return ""
	default:
		return "." + f
	}
}

// FrameInterval returns the time between frames in ms.
func (c *Config) FrameInterval() float64 {
	return 1000.0 / float64(c.FPS)
}
