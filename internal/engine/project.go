package engine

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/numanim/internal/analyzer"
	"github.com/ivlev/numanim/internal/config"
	"github.com/ivlev/numanim/internal/effects"
	"github.com/ivlev/numanim/internal/frame"
	"github.com/ivlev/numanim/internal/scenario"
	"github.com/ivlev/numanim/internal/surface"
	"github.com/ivlev/numanim/internal/system"
	"github.com/ivlev/numanim/internal/video"
)

// SinkFactory opens the sink for one item once its frame size is known.
type SinkFactory func(ctx context.Context, path string, w, h int) (video.Sink, error)

// Project renders every scenario item offline: each item gets its own
// raster and virtual clock, and every frame goes to a sink.
type Project struct {
	Config   *config.Config
	Items    []scenario.Item
	NewSink  SinkFactory
	Detector analyzer.Detector
}

// Result describes one rendered item.
type Result struct {
	Name       string
	Output     string
	Frames     int
	HoldFrames int
	Width      int
	Height     int
	Elapsed    time.Duration
}

func NewProject(cfg *config.Config, items []scenario.Item) (*Project, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Project{Config: cfg, Items: items}
	p.NewSink = func(ctx context.Context, path string, w, h int) (video.Sink, error) {
		return video.NewSink(ctx, path, w, h, video.Options{
			FPS:     cfg.FPS,
			Encoder: cfg.VideoEncoder,
			Quality: cfg.Quality,
		})
	}
	if cfg.Verify {
		det, err := analyzer.NewDetector(cfg.Detector)
		if err != nil {
			return nil, err
		}
		p.Detector = det
	}
	return p, nil
}

func (p *Project) Run(ctx context.Context) ([]Result, error) {
	startTime := time.Now()
	if len(p.Items) == 0 {
		return nil, fmt.Errorf("нечего рендерить: список элементов пуст")
	}

	workers := p.Config.Workers
	if workers <= 0 || workers > len(p.Items) {
		workers = len(p.Items)
	}

	fmt.Println("--- [PROJECT: NUMBER ANIMATION] ---")
	fmt.Printf("[*] Элементов: %d | %d FPS | Потоков: %d\n", len(p.Items), p.Config.FPS, workers)
	fmt.Println("-----------------------------------")

	results := make([]Result, len(p.Items))
	var done atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range p.Items {
		i := i
		g.Go(func() error {
			item := p.Items[i]
			res, err := p.renderItem(gctx, i, item)
			if err != nil {
				return fmt.Errorf("элемент %s: %w", item.Name, err)
			}
			results[i] = res
			fmt.Printf("[>] Ready: %d/%d %s (%d кадров)\n", done.Add(1), len(p.Items), res.Output, res.Frames+res.HoldFrames)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if p.Config.ShowStats {
		p.report(results, time.Since(startTime))
	}
	return results, nil
}

// OutputFor resolves where an item is written.
func (p *Project) OutputFor(item scenario.Item) string {
	out := item.Output
	if out == "" {
		out = item.Name + p.Config.Ext()
	}
	if filepath.IsAbs(out) {
		return out
	}
	return filepath.Join(p.Config.OutputPath, out)
}

func (p *Project) renderItem(ctx context.Context, i int, item scenario.Item) (Result, error) {
	start := time.Now()
	res := Result{Name: item.Name, Output: p.OutputFor(item)}

	raster := surface.NewRaster()
	clock := frame.NewVirtual(0, p.Config.FPS)
	anim := NewAnimator(surface.Static(raster), clock, WithSeed(p.Config.Seed+int64(i)))
	anim.Play(item.Request)
	res.Width, res.Height = raster.Size()

	if dir := filepath.Dir(res.Output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return res, err
		}
	}
	sink, err := p.NewSink(ctx, res.Output, res.Width, res.Height)
	if err != nil {
		return res, err
	}

	var writeErr error
	emit := func() {
		if writeErr != nil {
			return
		}
		snap := raster.Snapshot()
		writeErr = sink.WriteFrame(snap)
		system.PutImage(snap)
	}
	clock.AfterFrame = func(float64) {
		emit()
		res.Frames++
	}

	limit := frameLimit(item.Request.WithDefaults().Duration, clock.Interval)
	for clock.Pending() > 0 {
		if err := ctx.Err(); err != nil {
			sink.Close()
			return res, err
		}
		if res.Frames >= limit {
			sink.Close()
			return res, fmt.Errorf("анимация не завершилась за %d кадров", limit)
		}
		clock.Tick()
		if writeErr != nil {
			sink.Close()
			return res, writeErr
		}
	}

	// последний кадр держим Hold мс
	res.HoldFrames = int(math.Round(p.Config.Hold / clock.Interval))
	for k := 0; k < res.HoldFrames && writeErr == nil; k++ {
		emit()
	}
	if writeErr != nil {
		sink.Close()
		return res, writeErr
	}

	if p.Detector != nil {
		if err := p.verify(raster, anim.Current()); err != nil {
			sink.Close()
			return res, fmt.Errorf("проверка финального кадра: %w", err)
		}
	}

	if err := sink.Close(); err != nil {
		return res, err
	}
	res.Elapsed = time.Since(start)
	slog.Debug("item rendered", "name", item.Name, "frames", res.Frames, "hold", res.HoldFrames, "size", fmt.Sprintf("%dx%d", res.Width, res.Height))
	return res, nil
}

// frameLimit bounds the frames a run may take before it counts as stuck.
func frameLimit(duration, interval float64) int {
	return int(math.Ceil(math.Max(duration, 0)/interval)) + 3
}

func (p *Project) verify(raster *surface.Raster, run effects.Run) error {
	if run == nil {
		return nil
	}
	var img image.Image = raster.Ink()
	if _, ok := p.Detector.(*analyzer.ContrastDetector); ok {
		snap := raster.Snapshot()
		defer system.PutImage(snap)
		img = snap
	}
	blocks, err := p.Detector.Detect(img)
	if err != nil {
		return err
	}
	_, h := raster.Size()
	fs := run.FontSize()
	return analyzer.VerifySettled(blocks, fs, fs*effects.LineHeight, h)
}

func (p *Project) report(results []Result, total time.Duration) {
	frames := 0
	for _, r := range results {
		frames += r.Frames + r.HoldFrames
	}
	fps := float64(frames) / total.Seconds()

	stats, err := system.ProcessStats()
	if err != nil {
		slog.Warn("process stats unavailable", "err", err)
	}

	report := fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.2fs\n"+
			"Items: %d | Frames: %d\n"+
			"Effective FPS: %.2f\n"+
			"%s\n"+
			"----------------------------\n",
		p.Config.BuildVersion, total.Seconds(), len(results), frames, fps, stats,
	)
	fmt.Print(report)

	// Логирование в файл
	logEntry := fmt.Sprintf("[%s] Build: %s | Items: %d | Frames: %d | Total: %.2fs | FPS: %.2f | RSS: %.1fMiB\n",
		time.Now().Format("2006-01-02 15:04:05"),
		p.Config.BuildVersion,
		len(results),
		frames,
		total.Seconds(),
		fps,
		float64(stats.RSS)/(1<<20),
	)

	f, err := os.OpenFile("benchmark.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		f.WriteString(logEntry)
		f.Close()
	} else {
		fmt.Printf("[!] Не удалось записать benchmark.log: %v\n", err)
	}
}
