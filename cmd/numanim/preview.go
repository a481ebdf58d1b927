package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/ivlev/numanim/internal/config"
	"github.com/ivlev/numanim/internal/effects"
	"github.com/ivlev/numanim/internal/engine"
	"github.com/ivlev/numanim/internal/frame"
	"github.com/ivlev/numanim/internal/surface"
)

func previewCmd() *cobra.Command {
	var (
		req config.Request
		fps int
	)
	cmd := &cobra.Command{
		Use:   "preview [flags] TEXT...",
		Short: "Живой просмотр в терминале",
		Long: `Plays the animation in the terminal, one cell per pixel.
Space or Enter plays the next value, r replays the current one, q quits.
Pressing a key mid-animation supersedes the running one.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// в терминале размер шрифта - число строк
			if !cmd.Flags().Changed("font-size") {
				req.FontSize = config.SizeOf(2)
			}
			if req.Color == "" {
				req.Color = "#e0e0e0"
			}
			return runPreview(cmd.Context(), req, args, fps)
		},
	}
	bindRequest(cmd.Flags(), &req)
	cmd.Flags().IntVar(&fps, "fps", 30, "Частота обновления экрана")
	return cmd
}

func runPreview(ctx context.Context, base config.Request, texts []string, fps int) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("терминал недоступен: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("терминал недоступен: %w", err)
	}
	defer screen.Fini()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ticker := frame.NewTicker(fps)
	ticker.AfterFrame = func(float64) { screen.Show() }

	term := surface.NewTerminal(screen, 2, 2)
	anim := engine.NewAnimator(surface.Static(term), ticker)
	anim.OnSettle = func(gen uint64, run effects.Run) {
		drawStatus(screen, "#"+strconv.FormatUint(gen, 10)+" "+run.Text()+"  готово")
		screen.Show()
	}

	idx := 0
	play := func() {
		req := base
		req.Text = texts[idx%len(texts)]
		gen := anim.Play(req)
		drawStatus(screen, fmt.Sprintf("#%d %s  [пробел] дальше  [r] повтор  [q] выход", gen, req.Text))
		screen.Show()
	}

	go ticker.Run(ctx)

	events := make(chan tcell.Event)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	play()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
					return nil
				case ev.Key() == tcell.KeyEnter, ev.Rune() == ' ':
					idx++
					play()
				case ev.Rune() == 'r':
					play()
				}
			}
		}
	}
}

// drawStatus overwrites the top line.
func drawStatus(screen tcell.Screen, msg string) {
	w, _ := screen.Size()
	x := 0
	for _, r := range msg {
		if x >= w {
			break
		}
		screen.SetContent(x, 0, r, nil, tcell.StyleDefault)
		x += runewidth.RuneWidth(r)
	}
	for ; x < w; x++ {
		screen.SetContent(x, 0, ' ', nil, tcell.StyleDefault)
	}
}
