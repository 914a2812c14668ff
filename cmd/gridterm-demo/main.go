package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lixenwraith/gridterm/color"
	"github.com/lixenwraith/gridterm/screen"
	"github.com/lixenwraith/gridterm/terminal"
)

const frameInterval = 50 * time.Millisecond

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "gridterm-demo:", err)
		os.Exit(1)
	}
}

func run() error {
	defer terminal.Panicking()

	term := terminal.New()
	if err := term.Init(); err != nil {
		return err
	}
	defer term.Fini()

	term.SetTitle("gridterm demo")
	term.ShowCursor(false)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return term.AltBuffer(func() error {
		ticker := time.NewTicker(frameInterval)
		defer ticker.Stop()

		start := time.Now()
		for {
			select {
			case <-sigCh:
				return nil
			case <-term.ResizeChan():
				term.Redraw()
			case <-ticker.C:
				term.Batch(func() {
					paint(term, time.Since(start))
					term.Draw()
				})
			}
		}
	})
}

func paint(term *terminal.Terminal, elapsed time.Duration) {
	w, h := term.Size()
	term.Clear()

	title := fmt.Sprintf(" gridterm | %s | %dx%d | ctrl-c to quit ", term.Capability(), w, h)
	term.WriteAt(0, 0, screen.Spans(screen.NewSpan(title, screen.WithAttrs(screen.AttrBold|screen.AttrReverse))))

	base := color.RGB(0x3B, 0x82, 0xF6).HueShift(elapsed.Seconds() / 12)
	row := 2
	for _, strategy := range []color.Strategy{
		color.Monochrome, color.Analogous, color.Complementary, color.Triadic,
	} {
		term.WriteAt(2, row, screen.Text(fmt.Sprintf("%-13s", strategy)))
		for i, c := range base.Palette(strategy, 8) {
			swatch := screen.NewSpan("  ", screen.WithBg(c))
			term.WriteAt(16+i*3, row, screen.Spans(swatch))
		}
		row += 2
	}

	term.WriteAt(2, row, screen.Text("lightness"))
	steps := w - 18
	if steps > 48 {
		steps = 48
	}
	if steps < 2 {
		steps = 2
	}
	for i := 0; i < steps; i++ {
		c := color.Black.Blend(color.White, float64(i)/float64(steps-1))
		term.WriteAt(16+i, row, screen.CellRun(screen.NewCell(' ', screen.Style{
			Fg: color.DefaultFg,
			Bg: c.AsBackground(true),
		})))
	}
	row += 2

	term.WriteAt(2, row, screen.Text("downsample"))
	for i, target := range []color.Capability{
		color.TrueColor, color.Ansi256, color.Ansi16, color.Greyscale,
	} {
		c := base.ToCapability(target)
		label := screen.NewSpan(fmt.Sprintf(" %-9s ", target),
			screen.WithBg(c.AsBackground(true)),
			screen.WithFg(c.Contrast()))
		term.WriteAt(16+i*12, row, screen.Spans(label))
	}
}
