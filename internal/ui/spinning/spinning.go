// Package spinning shows that a program is busy searching: a spinning symbol followed, for
// long searches, by the time elapsed so far. It also handles interruptions (Ctrl+C).
package spinning

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
	"k8s.io/klog/v2"
)

var (
	ThemeAscii = []rune("|/-\\")
	ThemeMoon  = []rune("🌑🌒🌓🌔🌕🌖🌗🌘")
	ThemeClock = []rune("🕐🕑🕒🕓🕔🕕🕖🕗🕘🕙🕚🕛")

	// Theme used by New. Set it before starting any Spinner.
	Theme = ThemeClock
)

const (
	// Interval between frames used by New.
	Interval = 500 * time.Millisecond

	// ShowElapsedAfter is how long a Spinner runs before it starts showing the elapsed time.
	ShowElapsedAfter = 2 * time.Second
)

const (
	hideCursor = "\033[?25l"
	showCursor = "\033[?25h"
)

// Spinner animates a symbol on its own goroutine, until Done is called.
type Spinner struct {
	out      io.Writer
	theme    []rune
	interval time.Duration
	start    time.Time

	// width of the last frame written, in terminal cells.
	width int

	cancel func()
	done   chan struct{}
}

// New starts a Spinner on os.Stdout with Theme. If os.Stdout is not a terminal, nothing is
// displayed, but Done must still be called.
func New(ctx context.Context) *Spinner {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return &Spinner{}
	}
	return Start(ctx, os.Stdout, Theme, Interval)
}

// Start a Spinner writing to out, changing frames every interval. It stops when ctx is
// cancelled or Done is called.
func Start(ctx context.Context, out io.Writer, theme []rune, interval time.Duration) *Spinner {
	s := &Spinner{
		out:      out,
		theme:    theme,
		interval: interval,
		start:    time.Now(),
		done:     make(chan struct{}),
	}
	ctx, s.cancel = context.WithCancel(ctx)
	go s.run(ctx)
	return s
}

func (s *Spinner) run(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	_, _ = fmt.Fprint(s.out, hideCursor)
	for frame := 0; ; frame++ {
		s.draw(s.render(frame))
		select {
		case <-ctx.Done():
			s.draw("")
			_, _ = fmt.Fprint(s.out, showCursor)
			return
		case <-ticker.C:
		}
	}
}

// render returns the text of the given frame.
func (s *Spinner) render(frame int) string {
	text := string(s.theme[frame%len(s.theme)])
	if elapsed := time.Since(s.start); elapsed >= ShowElapsedAfter {
		text += " " + elapsed.Truncate(time.Second).String()
	}
	return text
}

// draw erases the previous frame and writes text in its place.
func (s *Spinner) draw(text string) {
	erase := strings.Repeat("\b", s.width)
	width := lipgloss.Width(text)
	// Blanks over the leftovers of a wider previous frame.
	pad := max(s.width-width, 0)
	_, _ = fmt.Fprint(s.out, erase+text+strings.Repeat(" ", pad)+strings.Repeat("\b", pad))
	s.width = width
}

// Done stops the Spinner and waits for it to clear its last frame. It can be called more than once.
func (s *Spinner) Done() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
}

// SafeInterrupt calls onInterrupt on the first SIGINT (Ctrl+C) or SIGTERM, so searches can
// stop cleanly. If the program is still running after gracePeriod, or a second signal
// arrives, the terminal is reset and the program exits.
func SafeInterrupt(onInterrupt func(), gracePeriod time.Duration) {
	signals := make(chan os.Signal, 2)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-signals
		fmt.Println()
		klog.Warningf("Received %s, stopping (forced exit in %s, or on a second interrupt)", sig, gracePeriod)
		if onInterrupt != nil {
			go onInterrupt()
		}
		select {
		case sig = <-signals:
			klog.Errorf("Received %s again, exiting now.", sig)
		case <-time.After(gracePeriod):
			klog.Errorf("Still running %s after the interrupt, exiting.", gracePeriod)
		}
		Reset()
		klog.Exit("interrupted")
	}()
}

// Reset the terminal: visible cursor and default colors.
func Reset() {
	fmt.Print(showCursor + "\033[39;49;0m\n")
}
