// Package cli provides command-line interface components for the
// multiplication toolkit: an interactive REPL, execution banners, and
// progress display shared by both.
package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/agbru/ssfft/internal/config"
	"github.com/agbru/ssfft/internal/ui"
	"github.com/briandowns/spinner"
)

// ProgressRefreshRate is how often the spinner suffix is refreshed.
const ProgressRefreshRate = 150 * time.Millisecond

// ProgressBarWidth is the character width of the rendered progress bar.
const ProgressBarWidth = 30

// Spinner abstracts a terminal spinner so DisplayProgress doesn't depend
// directly on a concrete implementation.
type Spinner interface {
	Start()
	Stop()
	UpdateSuffix(suffix string)
}

type realSpinner struct{ s *spinner.Spinner }

func (rs *realSpinner) Start()                  { rs.s.Start() }
func (rs *realSpinner) Stop()                   { rs.s.Stop() }
func (rs *realSpinner) UpdateSuffix(suf string) { rs.s.Suffix = suf }

var newSpinner = func(options ...spinner.Option) Spinner {
	return &realSpinner{spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)}
}

// TruncationLimit is the number of decimal digits above which a result is
// displayed truncated rather than in full.
const TruncationLimit = 80

// DisplayEdges is how many leading/trailing digits are kept when a result
// is truncated for display.
const DisplayEdges = 20

// Color* delegate to the active ui theme so callers don't need to import
// the ui package directly for simple inline formatting.
func ColorReset() string   { return ui.ColorReset() }
func ColorGreen() string   { return ui.ColorGreen() }
func ColorRed() string     { return ui.ColorRed() }
func ColorYellow() string  { return ui.ColorYellow() }
func ColorCyan() string    { return ui.ColorCyan() }
func ColorMagenta() string { return ui.ColorMagenta() }
func ColorBold() string    { return ui.ColorBold() }

// FormatExecutionDuration renders a duration the way the CLI reports
// elapsed calculation time, switching units as the magnitude grows.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000)
	case d < time.Minute:
		return fmt.Sprintf("%.3fs", d.Seconds())
	default:
		return d.Round(time.Millisecond).String()
	}
}

// ProgressState tracks fractional progress (0.0-1.0) across a fixed number
// of concurrent operations and reports their average.
type ProgressState struct {
	mu       sync.Mutex
	progress []float64
}

// NewProgressState creates a tracker for n concurrent operations.
func NewProgressState(n int) *ProgressState {
	return &ProgressState{progress: make([]float64, n)}
}

// Update sets the progress value for the operation at index.
func (p *ProgressState) Update(index int, value float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if index >= 0 && index < len(p.progress) {
		p.progress[index] = value
	}
}

// CalculateAverage returns the mean progress across all tracked operations.
func (p *ProgressState) CalculateAverage() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.progress) == 0 {
		return 0
	}
	var sum float64
	for _, v := range p.progress {
		sum += v
	}
	return sum / float64(len(p.progress))
}

// progressBar renders a simple block-character progress bar of the given
// width for a normalized progress value.
func progressBar(progress float64, width int) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	filled := int(progress * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// ProgressUpdate reports fractional progress for one concurrently running
// operation, identified by index.
type ProgressUpdate struct {
	Index    int
	Progress float64
}

// DisplayProgress consumes progress updates from ch and drives a spinner
// with a live progress bar and ETA suffix until ch is closed, then signals wg.
func DisplayProgress(wg *sync.WaitGroup, ch <-chan ProgressUpdate, numOps int, out io.Writer) {
	defer wg.Done()
	if numOps <= 0 {
		for range ch {
		}
		return
	}

	state := NewProgressWithETA(numOps)
	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	stopped := false
	defer func() {
		if !stopped {
			s.Stop()
		}
	}()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	label := "Progress"
	if numOps > 1 {
		label = "Avg progress"
	}

	for {
		select {
		case u, ok := <-ch:
			if !ok {
				if !stopped {
					s.Stop()
					stopped = true
				}
				bar := progressBar(1.0, ProgressBarWidth)
				fmt.Fprintf(out, "%s: %6.2f%% [%s] ETA: %s\n", label, 100.0, bar, "< 1s")
				return
			}
			state.UpdateWithETA(u.Index, u.Progress)
		case <-ticker.C:
			avg := state.CalculateAverage()
			eta := state.GetETA()
			s.UpdateSuffix(fmt.Sprintf(" %s: %s", label, FormatProgressBarWithETA(avg, eta, ProgressBarWidth)))
		}
	}
}

// PrintExecutionConfig prints a short summary of the configuration that
// will govern the next calculation.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "%sConfiguration%s\n", ColorBold(), ColorReset())
	fmt.Fprintf(out, "  Algorithm:          %s%s%s\n", ColorCyan(), cfg.Algo, ColorReset())
	fmt.Fprintf(out, "  Timeout:            %s%s%s\n", ColorCyan(), cfg.Timeout, ColorReset())
	fmt.Fprintf(out, "  Threshold:          %s%d%s bits\n", ColorCyan(), cfg.Threshold, ColorReset())
	fmt.Fprintf(out, "  FFT threshold:      %s%d%s words\n", ColorCyan(), cfg.FFTThreshold, ColorReset())
	fmt.Fprintf(out, "  Strassen threshold: %s%d%s\n", ColorCyan(), cfg.StrassenThreshold, ColorReset())
}

// PrintExecutionMode prints which algorithm name(s) are about to run.
func PrintExecutionMode(algos []string, out io.Writer) {
	if len(algos) == 1 {
		fmt.Fprintf(out, "Running %s%s%s\n", ColorYellow(), algos[0], ColorReset())
		return
	}
	fmt.Fprintf(out, "Running %s%d%s algorithms: %s\n", ColorYellow(), len(algos), ColorReset(), strings.Join(algos, ", "))
}
