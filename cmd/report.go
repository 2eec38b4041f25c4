package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/ndhung1104/CSDLNC-09/internal/seed"
)

var out io.Writer = os.Stdout

func log(format string, args ...interface{}) {
	fmt.Fprintf(out, format+"\n", args...)
}

func now() string {
	return time.Now().Format(time.RFC3339)
}

func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for u := n / unit; u >= unit; u /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

// logReporter prints one timestamped line per event.
type logReporter struct{}

func (logReporter) PhaseStart(phase string, expected int64) {
	if expected < 0 {
		log("[%s] %s: generating", now(), phase)
		return
	}
	log("[%s] %s: generating %d rows", now(), phase, expected)
}

func (logReporter) Progress(phase string, total int64) {
	log("[%s]   > %s: %d rows committed", now(), phase, total)
}

func (logReporter) PhaseSkip(phase string, existing int64) {
	log("[%s] %s: already has %d rows, skipping", now(), phase, existing)
}

func (logReporter) PhaseDone(phase string, inserted int64) {
	log("[%s] %s: done, %d rows inserted", now(), phase, inserted)
}

func (logReporter) Notice(format string, args ...any) {
	log("[%s] %s", now(), fmt.Sprintf(format, args...))
}

// barReporter draws a progress bar per phase instead of per-batch lines.
type barReporter struct {
	logReporter
	bar *progressbar.ProgressBar
}

func (r *barReporter) PhaseStart(phase string, expected int64) {
	r.logReporter.PhaseStart(phase, expected)
	r.bar = progressbar.NewOptions64(expected,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription(phase),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("rows"),
		progressbar.OptionShowIts(),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func (r *barReporter) Progress(_ string, total int64) {
	if r.bar != nil {
		_ = r.bar.Set64(total)
	}
}

func (r *barReporter) PhaseDone(phase string, inserted int64) {
	if r.bar != nil {
		_ = r.bar.Finish()
		fmt.Fprintln(out)
		r.bar = nil
	}
	r.logReporter.PhaseDone(phase, inserted)
}

func newReporter(progress bool) seed.Reporter {
	if progress {
		return &barReporter{}
	}
	return logReporter{}
}
