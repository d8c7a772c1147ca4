// Package progress renders a per-file progress bar on stderr so stdout
// stays clean for formatted results.
package progress

import (
	"os"

	"github.com/schollz/progressbar/v3"
)

// Tracker wraps a progress bar for file processing.
type Tracker struct {
	bar   *progressbar.ProgressBar
	total int
}

// NewTracker creates a progress bar with the given label and total count.
func NewTracker(label string, total int) *Tracker {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription(label),
		progressbar.OptionUseANSICodes(true),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	return &Tracker{bar: bar, total: total}
}

// Set moves the bar to an absolute position. Fits callback-style
// progress reporting where the analyzer reports done/total pairs.
func (t *Tracker) Set(done int) {
	t.bar.Set(done)
}

// Tick increments the progress by 1.
func (t *Tracker) Tick() {
	t.bar.Add(1)
}

// Finish clears the bar completely.
func (t *Tracker) Finish() {
	t.bar.Finish()
	t.bar.Clear()
}
