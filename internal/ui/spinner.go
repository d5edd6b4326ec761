package ui

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// ScanSpinner returns a started spinner shown while a snapshot is being
// gathered. Callers must Stop it before printing the table.
func ScanSpinner(w io.Writer, suffix string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[21], 120*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + suffix
	s.Start()
	return s
}
