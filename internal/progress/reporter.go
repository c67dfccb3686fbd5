package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Reporter provides progress feedback while a dataset downloads. Bytes
// written to it count towards the total.
type Reporter interface {
	io.Writer
	// Start begins a download of total bytes; -1 means unknown length.
	Start(total int64)
	Finish()
}

// NewReporter returns a TerminalReporter writing to out, or a CIReporter if
// the CI environment variable is set.
func NewReporter(out io.Writer) Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{Out: out}
	}
	return &TerminalReporter{Out: out}
}

// TerminalReporter displays a byte progress bar.
type TerminalReporter struct {
	Out io.Writer
	bar *progressbar.ProgressBar
}

func (r *TerminalReporter) Start(total int64) {
	r.bar = progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(r.Out),
		progressbar.OptionSetDescription("Downloading dataset"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowBytes(true),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Write(p []byte) (int, error) {
	if r.bar == nil {
		return len(p), nil
	}
	return r.bar.Write(p)
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// CIReporter prints one line at start and one at the end, suitable for CI logs.
type CIReporter struct {
	Out   io.Writer
	total int64
	n     int64
}

func (r *CIReporter) Start(total int64) {
	r.total, r.n = total, 0
	if total < 0 {
		fmt.Fprintln(r.Out, "Downloading dataset")
		return
	}
	fmt.Fprintf(r.Out, "Downloading dataset (%d bytes)\n", total)
}

func (r *CIReporter) Write(p []byte) (int, error) {
	r.n += int64(len(p))
	return len(p), nil
}

func (r *CIReporter) Finish() {
	fmt.Fprintf(r.Out, "Downloaded %d bytes\n", r.n)
}
