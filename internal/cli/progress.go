package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/mvp-joe/skeleton/internal/batch"
	"github.com/schollz/progressbar/v3"
)

// CLIProgressReporter implements batch.ProgressReporter with a progress bar.
type CLIProgressReporter struct {
	out     io.Writer
	quiet   bool
	fileBar *progressbar.ProgressBar
}

// NewCLIProgressReporter creates a reporter writing to out.
func NewCLIProgressReporter(out io.Writer, quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{
		out:   out,
		quiet: quiet,
	}
}

func (c *CLIProgressReporter) OnDiscoveryComplete(files int) {
	if c.quiet {
		return
	}
	fmt.Fprintf(c.out, "Found %s Python files\n", formatNumber(files))
}

func (c *CLIProgressReporter) OnProcessingStart(totalFiles int) {
	if c.quiet || totalFiles == 0 {
		return
	}

	c.fileBar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetWriter(c.out),
		progressbar.OptionSetDescription("Skeletonizing"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(c.out)
		}),
	)
}

func (c *CLIProgressReporter) OnFileProcessed(result batch.FileResult) {
	if c.quiet || c.fileBar == nil {
		return
	}
	c.fileBar.Add(1)
}

func (c *CLIProgressReporter) OnComplete(stats *batch.Stats) {
	if c.quiet {
		return
	}
	if c.fileBar != nil {
		c.fileBar.Finish()
		c.fileBar = nil
	}

	fmt.Fprintf(c.out, "✓ Skeletonized %s files in %.1fs\n", formatNumber(stats.Files), stats.ProcessingTime.Seconds())
	fmt.Fprintf(c.out, "  Reduced:     %s\n", formatNumber(stats.Reduced))
	fmt.Fprintf(c.out, "  Passthrough: %s\n", formatNumber(stats.Passthrough))
	fmt.Fprintf(c.out, "  Size:        %s → %s (%.0f%%)\n",
		formatBytes(stats.BytesIn), formatBytes(stats.BytesOut), stats.Ratio()*100)
}

// formatNumber formats integer with thousand separators.
// Examples: 1234 -> "1,234", 1234567 -> "1,234,567"
func formatNumber(n int) string {
	str := fmt.Sprintf("%d", n)
	if len(str) <= 3 {
		return str
	}

	var result []byte
	for i := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, str[i])
	}
	return string(result)
}

// formatBytes formats a byte count using binary units.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
