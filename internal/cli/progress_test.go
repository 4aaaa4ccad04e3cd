package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/mvp-joe/skeleton/internal/batch"
	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		number   int
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{12345, "12,345"},
		{1234567, "1,234,567"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatNumber(tt.number))
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.0 KiB", formatBytes(1024))
	assert.Equal(t, "1.5 MiB", formatBytes(1536*1024))
}

func TestCLIProgressReporter_Summary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := NewCLIProgressReporter(&buf, false)

	r.OnDiscoveryComplete(2)
	r.OnProcessingStart(2)
	r.OnFileProcessed(batch.FileResult{RelPath: "a.py", Parsed: true})
	r.OnFileProcessed(batch.FileResult{RelPath: "b.py"})
	r.OnComplete(&batch.Stats{
		Files:          2,
		Reduced:        1,
		Passthrough:    1,
		BytesIn:        2048,
		BytesOut:       512,
		ProcessingTime: 1500 * time.Millisecond,
	})

	out := buf.String()
	assert.Contains(t, out, "Found 2 Python files")
	assert.Contains(t, out, "Skeletonized 2 files in 1.5s")
	assert.Contains(t, out, "Reduced:     1")
	assert.Contains(t, out, "Passthrough: 1")
	assert.Contains(t, out, "2.0 KiB → 512 B (25%)")
}

func TestCLIProgressReporter_Quiet(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := NewCLIProgressReporter(&buf, true)

	r.OnDiscoveryComplete(1)
	r.OnProcessingStart(1)
	r.OnFileProcessed(batch.FileResult{})
	r.OnComplete(&batch.Stats{Files: 1})

	assert.Empty(t, buf.String())
}
