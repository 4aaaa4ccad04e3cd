package batch

// ProgressReporter provides callbacks for reporting batch progress.
// Implementations can display progress bars, log messages, or remain silent.
// Calls may come from several worker goroutines.
type ProgressReporter interface {
	// OnDiscoveryComplete is called when file discovery finishes.
	OnDiscoveryComplete(files int)

	// OnProcessingStart is called before processing files.
	OnProcessingStart(totalFiles int)

	// OnFileProcessed is called after each file is processed.
	OnFileProcessed(result FileResult)

	// OnComplete is called when the run completes successfully.
	OnComplete(stats *Stats)
}

// NoOpProgressReporter is a progress reporter that does nothing.
// Used when progress reporting is disabled (e.g., --quiet flag).
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnDiscoveryComplete(files int)     {}
func (n *NoOpProgressReporter) OnProcessingStart(totalFiles int)  {}
func (n *NoOpProgressReporter) OnFileProcessed(result FileResult) {}
func (n *NoOpProgressReporter) OnComplete(stats *Stats)           {}
