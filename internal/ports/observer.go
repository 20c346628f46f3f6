package ports

import "provcheck/internal/domain"

// Observer receives progress events from a check run.
// Calls are serialized by the caller, but may come from different goroutines.
type Observer interface {
	// Detected is called once the input path has been classified
	Detected(mode domain.Mode, path string)
	// Resolved is called with the files that will be scanned
	Resolved(res *domain.Resolution)
	// Scanned is called after each file, done counts completed scans
	Scanned(result domain.ScanResult, done, total int)
}
