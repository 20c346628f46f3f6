package domain

import "sort"

// Candidate is a file presumed to hold profile data
type Candidate struct {
	Path    string // Path the scanner opens
	Display string // Path shown in reports
}

// Resolution is the ordered list of candidates discovered from one input path
type Resolution struct {
	Mode   Mode
	Source string // Input path as given by the caller
	Files  []Candidate
}

// NewResolution builds a Resolution with files ordered by display path
func NewResolution(mode Mode, source string, files []Candidate) *Resolution {
	sorted := make([]Candidate, len(files))
	copy(sorted, files)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Display < sorted[j].Display
	})
	return &Resolution{Mode: mode, Source: source, Files: sorted}
}

// Total returns the number of resolved files
func (r *Resolution) Total() int {
	if r == nil {
		return 0
	}
	return len(r.Files)
}
