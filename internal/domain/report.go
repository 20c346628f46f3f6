package domain

import "fmt"

// Verdict summarizes a report
type Verdict int

const (
	VerdictNoFiles Verdict = iota
	VerdictAllMatched
	VerdictItemized
)

func (v Verdict) String() string {
	switch v {
	case VerdictNoFiles:
		return "no_files"
	case VerdictAllMatched:
		return "all_matched"
	default:
		return "itemized"
	}
}

// MarshalText implements encoding.TextMarshaler
func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// ReportEntry is one file listed in a report
type ReportEntry struct {
	Path    string  `json:"path"`
	Outcome Outcome `json:"outcome"`
	Error   string  `json:"error,omitempty"`
}

// Report partitions a resolution into matching and missing files.
// Matching and Missing keep the relative order of the resolution.
type Report struct {
	Identifier string        `json:"identifier"`
	Mode       Mode          `json:"mode"`
	Source     string        `json:"source"`
	Total      int           `json:"total"`
	Verdict    Verdict       `json:"verdict"`
	Matching   []ReportEntry `json:"matching"`
	Missing    []ReportEntry `json:"missing"`
	Unreadable int           `json:"unreadable"`
}

// BuildReport aggregates one scan result per resolved file. The total comes from
// the resolution, so unreadable files still count toward it.
func BuildReport(identifier string, res *Resolution, results []ScanResult) (*Report, error) {
	if res.Total() != len(results) {
		return nil, fmt.Errorf("report: %d results for %d resolved files", len(results), res.Total())
	}

	r := &Report{
		Identifier: identifier,
		Mode:       res.Mode,
		Source:     res.Source,
		Total:      res.Total(),
		Matching:   []ReportEntry{},
		Missing:    []ReportEntry{},
	}

	for _, sr := range results {
		entry := ReportEntry{Path: sr.Candidate.Display, Outcome: sr.Outcome}
		if sr.Err != nil {
			entry.Error = sr.Err.Error()
		}
		if sr.Outcome.IsMatch() {
			r.Matching = append(r.Matching, entry)
			continue
		}
		if sr.Outcome == Unreadable {
			r.Unreadable++
		}
		r.Missing = append(r.Missing, entry)
	}

	r.Verdict = verdictFor(len(r.Matching), r.Total)
	return r, nil
}

func verdictFor(matching, total int) Verdict {
	switch {
	case total == 0:
		return VerdictNoFiles
	case matching == total:
		return VerdictAllMatched
	default:
		return VerdictItemized
	}
}

// MatchingPaths returns the display paths of matching files
func (r *Report) MatchingPaths() []string {
	return entryPaths(r.Matching)
}

// MissingPaths returns the display paths of missing files
func (r *Report) MissingPaths() []string {
	return entryPaths(r.Missing)
}

func entryPaths(entries []ReportEntry) []string {
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, e.Path)
	}
	return paths
}
