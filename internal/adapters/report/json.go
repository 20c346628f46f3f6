package report

import (
	"encoding/json"
	"io"

	"provcheck/internal/domain"
)

// WriteJSON writes the report as indented JSON
func WriteJSON(w io.Writer, r *domain.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

type listing struct {
	Mode   domain.Mode `json:"mode"`
	Source string      `json:"source"`
	Total  int         `json:"total"`
	Files  []string    `json:"files"`
}

// WriteListJSON writes the display paths of a resolution as JSON
func WriteListJSON(w io.Writer, res *domain.Resolution) error {
	l := listing{
		Mode:   res.Mode,
		Source: res.Source,
		Total:  res.Total(),
		Files:  make([]string, 0, res.Total()),
	}
	for _, f := range res.Files {
		l.Files = append(l.Files, f.Display)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(l)
}
