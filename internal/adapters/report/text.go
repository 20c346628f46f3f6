package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"provcheck/internal/adapters/tui/styles"
	"provcheck/internal/domain"
	"provcheck/internal/ports"
)

// TextWriter renders reports for people. Styling is dropped automatically
// when the destination is not a terminal.
type TextWriter struct {
	w      io.Writer
	theme  styles.Theme
	suffix string
}

// NewTextWriter creates a TextWriter for profile files with the given suffix
func NewTextWriter(w io.Writer, suffix string) *TextWriter {
	return &TextWriter{
		w:      w,
		theme:  styles.NewTheme(lipgloss.NewRenderer(w)),
		suffix: suffix,
	}
}

// WriteReport prints the verdict, the matching list, the missing list and the total
func (t *TextWriter) WriteReport(r *domain.Report) error {
	var sb strings.Builder
	t.renderReport(&sb, r)
	_, err := io.WriteString(t.w, sb.String())
	return err
}

// Render returns the report as a string, used by the interactive view
func (t *TextWriter) Render(r *domain.Report) string {
	var sb strings.Builder
	t.renderReport(&sb, r)
	return sb.String()
}

func (t *TextWriter) renderReport(sb *strings.Builder, r *domain.Report) {
	switch r.Verdict {
	case domain.VerdictNoFiles:
		fmt.Fprintf(sb, "\n%s\n", t.theme.WarningMsg.Render(fmt.Sprintf("⚠️  No %s files found.", t.suffix)))

	case domain.VerdictAllMatched:
		fmt.Fprintf(sb, "\n%s\n", t.theme.Success.Render(fmt.Sprintf("✅ Identifier found in all %s files!", t.suffix)))

	default:
		if len(r.Matching) > 0 {
			fmt.Fprintf(sb, "\n%s\n", t.theme.Success.Render("✅ Identifier found in the following files:"))
			for _, e := range r.Matching {
				t.writeEntry(sb, e)
			}
		}
		if len(r.Missing) > 0 {
			fmt.Fprintf(sb, "\n%s\n", t.theme.ErrorMsg.Render("❌ Identifier missing in the following files:"))
			for _, e := range r.Missing {
				t.writeEntry(sb, e)
			}
		}
	}

	fmt.Fprintf(sb, "\nChecked %d %s total.\n", r.Total, plural(r.Total, "file", "files"))
}

func (t *TextWriter) writeEntry(sb *strings.Builder, e domain.ReportEntry) {
	fmt.Fprintf(sb, "  %s %s", t.theme.Bullet.Render("-"), e.Path)
	if e.Outcome == domain.Unreadable {
		note := "(unreadable)"
		if e.Error != "" {
			note = fmt.Sprintf("(unreadable: %s)", e.Error)
		}
		fmt.Fprintf(sb, " %s", t.theme.MutedText.Render(note))
	}
	sb.WriteByte('\n')
}

// WriteList prints the files of a resolution, one per line
func (t *TextWriter) WriteList(res *domain.Resolution) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", t.theme.Title.Render(fmt.Sprintf("%s (%s)", res.Source, res.Mode)))
	if res.Total() == 0 {
		fmt.Fprintf(&sb, "%s\n", t.theme.WarningMsg.Render(fmt.Sprintf("⚠️  No %s files found.", t.suffix)))
	}
	for _, f := range res.Files {
		fmt.Fprintf(&sb, "  %s %s\n", t.theme.Bullet.Render("-"), f.Display)
	}
	fmt.Fprintf(&sb, "\nFound %d %s file(s).\n", res.Total(), t.suffix)
	_, err := io.WriteString(t.w, sb.String())
	return err
}

// Observer prints the progress lines shown before the report
type Observer struct {
	w          io.Writer
	theme      styles.Theme
	suffix     string
	identifier string
}

// Ensure Observer implements ports.Observer
var _ ports.Observer = (*Observer)(nil)

// NewObserver creates an observer announcing progress on w
func NewObserver(w io.Writer, identifier, suffix string) *Observer {
	return &Observer{
		w:          w,
		theme:      styles.NewTheme(lipgloss.NewRenderer(w)),
		suffix:     suffix,
		identifier: identifier,
	}
}

// Detected prints the input type and, for archives, the unpacking notice
func (o *Observer) Detected(mode domain.Mode, path string) {
	fmt.Fprintf(o.w, "%s %s\n", o.theme.MutedText.Render("Detected input type:"), mode)
	if mode == domain.ModeArchive {
		fmt.Fprintf(o.w, "Unpacking %s...\n", filepath.Base(path))
	}
}

// Resolved prints what is about to be checked
func (o *Observer) Resolved(res *domain.Resolution) {
	if res.Mode == domain.ModeSingleFile {
		fmt.Fprintf(o.w, "Checking single %s file %s for identifier %s...\n", o.suffix, res.Source, o.identifier)
		return
	}
	fmt.Fprintf(o.w, "Found %d %s file(s), checking for identifier %s...\n", res.Total(), o.suffix, o.identifier)
}

// Scanned is silent, unreadable files are reported through the logger
func (o *Observer) Scanned(domain.ScanResult, int, int) {}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
