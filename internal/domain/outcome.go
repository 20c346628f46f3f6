package domain

import "fmt"

// Outcome is the result of scanning one candidate
type Outcome int

const (
	NotMatched Outcome = iota
	Matched
	Unreadable
)

func (o Outcome) String() string {
	switch o {
	case Matched:
		return "matched"
	case Unreadable:
		return "unreadable"
	default:
		return "not_matched"
	}
}

// IsMatch reports whether the identifier was found. Unreadable counts as a miss.
func (o Outcome) IsMatch() bool {
	return o == Matched
}

// MarshalText implements encoding.TextMarshaler
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (o *Outcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case "matched":
		*o = Matched
	case "not_matched":
		*o = NotMatched
	case "unreadable":
		*o = Unreadable
	default:
		return fmt.Errorf("unknown outcome: %q", text)
	}
	return nil
}

// ScanResult holds the outcome for one candidate. Err is set only for Unreadable.
type ScanResult struct {
	Candidate Candidate
	Outcome   Outcome
	Err       error
}
