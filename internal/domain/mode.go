package domain

import "fmt"

// Mode describes how an input path was interpreted
type Mode int

const (
	ModeUnknown Mode = iota
	ModeDirectory
	ModeSingleFile
	ModeArchive
)

// String returns the label printed in reports
func (m Mode) String() string {
	switch m {
	case ModeDirectory:
		return "folder"
	case ModeSingleFile:
		return "file"
	case ModeArchive:
		return "archive"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *Mode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "folder":
		*m = ModeDirectory
	case "file":
		*m = ModeSingleFile
	case "archive":
		*m = ModeArchive
	case "unknown":
		*m = ModeUnknown
	default:
		return fmt.Errorf("unknown mode: %q", text)
	}
	return nil
}
