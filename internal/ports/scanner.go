package ports

import (
	"context"

	"provcheck/internal/domain"
)

// PresenceScanner tests whether a candidate file contains an identifier.
// Read failures are reported through the Unreadable outcome, never as errors.
type PresenceScanner interface {
	Scan(ctx context.Context, identifier []byte, c domain.Candidate) domain.ScanResult
}
