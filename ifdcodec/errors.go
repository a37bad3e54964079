package ifdcodec

import "fmt"

// Role names the closed set of structural-parse failure modes, matching
// the taxonomy every layer above this one switches on.
type Role string

const (
	// RoleHeaderBroken means the endian marker or version discriminant
	// was not recognized, or the BigTIFF (8,0) placeholder was wrong. The
	// walker also uses it for a cyclic or over-long next-IFD chain.
	RoleHeaderBroken Role = "HeaderBroken"

	// RoleEntryBroken means a directory entry's buffer was too short or
	// its (dtype, count) combination is unsupported. The walker also uses
	// it for an IFD that declares more entries than it accepts.
	RoleEntryBroken Role = "EntryBroken"

	// RoleInsufficientBuffer means a primitive decode ran past the end
	// of the provided slice.
	RoleInsufficientBuffer Role = "InsufficientBuffer"
)

// ParseError is the single closed error type for the structural TIFF
// parser layer (components A/B/D), replacing the ad hoc boxed-error-trait
// style of the original implementation with one type callers can branch
// on by Role.
type ParseError struct {
	Role   Role
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ifdcodec: %s: %s", e.Role, e.Detail)
}

func newParseError(role Role, format string, args ...any) *ParseError {
	return &ParseError{Role: role, Detail: fmt.Sprintf(format, args...)}
}
