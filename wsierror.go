package wsi

import "fmt"

// Role names the closed set of failure modes at the WSI-overlay layer,
// above ifdcodec.ParseError's structural-parse roles.
type Role string

const (
	// RoleIO wraps any failure surfaced by the underlying RandomReader.
	// A structural parse failure during open is also reported under this
	// role, with the ifdcodec.ParseError available through Unwrap.
	RoleIO Role = "IO"
	// RoleNotAWsi means no IFD of the opened TIFF yielded a pyramid level:
	// none carried TileOffsets together with Compression and a usable
	// tile grid.
	RoleNotAWsi Role = "NotAWsi"
	// RoleOutOfIndex means a requested level or tile index, or a region,
	// falls outside the known grid/bounds.
	RoleOutOfIndex Role = "OutOfIndex"
	// RoleUnknownCompression means the tile's compression code is not in
	// {JPEG, AperioJP2KYCbCr, AperioJP2KRGB}, or is JPEG on a level that
	// has no JPEGTables stream.
	RoleUnknownCompression Role = "UnknownCompression"
)

// WsiError is the single closed error type for the WSI-overlay layer
// (AperioReader open/read_tile/read_region), replacing the source's
// evolution from Box<dyn Error> to a typed enum with one Go type
// callers can branch on by Role.
type WsiError struct {
	Role   Role
	Detail string
	Err    error
}

func (e *WsiError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("wsi: %s: %s: %v", e.Role, e.Detail, e.Err)
	}
	return fmt.Sprintf("wsi: %s: %s", e.Role, e.Detail)
}

func (e *WsiError) Unwrap() error {
	return e.Err
}

func newWsiError(role Role, format string, args ...any) *WsiError {
	return &WsiError{Role: role, Detail: fmt.Sprintf(format, args...)}
}

func wrapIOError(err error) *WsiError {
	return &WsiError{Role: RoleIO, Detail: "source read failed", Err: err}
}
