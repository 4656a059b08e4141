package engine

import "errors"

// Error kinds surfaced by engine operations. Callers match them with
// errors.Is; the concrete error always carries a human-readable detail.
var (
	// ErrInvalidArgument marks structurally bad input: a negative radius,
	// a non-positive count, a request naming neither a point nor a system.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound marks a query referencing a system name or id that does
	// not exist in the loaded catalog.
	ErrNotFound = errors.New("not found")

	// ErrUnreachable marks a path query whose endpoints are not connected.
	// The search completed; there simply is no route. It is distinguishable
	// from real failures so handlers can report it as a result.
	ErrUnreachable = errors.New("unreachable")

	// ErrDatasetInconsistent marks a dataset rejected at build time, e.g. a
	// gate referencing an id absent from the catalog. It never occurs at
	// query time: a successfully opened engine is internally consistent.
	ErrDatasetInconsistent = errors.New("dataset inconsistent")
)
