package solver

import "errors"

// Fatal creation errors: returned by New, abort construction entirely.
// The exception is ErrFactorizeFailed: the rest-state factor is computed
// lazily, so it is returned by the first Step that solves without pins or
// contacts.
var (
	ErrEmptyMesh        = errors.New("solver: empty lattice")
	ErrInvertedRestTet  = errors.New("solver: inverted or degenerate rest tetrahedron")
	ErrBadBarycentric   = errors.New("solver: facet vertex barycentric weights out of range")
	ErrFactorizeFailed  = errors.New("solver: initial Cholesky factorization of the rest-state system failed")
)

// Per-step errors: Step rolls x back to x_start and returns one of these
// rather than leaving state corrupted.
var (
	ErrNaN            = errors.New("solver: NaN encountered in local-step proximal update")
	ErrLinearSolveFailed = errors.New("solver: global linear solve failed to converge")
	ErrCancelled      = errors.New("solver: cancelled")
)
