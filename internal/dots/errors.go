package dots

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a dot reference does not resolve.
	ErrNotFound = errors.New("dot not found")

	// ErrIndexOutOfRange is returned for an index outside [0, Len).
	// It also matches ErrNotFound.
	ErrIndexOutOfRange = errors.New("dot index out of range")

	// ErrEmpty is returned by nearest-dot queries on an empty set.
	ErrEmpty = errors.New("no dots")

	// ErrInvalidSelectionCount is matched by *SelectionCountError.
	ErrInvalidSelectionCount = errors.New("invalid selection count")

	// ErrNotSelected is returned when renumbering a dot that is not the
	// selected one.
	ErrNotSelected = errors.New("dot is not selected")

	// ErrOutOfRange is returned when a new display number falls outside [1, Len].
	ErrOutOfRange = errors.New("number out of range")
)

// SelectionCountError reports a renumber attempt without exactly one
// selected dot.
type SelectionCountError struct {
	Count int
}

func (e *SelectionCountError) Error() string {
	if e.Count == 0 {
		return "select a dot to renumber"
	}
	return fmt.Sprintf("can't renumber %d dots at once", e.Count)
}

// Is reports whether target is ErrInvalidSelectionCount.
func (e *SelectionCountError) Is(target error) bool {
	return target == ErrInvalidSelectionCount
}

type indexError struct {
	index, length int
}

func (e *indexError) Error() string {
	return fmt.Sprintf("dot index %d out of range [0, %d)", e.index, e.length)
}

func (e *indexError) Is(target error) bool {
	return target == ErrIndexOutOfRange || target == ErrNotFound
}
