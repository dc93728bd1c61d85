package index

import "fmt"

// TermID is the interned handle of a term. Handles are stable for the
// lifetime of the Dictionary that issued them.
type TermID uint32

// PostingList maps a document id to the term's frequency in that document.
// Lists handed out by MemoryIndex are read-only views.
type PostingList map[int]float64

// DocumentStatus is opaque to the index except as a predicate input.
type DocumentStatus int

const (
	StatusActual DocumentStatus = iota
	StatusIrrelevant
	StatusBanned
	StatusRemoved
)

func (s DocumentStatus) String() string {
	switch s {
	case StatusActual:
		return "ACTUAL"
	case StatusIrrelevant:
		return "IRRELEVANT"
	case StatusBanned:
		return "BANNED"
	case StatusRemoved:
		return "REMOVED"
	default:
		return fmt.Sprintf("DocumentStatus(%d)", int(s))
	}
}

// ParseStatus converts the upper- or lower-case status name to a
// DocumentStatus.
func ParseStatus(s string) (DocumentStatus, error) {
	switch s {
	case "ACTUAL", "actual", "":
		return StatusActual, nil
	case "IRRELEVANT", "irrelevant":
		return StatusIrrelevant, nil
	case "BANNED", "banned":
		return StatusBanned, nil
	case "REMOVED", "removed":
		return StatusRemoved, nil
	}
	return StatusActual, fmt.Errorf("unknown document status %q", s)
}

// ExecutionMode selects between the single-goroutine and the fork-join
// implementation of an operation.
type ExecutionMode int

const (
	Sequential ExecutionMode = iota
	Parallel
)

func (m ExecutionMode) String() string {
	if m == Parallel {
		return "parallel"
	}
	return "sequential"
}

// ParseMode converts "sequential" or "parallel" to an ExecutionMode.
func ParseMode(s string) (ExecutionMode, error) {
	switch s {
	case "sequential", "seq", "":
		return Sequential, nil
	case "parallel", "par":
		return Parallel, nil
	}
	return Sequential, fmt.Errorf("unknown execution mode %q", s)
}

// Predicate decides whether a document takes part in a search.
type Predicate func(id int, status DocumentStatus, rating int) bool

// WithStatus returns a Predicate accepting documents in the given status.
func WithStatus(status DocumentStatus) Predicate {
	return func(_ int, s DocumentStatus, _ int) bool {
		return s == status
	}
}

type documentData struct {
	rating int
	status DocumentStatus
}
