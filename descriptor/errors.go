package descriptor

import "fmt"

// ErrLengthMismatch indicates that the words and values of a sparse descriptor
// have different lengths.
type ErrLengthMismatch struct {
	Values int
	Words  int
}

func (e *ErrLengthMismatch) Error() string {
	return fmt.Sprintf("descriptor length mismatch: %d values, %d words", e.Values, e.Words)
}

// ErrDuplicateWord indicates that a sparse descriptor lists the same word twice.
type ErrDuplicateWord struct {
	Word uint32
}

func (e *ErrDuplicateWord) Error() string {
	return fmt.Sprintf("duplicate descriptor word: %d", e.Word)
}

// ErrNonFiniteValue indicates a NaN or infinite descriptor component.
type ErrNonFiniteValue struct {
	Index int
	Value float32
}

func (e *ErrNonFiniteValue) Error() string {
	return fmt.Sprintf("non-finite descriptor value at %d: %v", e.Index, e.Value)
}
