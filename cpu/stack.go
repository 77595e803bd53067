package cpu

const (
	STACK_LIMIT = 16 // Maximum saved branch snapshots.
)

// Stack is a bounded LIFO. Pushing onto a full stack discards the oldest
// entry.
type Stack[T any] struct {
	Data []T
}

// Push a value, returning false if the oldest entry was discarded.
func (s *Stack[T]) Push(value T) (ok bool) {
	ok = !s.Full()
	if !ok {
		s.Data = append(s.Data[:0], s.Data[1:]...)
	}
	s.Data = append(s.Data, value)
	return
}

func (s *Stack[T]) Pop() (value T, ok bool) {
	value, ok = s.Peek()
	if ok {
		s.Data = s.Data[:len(s.Data)-1]
	}
	return
}

func (s *Stack[T]) Empty() bool {
	return len(s.Data) == 0
}

func (s *Stack[T]) Full() bool {
	return len(s.Data) >= STACK_LIMIT
}

func (s *Stack[T]) Peek() (value T, ok bool) {
	if s.Empty() {
		return
	}

	return s.Data[len(s.Data)-1], true
}

func (s *Stack[T]) Reset() {
	if len(s.Data) > 0 {
		s.Data = s.Data[:0]
	}
}
