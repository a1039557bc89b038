package ast

const (
	chunkBits = 10
	chunkSize = 1 << chunkBits
	chunkMask = chunkSize - 1
)

// Arena stores values in fixed-size chunks. Indices are 1-based; 0 means
// "none". Pointers returned by Get stay valid while the arena grows, so
// rewrites can hold a *Node across allocations.
type Arena[T any] struct {
	chunks [][]T
	n      uint32
}

// NewArena creates an arena. capHint is a hint for the number of elements;
// zero is allowed.
func NewArena[T any](capHint uint) *Arena[T] {
	a := &Arena[T]{}
	if capHint > 0 {
		a.chunks = make([][]T, 0, capHint/chunkSize+1)
	}
	return a
}

// Возвращает индекс нового элемента (1-based).
func (a *Arena[T]) Allocate(value T) uint32 {
	ci := a.n >> chunkBits
	if int(ci) == len(a.chunks) {
		a.chunks = append(a.chunks, make([]T, 0, chunkSize))
	}
	a.chunks[ci] = append(a.chunks[ci], value)
	a.n++
	return a.n
}

func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || index > a.n {
		return nil
	}
	i := index - 1
	return &a.chunks[i>>chunkBits][i&chunkMask]
}

func (a *Arena[T]) Len() uint32 {
	return a.n
}

// Truncate drops every element with index > n. Used to discard nodes built
// during a failed speculative parse.
func (a *Arena[T]) Truncate(n uint32) {
	if n >= a.n {
		return
	}
	a.n = n
	full := int(n >> chunkBits)
	rest := n & chunkMask
	if rest == 0 {
		a.chunks = a.chunks[:full]
		return
	}
	a.chunks = a.chunks[:full+1]
	a.chunks[full] = a.chunks[full][:rest]
}
