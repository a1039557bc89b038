package trace

import "time"

// Kind is the type of a trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint // instant event
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Scope is the granularity of an event. Lower values are coarser.
type Scope uint8

const (
	ScopeBatch Scope = iota + 1 // one CLI invocation
	ScopeFile                   // one converted file
	ScopePhase                  // a pipeline phase of one file
	ScopeStep                   // cache lookups, config loading, verification
)

func (s Scope) String() string {
	switch s {
	case ScopeBatch:
		return "batch"
	case ScopeFile:
		return "file"
	case ScopePhase:
		return "phase"
	case ScopeStep:
		return "step"
	default:
		return "unknown"
	}
}

// Event is a single trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // global, monotonic
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for a root span
	GID      uint64 // goroutine of the span
	Name     string // "parse", "file:src/a.js"
	Detail   string
	Extra    map[string]string
}
