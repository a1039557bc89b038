// Package observ measures the pipeline phases of each conversion and sums
// them over a batch.
package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase is one measured pipeline phase of a file.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer records the phases of one conversion. It is not goroutine-safe;
// every file gets its own.
type Timer struct {
	phases []Phase
}

func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 6)} }

// Begin starts a phase and returns its index for End.
func (t *Timer) Begin(name string) int {
	if t == nil {
		return -1
	}
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

func (t *Timer) End(idx int, note string) {
	if t == nil || idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// Summary renders the phases as an aligned table.
func (t *Timer) Summary() string {
	return t.Report().String()
}

// PhaseReport - сериализуемая сводка одной фазы.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report - фазы и общая длительность в миллисекундах.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	if t == nil || len(t.phases) == 0 {
		return Report{}
	}
	report := Report{Phases: make([]PhaseReport, len(t.phases))}
	var total time.Duration
	for i, phase := range t.phases {
		total += phase.Dur
		report.Phases[i] = PhaseReport{
			Name:       phase.Name,
			DurationMS: durationToMillis(phase.Dur),
			Note:       phase.Note,
		}
	}
	report.TotalMS = durationToMillis(total)
	return report
}

func (r Report) String() string {
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range r.Phases {
		fmt.Fprintf(&sb, "  %-12s %9.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-12s %9.2f ms\n", "total", r.TotalMS)
	return sb.String()
}

// Totals sums phase durations over many files. Safe for concurrent use.
type Totals struct {
	mu    sync.Mutex
	order []string
	sums  map[string]float64
	files int
}

// Add folds in the report of one file.
func (t *Totals) Add(r Report) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sums == nil {
		t.sums = make(map[string]float64)
	}
	t.files++
	for _, p := range r.Phases {
		if _, seen := t.sums[p.Name]; !seen {
			t.order = append(t.order, p.Name)
		}
		t.sums[p.Name] += p.DurationMS
	}
}

// Report returns the summed phases in first-seen order; the note of each
// phase is its share of the total.
func (t *Totals) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	var r Report
	for _, name := range t.order {
		r.TotalMS += t.sums[name]
	}
	for _, name := range t.order {
		p := PhaseReport{Name: name, DurationMS: t.sums[name]}
		if r.TotalMS > 0 {
			p.Note = fmt.Sprintf("%.0f%%", 100*t.sums[name]/r.TotalMS)
		}
		r.Phases = append(r.Phases, p)
	}
	return r
}

// Files is the number of reports added.
func (t *Totals) Files() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.files
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
