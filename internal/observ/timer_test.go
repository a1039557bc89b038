package observ_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/lukeapage/flow-to-ts/internal/observ"
)

func TestTimerReport(t *testing.T) {
	tm := observ.NewTimer()
	parse := tm.Begin("parse")
	tm.End(parse, "12 nodes")
	gen := tm.Begin("generate")
	tm.End(gen, "")
	tm.End(99, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 || r.Phases[0].Name != "parse" || r.Phases[0].Note != "12 nodes" {
		t.Fatalf("report = %+v", r)
	}
	if s := tm.Summary(); !strings.Contains(s, "parse") || !strings.Contains(s, "// 12 nodes") || !strings.Contains(s, "total") {
		t.Fatalf("summary:\n%s", s)
	}
}

func TestNilTimer(t *testing.T) {
	var tm *observ.Timer
	tm.End(tm.Begin("x"), "")
	if len(tm.Report().Phases) != 0 {
		t.Fatalf("nil timer recorded phases")
	}
}

func TestTotalsConcurrent(t *testing.T) {
	var totals observ.Totals
	report := observ.Report{Phases: []observ.PhaseReport{
		{Name: "parse", DurationMS: 1},
		{Name: "generate", DurationMS: 3},
	}}
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			totals.Add(report)
		}()
	}
	wg.Wait()

	r := totals.Report()
	if totals.Files() != 10 || r.TotalMS != 40 {
		t.Fatalf("files %d total %v", totals.Files(), r.TotalMS)
	}
	if r.Phases[0].Name != "parse" || r.Phases[0].Note != "25%" || r.Phases[1].Note != "75%" {
		t.Fatalf("phases = %+v", r.Phases)
	}
}
