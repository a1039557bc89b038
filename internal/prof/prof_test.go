package prof_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lukeapage/flow-to-ts/internal/prof"
)

func TestSession(t *testing.T) {
	dir := t.TempDir()
	cfg := prof.Config{
		CPU:   filepath.Join(dir, "cpu.pprof"),
		Mem:   filepath.Join(dir, "mem.pprof"),
		Trace: filepath.Join(dir, "trace.out"),
	}
	s, err := prof.Start(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Stop(); err != nil {
		t.Fatal(err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("second stop: %v", err)
	}
	for _, p := range []string{cfg.CPU, cfg.Mem, cfg.Trace} {
		st, err := os.Stat(p)
		if err != nil || st.Size() == 0 {
			t.Fatalf("%s: %v", p, err)
		}
	}
}

func TestDisabled(t *testing.T) {
	if (prof.Config{}).Enabled() {
		t.Fatalf("empty config enabled")
	}
	s, err := prof.Start(prof.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Stop(); err != nil {
		t.Fatal(err)
	}
}

func TestStartBadPath(t *testing.T) {
	if _, err := prof.Start(prof.Config{CPU: filepath.Join(t.TempDir(), "missing", "cpu.pprof")}); err == nil {
		t.Fatalf("expected an error")
	}
}
