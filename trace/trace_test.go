package trace

import (
	"bytes"
	"strings"
	"testing"

	"github.com/coregx/pikekernel/inst"
)

func TestLoggerWritesExpectedLines(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogger(&buf)

	obs.Start()
	obs.BeforeToken(3)
	obs.BeforeInst(5, inst.Instruction{Op: inst.Match})
	obs.AfterInst(5, inst.VerdictMatch)
	obs.OnMatch(0)
	obs.End(1)

	out := buf.String()
	for _, want := range []string{"run start", "sp=3", "pc=5", "match start=0", "1 match(es)"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected log output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestZeroValueObserverFieldsAreNilSafe(t *testing.T) {
	var obs Observer
	if obs.Start != nil || obs.OnFailure != nil {
		t.Error("zero-value Observer should have nil hooks")
	}
}
