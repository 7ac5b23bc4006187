package harness

import (
	"context"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/reflux/internal/journal"
)

// GoldenRunToken is the fixed run token golden runs use, so the canonical
// snapshot bytes never vary between executions.
const GoldenRunToken = "golden-run"

// RunWithGolden executes a scenario deterministically and compares its
// canonical trace against the golden file testdata/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// The scenario's own expectations are verified first; a scenario that fails
// its expectations must not silently update a golden file.
func RunWithGolden(t *testing.T, sc *Scenario) {
	t.Helper()

	runner := &Runner{Tokens: journal.NewFixedGenerator(GoldenRunToken)}
	res, err := runner.Run(context.Background(), sc)
	if err != nil {
		t.Fatalf("scenario %s failed: %v", sc.Name, err)
	}
	for _, verr := range Verify(sc, res) {
		t.Errorf("scenario %s: %v", sc.Name, verr)
	}
	if t.Failed() {
		return
	}

	canonical, err := res.Snapshot.MarshalCanonical()
	if err != nil {
		t.Fatalf("scenario %s: marshal trace: %v", sc.Name, err)
	}

	g := goldie.New(t)
	g.Assert(t, sc.Name, canonical)
}
