package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/kvfridge/fridge/internal/config"
)

func TestBenchCmd_HotPotato_ReportsOneWinnerPerWorker(t *testing.T) {
	t.Parallel()

	cmd := BenchCmd(config.Default())

	var stdout, stderr bytes.Buffer
	o := NewIO(&stdout, &stderr)

	exitCode := cmd.Run(context.Background(), o, []string{"hotpotato", "-w", "4", "-n", "50"})
	if exitCode != 0 {
		t.Fatalf("exit code = %d, stderr = %q", exitCode, stderr.String())
	}

	if !strings.Contains(stdout.String(), "4 workers, 4 wins, 1 entries remaining") {
		t.Errorf("stdout = %q, want it to report the hotpotato invariant", stdout.String())
	}
}

func TestBenchCmd_UnknownScenario(t *testing.T) {
	t.Parallel()

	cmd := BenchCmd(config.Default())

	var stdout, stderr bytes.Buffer
	o := NewIO(&stdout, &stderr)

	exitCode := cmd.Run(context.Background(), o, []string{"nope"})
	if exitCode != 1 {
		t.Errorf("exit code = %d, want 1", exitCode)
	}

	if !strings.Contains(stderr.String(), "unknown scenario") {
		t.Errorf("stderr = %q, want it to name the unknown scenario error", stderr.String())
	}
}

func TestBenchCmd_NoScenarioGiven(t *testing.T) {
	t.Parallel()

	cmd := BenchCmd(config.Default())

	var stdout, stderr bytes.Buffer
	o := NewIO(&stdout, &stderr)

	exitCode := cmd.Run(context.Background(), o, nil)
	if exitCode != 1 {
		t.Errorf("exit code = %d, want 1", exitCode)
	}

	if !strings.Contains(stderr.String(), "unknown scenario") {
		t.Errorf("stderr = %q, want it to report the missing scenario", stderr.String())
	}
}
