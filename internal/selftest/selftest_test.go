package selftest

import (
	"context"
	"testing"
)

func TestRunAll(t *testing.T) {
	results := RunAll(context.Background())
	if len(results) != len(parseCases)+5 {
		t.Fatalf("Expected %d results, got %d", len(parseCases)+5, len(results))
	}
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("%s: %v", r.Name, r.Err)
		}
	}
}
