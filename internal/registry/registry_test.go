package registry

import (
	"testing"

	"github.com/ludo-technologies/reposcan/domain"
)

func TestAnalysers_UniqueIDs(t *testing.T) {
	analysers, err := Analysers()
	if err != nil {
		t.Fatalf("Analysers failed: %v", err)
	}
	if len(analysers) == 0 {
		t.Fatal("Expected at least one analyser")
	}

	seen := make(map[string]bool)
	for _, entry := range analysers {
		if seen[entry.ID] {
			t.Errorf("Duplicate analyser id %q", entry.ID)
		}
		seen[entry.ID] = true
		if entry.Plugin == nil {
			t.Errorf("Analyser %q has no plugin", entry.ID)
		}
	}
}

func TestAggregators_UniqueIDs(t *testing.T) {
	aggregators, err := Aggregators()
	if err != nil {
		t.Fatalf("Aggregators failed: %v", err)
	}

	seen := make(map[string]bool)
	for _, entry := range aggregators {
		if seen[entry.ID] {
			t.Errorf("Duplicate aggregator id %q", entry.ID)
		}
		seen[entry.ID] = true
	}
}

func TestChecked_RejectsCollision(t *testing.T) {
	entries := []Entry[domain.Analyser]{
		{ID: "license"},
		{ID: "license"},
	}
	if _, err := checked(entries); err == nil {
		t.Fatal("Expected error for duplicate ids")
	} else if !domain.IsCode(err, domain.ErrCodeInvalidRule) {
		t.Errorf("Expected INVALID_RULE error, got %v", err)
	}
}

func TestFilter(t *testing.T) {
	analysers, err := Analysers()
	if err != nil {
		t.Fatalf("Analysers failed: %v", err)
	}

	byID := Filter(analysers, []string{"license"}, nil)
	for _, entry := range byID {
		if entry.ID == "license" {
			t.Error("Skipped id should be filtered out")
		}
	}
	if len(byID) != len(analysers)-1 {
		t.Errorf("Expected %d analysers, got %d", len(analysers)-1, len(byID))
	}

	byType := Filter(analysers, nil, []string{"code"})
	for _, entry := range byType {
		if entry.Plugin.Type() == domain.TypeCode {
			t.Error("Skipped category should be filtered out")
		}
	}

	none := Filter(analysers, nil, nil)
	if len(none) != len(analysers) {
		t.Errorf("No skips should keep all analysers, got %d of %d", len(none), len(analysers))
	}
}
