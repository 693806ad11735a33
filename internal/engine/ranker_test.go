package engine

import (
	"fmt"
	"testing"

	"github.com/pharmastock/pharmastock/internal/domain"
)

func TestRankOrdersDescending(t *testing.T) {
	recs := []domain.Recommendation{
		{Title: "c", PriorityScore: 45},
		{Title: "a", PriorityScore: 150},
		{Title: "b", PriorityScore: 88},
	}

	ranked := Rank(recs, 20)

	if len(ranked) != 3 {
		t.Fatalf("expected 3 items, got %d", len(ranked))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].PriorityScore > ranked[i-1].PriorityScore {
			t.Errorf("ranking not descending at %d: %v > %v", i, ranked[i].PriorityScore, ranked[i-1].PriorityScore)
		}
	}
	if ranked[0].Title != "a" || ranked[1].Title != "b" || ranked[2].Title != "c" {
		t.Errorf("unexpected order: %s, %s, %s", ranked[0].Title, ranked[1].Title, ranked[2].Title)
	}
}

func TestRankTruncatesToTopN(t *testing.T) {
	recs := make([]domain.Recommendation, 50)
	for i := range recs {
		recs[i] = domain.Recommendation{
			Title:         fmt.Sprintf("rec-%d", i),
			PriorityScore: float64(i),
		}
	}

	ranked := Rank(recs, 20)
	if len(ranked) != 20 {
		t.Fatalf("expected 20 items, got %d", len(ranked))
	}
	if ranked[0].PriorityScore != 49 {
		t.Errorf("top item score = %v, want 49", ranked[0].PriorityScore)
	}
}

func TestRankStableOnTies(t *testing.T) {
	recs := []domain.Recommendation{
		{Title: "first", PriorityScore: 60},
		{Title: "second", PriorityScore: 60},
		{Title: "third", PriorityScore: 60},
	}

	ranked := Rank(recs, 20)
	if ranked[0].Title != "first" || ranked[1].Title != "second" || ranked[2].Title != "third" {
		t.Errorf("tied candidates reordered: %s, %s, %s", ranked[0].Title, ranked[1].Title, ranked[2].Title)
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	recs := []domain.Recommendation{
		{Title: "low", PriorityScore: 10},
		{Title: "high", PriorityScore: 90},
	}

	_ = Rank(recs, 20)
	if recs[0].Title != "low" {
		t.Errorf("input slice mutated: first item is %s", recs[0].Title)
	}
}

func TestRankEmptyInput(t *testing.T) {
	ranked := Rank(nil, 20)
	if len(ranked) != 0 {
		t.Errorf("expected empty ranking, got %d items", len(ranked))
	}
}
