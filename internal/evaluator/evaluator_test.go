package evaluator

import "testing"

func TestMaskAndRenormalizeDropsIllegalMassAndRescales(t *testing.T) {
	priors := []float64{0.4, 0.3, 0.2, 0.1}
	masked, err := MaskAndRenormalize(priors, []int{0, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if masked[1] != 0 || masked[3] != 0 {
		t.Fatalf("illegal entries should be zeroed, got %v", masked)
	}
	want0, want2 := 0.4/0.6, 0.2/0.6
	if diff := masked[0] - want0; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("masked[0] = %v, want %v", masked[0], want0)
	}
	if diff := masked[2] - want2; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("masked[2] = %v, want %v", masked[2], want2)
	}
}

func TestMaskAndRenormalizeFallsBackToUniformWhenAllLegalMassIsZero(t *testing.T) {
	priors := []float64{0, 0.9, 0, 0.1}
	masked, err := MaskAndRenormalize(priors, []int{0, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if masked[0] != 0.5 || masked[2] != 0.5 {
		t.Fatalf("expected a uniform fallback over the legal actions, got %v", masked)
	}
}

func TestMaskAndRenormalizeRejectsOutOfRangeIndex(t *testing.T) {
	priors := []float64{0.5, 0.5}
	if _, err := MaskAndRenormalize(priors, []int{0, 5}); err == nil {
		t.Fatal("expected an error for an out-of-range legal action index")
	}
}

func TestMaskAndRenormalizeRejectsEmptyLegalSet(t *testing.T) {
	priors := []float64{0.5, 0.5}
	if _, err := MaskAndRenormalize(priors, nil); err == nil {
		t.Fatal("expected an error for an empty legal action set")
	}
}

func TestConstantEvaluatorsReportTheirFixedValue(t *testing.T) {
	uninformed := NewUninformed[int](4)
	pred := uninformed.Evaluate(0)
	if pred.Value != 0 {
		t.Fatalf("expected uninformed value 0, got %v", pred.Value)
	}
	if len(pred.Priors) != 4 {
		t.Fatalf("expected 4 priors, got %d", len(pred.Priors))
	}
	var sum float64
	for _, p := range pred.Priors {
		if p != 0.25 {
			t.Fatalf("expected a uniform prior of 0.25, got %v", p)
		}
		sum += p
	}
	if diff := sum - 1; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("priors should sum to 1, got %v", sum)
	}

	biased := NewBiased[int](2)
	if biased.Evaluate(0).Value != 0.5 {
		t.Fatalf("expected biased value 0.5, got %v", biased.Evaluate(0).Value)
	}
}
