package scoring

import (
	"errors"
	"reflect"
	"testing"
)

func likertInstrument(items ...Item) Instrument {
	return Instrument{
		Scale: Scale{Min: 1, Max: 5},
		Items: items,
	}
}

func TestScoreConcreteScenario(t *testing.T) {
	// Dos items de O, escala [1,5], item 2 invertido:
	// item1=4, item2=2 -> reflejado 1+5-2=4 -> suma 8, pct (8-2)*100/8 = 75.
	inst := likertInstrument(
		Item{ID: 1, Trait: "O"},
		Item{ID: 2, Trait: "O", Reverse: true},
	)

	report, err := Score(ResponseSet{1: 4, 2: 2}, inst)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if report.Sums["O"] != 8 {
		t.Fatalf("expected sum 8, got %d", report.Sums["O"])
	}
	if report.Percentages["O"] != 75 {
		t.Fatalf("expected 75%%, got %v", report.Percentages["O"])
	}
}

func TestScoreReflection(t *testing.T) {
	inst := likertInstrument(Item{ID: 1, Trait: "N", Reverse: true})

	cases := []struct {
		raw     int
		wantSum int
	}{
		{raw: 1, wantSum: 5},
		{raw: 3, wantSum: 3},
		{raw: 5, wantSum: 1},
	}
	for _, tc := range cases {
		report, err := Score(ResponseSet{1: tc.raw}, inst)
		if err != nil {
			t.Fatalf("score raw=%d: %v", tc.raw, err)
		}
		if report.Sums["N"] != tc.wantSum {
			t.Fatalf("raw %d: expected reflected sum %d, got %d", tc.raw, tc.wantSum, report.Sums["N"])
		}
	}
}

func TestScoreBoundaries(t *testing.T) {
	inst := likertInstrument(
		Item{ID: 1, Trait: "E"},
		Item{ID: 2, Trait: "E"},
		Item{ID: 3, Trait: "E"},
	)

	allMin, err := Score(ResponseSet{1: 1, 2: 1, 3: 1}, inst)
	if err != nil {
		t.Fatalf("score all-min: %v", err)
	}
	if allMin.Percentages["E"] != 0 {
		t.Fatalf("expected exactly 0%%, got %v", allMin.Percentages["E"])
	}

	allMax, err := Score(ResponseSet{1: 5, 2: 5, 3: 5}, inst)
	if err != nil {
		t.Fatalf("score all-max: %v", err)
	}
	if allMax.Percentages["E"] != 100 {
		t.Fatalf("expected exactly 100%%, got %v", allMax.Percentages["E"])
	}
}

func TestScoreUnequalItemCountsPerTrait(t *testing.T) {
	// Un rasgo con 3 items y otro con 1: la normalizacion debe usar el rango
	// propio de cada rasgo, no una constante compartida.
	inst := likertInstrument(
		Item{ID: 1, Trait: "A"},
		Item{ID: 2, Trait: "A"},
		Item{ID: 3, Trait: "A"},
		Item{ID: 4, Trait: "C"},
	)

	report, err := Score(ResponseSet{1: 5, 2: 5, 3: 5, 4: 3}, inst)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if report.Percentages["A"] != 100 {
		t.Fatalf("trait A: expected 100%%, got %v", report.Percentages["A"])
	}
	// C: suma 3 sobre rango [1,5] -> (3-1)*100/4 = 50.
	if report.Percentages["C"] != 50 {
		t.Fatalf("trait C: expected 50%%, got %v", report.Percentages["C"])
	}
}

func TestScorePercentagesWithinBounds(t *testing.T) {
	inst := likertInstrument(
		Item{ID: 1, Trait: "O"},
		Item{ID: 2, Trait: "O", Reverse: true},
		Item{ID: 3, Trait: "C"},
		Item{ID: 4, Trait: "N", Reverse: true},
	)

	for v1 := 1; v1 <= 5; v1++ {
		for v2 := 1; v2 <= 5; v2++ {
			report, err := Score(ResponseSet{1: v1, 2: v2, 3: v1, 4: v2}, inst)
			if err != nil {
				t.Fatalf("score (%d,%d): %v", v1, v2, err)
			}
			for trait, pct := range report.Percentages {
				if pct < 0 || pct > 100 {
					t.Fatalf("trait %s: percentage %v out of [0,100]", trait, pct)
				}
			}
		}
	}
}

func TestScoreIdempotent(t *testing.T) {
	inst := likertInstrument(
		Item{ID: 1, Trait: "O"},
		Item{ID: 2, Trait: "C", Reverse: true},
	)
	responses := ResponseSet{1: 2, 2: 4}

	first, err := Score(responses, inst)
	if err != nil {
		t.Fatalf("first score: %v", err)
	}
	second, err := Score(responses, inst)
	if err != nil {
		t.Fatalf("second score: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical reports, got %+v vs %+v", first, second)
	}
}

func TestScoreDegenerateScaleDefaultsToZero(t *testing.T) {
	inst := Instrument{
		Scale: Scale{Min: 3, Max: 3},
		Items: []Item{{ID: 1, Trait: "O"}},
	}

	report, err := Score(ResponseSet{1: 3}, inst)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if report.Percentages["O"] != 0 {
		t.Fatalf("expected defensive 0%%, got %v", report.Percentages["O"])
	}
}

func TestValidateReportsAllMissingAnswers(t *testing.T) {
	inst := likertInstrument(
		Item{ID: 1, Trait: "O"},
		Item{ID: 2, Trait: "C"},
		Item{ID: 3, Trait: "E"},
	)

	err := Validate(ResponseSet{1: 3, 2: 3}, inst)
	var missing *MissingAnswerError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingAnswerError, got %v", err)
	}
	if !reflect.DeepEqual(missing.ItemIDs, []int{3}) {
		t.Fatalf("expected missing [3], got %v", missing.ItemIDs)
	}

	err = Validate(ResponseSet{}, inst)
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingAnswerError, got %v", err)
	}
	if !reflect.DeepEqual(missing.ItemIDs, []int{1, 2, 3}) {
		t.Fatalf("expected all ids reported at once, got %v", missing.ItemIDs)
	}
}

func TestValidateRejectsUnexpectedAnswers(t *testing.T) {
	inst := likertInstrument(Item{ID: 1, Trait: "O"})

	err := Validate(ResponseSet{1: 3, 9: 2, 7: 1}, inst)
	var unexpected *UnexpectedAnswerError
	if !errors.As(err, &unexpected) {
		t.Fatalf("expected UnexpectedAnswerError, got %v", err)
	}
	if !reflect.DeepEqual(unexpected.ItemIDs, []int{7, 9}) {
		t.Fatalf("expected sorted extra ids [7 9], got %v", unexpected.ItemIDs)
	}
}

func TestValidateOutOfRange(t *testing.T) {
	inst := likertInstrument(
		Item{ID: 1, Trait: "O"},
		Item{ID: 2, Trait: "C"},
	)

	err := Validate(ResponseSet{1: 3, 2: 7}, inst)
	var oor *OutOfRangeError
	if !errors.As(err, &oor) {
		t.Fatalf("expected OutOfRangeError, got %v", err)
	}
	if oor.ItemID != 2 || oor.Value != 7 || oor.Min != 1 || oor.Max != 5 {
		t.Fatalf("unexpected error detail: %+v", oor)
	}
}

func TestValidateUnknownTrait(t *testing.T) {
	inst := likertInstrument(
		Item{ID: 1, Trait: "O"},
		Item{ID: 2, Trait: "  "},
	)

	err := Validate(ResponseSet{1: 3, 2: 3}, inst)
	var unknown *UnknownTraitError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownTraitError, got %v", err)
	}
	if unknown.ItemID != 2 {
		t.Fatalf("expected item 2, got %d", unknown.ItemID)
	}
}

func TestParseResponses(t *testing.T) {
	responses, err := ParseResponses(map[int]string{1: " 4 ", 2: "2"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if responses[1] != 4 || responses[2] != 2 {
		t.Fatalf("unexpected parse result: %v", responses)
	}

	_, err = ParseResponses(map[int]string{1: "4", 2: "dos"})
	var invalid *InvalidValueError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidValueError, got %v", err)
	}
	if invalid.ItemID != 2 || invalid.Raw != "dos" {
		t.Fatalf("unexpected error detail: %+v", invalid)
	}
}

func TestReportRounded(t *testing.T) {
	report := Report{Percentages: map[string]float64{"O": 74.6, "C": 25.4}}
	rounded := report.Rounded()
	if rounded["O"] != 75 || rounded["C"] != 25 {
		t.Fatalf("unexpected rounding: %v", rounded)
	}
}
