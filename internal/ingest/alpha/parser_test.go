package alpha

import (
	"strings"
	"testing"
)

const sampleCSV = `
"Legs · Day 2 · Push-Pull-Legs";"2026-02-19 4:54 h";"1:02 hr"
"1. Barbell Squat · Barbell · 8 reps";"WU1 · 37,5 kg · 9 reps<br>WU2 · 72,5 kg · 7 reps"
#;KG;REPS;RIR
1;115;8;1
2;115;10;1
3;115;10;1
"2. Leg Press · Machine · 10 reps";"WU1 · 80 kg · 8 reps"
#;KG;REPS;RIR
1;160;8;1
2;160;12;1
"3. Nordic Curl · Bodyweight · 10 reps"
#;KG;REPS;RIR
1;+0;10;0
2;+0;9;1
"4. Standing Calf Raise · Machine · 12 reps · 2 dropsets"
#;KG;REPS;RIR
1;157,5;11;1
2;157,5;11;0

"Push · Day 1 · Push-Pull-Legs";"2026-02-17 17:04 h";"1:12 hr"
"1. Barbell Bench Press · Barbell · 6 reps";"WU1 · 47,5 kg · 8 reps"
#;KG;REPS;RIR
1;102,5;6;0
2;100;6;0
`

// TestParseCompleteSessions verifies parsing a multi-session CSV with
// exercises, warmups and working sets end to end.
func TestParseCompleteSessions(t *testing.T) {
	sessions, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("sessions = %d, want 2", len(sessions))
	}

	s1 := sessions[0]
	if s1.Name != "Legs · Day 2 · Push-Pull-Legs" {
		t.Errorf("s1.Name = %q", s1.Name)
	}
	if s1.Duration != "1:02 hr" {
		t.Errorf("s1.Duration = %q", s1.Duration)
	}
	if len(s1.Exercises) != 4 {
		t.Fatalf("s1 exercises = %d, want 4", len(s1.Exercises))
	}

	// Barbell Squat: 2 warmups + 3 working sets.
	ex1 := s1.Exercises[0]
	if ex1.Name != "Barbell Squat" {
		t.Errorf("ex1.Name = %q, want Barbell Squat", ex1.Name)
	}
	if ex1.Equipment != "Barbell" {
		t.Errorf("ex1.Equipment = %q, want Barbell", ex1.Equipment)
	}
	if ex1.TargetReps != 8 {
		t.Errorf("ex1.TargetReps = %d, want 8", ex1.TargetReps)
	}
	if len(ex1.Sets) != 5 {
		t.Errorf("ex1 sets = %d, want 5 (2 warmup + 3 working)", len(ex1.Sets))
	}
	if !ex1.Sets[0].IsWarmup || ex1.Sets[2].IsWarmup {
		t.Error("warmup flags misplaced on ex1 sets")
	}

	// Nordic Curl: bodyweight-plus notation, no warmups.
	ex3 := s1.Exercises[2]
	if len(ex3.Sets) != 2 {
		t.Fatalf("ex3 sets = %d, want 2", len(ex3.Sets))
	}
	if !ex3.Sets[0].IsBodyweightPlus || ex3.Sets[0].WeightKg != 0 {
		t.Errorf("ex3 set 1 = %+v, want bodyweight +0", ex3.Sets[0])
	}

	// Standing Calf Raise: modifier suffix and European decimal weight.
	ex4 := s1.Exercises[3]
	if ex4.Name != "Standing Calf Raise" {
		t.Errorf("ex4.Name = %q, want Standing Calf Raise", ex4.Name)
	}
	if ex4.Sets[0].WeightKg != 157.5 {
		t.Errorf("ex4 set 1 weight = %v, want 157.5", ex4.Sets[0].WeightKg)
	}

	// Second session: 24-hour clock in the header.
	s2 := sessions[1]
	if s2.Name != "Push · Day 1 · Push-Pull-Legs" {
		t.Errorf("s2.Name = %q", s2.Name)
	}
	if s2.Date.Hour() != 17 {
		t.Errorf("s2 start hour = %d, want 17", s2.Date.Hour())
	}
}

// TestEuropeanDecimal verifies comma decimal separators parse: "102,5" is
// 102.5 kg.
func TestEuropeanDecimal(t *testing.T) {
	if got := parseEuropeanFloat("102,5"); got != 102.5 {
		t.Errorf("parseEuropeanFloat(102,5) = %f, want 102.5", got)
	}
}

// TestBodyweightPlus verifies the +N notation: bodyweight plus N kg.
func TestBodyweightPlus(t *testing.T) {
	weight, isBW := parseWeight("+35")
	if !isBW || weight != 35 {
		t.Errorf("parseWeight(+35) = (%f, %v), want (35, true)", weight, isBW)
	}
	weight, isBW = parseWeight("+0")
	if !isBW || weight != 0 {
		t.Errorf("parseWeight(+0) = (%f, %v), want (0, true)", weight, isBW)
	}
}

// TestWarmupParsing verifies warmup extraction from the exercise header's
// second field, <br>-separated with European decimals.
func TestWarmupParsing(t *testing.T) {
	sets := parseWarmups("WU1 · 37,5 kg · 9 reps<br>WU2 · 72,5 kg · 7 reps")
	if len(sets) != 2 {
		t.Fatalf("warmup sets = %d, want 2", len(sets))
	}
	if sets[0].WeightKg != 37.5 || sets[0].Reps != 9 || !sets[0].IsWarmup {
		t.Errorf("wu1 = %+v, want 37.5 kg x9 warmup", sets[0])
	}
	if sets[1].WeightKg != 72.5 {
		t.Errorf("wu2 weight = %f, want 72.5", sets[1].WeightKg)
	}
}

// TestEmptyInput verifies that empty input returns no sessions without error.
func TestEmptyInput(t *testing.T) {
	sessions, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("sessions = %d, want 0", len(sessions))
	}
}

// TestDurationParsing verifies the hr and min duration forms.
func TestDurationParsing(t *testing.T) {
	if got := parseDurationSec("1:02 hr"); got != 3720 {
		t.Errorf("parseDurationSec(1:02 hr) = %d, want 3720", got)
	}
	if got := parseDurationSec("47 min"); got != 2820 {
		t.Errorf("parseDurationSec(47 min) = %d, want 2820", got)
	}
	if got := parseDurationSec("garbage"); got != 0 {
		t.Errorf("parseDurationSec(garbage) = %d, want 0", got)
	}
}
