package medical

import (
	"strings"
	"testing"
)

func TestParseText_NeverFabricates(t *testing.T) {
	rec := ParseText("The quick brown fox jumps over the lazy dog.")
	if !rec.Empty() {
		t.Errorf("plain text produced findings: %+v", rec)
	}
}

func TestParseText_Glucose(t *testing.T) {
	rec := ParseText("Fasting glucose: 142 mg/dL measured this morning")
	if !rec.GlucoseLevels.Found {
		t.Fatal("glucose reading not extracted")
	}
	if !strings.Contains(rec.GlucoseLevels.Value, "142") {
		t.Errorf("glucose value got %q, want it to contain 142", rec.GlucoseLevels.Value)
	}
	// A lab value implies diabetes indicators even without the word.
	if !rec.DiabetesDiagnosis.Found {
		t.Error("glucose reading should set diabetes indicators")
	}
}

func TestParseText_HbA1c(t *testing.T) {
	rec := ParseText("HbA1c 7.2 at last check")
	if !rec.HbA1c.Found {
		t.Fatal("hba1c not extracted")
	}
	if !strings.Contains(rec.HbA1c.Value, "7.2") {
		t.Errorf("hba1c value got %q", rec.HbA1c.Value)
	}
}

func TestParseText_BloodPressurePairs(t *testing.T) {
	rec := ParseText("Readings this week: 138/88 and 142/90")
	if !rec.BloodPressure.Found {
		t.Fatal("blood pressure not extracted")
	}
	if !strings.Contains(rec.BloodPressure.Value, "138/88") || !strings.Contains(rec.BloodPressure.Value, "142/90") {
		t.Errorf("blood pressure value got %q", rec.BloodPressure.Value)
	}
	if !strings.Contains(rec.Systolic.Value, "138") {
		t.Errorf("systolic should take the first reading, got %q", rec.Systolic.Value)
	}
	if !strings.Contains(rec.Diastolic.Value, "88") {
		t.Errorf("diastolic should take the first reading, got %q", rec.Diastolic.Value)
	}
}

func TestParseText_DiabetesType(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Patient has type 2 diabetes, diet controlled", "Type 2"},
		{"T1DM diagnosed in childhood, diabetic since age 9", "Type 1"},
	}
	for _, tt := range tests {
		rec := ParseText(tt.text)
		if !rec.DiabetesDiagnosis.Found {
			t.Errorf("%q: diagnosis not detected", tt.text)
			continue
		}
		if rec.DiabetesType.Value != tt.want {
			t.Errorf("%q: type got %q, want %q", tt.text, rec.DiabetesType.Value, tt.want)
		}
	}
}

func TestParseText_Insulin(t *testing.T) {
	rec := ParseText("Currently on insulin injection twice daily")
	if !rec.InsulinUse.Found {
		t.Error("insulin use not detected")
	}
}

func TestParseDocuments_FirstMatchWins(t *testing.T) {
	rec := ParseDocuments([]string{
		"glucose 130 noted in lab report",
		"glucose 200 in a later document",
	})
	if !strings.Contains(rec.GlucoseLevels.Value, "130") {
		t.Errorf("expected the first document's reading to win, got %q", rec.GlucoseLevels.Value)
	}
	if len(rec.Excerpts) != 2 {
		t.Errorf("expected 2 excerpts, got %d", len(rec.Excerpts))
	}
}

func TestParseDocuments_Empty(t *testing.T) {
	rec := ParseDocuments(nil)
	if !rec.Empty() {
		t.Errorf("no documents should yield an empty record, got %+v", rec)
	}
}
