package medical

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/akolanti/DietRAG/internal/config"
)

// Heuristic extraction of structured medical facts from raw document text.
// These are pure functions: normalized text in, tagged findings out. The
// contract is "never fabricate a reading that is not in the source text" -
// false negatives are expected and acceptable.

// Finding is a tagged extraction result. Zero value means "not found".
type Finding struct {
	Found bool   `json:"found"`
	Value string `json:"value,omitempty"`
}

func found(value string) Finding {
	return Finding{Found: true, Value: value}
}

// Record is the structured extraction over one or more documents. Derived
// once per session at ingestion time, read-only afterward.
type Record struct {
	DiabetesDiagnosis Finding `json:"diabetes_diagnosis"`
	DiabetesType      Finding `json:"diabetes_type"`
	GlucoseLevels     Finding `json:"glucose_levels"`
	HbA1c             Finding `json:"hba1c"`
	InsulinUse        Finding `json:"insulin_use"`

	BloodPressure Finding `json:"blood_pressure"`
	Systolic      Finding `json:"systolic"`
	Diastolic     Finding `json:"diastolic"`

	Cholesterol Finding `json:"cholesterol"`
	HasLabData  bool    `json:"has_lab_data"`

	Excerpts []string `json:"excerpts,omitempty"`
}

// Empty reports whether nothing was extracted at all.
func (r Record) Empty() bool {
	return !r.DiabetesDiagnosis.Found && !r.GlucoseLevels.Found && !r.HbA1c.Found &&
		!r.BloodPressure.Found && !r.Cholesterol.Found && !r.InsulinUse.Found &&
		!r.HasLabData && len(r.Excerpts) == 0
}

var (
	whitespaceRe = regexp.MustCompile(`[\r\t]+`)

	//value patterns carried over from the lab-report battery
	glucoseRe     = regexp.MustCompile(`(?i)\b(?:glucose|blood\s*sugar|fbs|rbs)\b[^\d]{0,10}(\d{2,3})`)
	hba1cRe       = regexp.MustCompile(`(?i)\b(?:hba1c|a1c)\b[^\d]{0,10}(\d{1,2}(?:\.\d)?)`)
	bpRe          = regexp.MustCompile(`(\d{2,3})\s*/\s*(\d{2,3})`)
	cholesterolRe = regexp.MustCompile(`(?i)\bcholesterol\b[^\d]{0,10}(\d{2,3})`)
)

// ParseText runs the full battery over one document's raw text.
func ParseText(text string) Record {
	var rec Record

	normalized := whitespaceRe.ReplaceAllString(text, " ")
	lower := strings.ToLower(normalized)

	if kw, ok := containsAny(lower, config.DiabetesKeywords); ok {
		rec.DiabetesDiagnosis = found("diabetes mention: " + kw)
		if _, ok := containsAny(lower, config.DiabetesType1Keywords); ok {
			rec.DiabetesType = found("Type 1")
		} else if _, ok := containsAny(lower, config.DiabetesType2Keywords); ok {
			rec.DiabetesType = found("Type 2")
		}
	}

	if vals := captureAll(glucoseRe, normalized); len(vals) > 0 {
		rec.GlucoseLevels = found(strings.Join(vals, ", ") + " mg/dL")
		if !rec.DiabetesDiagnosis.Found {
			rec.DiabetesDiagnosis = found("diabetes indicators detected")
		}
	}

	if vals := captureAll(hba1cRe, normalized); len(vals) > 0 {
		rec.HbA1c = found(strings.Join(vals, ", ") + "%")
		if !rec.DiabetesDiagnosis.Found {
			rec.DiabetesDiagnosis = found("diabetes indicators detected")
		}
	}

	if _, ok := containsAny(lower, config.InsulinKeywords); ok {
		rec.InsulinUse = found("insulin use detected")
	}

	if pairs := bpRe.FindAllStringSubmatch(normalized, -1); len(pairs) > 0 {
		readings := make([]string, 0, len(pairs))
		for _, p := range pairs {
			readings = append(readings, fmt.Sprintf("%s/%s", p[1], p[2]))
		}
		rec.BloodPressure = found(strings.Join(readings, ", ") + " mmHg")
		rec.Systolic = found(pairs[0][1] + " mmHg")
		rec.Diastolic = found(pairs[0][2] + " mmHg")
	}

	if vals := captureAll(cholesterolRe, normalized); len(vals) > 0 {
		rec.Cholesterol = found(strings.Join(vals, ", ") + " mg/dL")
		rec.HasLabData = true
	}

	if _, ok := containsAny(lower, config.LabReportKeywords); ok {
		rec.HasLabData = true
	}

	return rec
}

// ParseDocuments merges the battery across several documents. The first
// populated finding wins; later documents only fill gaps.
func ParseDocuments(texts []string) Record {
	var merged Record
	for _, text := range texts {
		rec := ParseText(text)
		merged = merge(merged, rec)
		if excerpt := firstExcerpt(text); excerpt != "" {
			merged.Excerpts = append(merged.Excerpts, excerpt)
		}
	}
	return merged
}

func merge(into, from Record) Record {
	into.DiabetesDiagnosis = pick(into.DiabetesDiagnosis, from.DiabetesDiagnosis)
	into.DiabetesType = pick(into.DiabetesType, from.DiabetesType)
	into.GlucoseLevels = pick(into.GlucoseLevels, from.GlucoseLevels)
	into.HbA1c = pick(into.HbA1c, from.HbA1c)
	into.InsulinUse = pick(into.InsulinUse, from.InsulinUse)
	into.BloodPressure = pick(into.BloodPressure, from.BloodPressure)
	into.Systolic = pick(into.Systolic, from.Systolic)
	into.Diastolic = pick(into.Diastolic, from.Diastolic)
	into.Cholesterol = pick(into.Cholesterol, from.Cholesterol)
	into.HasLabData = into.HasLabData || from.HasLabData
	return into
}

func pick(a, b Finding) Finding {
	if a.Found {
		return a
	}
	return b
}

func captureAll(re *regexp.Regexp, text string) []string {
	matches := re.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	vals := make([]string, 0, len(matches))
	for _, m := range matches {
		vals = append(vals, m[1])
	}
	return vals
}

func containsAny(lower string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return kw, true
		}
	}
	return "", false
}

const excerptLen = 280

func firstExcerpt(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}
	runes := []rune(trimmed)
	if len(runes) > excerptLen {
		return string(runes[:excerptLen])
	}
	return trimmed
}
