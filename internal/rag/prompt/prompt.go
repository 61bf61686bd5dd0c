package prompt

import (
	"fmt"
	"strings"

	"github.com/akolanti/DietRAG/internal/config"
	"github.com/akolanti/DietRAG/internal/domain/commonModels"
	"github.com/akolanti/DietRAG/internal/domain/sessionModel"
	"github.com/akolanti/DietRAG/internal/rag/medical"
)

// Context is everything the assembler folds into one generation request:
// retrieved evidence, the stated profile, the extracted record and a bounded
// window of recent history.
type Context struct {
	Passages []commonModels.RetrievedPassage
	Profile  sessionModel.MedicalProfile
	Record   medical.Record
	History  []string
}

// BuildDietPlanPrompt renders the structured day-wise plan instruction for a
// validated day count. Range validation happens before this is ever called.
func BuildDietPlanPrompt(days int, pc Context) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a personalized diet plan.\n\n")
	fmt.Fprintf(&b, "Duration: EXACTLY %d days. Output MUST be day-wise with headings 'Day 1:' through 'Day %d:'.\n", days, days)
	b.WriteString("For each day include meals with SPECIFIC TIMES:\n")
	for _, slot := range config.MealSlots {
		fmt.Fprintf(&b, "- %s: [meal details with portions]\n", slot)
	}
	fmt.Fprintf(&b, "Do not group by week or repeat weekly cycles. Generate unique entries up to Day %d.\n\n", days)

	writeShared(&b, pc)

	b.WriteString("REQUIRED SECTIONS (include these at the end):\n")
	b.WriteString("1. Lifestyle Recommendations: exercise, stress management, sleep, daily habits\n")
	b.WriteString("2. Important Notes: medical disclaimers, monitoring tips, when to consult healthcare providers\n")

	return b.String()
}

// BuildQuestionPrompt renders the free-form Q&A instruction.
func BuildQuestionPrompt(question string, pc Context) string {
	var b strings.Builder

	b.WriteString("Provide a helpful, evidence-based response to the following question.\n\n")
	fmt.Fprintf(&b, "User Question: %s\n\n", question)

	writeShared(&b, pc)

	b.WriteString("Guidelines:\n")
	b.WriteString("- Give clear, actionable advice with simple bullet points\n")
	b.WriteString("- Focus on lifestyle, diet, exercise, and management strategies\n")
	b.WriteString("- Be encouraging and supportive while maintaining medical accuracy\n")

	return b.String()
}

func writeShared(b *strings.Builder, pc Context) {
	b.WriteString("Context from documents:\n")
	b.WriteString(FormatPassages(pc.Passages))
	b.WriteString("\n\n")

	b.WriteString("User Information:\n")
	fmt.Fprintf(b, "- Diabetes: %t\n", pc.Profile.HasDiabetes)
	fmt.Fprintf(b, "- Diabetes Type: %s\n", orNA(pc.Profile.DiabetesType))
	fmt.Fprintf(b, "- Diabetes Level: %s\n", orNA(pc.Profile.DiabetesLevel))
	fmt.Fprintf(b, "- Blood Pressure: %t\n", pc.Profile.HasHypertension)
	if pc.Profile.Systolic > 0 && pc.Profile.Diastolic > 0 {
		fmt.Fprintf(b, "- BP Readings: %d/%d mmHg\n", pc.Profile.Systolic, pc.Profile.Diastolic)
	}
	if pc.Profile.HeightCm > 0 {
		fmt.Fprintf(b, "- Height: %.0f cm\n", pc.Profile.HeightCm)
	}
	if pc.Profile.WeightKg > 0 {
		fmt.Fprintf(b, "- Weight: %.0f kg\n", pc.Profile.WeightKg)
	}
	b.WriteString("\n")

	if !pc.Record.Empty() {
		b.WriteString("MEDICAL DATA FROM UPLOADED RECORDS:\n")
		writeFinding(b, "Diabetes diagnosis", pc.Record.DiabetesDiagnosis)
		writeFinding(b, "Diabetes type", pc.Record.DiabetesType)
		writeFinding(b, "Glucose levels", pc.Record.GlucoseLevels)
		writeFinding(b, "HbA1c", pc.Record.HbA1c)
		writeFinding(b, "Insulin use", pc.Record.InsulinUse)
		writeFinding(b, "Blood pressure", pc.Record.BloodPressure)
		writeFinding(b, "Cholesterol", pc.Record.Cholesterol)
		if pc.Record.HasLabData {
			b.WriteString("- Lab data present in uploaded records\n")
		}
		b.WriteString("\n")
	}

	if len(pc.History) > 0 {
		b.WriteString("Recent conversation (oldest first):\n")
		b.WriteString(strings.Join(pc.History, "\n"))
		b.WriteString("\n\n")
	}
}

// FormatPassages renders retrieval hits as labeled excerpts with source
// attribution, the shape the citation list is built from.
func FormatPassages(passages []commonModels.RetrievedPassage) string {
	if len(passages) == 0 {
		return "(no relevant documents found)"
	}
	parts := make([]string, 0, len(passages))
	for _, p := range passages {
		parts = append(parts, fmt.Sprintf("[Source: %s]\n%s", p.Source, p.Chunk.Text))
	}
	return strings.Join(parts, "\n---\n")
}

func writeFinding(b *strings.Builder, label string, f medical.Finding) {
	if f.Found {
		fmt.Fprintf(b, "- %s: %s\n", label, f.Value)
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
