package prompt

import (
	"fmt"
	"strings"

	"github.com/akolanti/DietRAG/internal/config"
)

// Canned, non-generated responses. These never touch retrieval or the LLM.

const RefusalResponse = "I apologize, but I cannot assist with harmful or inappropriate content. " +
	"I'm designed to provide healthy diet and nutrition advice only."

const GeneralGuidanceResponse = "I'm a diet and nutrition assistant for diabetes and blood-pressure management. " +
	"Ask about diet, meals, or generate a plan for any duration between 1 and 30 days."

// UnsupportedDurationResponse is the fixed guidance for out-of-range day
// counts. A guided answer, not a failure.
func UnsupportedDurationResponse() string {
	return fmt.Sprintf(
		"I can generate diet plans for any duration between %d and %d days. "+
			"Please specify: '3 day plan', '1 week plan', '14 days', 'one month', etc. "+
			"I'll create a personalized daily breakdown with meal timings (breakfast, lunch, dinner).",
		config.MinPlanDays, config.MaxPlanDays)
}

// EmergencyAdvice returns immediate dietary guidance for acute conditions.
// Deliberate safety short-circuit: template selection by symptom group, no
// generation involved.
func EmergencyAdvice(message string) string {
	msg := strings.ToLower(message)

	switch {
	case strings.Contains(msg, "fever"):
		return emergencyTemplate("HIGH FEVER",
			"Warm honey lemon water or warm milk with turmeric",
			"Light vegetable soup or clear broth with soft rice",
			"Khichdi (soft rice and lentils) or light porridge",
			"8-10 glasses of water through the day; avoid heavy, spicy or oily food.",
			"If fever persists beyond 24-48 hours or exceeds 103F (39.4C), seek medical attention immediately.")

	case strings.Contains(msg, "cold") || strings.Contains(msg, "flu") || strings.Contains(msg, "cough"):
		return emergencyTemplate("COLD / FLU",
			"Warm milk with turmeric and honey, or herbal tea with ginger",
			"Hot vegetable or chicken soup with garlic",
			"Light khichdi or steamed vegetables with warm soup",
			"Stay warm, rest, and keep fluids warm rather than cold.",
			"If symptoms worsen or fever develops, seek medical attention.")

	case strings.Contains(msg, "nausea") || strings.Contains(msg, "vomit") ||
		strings.Contains(msg, "diarrhea") || strings.Contains(msg, "upset stomach"):
		return emergencyTemplate("NAUSEA / VOMITING / DIARRHEA",
			"Plain boiled rice or rice porridge with salt and cumin",
			"Banana, toast or plain crackers in small portions",
			"Clear broth or ORS solution, small frequent sips",
			"Gradual return to a normal diet over 3-5 days as symptoms improve.",
			"If you cannot keep fluids down for more than 24 hours, seek medical attention.")

	default:
		return emergencyTemplate("ACUTE SYMPTOMS",
			"Warm lemon water with honey or herbal tea",
			"Light, easy-to-digest meal such as porridge or soup",
			"Khichdi, porridge, or a light curry",
			"Prioritize hydration and rest today.",
			"If symptoms persist or worsen, consult a healthcare provider promptly.")
	}
}

func emergencyTemplate(condition, breakfast, lunch, dinner, note, warning string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "IMMEDIATE DIETARY GUIDANCE FOR %s\n\n", condition)
	b.WriteString("Recommended Diet for Today:\n")
	fmt.Fprintf(&b, "Breakfast (8:00 AM): %s\n", breakfast)
	fmt.Fprintf(&b, "Lunch (12:30 PM): %s\n", lunch)
	fmt.Fprintf(&b, "Dinner (7:00 PM): %s\n\n", dinner)
	fmt.Fprintf(&b, "%s\n\n", note)
	fmt.Fprintf(&b, "Warning: %s\n\n", warning)
	b.WriteString("Would you like a full multi-day plan after you recover? Just let me know: \"7 day plan\", \"10 day plan\", etc.")
	return b.String()
}
