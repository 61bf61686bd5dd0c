package config

// Keyword batteries for the heuristic text classifiers. These are data, not
// control flow: updating a list must never require touching the matching code.
// Sourced from the clinical team, reviewed per release.

// EmergencyKeywords flag acute-symptom messages that get canned dietary
// guidance instead of retrieval + generation.
var EmergencyKeywords = []string{
	"fever", "high fever", "cold", "flu", "cough", "headache", "migraine",
	"nausea", "vomit", "diarrhea", "upset stomach", "food poisoning",
	"sore throat", "inflammation", "pain", "ache", "sick", "illness",
	"infection", "virus", "bacterial", "allergic reaction", "allergy attack",
	"stomach ache", "acute", "emergency", "urgent", "immediately",
	"right now", "asap", "quick", "help me",
	"chills", "aches", "body ache", "joint pain", "weakness",
	"fatigue", "dizzy", "dizziness", "shortness of breath",
}

// DietTopicKeywords decide whether a message is in scope at all.
var DietTopicKeywords = []string{
	"diet", "food", "meal", "eat", "nutrition", "sugar", "glucose", "carb", "protein",
	"diabetes", "diabetic", "blood sugar", "insulin", "a1c", "glycemic",
	"blood pressure", "hypertension", "sodium", "salt", "dash diet",
	"breakfast", "lunch", "dinner", "snack", "portion", "weight", "bmi",
	"cholesterol", "fat", "calorie", "exercise", "lifestyle", "management",
	"plan", "diet plan", "days", "week", "month",
	"health", "guidance", "tips", "advice", "suggest", "recommend",
	"weight loss", "lose weight", "reduce fat", "burn fat", "slim",
	"obesity", "overweight", "belly fat", "body fat", "metabolism",
}

// InappropriateTerms short-circuit to a fixed refusal.
var InappropriateTerms = []string{
	"suicide", "self harm", "self-harm", "overdose", "poison someone",
	"starve myself", "purge", "laxative abuse",
}

// DiabetesKeywords indicate a diabetes diagnosis mention in document text.
var DiabetesKeywords = []string{
	"diabetes", "diabetic", "type 1", "type 2", "t1dm", "t2dm",
}

// DiabetesType1Keywords / DiabetesType2Keywords qualify the diagnosis.
var (
	DiabetesType1Keywords = []string{"type 1", "t1dm", "insulin dependent"}
	DiabetesType2Keywords = []string{"type 2", "t2dm", "non-insulin dependent"}
)

// InsulinKeywords indicate insulin use in document text.
var InsulinKeywords = []string{"insulin", "injection", "pump"}

// LabReportKeywords indicate the presence of a laboratory report.
var LabReportKeywords = []string{"lab", "test", "result", "report", "laboratory"}

// MealSlots is the fixed day structure for generated diet plans.
var MealSlots = []string{
	"Breakfast (8:00 AM)",
	"Mid-Morning Snack (10:00 AM)",
	"Lunch (12:30 PM)",
	"Afternoon Snack (3:00 PM)",
	"Dinner (7:00 PM)",
}
