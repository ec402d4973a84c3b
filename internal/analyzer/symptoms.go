package analyzer

import (
	"fmt"
	"sort"
	"strings"
)

type symptomInfo struct {
	Indication string
	Action     string
	Severity   string
}

// symptomDB is the keyword knowledge base behind the patient-facing
// symptom checker.
var symptomDB = map[string]symptomInfo{
	"headache": {
		Indication: "Tension Headache or Migraine",
		Action:     "Rest in a dark room, hydration, OTC analgesics (Ibuprofen/Paracetamol).",
		Severity:   "Low",
	},
	"fever": {
		Indication: "Viral/Bacterial Infection",
		Action:     "Monitor temperature. Paracetamol every 6 hours. Seek help if > 39°C.",
		Severity:   "Medium",
	},
	"cough": {
		Indication: "Upper Respiratory Infection",
		Action:     "Honey and warm water, cough suppressant. Chest X-ray if persistent > 2 weeks.",
		Severity:   "Low",
	},
	"chest pain": {
		Indication: "Potential Cardiac or Pulmonary Issue",
		Action:     "IMMEDIATE medical attention required. ECG and Enzyme tests needed.",
		Severity:   "Critical",
	},
	"stomach": {
		Indication: "Gastritis or Indigestion",
		Action:     "Antacids, light diet (BRAT diet). Hydration.",
		Severity:   "Low",
	},
	"rash": {
		Indication: "Allergic Reaction or Dermatitis",
		Action:     "Antihistamines, topical hydrocortisone. Avoid irritants.",
		Severity:   "Low",
	},
	"fatigue": {
		Indication: "Anemia, Thyroid issue, or Viral Fatigue",
		Action:     "Blood test (CBC/TSH). Balanced diet, sleep schedule adjustment.",
		Severity:   "Low",
	},
	"dizziness": {
		Indication: "Vertigo, Dehydration, or hypotension",
		Action:     "Sit down immediately. Drink water/electrolytes. Check BP.",
		Severity:   "Medium",
	},
}

// CheckSymptoms matches free-text symptoms against the knowledge base and
// returns markdown advice. Non-specific input gets a monitoring
// recommendation rather than an error.
func CheckSymptoms(symptoms string) string {
	lower := strings.ToLower(symptoms)

	// Sorted keys keep the advice deterministic for the same input.
	keys := make([]string, 0, len(symptomDB))
	for k := range symptomDB {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var detected []string
	severityScore := 0
	for _, key := range keys {
		if !strings.Contains(lower, key) {
			continue
		}
		info := symptomDB[key]
		detected = append(detected, fmt.Sprintf("**%s**: %s (%s)", titleCase(key), info.Indication, info.Severity))
		switch info.Severity {
		case "Critical":
			severityScore += 10
		case "Medium":
			severityScore += 5
		default:
			severityScore++
		}
	}

	if len(detected) == 0 {
		return "**Analysis:** Symptoms are non-specific.\n" +
			"**Recommendation:** Monitor for 24 hours. If symptoms worsen, consult a General Practitioner."
	}

	var b strings.Builder
	b.WriteString("**Detected Potential Issues:**\n")
	for _, d := range detected {
		fmt.Fprintf(&b, "- %s\n", d)
	}

	b.WriteString("\n**Recommended Action Plan:**\n")
	for _, key := range keys {
		if strings.Contains(lower, key) {
			fmt.Fprintf(&b, "1. %s\n", symptomDB[key].Action)
		}
	}

	if severityScore > 8 {
		b.WriteString("\n**URGENT:** Please visit the Emergency Room immediately.")
	}

	return b.String()
}

func titleCase(s string) string {
	parts := strings.Fields(s)
	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
