package analyzer

import (
	"fmt"
	"strings"
)

const (
	defaultAge       = 30
	defaultWeight    = 70.0
	defaultAllergies = "None"
)

// GenerateTreatmentPlan renders a markdown treatment protocol for the
// detected condition, adjusted for the patient's age, weight and
// allergies. The output is an opaque plan string: callers render it,
// they never parse it.
func GenerateTreatmentPlan(condition string, patient PatientContext) string {
	if patient.Age <= 0 {
		patient.Age = defaultAge
	}
	if patient.Weight <= 0 {
		patient.Weight = defaultWeight
	}
	if strings.TrimSpace(patient.Allergies) == "" {
		patient.Allergies = defaultAllergies
	}

	isChild := patient.Age < 12
	isElderly := patient.Age > 65

	allergies := parseAllergies(patient.Allergies)
	isAllergic := func(drug string) bool {
		drug = strings.ToLower(drug)
		for _, a := range allergies {
			if strings.Contains(a, drug) {
				return true
			}
		}
		return false
	}

	var recommendation, followUp string
	var warnings []string

	switch {
	case strings.Contains(condition, "Normal"), strings.Contains(condition, "No Abnormalities"):
		recommendation = "No medication required. Maintain healthy lifestyle."
		followUp = "Routine annual check-up recommended."

	case strings.Contains(condition, "Viral Pneumonia"):
		recommendation = "**Supportive Care:** Rest, Hydration, Antipyretics.\n" +
			"- **Oseltamivir (Tamiflu):** 75mg BID for 5 days (if within 48hr of onset).\n" +
			"- **Paracetamol:** 500mg q6h PRN fever."
		followUp = "Monitor SpO2. Hospitalize if < 92%."

	case strings.Contains(condition, "Bacterial Pneumonia"),
		strings.Contains(condition, "Infiltration"),
		strings.Contains(condition, "Lung Opacity"):
		drug := "Amoxicillin-Clavulanate (Augmentin)"
		if isAllergic("penicillin") || isAllergic("amoxicillin") {
			drug = "Levofloxacin (Levaquin)"
			warnings = append(warnings, "Patient allergic to Penicillin; substituted with Fluoroquinolone.")
		}
		dosage := "875/125mg"
		if isChild {
			dosage = "45mg/kg/day"
		}
		recommendation = fmt.Sprintf("**Antibiotic Therapy:**\n- **%s %s** BID for 7-10 days.\n"+
			"- **Azithromycin** 500mg on Day 1, then 250mg daily (Days 2-5).", drug, dosage)
		followUp = "Repeat Chest X-Ray in 4-6 weeks to ensure resolution."

	case strings.Contains(condition, "COVID"):
		recommendation = "**Isolation Protocol (5-10 Days)**\n" +
			"- **Paxlovid (Nirmatrelvir/Ritonavir):** 300/100mg BID for 5 days (if high risk).\n" +
			"- **Symptomatic:** Acetaminophen 500mg q6h PRN fever/pain."
		if isElderly {
			recommendation += "\n- **Dexamethasone:** 6mg daily for up to 10 days (if requiring O2)."
		}
		followUp = "Monitor for Long-COVID symptoms."

	case strings.Contains(condition, "Tuberculosis"):
		recommendation = "**Intensive Phase (2 Months):**\n" +
			"- Isoniazid (INH), Rifampicin (RIF), Pyrazinamide (PZA), Ethambutol (EMB).\n" +
			"**Continuation Phase (4 Months):**\n" +
			"- Isoniazid + Rifampicin daily."
		warnings = append(warnings, "Monitor Liver Function Tests (LFTs) monthly due to hepatotoxicity risk.")
		followUp = "Contact Tracing required for family members."

	case strings.Contains(condition, "Pleural Effusion"), strings.Contains(condition, "Atelectasis"):
		recommendation = "**Therapeutic Thoracentesis** may be required if symptomatic.\n" +
			"- **Diuretics:** Furosemide 20-40mg daily (if transudative/heart failure related).\n" +
			"- **Incentive Spirometry:** 10 breaths every hour while awake."
		followUp = "Investigate underlying cause (Heart Failure, Infection, Malignancy)."

	case strings.Contains(condition, "Pneumothorax"):
		recommendation = "**Immediate Action:** High-flow Oxygen.\n" +
			"- **Small (<2cm):** Observation and repeat X-ray in 4-6 hours.\n" +
			"- **Large/Symptomatic:** Needle Decompression or Tube Thoracostomy (Chest Tube)."
		warnings = append(warnings, "Avoid air travel and scuba diving until full resolution.")
		followUp = "CT Chest recommended to rule out bullae."

	case strings.Contains(condition, "Cardiomegaly"):
		recommendation = "**Heart Failure Management:**\n" +
			"- **Furosemide (Lasix):** 40mg daily (titrate to fluid status).\n" +
			"- **Lisinopril:** 10mg daily (check BP/Renal function).\n" +
			"- **Beta-Blocker (Carvedilol):** 3.125mg BID."
		if isAllergic("ace inhibitor") || isAllergic("lisinopril") {
			recommendation = strings.ReplaceAll(recommendation, "Lisinopril", "Losartan (ARB)")
			warnings = append(warnings, "ACE Inhibitor allergy; substituted with ARB.")
		}
		followUp = "Echocardiogram required to assess Ejection Fraction."

	case strings.Contains(condition, "Fracture"), strings.Contains(condition, "Dislocation"):
		drug := "Ibuprofen"
		if isAllergic("nsaid") || isAllergic("ibuprofen") {
			drug = "Tramadol"
			warnings = append(warnings, "NSAID allergy; using Opioid analgesic (use cautiously).")
		}
		recommendation = fmt.Sprintf("**Orthopedic Protocol:**\n"+
			"- Immobilization (Cast/Splint) immediately.\n"+
			"- **Pain Control:** %s 400mg q6h PRN pain.\n"+
			"- **Calcium + Vit D:** 1000mg/800IU daily for bone healing.", drug)
		if strings.Contains(condition, "Compound") {
			recommendation += "\n- **Antibiotic Prophylaxis:** Cefazolin 2g IV q8h."
		}
		followUp = "Orthopedic consult for potential Open Reduction Internal Fixation (ORIF)."

	case strings.Contains(condition, "Soft Tissue"):
		recommendation = "**R.I.C.E. Protocol:** Rest, Ice, Compression, Elevation.\n" +
			"- **Naproxen:** 500mg BID for 5-7 days for inflammation.\n" +
			"- **Physical Therapy:** Referral after acute phase (1 week)."

	case strings.Contains(condition, "Hernia"):
		recommendation = "**Conservative Management:**\n" +
			"- Avoid heavy lifting and straining.\n" +
			"- Stool softeners (Docusate 100mg daily) to prevent straining.\n" +
			"- Surgical Consultation for elective repair."
		warnings = append(warnings, "Watch for signs of strangulation (severe pain, vomiting) - Surgical Emergency.")

	case strings.Contains(condition, "Fibrosis"):
		recommendation = "**Antifibrotic Therapy (Specialist Only):**\n" +
			"- Consider Pirfenidone or Nintedanib.\n" +
			"- Pulmonary Rehabilitation program.\n" +
			"- Supplemental Oxygen if hypoxic on exertion."
		followUp = "High-Resolution CT (HRCT) needed for sub-typing."

	case strings.Contains(condition, "Tumor"), strings.Contains(condition, "Malignant"):
		recommendation = "**Oncology Protocol:**\n" +
			"- **DO NOT BIOPSY** without surgical planning.\n" +
			"- PET-CT Scan for staging.\n" +
			"- Multi-disciplinary team meeting (MDT) referral."
		warnings = append(warnings, "Urgent Referral Required - 2 Week Wait Pathway.")

	default:
		recommendation = "Condition requires specialist evaluation. Symptomatic management advised."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "### AI Medical Assistant Report\n")
	fmt.Fprintf(&b, "**Patient Profile:** %dyrs | %gkg | Allergies: %s\n", patient.Age, patient.Weight, patient.Allergies)
	fmt.Fprintf(&b, "**Detected Condition:** %s\n", condition)
	fmt.Fprintf(&b, "---\n")
	fmt.Fprintf(&b, "#### Treatment Protocol:\n%s\n\n", recommendation)

	if followUp != "" {
		fmt.Fprintf(&b, "#### Follow-up Plan:\n- %s\n\n", followUp)
	}

	if len(warnings) > 0 {
		fmt.Fprintf(&b, "#### Safety Alerts:\n")
		for _, w := range warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}

	if isChild {
		fmt.Fprintf(&b, "- Pediatric dosage adjustments applied.\n")
	}
	if isElderly {
		fmt.Fprintf(&b, "- Geriatric precautions: Renal function monitoring advised.\n")
	}

	return b.String()
}

func parseAllergies(allergies string) []string {
	parts := strings.Split(allergies, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.ToLower(strings.TrimSpace(p)))
	}
	return out
}
