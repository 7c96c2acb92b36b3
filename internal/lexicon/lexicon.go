// Package lexicon maps lay medical terms and conditions to the canonical
// specialty labels used by the doctor search filter. Lookups are exact and
// case-insensitive; unknown terms resolve to nothing and are dropped by
// callers.
package lexicon

import "strings"

// Table is an immutable term → canonical specialty mapping. It is built once
// at process start and injected wherever term expansion is needed.
type Table struct {
	entries map[string]string
}

// New builds a Table from the given entries. Keys are canonicalised to
// lowercase; the input map is copied.
func New(entries map[string]string) *Table {
	copied := make(map[string]string, len(entries))
	for term, label := range entries {
		copied[strings.ToLower(strings.TrimSpace(term))] = label
	}
	return &Table{entries: copied}
}

// Resolve returns the canonical specialty label for a lay term. The second
// return value reports whether the term is known.
func (t *Table) Resolve(term string) (string, bool) {
	if t == nil {
		return "", false
	}
	label, ok := t.entries[strings.ToLower(strings.TrimSpace(term))]
	return label, ok
}

// Len reports the number of known terms.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Default returns the built-in condition table.
func Default() *Table {
	return New(map[string]string{
		// dental
		"tooth":     "Dental Specialist",
		"teeth":     "Dental Specialist",
		"toothache": "Dental Specialist",
		"gum":       "Dental Specialist",
		"cavity":    "Dental Specialist",

		// cardiology
		"heart":          "Cardiology Specialist",
		"chest pain":     "Cardiology Specialist",
		"palpitation":    "Cardiology Specialist",
		"blood pressure": "Cardiology Specialist",
		"hypertension":   "Cardiology Specialist",

		// kidney / urology
		"kidney":   "Kidney Diseases Specialist",
		"dialysis": "Kidney Diseases Specialist",
		"renal":    "Kidney Diseases Specialist",
		"urine":    "Urology Specialist",
		"prostate": "Urology Specialist",
		"stone":    "Urology Specialist",

		// mental health
		"depression": "Psychiatry",
		"anxiety":    "Psychiatry",
		"insomnia":   "Psychiatry",
		"addiction":  "Psychiatry",
		"stress":     "Psychiatry",

		// skin
		"skin":      "Dermatology Specialist",
		"acne":      "Dermatology Specialist",
		"rash":      "Dermatology Specialist",
		"hair fall": "Dermatology Specialist",
		"allergy":   "Allergy Specialist",

		// endocrine
		"diabetes": "Diabetes Specialist",
		"thyroid":  "Endocrinology Specialist",
		"hormone":  "Endocrinology Specialist",

		// digestive
		"stomach":      "Gastroenterology Specialist",
		"gastric":      "Gastroenterology Specialist",
		"ulcer":        "Gastroenterology Specialist",
		"constipation": "Gastroenterology Specialist",
		"liver":        "Hepatology Specialist",
		"jaundice":     "Hepatology Specialist",

		// musculoskeletal
		"bone":      "Orthopedic Specialist",
		"joint":     "Orthopedic Specialist",
		"fracture":  "Orthopedic Specialist",
		"back pain": "Orthopedic Specialist",
		"arthritis": "Rheumatology Specialist",

		// eye / ENT
		"eye":      "Eye Specialist",
		"vision":   "Eye Specialist",
		"cataract": "Eye Specialist",
		"ear":      "ENT Specialist",
		"nose":     "ENT Specialist",
		"throat":   "ENT Specialist",
		"sinus":    "ENT Specialist",
		"tonsil":   "ENT Specialist",
		"hearing":  "ENT Specialist",

		// women & children
		"pregnancy":   "Gynecology & Obstetrics Specialist",
		"infertility": "Gynecology & Obstetrics Specialist",
		"period":      "Gynecology & Obstetrics Specialist",
		"child":       "Child Diseases Specialist",
		"baby":        "Child Diseases Specialist",
		"newborn":     "Child Diseases Specialist",

		// neuro
		"brain":    "Neurology Specialist",
		"stroke":   "Neurology Specialist",
		"epilepsy": "Neurology Specialist",
		"migraine": "Neurology Specialist",
		"headache": "Neurology Specialist",
		"nerve":    "Neurology Specialist",

		// chest
		"asthma":    "Chest Diseases Specialist",
		"cough":     "Chest Diseases Specialist",
		"breathing": "Chest Diseases Specialist",
		"lungs":     "Chest Diseases Specialist",

		// oncology / hematology
		"cancer": "Oncology Specialist",
		"tumor":  "Oncology Specialist",
		"anemia": "Hematology Specialist",

		// general
		"fever":     "Medicine Specialist",
		"weakness":  "Medicine Specialist",
		"piles":     "Colorectal Surgery Specialist",
		"fistula":   "Colorectal Surgery Specialist",
		"appendix":  "General Surgery Specialist",
		"paralysis": "Physical Medicine Specialist",
	})
}
