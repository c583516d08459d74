package profile

import "strings"

// Profile is the structured form of a resume, produced by the extractor.
// Sparse resumes are valid: every list may be empty.
type Profile struct {
	FullName  string           `json:"full_name"`
	Email     string           `json:"email"`
	Phone     string           `json:"phone"`
	Summary   string           `json:"summary"`
	Skills    []string         `json:"skills"`
	Positions []Position       `json:"positions"`
	Education []EducationEntry `json:"education"`
}

type Position struct {
	Title   string `json:"title"`
	Company string `json:"company"`
	Months  int    `json:"months"`
}

type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
}

// TotalExperienceYears sums position durations, rounded down to whole years.
func (p Profile) TotalExperienceYears() int {
	months := 0
	for _, pos := range p.Positions {
		if pos.Months > 0 {
			months += pos.Months
		}
	}
	return months / 12
}

// HasSkill does a case-insensitive lookup against the skills list.
func (p Profile) HasSkill(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return false
	}
	for _, s := range p.Skills {
		if strings.ToLower(strings.TrimSpace(s)) == name {
			return true
		}
	}
	return false
}
