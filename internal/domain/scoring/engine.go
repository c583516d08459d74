package scoring

import (
	"fmt"
	"math"
	"strings"

	"hireflow/internal/domain/job"
	"hireflow/internal/domain/profile"
)

// Weights splits the score between skill overlap and seniority alignment.
// Callers are expected to pass normalized weights (summing to 1); Score
// renormalizes defensively so the result stays within [0, 100].
type Weights struct {
	Skill     float64
	Seniority float64
}

func DefaultWeights() Weights {
	return Weights{Skill: 0.6, Seniority: 0.4}
}

type Result struct {
	Score     int
	Matched   []string
	Missing   []string
	Rationale string
}

// Score computes the deterministic base match score between a candidate
// profile and a job. Identical inputs always produce identical results.
func Score(p profile.Profile, j job.Job, w Weights) Result {
	w = normalize(w)

	matched, missing := matchRequirements(p, j.Requirements)

	overlap := 1.0
	if len(j.Requirements) > 0 {
		overlap = float64(len(matched)) / float64(len(j.Requirements))
	}

	years := p.TotalExperienceYears()
	alignment := seniorityAlignment(years, j.Level)

	total := 100 * (w.Skill*overlap + w.Seniority*alignment)
	score := clamp(int(math.Round(total)), 0, 100)

	minY, maxY := j.Level.ExpectedYears()
	rationale := fmt.Sprintf(
		"matched %d/%d requirements; %dy experience against %s level (%d-%dy)",
		len(matched), len(j.Requirements), years, levelName(j.Level), minY, maxY,
	)

	return Result{
		Score:     score,
		Matched:   matched,
		Missing:   missing,
		Rationale: rationale,
	}
}

func matchRequirements(p profile.Profile, reqs []string) (matched, missing []string) {
	matched = make([]string, 0, len(reqs))
	missing = make([]string, 0)

	skills := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			skills = append(skills, s)
		}
	}

	for _, req := range reqs {
		norm := strings.ToLower(strings.TrimSpace(req))
		if norm == "" {
			continue
		}
		if requirementCovered(norm, skills) {
			matched = append(matched, req)
		} else {
			missing = append(missing, req)
		}
	}
	return matched, missing
}

// requirementCovered treats a requirement as satisfied when a candidate skill
// equals it or appears as a word inside it ("5 years of Go" is covered by
// "go").
func requirementCovered(req string, skills []string) bool {
	reqWords := fields(req)
	for _, skill := range skills {
		if skill == req {
			return true
		}
		if strings.Contains(skill, req) || strings.Contains(req, skill) {
			// Substring matches shorter than 3 runes produce too many false
			// positives ("r" inside "runner"), require word-level match then.
			if len(skill) >= 3 {
				return true
			}
		}
		for _, w := range reqWords {
			if w == skill {
				return true
			}
		}
	}
	return false
}

func fields(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case ' ', ',', ';', '/', '(', ')':
			return true
		}
		return false
	})
}

// seniorityAlignment maps total experience onto the level's expected range:
// 1.0 inside the range, proportional below it, slightly discounted above it
// (overqualification is a weak negative signal, not a disqualifier).
func seniorityAlignment(years int, level job.Level) float64 {
	minY, maxY := level.ExpectedYears()
	switch {
	case years >= minY && years <= maxY:
		return 1.0
	case years < minY:
		if minY <= 0 {
			return 1.0
		}
		return float64(years) / float64(minY)
	default:
		return 0.9
	}
}

func normalize(w Weights) Weights {
	if w.Skill < 0 {
		w.Skill = 0
	}
	if w.Seniority < 0 {
		w.Seniority = 0
	}
	sum := w.Skill + w.Seniority
	if sum <= 0 {
		return DefaultWeights()
	}
	return Weights{Skill: w.Skill / sum, Seniority: w.Seniority / sum}
}

func clamp(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

func levelName(l job.Level) string {
	if l == "" {
		return "unspecified"
	}
	return string(l)
}
