package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"hireflow/internal/ai"
	"hireflow/internal/domain/job"
	"hireflow/internal/domain/profile"
)

var adjustSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"delta":     {Type: genai.TypeInteger},
		"rationale": {Type: genai.TypeString},
	},
	Required: []string{"delta", "rationale"},
}

const adjustPrompt = `You are reviewing an automated candidate-to-job match score.
The deterministic score below was computed from skill overlap and seniority alignment.
Propose a small signed correction ("delta") based on qualitative fit the keyword
matching cannot see (career trajectory, domain relevance, title alignment).
Stay conservative: 0 is the right answer for an unremarkable fit.

Deterministic score: %d

Job:
%s

Candidate profile:
%s`

type adjustOutput struct {
	Delta     int    `json:"delta"`
	Rationale string `json:"rationale"`
}

// AdjustScore implements ai.ScoreAdjuster. The returned delta is raw; the
// scoring usecase clamps it to the configured bound.
func (c *Client) AdjustScore(ctx context.Context, p profile.Profile, j job.Job, baseScore int) (int, string, error) {
	jobJSON, err := json.Marshal(map[string]any{
		"title":        j.Title,
		"level":        j.Level,
		"department":   j.Department,
		"description":  j.Description,
		"requirements": j.Requirements,
	})
	if err != nil {
		return 0, "", ai.Permanent("adjust_score", err)
	}

	profileJSON, err := json.Marshal(p)
	if err != nil {
		return 0, "", ai.Permanent("adjust_score", err)
	}

	prompt := fmt.Sprintf(adjustPrompt, baseScore, jobJSON, profileJSON)

	var out adjustOutput
	if err := c.generateJSON(ctx, "adjust_score", prompt, adjustSchema, &out); err != nil {
		return 0, "", err
	}

	return out.Delta, out.Rationale, nil
}

var _ ai.ScoreAdjuster = (*Client)(nil)
