package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"hireflow/internal/ai"
	"hireflow/internal/domain/interview"
	"hireflow/internal/domain/job"
)

var gradeSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"criteria": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"question_index": {Type: genai.TypeInteger},
					"score":          {Type: genai.TypeInteger},
					"feedback":       {Type: genai.TypeString},
				},
				Required: []string{"question_index", "score"},
			},
		},
		"overall_score": {Type: genai.TypeInteger},
		"verdict":       {Type: genai.TypeString},
	},
	Required: []string{"criteria", "overall_score", "verdict"},
}

const gradePrompt = `You are scoring a written assessment for the position "%s" (%s level).
Score each answer 0-100 for correctness, depth and relevance to the question.
Unanswered questions score 0. "verdict" is one short sentence: a hiring
recommendation a recruiter can read at a glance.

%s`

type gradeOutput struct {
	Criteria []struct {
		QuestionIndex int    `json:"question_index"`
		Score         int    `json:"score"`
		Feedback      string `json:"feedback"`
	} `json:"criteria"`
	OverallScore int    `json:"overall_score"`
	Verdict      string `json:"verdict"`
}

// GradeResponses implements ai.ResponseGrader.
func (c *Client) GradeResponses(ctx context.Context, j job.Job, questions []interview.Question, responses []interview.Response) (ai.GradeResult, error) {
	answers := make(map[int]string, len(responses))
	for _, r := range responses {
		answers[r.QuestionIndex] = r.Answer
	}

	var sb strings.Builder
	for _, q := range questions {
		fmt.Fprintf(&sb, "Question %d: %s\n", q.Ordinal, q.Prompt)
		if a, ok := answers[q.Ordinal]; ok {
			fmt.Fprintf(&sb, "Answer %d: %s\n\n", q.Ordinal, a)
		} else {
			fmt.Fprintf(&sb, "Answer %d: (not answered)\n\n", q.Ordinal)
		}
	}

	prompt := fmt.Sprintf(gradePrompt, j.Title, j.Level, sb.String())

	var out gradeOutput
	if err := c.generateJSON(ctx, "grade_responses", prompt, gradeSchema, &out); err != nil {
		return ai.GradeResult{}, err
	}

	valid := make(map[int]bool, len(questions))
	for _, q := range questions {
		valid[q.Ordinal] = true
	}

	criteria := make([]interview.CriterionScore, 0, len(out.Criteria))
	for _, cr := range out.Criteria {
		if !valid[cr.QuestionIndex] {
			continue
		}
		criteria = append(criteria, interview.CriterionScore{
			QuestionIndex: cr.QuestionIndex,
			Score:         clampScore(cr.Score),
			Feedback:      cr.Feedback,
		})
	}
	if len(criteria) == 0 {
		return ai.GradeResult{}, ai.Permanent("grade_responses", fmt.Errorf("model returned no per-question scores"))
	}

	return ai.GradeResult{
		Criteria:     criteria,
		OverallScore: clampScore(out.OverallScore),
		Verdict:      strings.TrimSpace(out.Verdict),
	}, nil
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

var _ ai.ResponseGrader = (*Client)(nil)
