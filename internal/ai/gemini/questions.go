package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"hireflow/internal/ai"
	"hireflow/internal/domain/job"
)

var questionsSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"questions": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	},
	Required: []string{"questions"},
}

const questionsPrompt = `Write exactly %d written-assessment questions for the job below.
Questions are answered asynchronously in free text, so each must be self-contained
and answerable without a live interviewer. Order them from warm-up to hardest.
Cover the listed requirements; do not ask about compensation or availability.

Job title: %s
Level: %s
Description: %s
Requirements: %s`

type questionsOutput struct {
	Questions []string `json:"questions"`
}

// GenerateQuestions implements ai.QuestionGenerator.
func (c *Client) GenerateQuestions(ctx context.Context, j job.Job, count int) ([]string, error) {
	if count <= 0 {
		count = 5
	}

	prompt := fmt.Sprintf(questionsPrompt,
		count, j.Title, j.Level, j.Description, strings.Join(j.Requirements, "; "))

	var out questionsOutput
	if err := c.generateJSON(ctx, "generate_questions", prompt, questionsSchema, &out); err != nil {
		return nil, err
	}

	qs := make([]string, 0, count)
	for _, q := range out.Questions {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		qs = append(qs, q)
		if len(qs) == count {
			break
		}
	}
	if len(qs) == 0 {
		return nil, ai.Permanent("generate_questions", fmt.Errorf("model returned no usable questions"))
	}

	return qs, nil
}

var _ ai.QuestionGenerator = (*Client)(nil)
