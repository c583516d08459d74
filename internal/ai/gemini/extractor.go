package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"hireflow/internal/ai"
	"hireflow/internal/domain/profile"
)

var profileSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"full_name": {Type: genai.TypeString},
		"email":     {Type: genai.TypeString},
		"phone":     {Type: genai.TypeString},
		"summary":   {Type: genai.TypeString},
		"skills": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
		"positions": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title":   {Type: genai.TypeString},
					"company": {Type: genai.TypeString},
					"months":  {Type: genai.TypeInteger},
				},
				Required: []string{"title"},
			},
		},
		"education": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"institution": {Type: genai.TypeString},
					"degree":      {Type: genai.TypeString},
					"field":       {Type: genai.TypeString},
				},
			},
		},
	},
	Required: []string{"full_name", "skills", "positions", "education"},
}

const extractPrompt = `You are a resume parser. Extract the candidate's data from the resume below.
Rules:
- Copy names, companies and institutions verbatim from the text.
- "months" is the duration of each position in months; use 0 when it cannot be determined.
- List skills as short lowercase terms. If the resume names no skills, return an empty list.
- Never invent data that is not present in the resume.

Resume:
"""
%s
"""`

// ExtractProfile implements ai.ProfileExtractor.
func (c *Client) ExtractProfile(ctx context.Context, resumeText string) (profile.Profile, error) {
	var out profile.Profile
	prompt := fmt.Sprintf(extractPrompt, resumeText)

	if err := c.generateJSON(ctx, "extract_profile", prompt, profileSchema, &out); err != nil {
		return profile.Profile{}, err
	}

	// Sparse resumes stay valid: normalize nil slices rather than failing.
	if out.Skills == nil {
		out.Skills = []string{}
	}
	if out.Positions == nil {
		out.Positions = []profile.Position{}
	}
	if out.Education == nil {
		out.Education = []profile.EducationEntry{}
	}
	out.FullName = strings.TrimSpace(out.FullName)

	return out, nil
}

var _ ai.ProfileExtractor = (*Client)(nil)
