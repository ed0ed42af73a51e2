package analysis

import "strings"

const promptTemplate = `
You are a Home Inspection Analysis Expert GPT.
Analyze the following report text and return structured findings in JSON format:
{
  "summary": "Brief overview of the property condition",
  "categories": [
    {"name": "Structural", "issues": ["..."], "recommendations": ["..."]},
    {"name": "Plumbing", "issues": ["..."], "recommendations": ["..."]},
    {"name": "Electrical", "issues": ["..."], "recommendations": ["..."]}
  ],
  "priority_repairs": ["...", "..."]
}
Text: {{text}}
`

// BuildPrompt embeds the report text in the fixed instruction template.
func BuildPrompt(text string) string {
	return strings.Replace(promptTemplate, "{{text}}", text, 1)
}
