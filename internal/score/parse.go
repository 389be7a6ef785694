package score

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Result is the JSON object the scoring command is expected to print.
type Result struct {
	Score   int      `json:"score"`
	Reason  string   `json:"reason"`
	Missing []string `json:"missing"`
}

// ParseOutput extracts the result JSON from raw model output. Models
// routinely wrap JSON in ```json fences or pad it with prose, so the
// parser cuts to the outermost object before unmarshalling. Scores
// outside 0-100 are clamped into range.
func ParseOutput(raw []byte) (Result, error) {
	var res Result

	text := strings.TrimSpace(string(raw))
	if text == "" {
		return res, fmt.Errorf("empty scoring output")
	}

	text = stripFences(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return res, fmt.Errorf("no JSON object in scoring output")
	}

	if err := json.Unmarshal([]byte(text[start:end+1]), &res); err != nil {
		return res, fmt.Errorf("parse scoring output: %w", err)
	}

	if res.Score < 0 {
		res.Score = 0
	}
	if res.Score > 100 {
		res.Score = 100
	}
	return res, nil
}

func stripFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	if i := strings.LastIndex(text, "```"); i >= 0 {
		text = text[:i]
	}
	return strings.TrimSpace(text)
}
