package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutput(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Result
		wantErr bool
	}{
		{
			name: "plain json",
			raw:  `{"score": 72, "reason": "solid overlap", "missing": ["Dutch"]}`,
			want: Result{Score: 72, Reason: "solid overlap", Missing: []string{"Dutch"}},
		},
		{
			name: "fenced json",
			raw:  "```json\n{\"score\": 40, \"reason\": \"partial\", \"missing\": []}\n```",
			want: Result{Score: 40, Reason: "partial", Missing: []string{}},
		},
		{
			name: "json padded with prose",
			raw:  "Sure! Here is the assessment:\n{\"score\": 55, \"reason\": \"ok\"}\nHope that helps.",
			want: Result{Score: 55, Reason: "ok"},
		},
		{
			name: "score clamped high",
			raw:  `{"score": 140, "reason": "overenthusiastic"}`,
			want: Result{Score: 100, Reason: "overenthusiastic"},
		},
		{
			name: "score clamped low",
			raw:  `{"score": -5, "reason": "negative"}`,
			want: Result{Score: 0, Reason: "negative"},
		},
		{name: "empty output", raw: "   ", wantErr: true},
		{name: "no json at all", raw: "I cannot answer that.", wantErr: true},
		{name: "broken json", raw: `{"score": `, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOutput([]byte(tt.raw))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
