package llm

import "testing"

func TestParseEntailmentReply(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantLabel string
		wantScore float64
		wantErr   bool
	}{
		{
			name:      "plain JSON",
			content:   `{"label": "entailment", "score": 0.91}`,
			wantLabel: "entailment",
			wantScore: 0.91,
		},
		{
			name:      "code fenced",
			content:   "```json\n{\"label\": \"contradiction\", \"score\": 0.7}\n```",
			wantLabel: "contradiction",
			wantScore: 0.7,
		},
		{
			name:      "uppercase label normalized",
			content:   `{"label": "NEUTRAL", "score": 0.5}`,
			wantLabel: "neutral",
			wantScore: 0.5,
		},
		{
			name:    "not JSON",
			content: "the premise entails the hypothesis",
			wantErr: true,
		},
		{
			name:    "score out of range",
			content: `{"label": "entailment", "score": 1.5}`,
			wantErr: true,
		},
		{
			name:    "negative score",
			content: `{"label": "entailment", "score": -0.1}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseEntailmentReply(tt.content)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Label != tt.wantLabel || got.Score != tt.wantScore {
				t.Errorf("got (%q, %v), want (%q, %v)", got.Label, got.Score, tt.wantLabel, tt.wantScore)
			}
		})
	}
}

func TestNewOpenAIProvider_RequiresKey(t *testing.T) {
	if _, err := NewOpenAIProvider(Config{}); err == nil {
		t.Error("expected error without API key")
	}
}
