package service

import "testing"

func TestParseGradeContent(t *testing.T) {
	cases := []struct {
		name     string
		content  string
		score    float64
		feedback string
	}{
		{
			name:     "plain json",
			content:  `{"score": 85, "feedback": "Good work."}`,
			score:    85,
			feedback: "Good work.",
		},
		{
			name:     "fenced json",
			content:  "```json\n{\"score\": 72, \"feedback\": \"Review fractions.\"}\n```",
			score:    72,
			feedback: "Review fractions.",
		},
		{
			name:     "surrounding prose",
			content:  "Here is the result: {\"score\": 90, \"feedback\": \"Great.\"} Hope that helps!",
			score:    90,
			feedback: "Great.",
		},
		{
			name:    "score clamped high",
			content: `{"score": 150, "feedback": "x"}`,
			score:   100,
		},
		{
			name:    "score clamped low",
			content: `{"score": -5, "feedback": "x"}`,
			score:   0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, feedback, err := parseGradeContent(tc.content)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if score != tc.score {
				t.Fatalf("score %v, want %v", score, tc.score)
			}
			if tc.feedback != "" && feedback != tc.feedback {
				t.Fatalf("feedback %q, want %q", feedback, tc.feedback)
			}
		})
	}
}

func TestParseGradeContentRejectsGarbage(t *testing.T) {
	if _, _, err := parseGradeContent("I cannot grade this"); err == nil {
		t.Fatalf("expected error for non-JSON output")
	}
}
