package assistant

import (
	"strings"
	"testing"
)

func TestReplyKeywordMatch(t *testing.T) {
	cases := []struct {
		prompt string
		want   string
	}{
		{"I need a TRACTOR for my farm", "Mini Tractor"},
		{"help with irrigation please", "Water Pump Set"},
		{"what about soil preparation", "Harrow Disc"},
		{"best way of sowing wheat", "Seed Drill"},
		{"looking for a sprayer", "Pesticide Sprayer"},
	}
	for _, tc := range cases {
		got := Reply(tc.prompt)
		if !strings.Contains(got, tc.want) {
			t.Errorf("Reply(%q) = %q, want mention of %q", tc.prompt, got, tc.want)
		}
	}
}

func TestReplyFallback(t *testing.T) {
	got := Reply("completely unrelated question")
	if got != fallbackReply {
		t.Errorf("Reply fallback = %q, want %q", got, fallbackReply)
	}
	if Reply("") != fallbackReply {
		t.Error("empty prompt should get the fallback reply")
	}
}

func TestGreetingAndRecommendationsStable(t *testing.T) {
	if Greeting == "" {
		t.Fatal("greeting must not be empty")
	}
	if len(Recommendations) == 0 {
		t.Fatal("recommendations must not be empty")
	}
}
