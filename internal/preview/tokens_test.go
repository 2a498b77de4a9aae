package preview

import "testing"

func TestResolveTokensDefaults(t *testing.T) {
	got := ResolveTokens(Tokens{}, DefaultTokens())
	want := Tokens{Candidate: "Elena Kapoor", Role: "LLM Operations Lead", Workspace: "Velocity Pod SF"}
	if got != want {
		t.Fatalf("ResolveTokens = %+v, want %+v", got, want)
	}
}

func TestResolveTokensFieldByField(t *testing.T) {
	defaults := Tokens{Candidate: "Default C", Role: "Default R", Workspace: "Default W"}
	cases := []struct {
		name      string
		overrides Tokens
		want      Tokens
	}{
		{"all", Tokens{"Ana Li", "PM", "Core"}, Tokens{"Ana Li", "PM", "Core"}},
		{"role only", Tokens{Role: "Staff SRE"}, Tokens{"Default C", "Staff SRE", "Default W"}},
		{"blank falls back", Tokens{Candidate: "   ", Workspace: "\t"}, Tokens{"Default C", "Default R", "Default W"}},
		{"unprintable falls back", Tokens{Candidate: "éè"}, Tokens{"Default C", "Default R", "Default W"}},
		{"sanitized", Tokens{Candidate: " Zoë  Park\n"}, Tokens{"Zo Park", "Default R", "Default W"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveTokens(tc.overrides, defaults); got != tc.want {
				t.Fatalf("ResolveTokens(%+v) = %+v, want %+v", tc.overrides, got, tc.want)
			}
		})
	}
}
