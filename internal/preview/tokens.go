package preview

// Tokens are the candidate details printed above the excerpt. As an override
// an empty field means "not supplied".
type Tokens struct {
	Candidate string `json:"candidate,omitempty"`
	Role      string `json:"role,omitempty"`
	Workspace string `json:"workspace,omitempty"`
}

// DefaultTokens is the fixed table used for any field a caller leaves out.
func DefaultTokens() Tokens {
	return Tokens{
		Candidate: "Elena Kapoor",
		Role:      "LLM Operations Lead",
		Workspace: "Velocity Pod · SF",
	}
}

// ResolveTokens picks each field from overrides when it has printable content
// and from defaults otherwise, then sanitizes all three.
func ResolveTokens(overrides, defaults Tokens) Tokens {
	return Tokens{
		Candidate: resolveField(overrides.Candidate, defaults.Candidate),
		Role:      resolveField(overrides.Role, defaults.Role),
		Workspace: resolveField(overrides.Workspace, defaults.Workspace),
	}
}

func resolveField(override, fallback string) string {
	if v := Sanitize(override); v != "" {
		return v
	}
	return Sanitize(fallback)
}
