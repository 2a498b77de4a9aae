package preview

import (
	"strings"
	"testing"
)

func TestExtractExcerpt(t *testing.T) {
	cases := []struct {
		name, in, want string
	}{
		{
			name: "document body",
			in:   `\begin{document}\textbf{Summary}: Led 3 launches. \end{document}`,
			want: "Summary: Led 3 launches.",
		},
		{
			name: "preamble ignored",
			in:   "\\documentclass{article}\n\\usepackage{xcolor}\n\\begin{document}\nHello\n\\end{document}\ntrailing",
			want: "Hello",
		},
		{
			name: "no markers",
			in:   `Plain \emph{resume} text`,
			want: "Plain resume text",
		},
		{
			name: "begin without end",
			in:   "\\begin{document}\nStill here",
			want: "Still here",
		},
		{
			name: "end without begin",
			in:   `Intro \end{document} outro`,
			want: "Intro document outro",
		},
		{
			name: "end before begin",
			in:   `\end{document}x\begin{document}y`,
			want: EmptyExcerpt,
		},
		{
			name: "line comments",
			in:   "keep % drop this\nnext line",
			want: "keep next line",
		},
		{
			name: "definecolor",
			in:   `\definecolor{accent}{HTML}{1F4E79}Visible`,
			want: "Visible",
		},
		{
			name: "html hex color",
			in:   "colour HTML 1F4E79 done",
			want: "colour done",
		},
		{
			name: "star and option",
			in:   `\section*[short]{Experience} Built things`,
			want: "Experience Built things",
		},
		{
			name: "bare commands",
			in:   `Left\hfill Right\\ \vspace Next`,
			want: `Left Right\\ Next`,
		},
		{
			name: "leftover braces",
			in:   `{\bf Bold}: done`,
			want: "Bold: done",
		},
		{
			name: "nested command residue",
			in:   `\textbf{\emph{Lead}} engineer`,
			want: `\emphLead engineer`,
		},
		{
			name: "empty",
			in:   "",
			want: EmptyExcerpt,
		},
		{
			name: "empty body",
			in:   `\begin{document}   \end{document}`,
			want: EmptyExcerpt,
		},
		{
			name: "only markup",
			in:   "\\begin{document}\\maketitle\n% nothing\n\\end{document}",
			want: EmptyExcerpt,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractExcerpt(tc.in); got != tc.want {
				t.Fatalf("ExtractExcerpt(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestExcerptTruncatesWithMarker(t *testing.T) {
	got := Excerpt(strings.Repeat("a", 1000))
	if len(got) != MaxExcerptLen {
		t.Fatalf("len = %d, want %d", len(got), MaxExcerptLen)
	}
	if !strings.HasSuffix(got, EllipsisMarker) {
		t.Fatalf("excerpt %q does not end with %q", got[len(got)-10:], EllipsisMarker)
	}
	if strings.Count(got, EllipsisMarker) != 1 {
		t.Fatalf("marker appended more than once")
	}
}

func TestExcerptExactLimitNotMarked(t *testing.T) {
	in := strings.Repeat("b", MaxExcerptLen)
	if got := Excerpt(in); got != in {
		t.Fatalf("excerpt at the limit was altered: %q", got)
	}
}

func TestExcerptNeverExceedsLimit(t *testing.T) {
	inputs := []string{
		"",
		strings.Repeat("word ", 300),
		strings.Repeat("é", 2000),
		strings.Repeat(`\textbf{x} `, 500),
		`\begin{document}` + strings.Repeat("Résumé line\n", 400) + `\end{document}`,
		strings.Repeat("\u00a0", 50),
	}
	for _, in := range inputs {
		got := Excerpt(in)
		if len(got) > MaxExcerptLen {
			t.Fatalf("excerpt of %d bytes input is %d long", len(in), len(got))
		}
		if got == "" {
			t.Fatalf("excerpt is empty for input of %d bytes", len(in))
		}
		if Sanitize(got) != got {
			t.Fatalf("excerpt %q is not sanitized", got)
		}
	}
}
