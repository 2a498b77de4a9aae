package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"resume-renderer/internal/config"
	"resume-renderer/internal/preview"

	"github.com/spf13/cobra"
)

// previewCmd renders the low-fidelity preview of a .tex file without a
// server or a TeX installation.
func previewCmd(cfgPath *string) *cobra.Command {
	var in, out string
	var overrides preview.Tokens
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Write the instant preview PDF for a LaTeX file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			var latex []byte
			if in == "" || in == "-" {
				latex, err = io.ReadAll(cmd.InOrStdin())
			} else {
				latex, err = os.ReadFile(in)
			}
			if err != nil {
				return fmt.Errorf("read latex: %w", err)
			}

			res := preview.NewGenerator(cfg.Preview.Defaults).Generate(string(latex), overrides)
			if !res.Available() {
				return errors.New("preview unavailable")
			}
			if out != "" {
				if err := os.WriteFile(out, res.PDF, 0o644); err != nil {
					return fmt.Errorf("write pdf: %w", err)
				}
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "candidate: %s\nrole: %s\nworkspace: %s\nexcerpt: %s\n",
				res.Tokens.Candidate, res.Tokens.Role, res.Tokens.Workspace, res.Excerpt)
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "LaTeX source file (stdin when empty or -)")
	cmd.Flags().StringVar(&out, "out", "", "where to write the preview PDF")
	cmd.Flags().StringVar(&overrides.Candidate, "candidate", "", "candidate name override")
	cmd.Flags().StringVar(&overrides.Role, "role", "", "role override")
	cmd.Flags().StringVar(&overrides.Workspace, "workspace", "", "workspace override")
	return cmd
}
