package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/answerforge/answerforge/internal/pygen"
	"github.com/answerforge/answerforge/internal/pyparse"
)

func newFmtCmd() *cobra.Command {
	var in string
	var write bool
	cmd := &cobra.Command{
		Use:   "fmt",
		Short: "Normalize class source by re-parsing and regenerating it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := os.ReadFile(in)
			if err != nil {
				return err
			}
			c, err := pyparse.Parse(string(data))
			if err != nil {
				return fmt.Errorf("parse %s: %w", in, err)
			}
			c = c.WithMethods(pygen.SynthesizeMethods(c.Fields, c.Pattern))
			text, err := pygen.Generate(c)
			if err != nil {
				return err
			}
			if write {
				return os.WriteFile(in, []byte(text), 0o644)
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().StringVarP(&in, "file", "f", "", "class source to normalize (required)")
	_ = cmd.MarkFlagRequired("file")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "rewrite the file in place")
	return cmd
}
