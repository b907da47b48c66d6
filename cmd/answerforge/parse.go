package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/answerforge/answerforge/internal/pyparse"
	"github.com/answerforge/answerforge/internal/schemafile"
)

func newParseCmd() *cobra.Command {
	var in, out string
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Recover a schema document from class source",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := newLog()
			data, err := os.ReadFile(in)
			if err != nil {
				return err
			}
			c, err := pyparse.Parse(string(data))
			if err != nil {
				return fmt.Errorf("parse %s: %w", in, err)
			}
			doc := schemafile.NewDocument(c)
			encoded, err := schemafile.Encode(doc)
			if err != nil {
				return err
			}
			if out == "" {
				fmt.Fprint(cmd.OutOrStdout(), string(encoded))
				return nil
			}
			if err := os.WriteFile(out, encoded, 0o644); err != nil {
				return err
			}
			log.Info("wrote schema document", "path", out, "id", doc.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&in, "file", "f", "", "class source to read (required)")
	_ = cmd.MarkFlagRequired("file")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}
