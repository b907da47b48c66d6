package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/answerforge/answerforge/internal/pygen"
	"github.com/answerforge/answerforge/internal/schemafile"
	"github.com/answerforge/answerforge/internal/validate"
)

func newGenerateCmd() *cobra.Command {
	var in, out string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate class source from a schema document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := newLog()
			doc, err := schemafile.Load(in)
			if err != nil {
				return err
			}
			issues := validate.Class(doc.Class)
			for _, is := range issues {
				if is.Severity == validate.SeverityError {
					log.Error(is.Message, "field", is.Name)
				}
			}
			if validate.HasErrors(issues) {
				return fmt.Errorf("schema %s has validation errors", doc.ID)
			}
			c := doc.Class.WithMethods(pygen.SynthesizeMethods(doc.Class.Fields, doc.Class.Pattern))
			text, err := pygen.Generate(c)
			if err != nil {
				return err
			}
			if out == "" {
				fmt.Fprint(cmd.OutOrStdout(), text)
				return nil
			}
			if err := os.WriteFile(out, []byte(text), 0o644); err != nil {
				return err
			}
			log.Info("wrote class source", "path", out, "fields", len(c.Fields))
			return nil
		},
	}
	cmd.Flags().StringVarP(&in, "file", "f", "", "schema document to read (required)")
	_ = cmd.MarkFlagRequired("file")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}
