package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/answerforge/answerforge/internal/schemafile"
	"github.com/answerforge/answerforge/internal/validate"
)

func newCheckCmd() *cobra.Command {
	var in, format string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a schema document and report issues",
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := schemafile.Load(in)
			if err != nil {
				return err
			}
			issues := validate.Class(doc.Class)
			if issues == nil {
				issues = []validate.Issue{}
			}
			switch format {
			case "json":
				raw, err := json.Marshal(issues)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), string(pretty.Pretty(raw)))
			case "text":
				for _, is := range issues {
					if is.Name != "" {
						fmt.Fprintf(cmd.OutOrStdout(), "%s: %s: %s\n", is.Severity, is.Name, is.Message)
					} else {
						fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", is.Severity, is.Message)
					}
				}
			default:
				return fmt.Errorf("unsupported format %q", format)
			}
			if validate.HasErrors(issues) {
				return fmt.Errorf("schema %s has validation errors", doc.ID)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&in, "file", "f", "", "schema document to read (required)")
	_ = cmd.MarkFlagRequired("file")
	cmd.Flags().StringVar(&format, "format", "text", "output format (text, json)")
	return cmd
}
