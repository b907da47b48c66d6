package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/answerforge/answerforge/internal/schema"
	"github.com/answerforge/answerforge/internal/schemafile"
)

func writeSampleDoc(t *testing.T) string {
	t.Helper()
	c := schema.NewClassDefinition("CapitalAnswer")
	c.Pattern = schema.PatternSingle
	c = c.WithField(schema.FieldDefinition{
		Name: "city", Kind: schema.KindString, Required: true,
		Description: "capital city",
		Correct:     schema.StringValue("Paris"),
	})
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, schemafile.Save(path, schemafile.NewDocument(c)))
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerateCommand(t *testing.T) {
	path := writeSampleDoc(t)

	t.Run("writes class source to stdout", func(t *testing.T) {
		out, err := runCommand(t, "generate", "-f", path)
		require.NoError(t, err)
		require.Contains(t, out, "class CapitalAnswer(BaseAnswer):")
		require.Contains(t, out, "self.correct_answer = \"Paris\"")
	})

	t.Run("writes to a file with -o", func(t *testing.T) {
		dst := filepath.Join(t.TempDir(), "answer.py")
		_, err := runCommand(t, "generate", "-f", path, "-o", dst)
		require.NoError(t, err)
		data, err := os.ReadFile(dst)
		require.NoError(t, err)
		require.Contains(t, string(data), "def verify(self) -> bool:")
	})

	t.Run("validation errors block generation", func(t *testing.T) {
		c := schema.NewClassDefinition("Answer")
		c = c.WithField(schema.FieldDefinition{Name: "class", Kind: schema.KindString, Required: true})
		bad := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, schemafile.Save(bad, schemafile.NewDocument(c)))

		_, err := runCommand(t, "generate", "-f", bad)
		require.Error(t, err)
		require.Contains(t, err.Error(), "validation errors")
	})
}

func TestParseCommand(t *testing.T) {
	src := filepath.Join(t.TempDir(), "answer.py")
	require.NoError(t, os.WriteFile(src, []byte(
		"class CapitalAnswer(BaseAnswer):\n"+
			"    city: str\n\n"+
			"    def set_correct_answer(self):\n"+
			"        self.correct_answer = \"Paris\"\n"), 0o644))

	out, err := runCommand(t, "parse", "-f", src)
	require.NoError(t, err)
	require.Contains(t, out, "kind: answer_schema")
	require.Contains(t, out, "name: CapitalAnswer")
	require.Contains(t, out, "pattern: single")
}

func TestCheckCommand(t *testing.T) {
	path := writeSampleDoc(t)

	t.Run("clean schema passes", func(t *testing.T) {
		_, err := runCommand(t, "check", "-f", path)
		require.NoError(t, err)
	})

	t.Run("json format", func(t *testing.T) {
		out, err := runCommand(t, "check", "-f", path, "--format", "json")
		require.NoError(t, err)
		require.Contains(t, out, "[")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := runCommand(t, "check", "-f", path, "--format", "xml")
		require.Error(t, err)
	})
}

func TestFmtCommand(t *testing.T) {
	src := filepath.Join(t.TempDir(), "answer.py")
	// hand-written text with uneven spacing normalizes to generator output
	require.NoError(t, os.WriteFile(src, []byte(
		"class CapitalAnswer(BaseAnswer):\n"+
			"    city: str\n\n"+
			"    def set_correct_answer(self):\n"+
			"        self.correct_answer = \"Paris\"\n"), 0o644))

	out, err := runCommand(t, "fmt", "-f", src)
	require.NoError(t, err)
	require.Contains(t, out, "def verify(self) -> bool:")

	t.Run("in place", func(t *testing.T) {
		_, err := runCommand(t, "fmt", "-f", src, "-w")
		require.NoError(t, err)
		data, err := os.ReadFile(src)
		require.NoError(t, err)
		require.Contains(t, string(data), "def verify(self) -> bool:")
	})
}

func TestNormalizeFlags(t *testing.T) {
	fs := pflag.NewFlagSet("t", pflag.ContinueOnError)
	require.Equal(t, pflag.NormalizedName("log-level"), normalizeFlags(fs, "log_level"))
	require.Equal(t, pflag.NormalizedName("format"), normalizeFlags(fs, "format"))
}

func TestDeriveVersion(t *testing.T) {
	require.NotEmpty(t, deriveVersion())
}
