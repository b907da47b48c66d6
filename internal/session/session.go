// Package session owns one class model and keeps it synchronized with its
// source text: field commits trigger re-synthesis and regeneration, incoming
// external text triggers a parse that replaces the model wholesale or fails
// without touching it.
package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/answerforge/answerforge/internal/pygen"
	"github.com/answerforge/answerforge/internal/pyparse"
	"github.com/answerforge/answerforge/internal/schema"
	"github.com/answerforge/answerforge/internal/validate"
	"github.com/answerforge/answerforge/pkg/logger"
)

// State is the session's synchronization state.
type State string

const (
	StateClean        State = "clean"
	StateRegenerating State = "regenerating"
	StateParseError   State = "parse_error"
)

// ErrBlocked wraps error-level validation issues that stop a field commit.
var ErrBlocked = errors.New("field blocked by validation errors")

// Session is single-owner and not safe for concurrent use; edits are
// serialized into it one commit at a time.
type Session struct {
	log      logger.Logger
	state    State
	model    *schema.ClassDefinition
	source   string
	parseMsg string

	emitting    bool // re-entrancy guard: our own emission must not re-parse
	lastEmitted string
	hasEmitted  bool

	onSource func(text string)
}

// Option configures a new session.
type Option func(*Session)

// WithLogger replaces the default (silent) logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithSourceListener observes every newly generated source text.
func WithSourceListener(fn func(text string)) Option {
	return func(s *Session) { s.onSource = fn }
}

// New creates a session around an empty class shell.
func New(className string, opts ...Option) *Session {
	s := &Session{
		log:   logger.NewLogger(logger.TestConfig()),
		state: StateClean,
		model: schema.NewClassDefinition(className),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Session) State() State { return s.state }

// Model returns a copy of the current class model.
func (s *Session) Model() *schema.ClassDefinition { return s.model.Clone() }

// Source returns the last successfully generated or parsed source text.
func (s *Session) Source() string { return s.source }

// ParseMessage returns the failure message of the last rejected text, or "".
func (s *Session) ParseMessage() string { return s.parseMsg }

// Commit applies one field draft (add or replace by name). Error-level issues
// on the draft block the commit and leave the model untouched.
func (s *Session) Commit(draft schema.FieldDefinition) error {
	return s.commitWith(draft, func(m *schema.ClassDefinition) *schema.ClassDefinition {
		return m.WithField(draft)
	})
}

// CommitRename applies a draft that replaces the field previously named
// oldName, keeping its position.
func (s *Session) CommitRename(oldName string, draft schema.FieldDefinition) error {
	return s.commitWith(draft, func(m *schema.ClassDefinition) *schema.ClassDefinition {
		return m.WithFieldRenamed(oldName, draft)
	})
}

func (s *Session) commitWith(draft schema.FieldDefinition, apply func(*schema.ClassDefinition) *schema.ClassDefinition) error {
	issues := append(validate.Identifier(draft.Name), validate.Field(draft)...)
	if validate.HasErrors(issues) {
		var msgs []string
		for _, is := range issues {
			if is.Severity == validate.SeverityError {
				msgs = append(msgs, is.Message)
			}
		}
		s.log.Debug("commit blocked", "field", draft.Name, "errors", len(msgs))
		return fmt.Errorf("%w: %s", ErrBlocked, strings.Join(msgs, "; "))
	}
	return s.regenerate(apply)
}

// RemoveField drops the named field and regenerates.
func (s *Session) RemoveField(name string) error {
	return s.regenerate(func(m *schema.ClassDefinition) *schema.ClassDefinition {
		return m.WithoutField(name)
	})
}

// SetPattern switches the correctness pattern and regenerates.
func (s *Session) SetPattern(p schema.CorrectnessPattern) error {
	return s.regenerate(func(m *schema.ClassDefinition) *schema.ClassDefinition {
		cp := m.Clone()
		cp.Pattern = p
		return cp
	})
}

// SetDocstring updates the class docstring and regenerates.
func (s *Session) SetDocstring(doc string) error {
	return s.regenerate(func(m *schema.ClassDefinition) *schema.ClassDefinition {
		cp := m.Clone()
		cp.Docstring = doc
		return cp
	})
}

// SetClassName renames the class and regenerates. Names the parser could not
// read back block the rename, like an invalid field draft blocks a commit.
func (s *Session) SetClassName(name string) error {
	issues := validate.ClassName(name)
	if validate.HasErrors(issues) {
		var msgs []string
		for _, is := range issues {
			if is.Severity == validate.SeverityError {
				msgs = append(msgs, is.Message)
			}
		}
		s.log.Debug("rename blocked", "class", name, "errors", len(msgs))
		return fmt.Errorf("%w: %s", ErrBlocked, strings.Join(msgs, "; "))
	}
	return s.regenerate(func(m *schema.ClassDefinition) *schema.ClassDefinition {
		cp := m.Clone()
		cp.Name = name
		return cp
	})
}

// regenerate runs one Clean -> Regenerating -> Clean cycle: apply the
// structural change, re-synthesize the owned methods, regenerate the text,
// and emit it. Every exit path restores a non-stuck state and releases the
// emission guard.
func (s *Session) regenerate(apply func(*schema.ClassDefinition) *schema.ClassDefinition) error {
	prevState := s.state
	s.state = StateRegenerating
	defer func() {
		s.emitting = false
		if s.state == StateRegenerating { // failure path: don't stay wedged
			s.state = prevState
		}
	}()

	next := apply(s.model)
	if next.Pattern == schema.PatternSingle && len(next.Fields) == 0 {
		// single is meaningless without a field; normalize so the text
		// round-trips
		next.Pattern = schema.PatternMultiple
	}
	next = next.WithMethods(pygen.SynthesizeMethods(next.Fields, next.Pattern))
	text, err := pygen.Generate(next)
	if err != nil {
		s.log.Error("generation failed", "error", err)
		return fmt.Errorf("generate: %w", err)
	}
	s.model = next
	s.source = text
	s.lastEmitted = text
	s.hasEmitted = true
	s.state = StateClean
	s.parseMsg = ""
	s.log.Debug("regenerated", "fields", len(next.Fields), "bytes", len(text))
	if s.onSource != nil {
		s.emitting = true
		s.onSource(text)
		s.emitting = false
	}
	return nil
}

// SetSource accepts external text. On success the model is replaced
// wholesale; on failure the session moves to ParseError and the previous
// model and source stay untouched. Text the session itself just emitted is
// ignored so the emit/parse loop cannot feed back.
func (s *Session) SetSource(text string) error {
	if s.emitting {
		return nil
	}
	if s.hasEmitted && text == s.lastEmitted {
		s.log.Debug("suppressed echo of own emission")
		return nil
	}
	model, err := pyparse.Parse(text)
	if err != nil {
		s.state = StateParseError
		s.parseMsg = err.Error()
		s.log.Warn("parse failed", "error", err)
		return err
	}
	s.model = model
	s.source = text
	s.state = StateClean
	s.parseMsg = ""
	s.log.Debug("source accepted", "fields", len(model.Fields))
	return nil
}

// Validate reports advisory issues for the current model.
func (s *Session) Validate() []validate.Issue {
	return validate.Class(s.model)
}
