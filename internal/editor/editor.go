// internal/editor/editor.go
package editor

import (
	"context"
	"fmt"
	"sync"

	"github.com/agronomthe6th/tbot-v2-sub001/internal/client"
	"github.com/agronomthe6th/tbot-v2-sub001/internal/core"
	"github.com/agronomthe6th/tbot-v2-sub001/internal/highlight"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Form is the transient copy of one pattern held while editing. ID 0
// means the pattern has not been created yet.
type Form struct {
	ID          int64
	Name        string        `validate:"required,max=100"`
	Category    core.Category `validate:"required,oneof=ticker direction_long direction_short operation_exit trading_keyword author price_target price_stop price_take garbage"`
	Pattern     string        `validate:"required"`
	Priority    int           `validate:"min=0,max=1000"`
	Description string
	IsActive    bool
}

// Backend is the subset of client operations the editor drives.
type Backend interface {
	TestPattern(ctx context.Context, pattern, text string) (*core.TestResult, error)
	CreatePattern(ctx context.Context, draft client.PatternDraft) (*core.Pattern, error)
	UpdatePattern(ctx context.Context, id int64, draft client.PatternDraft) (*core.Pattern, error)
}

// Editor holds one pattern form and serializes its save/test requests.
// A second submission while one is in flight is rejected with ErrBusy,
// never queued.
type Editor struct {
	backend  Backend
	validate *validator.Validate
	log      *zap.Logger

	mu   sync.Mutex
	busy bool
	form Form
}

// New creates an editor over a backend.
func New(backend Backend, log *zap.Logger) *Editor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Editor{
		backend:  backend,
		validate: validator.New(),
		log:      log,
	}
}

// Load fills the form from an existing pattern for editing.
func (e *Editor) Load(p core.Pattern) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.form = Form{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Pattern:     p.Pattern,
		Priority:    p.Priority,
		Description: p.Description,
		IsActive:    p.IsActive,
	}
}

// SetForm replaces the whole form.
func (e *Editor) SetForm(f Form) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.form = f
}

// Current returns a copy of the form being edited.
func (e *Editor) Current() Form {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.form
}

// Reset clears the form back to a blank create state.
func (e *Editor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.form = Form{}
}

// Busy reports whether a save or test is in flight.
func (e *Editor) Busy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.busy
}

// Validate checks the current form fields.
func (e *Editor) Validate() error {
	form := e.Current()
	if err := e.validate.Struct(form); err != nil {
		return core.WrapError(core.ErrFormInvalid, err)
	}
	return nil
}

// Save creates the pattern when the form has no ID yet, updates it
// otherwise. On success the form absorbs the persisted copy so a
// create followed by another save becomes an update.
func (e *Editor) Save(ctx context.Context) (*core.Pattern, error) {
	if err := e.begin(); err != nil {
		return nil, err
	}
	defer e.end()

	form := e.Current()
	if err := e.validate.Struct(form); err != nil {
		return nil, core.WrapError(core.ErrFormInvalid, err)
	}

	draft := client.PatternDraft{
		Name:        form.Name,
		Category:    form.Category,
		Pattern:     form.Pattern,
		Priority:    form.Priority,
		Description: form.Description,
		IsActive:    form.IsActive,
	}

	var saved *core.Pattern
	var err error
	if form.ID == 0 {
		saved, err = e.backend.CreatePattern(ctx, draft)
	} else {
		saved, err = e.backend.UpdatePattern(ctx, form.ID, draft)
	}
	if err != nil {
		e.log.Warn("pattern save failed", zap.String("name", form.Name), zap.Error(err))
		return nil, err
	}

	e.Load(*saved)
	return saved, nil
}

// Test runs the form's pattern against sample text and returns the
// result together with the annotated text for display.
func (e *Editor) Test(ctx context.Context, text string) (*core.TestResult, string, error) {
	if err := e.begin(); err != nil {
		return nil, "", err
	}
	defer e.end()

	form := e.Current()
	if form.Pattern == "" {
		return nil, "", core.WrapError(core.ErrFormInvalid, fmt.Errorf("pattern is empty"))
	}

	result, err := e.backend.TestPattern(ctx, form.Pattern, text)
	if err != nil {
		return nil, "", err
	}

	return result, highlight.Annotate(text, result.Matches), nil
}

func (e *Editor) begin() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.busy {
		return core.ErrBusy
	}
	e.busy = true
	return nil
}

func (e *Editor) end() {
	e.mu.Lock()
	e.busy = false
	e.mu.Unlock()
}
