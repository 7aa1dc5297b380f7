package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/formforge/formforge/pkg/fieldtypes"
	"github.com/formforge/formforge/pkg/fill"
	"github.com/formforge/formforge/pkg/model"
)

// otherOption is the synthetic choice appended to single-choice prompts when
// the type pairs its options with a free-text affordance.
const otherOption = "Other…"

// Runner walks a form's fields in schema order, prompting for each and
// recording the answers on the session.
type Runner struct {
	driver PromptDriver
}

// NewRunner builds a field walk over the given prompt driver. A nil driver
// gets the interactive survey implementation.
func NewRunner(driver PromptDriver) *Runner {
	if driver == nil {
		driver = NewSurveyDriver()
	}
	return &Runner{driver: driver}
}

// Run prompts for every field of the session's form. It stops on the first
// prompt error; ErrAborted propagates unchanged so callers can distinguish a
// deliberate Ctrl+C from a failure.
func (r *Runner) Run(ctx context.Context, session *fill.Session) error {
	form := session.Form()
	if form.Title != "" {
		if err := r.driver.Info(ctx, form.Title); err != nil {
			return err
		}
	}
	if form.Description != "" {
		if err := r.driver.Info(ctx, form.Description); err != nil {
			return err
		}
	}
	for _, field := range form.Fields {
		if err := r.ask(ctx, session, field); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) ask(ctx context.Context, session *fill.Session, field model.Field) error {
	spec := fieldtypes.Lookup(field.Type)
	message := field.Label
	if field.Required {
		message += " *"
	}

	switch {
	case spec.MultiChoice:
		picked, err := r.driver.MultiSelect(ctx, SelectConfig{
			Message: message,
			Options: field.Options,
		})
		if err != nil {
			return err
		}
		for _, idx := range picked {
			if err := session.Toggle(field, field.Options[idx], true); err != nil {
				return err
			}
		}
		return nil

	case spec.NeedsOptions:
		options := field.Options
		if spec.HasOther {
			options = append(append([]string(nil), field.Options...), otherOption)
		}
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message: message,
			Options: options,
		})
		if err != nil {
			return err
		}
		if spec.HasOther && idx == len(options)-1 {
			text, err := r.driver.Input(ctx, InputConfig{Message: field.Label + " (other)"})
			if err != nil {
				return err
			}
			return session.SetOtherText(field, text)
		}
		if idx < 0 || idx >= len(field.Options) {
			return nil
		}
		return session.Select(field, field.Options[idx])

	case spec.Shape == fieldtypes.ShapeNumber:
		min, max := fieldtypes.DefaultMin, fieldtypes.DefaultMax
		if field.Min != nil {
			min = *field.Min
		}
		if field.Max != nil {
			max = *field.Max
		}
		raw, err := r.driver.Input(ctx, InputConfig{
			Message:   message,
			Default:   strconv.FormatFloat(min, 'f', -1, 64),
			Help:      fmt.Sprintf("between %v and %v", min, max),
			Validator: rangeValidator(min, max),
		})
		if err != nil {
			return err
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return fmt.Errorf("parse %q for %s: %w", raw, field.Label, err)
		}
		return session.SetNumber(field, value)

	case spec.Shape == fieldtypes.ShapeBlob:
		path, err := r.driver.Input(ctx, InputConfig{
			Message: message,
			Help:    "path to the file to attach",
		})
		if err != nil {
			return err
		}
		path = strings.TrimSpace(path)
		if path == "" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read attachment %s: %w", path, err)
		}
		return session.Attach(field, filepath.Base(path), data)

	case field.Type == model.FieldTypeTextarea:
		text, err := r.driver.TextArea(ctx, TextAreaConfig{Message: message})
		if err != nil {
			return err
		}
		return session.SetText(field, text)

	default:
		text, err := r.driver.Input(ctx, InputConfig{Message: message})
		if err != nil {
			return err
		}
		return session.SetText(field, text)
	}
}

// rangeValidator accepts only numbers inside the field's bounds, matching
// the help text shown with the prompt.
func rangeValidator(min, max float64) func(string) error {
	return func(raw string) error {
		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return errors.New("enter a number")
		}
		if value < min || value > max {
			return fmt.Errorf("enter a number between %v and %v", min, max)
		}
		return nil
	}
}
