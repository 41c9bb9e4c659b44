// Package prompt abstracts the interactive questions the bootstrap flow
// asks (project name, clear confirmation, option selection) behind a
// Driver interface so the orchestrator can be tested with a scripted
// driver instead of a real terminal.
package prompt

import (
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted is returned when the user interrupts a prompt (Ctrl-C).
var ErrAborted = errors.New("prompt aborted")

// Driver asks interactive questions. Implementations block until the user
// answers.
type Driver interface {
	// Input asks for a free-text value with a default.
	Input(message, defaultValue string) (string, error)

	// Confirm asks a yes/no question with a default answer.
	Confirm(message string, defaultValue bool) (bool, error)

	// MultiSelect asks the user to pick any subset of options. The
	// returned selection preserves the order in which options were
	// offered. defaults lists the options pre-selected.
	MultiSelect(message string, options, defaults []string) ([]string, error)
}

type surveyDriver struct{}

// NewSurvey returns the terminal-backed Driver used in production.
func NewSurvey() Driver {
	return &surveyDriver{}
}

func (d *surveyDriver) Input(message, defaultValue string) (string, error) {
	var out string
	p := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(p, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (d *surveyDriver) Confirm(message string, defaultValue bool) (bool, error) {
	var out bool
	p := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(p, &out); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

func (d *surveyDriver) MultiSelect(message string, options, defaults []string) ([]string, error) {
	var out []string
	p := &survey.MultiSelect{
		Message: message,
		Options: options,
		Default: defaults,
	}
	if err := survey.AskOne(p, &out); err != nil {
		return nil, translateSurveyErr(err)
	}
	// Callers rely on selections coming back in offered order.
	return reorder(options, out), nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

func reorder(options, selected []string) []string {
	seen := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		seen[s] = struct{}{}
	}
	out := make([]string, 0, len(selected))
	for _, option := range options {
		if _, ok := seen[option]; ok {
			out = append(out, option)
		}
	}
	return out
}
