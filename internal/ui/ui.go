// Package ui holds the interactive prompts used by the CLI.
package ui

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
)

// Confirmer asks the operator a yes/no question.
type Confirmer interface {
	Confirm(message string) (bool, error)
}

// Prompt asks on the terminal through survey.
type Prompt struct {
	Default bool
}

// NewPrompt returns a terminal confirmer whose default answer is "no".
func NewPrompt() *Prompt {
	return &Prompt{}
}

// Confirm displays message and waits for y/n.
func (p *Prompt) Confirm(message string) (bool, error) {
	ok := p.Default
	prompt := &survey.Confirm{
		Message: message,
		Default: p.Default,
	}
	if err := survey.AskOne(prompt, &ok); err != nil {
		return false, fmt.Errorf("failed to get confirmation: %w", err)
	}
	return ok, nil
}

// AutoConfirm answers every question with a fixed value. Used when stdin is
// not a terminal and for tests.
type AutoConfirm bool

// Confirm returns the fixed answer.
func (a AutoConfirm) Confirm(string) (bool, error) {
	return bool(a), nil
}

var (
	_ Confirmer = (*Prompt)(nil)
	_ Confirmer = AutoConfirm(false)
)
