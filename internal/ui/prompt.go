package ui

import (
	"github.com/charmbracelet/huh"
)

// Prompter defines the interaction methods the configuration resolver needs.
// The pipeline itself never prompts; only directory resolution does.
type Prompter interface {
	Select(title string, options []string) (string, error)
	Input(title, placeholder string) (string, error)
	Confirm(title string) (bool, error)
}

// HuhPrompter implements Prompter using charmbracelet/huh forms.
type HuhPrompter struct{}

// NewHuhPrompter creates a new HuhPrompter.
func NewHuhPrompter() *HuhPrompter {
	return &HuhPrompter{}
}

// Select presents a single-choice menu and returns the chosen option.
func (p *HuhPrompter) Select(title string, options []string) (string, error) {
	var value string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(title).
			Options(huh.NewOptions(options...)...).
			Value(&value),
	))
	if err := form.Run(); err != nil {
		return "", err
	}
	return value, nil
}

// Input prompts for a free-form line of text.
func (p *HuhPrompter) Input(title, placeholder string) (string, error) {
	var value string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(title).
			Placeholder(placeholder).
			Value(&value),
	))
	if err := form.Run(); err != nil {
		return "", err
	}
	return value, nil
}

// Confirm asks a yes/no question.
func (p *HuhPrompter) Confirm(title string) (bool, error) {
	var value bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Value(&value),
	))
	if err := form.Run(); err != nil {
		return false, err
	}
	return value, nil
}
