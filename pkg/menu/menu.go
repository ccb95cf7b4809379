// Package menu asks the user to pick one of several candidates.
package menu

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"

	"github.com/arthur-debert/rxr/pkg/errors"
)

// pageSize is the number of options shown at once.
const pageSize = 15

// Selector picks one option and returns its index.
type Selector interface {
	Select(options []string) (int, error)
}

// Menu is an interactive terminal selection list.
type Menu struct {
	Title       string
	Interactive bool

	prompt func(title string, options []string) (string, error)
}

// New returns a menu that prompts only when stdin and stdout are terminals.
func New(title string) *Menu {
	return &Menu{
		Title:       title,
		Interactive: isTerminal(os.Stdin) && isTerminal(os.Stdout),
		prompt:      showSelect,
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func showSelect(title string, options []string) (string, error) {
	return pterm.DefaultInteractiveSelect.
		WithDefaultText(title).
		WithOptions(options).
		WithMaxHeight(pageSize).
		Show()
}

// Select returns the index of the chosen option. A single option is chosen
// without asking. Several options need an interactive terminal.
func (m *Menu) Select(options []string) (int, error) {
	switch {
	case len(options) == 0:
		return -1, errors.New(errors.ErrNoExecutables, "nothing to choose from")
	case len(options) == 1:
		return 0, nil
	case !m.Interactive:
		return -1, errors.Newf(errors.ErrSelection, "%d candidates found but no terminal to choose from", len(options)).
			WithDetail("candidates", options)
	}

	choice, err := m.prompt(m.Title, options)
	if err != nil {
		return -1, errors.Wrap(err, errors.ErrSelection, "selection aborted")
	}
	for i, option := range options {
		if option == choice {
			return i, nil
		}
	}
	return -1, errors.Newf(errors.ErrSelection, "unknown selection %q", choice)
}
