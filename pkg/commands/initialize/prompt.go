package initialize

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

// Prompter asks the user for a value, returning def when the answer is
// empty.
type Prompter interface {
	Ask(question, def string) (string, error)
}

// TerminalPrompter prompts with pterm's interactive text input.
type TerminalPrompter struct{}

// Ask implements Prompter.
func (TerminalPrompter) Ask(question, def string) (string, error) {
	answer, err := pterm.DefaultInteractiveTextInput.Show(fmt.Sprintf("%s [%s]", question, def))
	if err != nil {
		return "", err
	}
	if answer = strings.TrimSpace(answer); answer == "" {
		return def, nil
	}
	return answer, nil
}
