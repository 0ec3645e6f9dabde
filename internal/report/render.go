package report

import (
	"github.com/charmbracelet/glamour"
)

// Render styles markdown for the terminal. plain returns it untouched.
func Render(md string, plain bool) (string, error) {
	if plain {
		return md, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
