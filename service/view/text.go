package view

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// TextRenderer writes a plain text rendering of the view
type TextRenderer struct {
	w io.Writer
}

// NewTextRenderer creates a text renderer
func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

var markers = map[Highlight]string{
	HighlightNeutral:  "[ ]",
	HighlightApproved: "[+]",
	HighlightDenied:   "[x]",
}

func (r *TextRenderer) Render(_ context.Context, v *View) error {
	var b strings.Builder
	if v.Fallback != nil {
		fmt.Fprintf(&b, "%s\n%s\n", v.Fallback.Title, v.Fallback.Message)
		writeButtons(&b, v.Fallback.Buttons, "  ")
		_, err := io.WriteString(r.w, b.String())
		return err
	}
	fmt.Fprintf(&b, "%s (purpose: %q, outcome: %s)\n", v.Title, v.Purpose, v.Outcome)
	for i, card := range v.Cards {
		a := card.Authority
		fmt.Fprintf(&b, "%d. %s %s [%s]\n", i+1, markers[card.Highlight], a.Name, a.ID)
		for _, line := range []string{a.Designation, a.Department, a.Phone, a.Email} {
			if line != "" {
				fmt.Fprintf(&b, "     %s\n", line)
			}
		}
		if len(card.Badges) > 0 {
			fmt.Fprintf(&b, "     tags: %s\n", strings.Join(card.Badges, ", "))
		}
		writeButtons(&b, card.Buttons, "     ")
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

func writeButtons(b *strings.Builder, buttons []*Button, indent string) {
	labels := make([]string, 0, len(buttons))
	for _, button := range buttons {
		labels = append(labels, "<"+button.Label+">")
	}
	fmt.Fprintf(b, "%s%s\n", indent, strings.Join(labels, " "))
}
