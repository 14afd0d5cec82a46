package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mineboard/internal/model"
)

// viewConfirmModal renders the delete confirmation. The record's own name is
// in the prompt so a mis-selected row is obvious before confirming.
func (m appModel) viewConfirmModal() string {
	d := m.dialogs[m.active]

	name := ""
	switch rec := d.record.(type) {
	case model.Ad:
		name = rec.Title
	case model.TokenPackage:
		name = rec.Name
	case model.PlatformEvent:
		name = rec.Title
	case model.Secret:
		name = rec.Key
	case model.Article:
		name = rec.Title
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Delete?"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s\n", name)
	b.WriteString(styleMuted().Render("This cannot be undone.") + "\n\n")

	del := "Delete"
	if m.pending {
		del = "Deleting…"
	}
	b.WriteString(buttonStyle(m.confirmFocus == confirmFocusConfirm).Render(del))
	b.WriteString("  ")
	b.WriteString(buttonStyle(m.confirmFocus == confirmFocusCancel).Render("Cancel"))

	return modalStyle().BorderForeground(colorErrorFg).Render(b.String())
}
