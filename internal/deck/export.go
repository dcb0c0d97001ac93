package deck

import (
	"fmt"
	"strings"
)

// ExportDeckText renders a deck as a plain-text list.
func ExportDeckText(d Deck) string {
	lines := []string{}
	if d.Name != "" {
		lines = append(lines, "# "+d.Name)
	}
	if d.Spellcaster != nil {
		lines = append(lines, "Spellcaster: "+d.Spellcaster.Name)
	} else {
		lines = append(lines, "Spellcaster: -")
	}
	for i, e := range d.Slots {
		name := "-"
		if e != nil {
			name = e.Name
		}
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, name))
	}
	return strings.Join(lines, "\n")
}

func ExportTeamText(t Team) string {
	var b strings.Builder
	if t.Name != "" {
		b.WriteString("## " + t.Name + "\n\n")
	}
	for i, d := range t.Decks {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(ExportDeckText(d))
	}
	return b.String()
}
