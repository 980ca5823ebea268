package curate

import (
	"github.com/law-makers/curate/internal/selection"
	"github.com/law-makers/curate/pkg/models"
)

// Apply parses command against ws, registers every preserved link, and
// returns ws without the excluded and preserved positions. ws is not modified.
func (r *Run) Apply(command string, ws []models.Link) []models.Link {
	sel := selection.Parse(command, len(ws))
	if sel.Empty() {
		return ws
	}

	for _, idx := range sel.Preserve.Sorted() {
		r.Preserve(ws[idx-1])
	}

	out := make([]models.Link, 0, len(ws))
	for i, l := range ws {
		pos := i + 1
		if sel.Exclude.Has(pos) || sel.Preserve.Has(pos) {
			continue
		}
		out = append(out, l)
	}
	return out
}
