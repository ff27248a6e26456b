package crunch

import "strings"

// skinMarker separates the respiratory part of a combined sensitization cell
// from the skin part.
const skinMarker = "Skin"

// splitSensitization splits the cells of the combined respiratory/skin
// sensitization row. Text before the first "Skin" belongs to the respiratory
// entry, the rest to the skin entry. A cell without "Skin" applies to both.
//
// Hyphens are kept: in the symbol and signal word columns "-" means the
// hazard is absent, e.g. "(Respiratory sensitizer)-\n(Skin sensitizer)-".
func splitSensitization(cells []string) (resp, skin []string) {
	resp = make([]string, 0, len(cells))
	skin = make([]string, 0, len(cells))
	for _, x := range cells {
		if i := strings.Index(x, skinMarker); i >= 0 {
			resp = append(resp, strings.TrimRight(x[:i], ";([ \n\r"))
			skin = append(skin, strings.TrimRight(x[i:], "; \n\r"))
			continue
		}
		both := strings.TrimRight(x, " \n")
		resp = append(resp, both)
		skin = append(skin, both)
	}
	return resp, skin
}
