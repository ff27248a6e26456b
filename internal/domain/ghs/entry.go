package ghs

import "strings"

// ClassificationEntry is what one revision says about one hazard slot of one
// substance. Entries are values and are replaced wholesale.
type ClassificationEntry struct {
	Classification  string `json:"classification"`
	Symbol          string `json:"symbol"`
	SignalWord      string `json:"signal_word"`
	HazardStatement string `json:"hazard_statement"`
	Rationale       string `json:"rationale"`
	// Revision marks provenance, e.g. the classification date of the page.
	Revision string `json:"revision"`
}

// EntryFromFields builds an entry from positional fields in the order
// classification, symbol, signal word, hazard statement, rationale. Missing
// trailing fields are blank and extra fields are ignored.
func EntryFromFields(fields []string, revision string) ClassificationEntry {
	get := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}
		return ""
	}
	return ClassificationEntry{
		Classification:  get(0),
		Symbol:          get(1),
		SignalWord:      get(2),
		HazardStatement: get(3),
		Rationale:       get(4),
		Revision:        revision,
	}
}

// IsBlank reports whether the entry carries no classification. Only the
// classification label is considered.
func (e ClassificationEntry) IsBlank() bool {
	return strings.TrimSpace(e.Classification) == ""
}

// Fields returns the six fields in output order.
func (e ClassificationEntry) Fields() []string {
	return []string{e.Classification, e.Symbol, e.SignalWord, e.HazardStatement, e.Rationale, e.Revision}
}
