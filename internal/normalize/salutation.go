package normalize

import "strings"

// Honorifics emitted by the salutation classifier.
const (
	HonorificFeminine  = "Madam"
	HonorificMasculine = "Sir"
)

// DefaultFeminineMarkers lists titles and common feminine first names in
// the Bangladesh locale. Matching any whitespace- or period-delimited
// token of a name selects the feminine honorific.
var DefaultFeminineMarkers = []string{
	"ms", "miss", "mrs", "mst", "begum", "khatun", "akter", "parvin",
	"sultana", "jahan", "bibi", "rani", "devi", "nahar", "ferdous",
	"ara", "banu", "fatema", "aisha", "khadija", "nusrat", "farhana",
	"sadia", "jannatul", "sumaiya", "tanjina", "fariha", "sharmin",
	"nasrin", "salma", "shirin", "rumana", "sabina", "moumita",
}

// SalutationClassifier infers an honorific from a formatted name. It is a
// best-effort heuristic over a fixed marker table, not a guarantee; names
// without a feminine marker default to the masculine honorific.
type SalutationClassifier struct {
	feminine map[string]struct{}
}

// NewSalutationClassifier builds a classifier over the given marker table.
// A nil table selects DefaultFeminineMarkers.
func NewSalutationClassifier(markers []string) *SalutationClassifier {
	if markers == nil {
		markers = DefaultFeminineMarkers
	}
	set := make(map[string]struct{}, len(markers))
	for _, m := range markers {
		set[strings.ToLower(m)] = struct{}{}
	}
	return &SalutationClassifier{feminine: set}
}

// Salutation returns the honorific for a name.
func (c *SalutationClassifier) Salutation(name string) string {
	tokens := strings.Fields(strings.ReplaceAll(strings.ToLower(name), ".", " "))
	for _, tok := range tokens {
		if _, ok := c.feminine[tok]; ok {
			return HonorificFeminine
		}
	}
	return HonorificMasculine
}
