package classify

import "strings"

// TermConfig holds the subject-text indicator lists used for vote
// classification. Bipartisan lists are checked in precedence order:
// procedural, ceremonial, crisis, technical. Matching is case-insensitive
// substring containment against the vote subject.
type TermConfig struct {
	Progressive  []string `yaml:"progressive"`
	Conservative []string `yaml:"conservative"`
	Procedural   []string `yaml:"procedural"`
	Ceremonial   []string `yaml:"ceremonial"`
	Crisis       []string `yaml:"crisis"`
	Technical    []string `yaml:"technical"`
}

// DefaultTerms returns the built-in indicator lists.
func DefaultTerms() *TermConfig {
	return &TermConfig{
		Progressive: []string{
			"carbon tax", "climate action", "climate change", "gun control", "firearms control",
			"universal healthcare", "public healthcare", "minimum wage increase", "workers rights",
			"refugee protection", "asylum seekers", "indigenous reconciliation", "indigenous rights",
			"affordable housing", "social housing", "public transit", "environmental protection",
			"renewable energy", "clean energy", "social program", "employment insurance",
			"child care", "childcare", "parental leave", "pay equity", "gender equality",
			"human rights", "lgbtq", "diversity", "inclusion", "anti-discrimination",
		},
		Conservative: []string{
			"tax reduction", "tax cut", "lower taxes", "deregulation", "red tape reduction",
			"military spending", "defence spending", "border security", "immigration control",
			"tough on crime", "law and order", "balanced budget", "deficit reduction",
			"free trade", "pipeline approval", "oil drilling", "resource development",
			"government efficiency", "privatization", "repeal carbon tax", "small government",
			"fiscal responsibility", "economic growth", "business development", "job creation",
		},
		Procedural: []string{
			"motion to adjourn", "appointment of", "committee report", "report of the committee",
			"sitting calendar", "order of business", "parliamentary procedure", "motion for closure",
			"time allocation", "ways and means", "government business no", "orders of the day",
		},
		Ceremonial: []string{
			"national day", "remembrance", "commemoration", "recognition of", "in memory of",
			"condolences", "congratulations", "naming of", "post office", "heritage designation",
			"tribute to", "honouring", "celebrating",
		},
		Crisis: []string{
			"emergency", "disaster relief", "pandemic", "urgent measures", "covid",
			"crisis response", "immediate action", "emergency funding", "natural disaster",
			"public health emergency", "relief measures",
		},
		Technical: []string{
			"technical amendment", "administrative", "modernization", "updating",
			"efficiency", "implementation", "routine maintenance", "housekeeping",
			"clarification", "correction",
		},
	}
}

func countMatches(subject string, terms []string) int {
	matches := 0
	for _, term := range terms {
		if strings.Contains(subject, term) {
			matches++
		}
	}
	return matches
}

func anyMatch(subject string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(subject, term) {
			return true
		}
	}
	return false
}

// BlocMapping assigns party names to ideological blocs. Assignment is an
// explicit enumeration on the normalized party name, never a substring
// scan, so a party named "Progressive Conservative Liberal Alliance"
// lands wherever the operator configured it rather than on whichever
// fragment happens to match first.
type BlocMapping map[string]Bloc

// DefaultBlocMapping covers federal Canadian party names in both full and
// short forms. Unlisted parties resolve to BlocOther.
func DefaultBlocMapping() BlocMapping {
	return BlocMapping{
		"conservative party of canada": BlocConservative,
		"conservative":                 BlocConservative,
		"liberal party of canada":      BlocLiberal,
		"liberal":                      BlocLiberal,
	}
}

// BlocOf returns the bloc assignment for a party name. Lookup normalizes
// case and surrounding whitespace; anything not explicitly mapped is
// BlocOther.
func (m BlocMapping) BlocOf(party string) Bloc {
	if bloc, ok := m[strings.ToLower(strings.TrimSpace(party))]; ok {
		return bloc
	}
	return BlocOther
}

// Normalize lowercases and trims all mapping keys. Call after decoding a
// mapping from an external source so lookups stay case-insensitive.
func (m BlocMapping) Normalize() BlocMapping {
	normalized := make(BlocMapping, len(m))
	for party, bloc := range m {
		normalized[strings.ToLower(strings.TrimSpace(party))] = bloc
	}
	return normalized
}
