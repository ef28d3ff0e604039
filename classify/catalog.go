package classify

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// PolicyArea is a named policy domain with weighted keyword indicators.
// Keywords may be multi-word phrases; matching is case-insensitive and
// bounded at word edges so that "tax" does not match "taxidermy".
type PolicyArea struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
	Weight   float64  `yaml:"weight" json:"weight"`
}

// Catalog is an ordered set of policy areas with precompiled keyword
// matchers. Ordering is significant: ties in scoring resolve toward the
// earlier area, so results are deterministic for a given catalog.
type Catalog struct {
	areas    []PolicyArea
	matchers [][]*regexp.Regexp
}

// NewCatalog validates the areas and compiles their keyword matchers.
func NewCatalog(areas []PolicyArea) (*Catalog, error) {
	if len(areas) == 0 {
		return nil, fmt.Errorf("catalog requires at least one policy area")
	}

	seen := make(map[string]struct{}, len(areas))
	matchers := make([][]*regexp.Regexp, len(areas))

	for i, area := range areas {
		name := strings.TrimSpace(area.Name)
		if name == "" {
			return nil, fmt.Errorf("policy area %d: name is required", i)
		}
		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("policy area %q: duplicate name", name)
		}
		seen[name] = struct{}{}

		if len(area.Keywords) == 0 {
			return nil, fmt.Errorf("policy area %q: at least one keyword is required", name)
		}
		if area.Weight <= 0 {
			return nil, fmt.Errorf("policy area %q: weight must be positive", name)
		}

		compiled := make([]*regexp.Regexp, 0, len(area.Keywords))
		for _, keyword := range area.Keywords {
			keyword = strings.ToLower(strings.TrimSpace(keyword))
			if keyword == "" {
				return nil, fmt.Errorf("policy area %q: empty keyword", name)
			}
			compiled = append(compiled, regexp.MustCompile(`\b`+regexp.QuoteMeta(keyword)+`\b`))
		}
		matchers[i] = compiled
	}

	return &Catalog{areas: areas, matchers: matchers}, nil
}

// catalogFile is the on-disk YAML shape for a catalog override.
type catalogFile struct {
	Areas []PolicyArea `yaml:"areas"`
}

// LoadCatalog reads a catalog override from a YAML file. Areas with a zero
// weight default to 1.0 before validation.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	for i := range file.Areas {
		if file.Areas[i].Weight == 0 {
			file.Areas[i].Weight = 1.0
		}
	}

	return NewCatalog(file.Areas)
}

// Areas returns the catalog's policy areas in declaration order.
func (c *Catalog) Areas() []PolicyArea {
	return c.areas
}

// Names returns the area names in declaration order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.areas))
	for i, area := range c.areas {
		names[i] = area.Name
	}
	return names
}

// Contains reports whether the catalog defines the named policy area.
func (c *Catalog) Contains(name string) bool {
	for _, area := range c.areas {
		if area.Name == name {
			return true
		}
	}
	return false
}

// DefaultCatalog returns the built-in policy area taxonomy. Indigenous
// Affairs carries an elevated weight to offset its smaller keyword set.
func DefaultCatalog() *Catalog {
	catalog, err := NewCatalog(defaultAreas())
	if err != nil {
		panic(fmt.Sprintf("default catalog invalid: %v", err))
	}
	return catalog
}

func defaultAreas() []PolicyArea {
	return []PolicyArea{
		{
			Name: "Healthcare & Medical",
			Keywords: []string{
				"health", "medical", "hospital", "doctor", "nurse", "patient", "treatment",
				"medicine", "pharmaceutical", "drug", "healthcare", "clinic", "surgery",
				"mental health", "public health", "epidemic", "pandemic", "vaccine",
				"medical device", "health care", "medicare", "medicaid", "disability",
			},
			Weight: 1.0,
		},
		{
			Name: "Economy & Finance",
			Keywords: []string{
				"tax", "economy", "financial", "budget", "banking", "investment", "trade",
				"commerce", "business", "economic", "fiscal", "monetary", "revenue",
				"expenditure", "deficit", "debt", "inflation", "employment", "unemployment",
				"income", "wage", "salary", "pension", "retirement", "securities", "market",
			},
			Weight: 1.0,
		},
		{
			Name: "Environment & Climate",
			Keywords: []string{
				"environment", "climate", "pollution", "emission", "carbon", "greenhouse",
				"renewable", "energy", "conservation", "wildlife", "biodiversity",
				"water", "air quality", "toxic", "waste", "recycling", "sustainability",
				"forestry", "fisheries", "marine", "arctic", "oil", "gas", "mining",
			},
			Weight: 1.0,
		},
		{
			Name: "Justice & Crime",
			Keywords: []string{
				"criminal", "crime", "justice", "court", "judge", "police", "prison",
				"sentence", "penalty", "law enforcement", "safety", "security",
				"violence", "terrorism", "fraud", "corruption", "rights", "legal",
				"prosecution", "defense", "bail", "parole", "rehabilitation",
			},
			Weight: 1.0,
		},
		{
			Name: "Education & Research",
			Keywords: []string{
				"education", "school", "university", "student", "teacher", "learning",
				"research", "science", "technology", "innovation", "academic",
				"curriculum", "scholarship", "training", "skill", "literacy",
				"knowledge", "study", "campus", "degree", "diploma",
			},
			Weight: 1.0,
		},
		{
			Name: "Immigration & Citizenship",
			Keywords: []string{
				"immigration", "immigrant", "refugee", "citizenship", "visa", "border",
				"foreign", "temporary", "permanent", "resident", "deportation",
				"asylum", "migration", "naturalization", "entry", "admission",
			},
			Weight: 1.0,
		},
		{
			Name: "Transportation & Infrastructure",
			Keywords: []string{
				"transport", "infrastructure", "road", "highway", "bridge", "transit",
				"railway", "airport", "port", "shipping", "aviation", "vehicle",
				"traffic", "construction", "public works", "maintenance", "repair",
			},
			Weight: 1.0,
		},
		{
			Name: "Social Services & Welfare",
			Keywords: []string{
				"social", "welfare", "benefit", "assistance", "support", "child",
				"family", "housing", "poverty", "homeless", "elderly", "senior",
				"youth", "community", "service", "program", "aid", "subsidy",
			},
			Weight: 1.0,
		},
		{
			Name: "Agriculture & Food",
			Keywords: []string{
				"agriculture", "farming", "food", "crop", "livestock", "dairy",
				"meat", "grain", "produce", "rural", "farmer", "agricultural",
				"nutrition", "safety", "inspection", "organic", "pesticide",
			},
			Weight: 1.0,
		},
		{
			Name: "Government Operations",
			Keywords: []string{
				"government", "administration", "bureaucracy", "civil service",
				"public service", "federal", "provincial", "municipal", "parliament",
				"election", "voting", "democracy", "transparency", "accountability",
				"information", "access", "privacy", "official", "minister",
			},
			Weight: 1.0,
		},
		{
			Name: "Indigenous Affairs",
			Keywords: []string{
				"indigenous", "first nation", "aboriginal", "native", "inuit", "métis",
				"treaty", "reserve", "land claim", "self-government", "traditional",
				"cultural", "reconciliation", "rights", "sovereignty",
			},
			Weight: 1.2,
		},
		{
			Name: "Defense & Veterans",
			Keywords: []string{
				"defense", "military", "armed forces", "veteran", "soldier", "navy",
				"army", "air force", "peacekeeping", "security", "intelligence",
				"national security", "warfare", "conflict", "peace",
			},
			Weight: 1.0,
		},
		{
			Name: "Communications & Media",
			Keywords: []string{
				"communication", "broadcasting", "media", "internet", "telecommunication",
				"radio", "television", "digital", "technology", "information technology",
				"cyber", "online", "network", "spectrum", "wireless",
			},
			Weight: 1.0,
		},
		{
			Name: "International Relations",
			Keywords: []string{
				"international", "foreign", "treaty", "agreement", "diplomatic",
				"embassy", "consulate", "trade agreement", "sanctions", "cooperation",
				"bilateral", "multilateral", "global", "world", "nations",
			},
			Weight: 1.0,
		},
	}
}
