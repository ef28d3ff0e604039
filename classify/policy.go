package classify

import "strings"

// Classifier is the heuristic engine for policy tagging, vote
// classification, and stance aggregation. It is pure and deterministic:
// identical inputs against the same configuration always produce identical
// outputs, and methods never touch the network or the clock.
//
// A Classifier is safe for concurrent use.
type Classifier struct {
	catalog *Catalog
	terms   *TermConfig
	blocs   BlocMapping
}

// New builds a Classifier. Nil arguments fall back to the built-in
// defaults.
func New(catalog *Catalog, terms *TermConfig, blocs BlocMapping) *Classifier {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if terms == nil {
		terms = DefaultTerms()
	}
	if blocs == nil {
		blocs = DefaultBlocMapping()
	}
	return &Classifier{catalog: catalog, terms: terms, blocs: blocs}
}

// Catalog returns the classifier's policy area catalog.
func (c *Classifier) Catalog() *Catalog {
	return c.catalog
}

// KeywordHit records one keyword that matched, with its occurrence count.
type KeywordHit struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// AreaScore is the accumulated score for one policy area.
type AreaScore struct {
	Name     string       `json:"name"`
	Score    float64      `json:"score"`
	Keywords []KeywordHit `json:"keywords"`
}

// PolicyResult is the outcome of classifying a body of text.
type PolicyResult struct {
	// Tags lists areas scoring above the relevance threshold,
	// strongest first.
	Tags []string `json:"tags"`
	// Primary is the highest-scoring area, or empty when nothing matched.
	Primary string `json:"primary"`
	// Confidence is the primary area's share of the total score,
	// clamped to [0, 1].
	Confidence float64 `json:"confidence"`
	// Scores holds every area that matched at all, strongest first.
	Scores []AreaScore `json:"scores,omitempty"`
}

// tagThreshold is the minimum area score for inclusion in Tags. A single
// weight-1.0 keyword occurring once scores exactly 1.0 and is excluded;
// relevance requires either repetition or multiple distinct keywords.
const tagThreshold = 1.0

// ClassifyPolicy scores text against the catalog and returns the matching
// policy areas. The subject hint is prepended to the text before scanning.
// Empty text returns a zero result without scanning.
func (c *Classifier) ClassifyPolicy(text, subject string) PolicyResult {
	if strings.TrimSpace(text) == "" {
		return PolicyResult{Tags: []string{}}
	}

	full := strings.ToLower(subject + " " + text)

	var scores []AreaScore
	for i, area := range c.catalog.areas {
		var score float64
		var hits []KeywordHit

		for j, matcher := range c.catalog.matchers[i] {
			count := len(matcher.FindAllStringIndex(full, -1))
			if count > 0 {
				hits = append(hits, KeywordHit{Term: area.Keywords[j], Count: count})
				score += area.Weight * (float64(count)*0.5 + 0.5)
			}
		}

		if score > 0 {
			scores = append(scores, AreaScore{Name: area.Name, Score: score, Keywords: hits})
		}
	}

	if len(scores) == 0 {
		return PolicyResult{Tags: []string{}}
	}

	// Stable sort preserves catalog declaration order on score ties.
	sortAreaScores(scores)

	var total float64
	for _, s := range scores {
		total += s.Score
	}

	confidence := scores[0].Score / total
	if confidence > 1 {
		confidence = 1
	}

	tags := []string{}
	for _, s := range scores {
		if s.Score > tagThreshold {
			tags = append(tags, s.Name)
		}
	}

	return PolicyResult{
		Tags:       tags,
		Primary:    scores[0].Name,
		Confidence: confidence,
		Scores:     scores,
	}
}

// sortAreaScores orders by descending score with a stable insertion sort,
// so equal scores keep their catalog order.
func sortAreaScores(scores []AreaScore) {
	for i := 1; i < len(scores); i++ {
		for j := i; j > 0 && scores[j].Score > scores[j-1].Score; j-- {
			scores[j], scores[j-1] = scores[j-1], scores[j]
		}
	}
}
