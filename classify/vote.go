package classify

import "strings"

// VoteAnalysis is the full outcome of classifying one vote.
type VoteAnalysis struct {
	Classification VoteClassification `json:"classification"`
	// Bipartisan is true when both major blocs held the same non-split
	// majority position.
	Bipartisan bool `json:"bipartisan"`
	// Direction is the shared bloc position on bipartisan votes, empty
	// otherwise.
	Direction string `json:"direction,omitempty"`
	// Positions maps each party with at least three counted ballots to
	// its majority direction.
	Positions map[string]string `json:"positions"`
}

// minBlocBallots is the counted-ballot floor below which a party's
// direction is not considered meaningful.
const minBlocBallots = 3

// ClassifyVote categorizes a vote from its subject text and per-party
// ballot tallies. Any internal fault is recovered and reported as
// ClassificationError rather than propagated.
func (c *Classifier) ClassifyVote(subject string, tallies map[string]Tally) (analysis VoteAnalysis) {
	defer func() {
		if r := recover(); r != nil {
			analysis = VoteAnalysis{
				Classification: ClassificationError,
				Positions:      map[string]string{},
			}
		}
	}()

	positions := c.partyPositions(tallies)
	conservative, liberal := c.blocPositions(positions)

	bipartisan := conservative != "" && liberal != "" &&
		conservative == liberal && conservative != positionSplit

	analysis = VoteAnalysis{
		Bipartisan: bipartisan,
		Positions:  exportPositions(positions),
	}

	lowered := strings.ToLower(subject)
	if bipartisan {
		analysis.Direction = string(conservative)
		analysis.Classification = c.classifyBipartisan(lowered)
	} else {
		analysis.Classification = c.classifyPartisan(lowered, conservative, liberal)
	}
	return analysis
}

// partyPositions reduces tallies to majority directions. Parties with
// fewer than three counted ballots are dropped.
func (c *Classifier) partyPositions(tallies map[string]Tally) map[string]position {
	positions := make(map[string]position, len(tallies))
	for party, tally := range tallies {
		total := tally.Total()
		if total < minBlocBallots {
			continue
		}
		pct := float64(tally.Yea) / float64(total) * 100
		switch {
		case pct >= 70:
			positions[party] = positionYea
		case pct <= 30:
			positions[party] = positionNay
		default:
			positions[party] = positionSplit
		}
	}
	return positions
}

// blocPositions resolves the conservative and liberal bloc directions from
// the per-party positions using the configured bloc mapping. When several
// parties map to one bloc, any split makes the bloc split; otherwise the
// bloc takes the shared direction, or splits on disagreement.
func (c *Classifier) blocPositions(positions map[string]position) (conservative, liberal position) {
	merge := func(current, next position) position {
		switch {
		case current == "":
			return next
		case current == next:
			return current
		default:
			return positionSplit
		}
	}

	for party, pos := range positions {
		switch c.blocs.BlocOf(party) {
		case BlocConservative:
			conservative = merge(conservative, pos)
		case BlocLiberal:
			liberal = merge(liberal, pos)
		}
	}
	return conservative, liberal
}

// classifyBipartisan sub-classifies a bipartisan vote by scanning the
// lowered subject against the indicator lists in precedence order. Nothing
// matching means genuine cross-bloc policy agreement.
func (c *Classifier) classifyBipartisan(subject string) VoteClassification {
	switch {
	case anyMatch(subject, c.terms.Procedural):
		return Procedural
	case anyMatch(subject, c.terms.Ceremonial):
		return Ceremonial
	case anyMatch(subject, c.terms.Crisis):
		return CrisisResponse
	case anyMatch(subject, c.terms.Technical):
		return Technical
	default:
		return BipartisanSubstantive
	}
}

// classifyPartisan resolves the ideological direction of a contested vote.
// Subject-text indicators win when one side clearly outmatches the other;
// otherwise opposed bloc positions decide, and anything still ambiguous is
// PartisanUnclear.
func (c *Classifier) classifyPartisan(subject string, conservative, liberal position) VoteClassification {
	progressiveMatches := countMatches(subject, c.terms.Progressive)
	conservativeMatches := countMatches(subject, c.terms.Conservative)

	if progressiveMatches > conservativeMatches && progressiveMatches > 0 {
		return ProgressiveInitiative
	}
	if conservativeMatches > progressiveMatches && conservativeMatches > 0 {
		return ConservativeInitiative
	}

	conservativeYea := conservative == positionYea
	liberalYea := liberal == positionYea

	switch {
	case conservativeYea && !liberalYea:
		return ConservativeInitiative
	case liberalYea && !conservativeYea:
		return ProgressiveInitiative
	default:
		return PartisanUnclear
	}
}

func exportPositions(positions map[string]position) map[string]string {
	exported := make(map[string]string, len(positions))
	for party, pos := range positions {
		exported[party] = string(pos)
	}
	return exported
}
