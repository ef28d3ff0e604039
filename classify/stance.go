package classify

// Ballot is one member ballot joined with the vote it was cast on, the
// input unit for stance aggregation.
type Ballot struct {
	Subject    string
	Tallies    map[string]Tally
	Choice     Choice
	PolicyTags []string
}

// relevant reports whether the ballot's vote carries the policy area tag.
func (b Ballot) relevant(area string) bool {
	for _, tag := range b.PolicyTags {
		if tag == area {
			return true
		}
	}
	return false
}

// StanceResult is a member's aggregate leaning on one policy area.
type StanceResult struct {
	Stance     Stance     `json:"stance"`
	Confidence Confidence `json:"confidence"`
	// ProgressivePct is the progressive share of ideological votes as a
	// percentage. Zero when data is insufficient.
	ProgressivePct float64 `json:"progressive_percentage"`
	// IdeologicalVotes counts the YEA/NAY ballots on votes with a clear
	// ideological direction.
	IdeologicalVotes int `json:"ideological_votes"`
	// BipartisanParticipation counts YEA/NAY ballots on substantive
	// bipartisan and crisis-response votes, tracked separately so
	// cross-bloc agreement never skews the leaning.
	BipartisanParticipation int `json:"bipartisan_participation"`
	// TotalVotes is the number of relevant ballots considered.
	TotalVotes int `json:"total_votes"`
	// Breakdown tallies every classification outcome seen.
	Breakdown map[VoteClassification]int `json:"vote_breakdown"`
	// ProgressiveCount and ConservativeCount are the raw directional
	// tallies behind ProgressivePct.
	ProgressiveCount  int `json:"progressive_count"`
	ConservativeCount int `json:"conservative_count"`
	// Error carries the failure detail when Stance is StanceError.
	Error string `json:"error,omitempty"`
}

// minIdeologicalVotes is the floor for a graded stance; below it the
// result is InsufficientData.
const minIdeologicalVotes = 3

// highConfidenceVotes is the ideological-vote count at which confidence
// rises from medium to high.
const highConfidenceVotes = 10

// ComputeStance aggregates a member's ballots into a leaning on the policy
// area. Ballots whose vote is not tagged with the area are ignored. On
// ideological votes a YEA keeps the vote's polarity and a NAY flips it;
// paired and absent ballots never count toward the leaning.
func (c *Classifier) ComputeStance(ballots []Ballot, area string) StanceResult {
	result := StanceResult{
		Breakdown: map[VoteClassification]int{
			Procedural:            0,
			Ceremonial:            0,
			CrisisResponse:        0,
			Technical:             0,
			BipartisanSubstantive: 0,
		},
	}

	for _, ballot := range ballots {
		if !ballot.relevant(area) {
			continue
		}
		result.TotalVotes++

		analysis := c.ClassifyVote(ballot.Subject, ballot.Tallies)
		result.Breakdown[analysis.Classification]++

		switch cls := analysis.Classification; {
		case cls.Ideological():
			switch ballot.Choice {
			case Yea:
				if cls == ProgressiveInitiative {
					result.ProgressiveCount++
				} else {
					result.ConservativeCount++
				}
			case Nay:
				if cls == ProgressiveInitiative {
					result.ConservativeCount++
				} else {
					result.ProgressiveCount++
				}
			}
		case cls == BipartisanSubstantive || cls == CrisisResponse:
			if ballot.Choice.Counted() {
				result.BipartisanParticipation++
			}
		}
	}

	result.IdeologicalVotes = result.ProgressiveCount + result.ConservativeCount

	if result.IdeologicalVotes < minIdeologicalVotes {
		result.Stance = InsufficientData
		result.Confidence = ConfidenceLow
		return result
	}

	result.ProgressivePct = float64(result.ProgressiveCount) / float64(result.IdeologicalVotes) * 100
	result.Stance = stanceLabel(result.ProgressivePct)
	if result.IdeologicalVotes >= highConfidenceVotes {
		result.Confidence = ConfidenceHigh
	} else {
		result.Confidence = ConfidenceMedium
	}
	return result
}

// ErrorStance builds the result-typed failure outcome used when a stance
// cannot be computed, such as an unknown member.
func ErrorStance(detail string) StanceResult {
	return StanceResult{
		Stance:     StanceError,
		Confidence: ConfidenceLow,
		Error:      detail,
	}
}

func stanceLabel(progressivePct float64) Stance {
	switch {
	case progressivePct >= 80:
		return StronglyProgressive
	case progressivePct >= 60:
		return MostlyProgressive
	case progressivePct >= 40:
		return Moderate
	case progressivePct >= 20:
		return MostlyConservative
	default:
		return StronglyConservative
	}
}
