package classify

// VoteClassification categorizes a parliamentary vote by the voting pattern
// of the major party blocs and the subject text.
type VoteClassification string

// Classification outcomes. Bipartisan votes resolve to one of the first five;
// partisan votes resolve to an initiative direction or PARTISAN_UNCLEAR.
// CLASSIFICATION_ERROR is the recovered failure outcome and is never raised.
const (
	Procedural             VoteClassification = "PROCEDURAL"
	Ceremonial             VoteClassification = "CEREMONIAL"
	CrisisResponse         VoteClassification = "CRISIS_RESPONSE"
	Technical              VoteClassification = "TECHNICAL"
	BipartisanSubstantive  VoteClassification = "BIPARTISAN_SUBSTANTIVE"
	ProgressiveInitiative  VoteClassification = "PROGRESSIVE_INITIATIVE"
	ConservativeInitiative VoteClassification = "CONSERVATIVE_INITIATIVE"
	PartisanUnclear        VoteClassification = "PARTISAN_UNCLEAR"
	ClassificationError    VoteClassification = "CLASSIFICATION_ERROR"
)

// Ideological reports whether the classification carries a clear
// progressive or conservative direction usable for stance tallies.
func (c VoteClassification) Ideological() bool {
	return c == ProgressiveInitiative || c == ConservativeInitiative
}

// Choice is an individual member's recorded ballot on a vote.
type Choice string

// Ballot choices.
const (
	Yea    Choice = "YEA"
	Nay    Choice = "NAY"
	Paired Choice = "PAIRED"
	Absent Choice = "ABSENT"
)

// Counted reports whether the choice contributes to yea/nay totals.
func (c Choice) Counted() bool {
	return c == Yea || c == Nay
}

// Tally aggregates ballots for a single party on a single vote.
type Tally struct {
	Yea    int `json:"yea"`
	Nay    int `json:"nay"`
	Paired int `json:"paired"`
	Absent int `json:"absent"`
}

// Total returns the number of counted (yea + nay) ballots.
func (t Tally) Total() int {
	return t.Yea + t.Nay
}

// position is a party's majority direction on a vote.
type position string

const (
	positionYea   position = "YEA"
	positionNay   position = "NAY"
	positionSplit position = "SPLIT"
)

// Bloc identifies which major ideological bloc a party belongs to.
// Party-to-bloc assignment is explicit configuration rather than
// party-name substring matching.
type Bloc string

// Bloc assignments.
const (
	BlocConservative Bloc = "CONSERVATIVE_BLOC"
	BlocLiberal      Bloc = "LIBERAL_BLOC"
	BlocOther        Bloc = "OTHER"
)

// Stance is a member's aggregate ideological leaning on a policy area.
type Stance string

// Stance labels. INSUFFICIENT_DATA and ERROR are terminal outcomes
// distinguishable from the graded labels: the former may resolve once more
// vote data accumulates, the latter indicates a lookup failure surfaced as
// a result rather than a fault.
const (
	StronglyProgressive  Stance = "STRONGLY_PROGRESSIVE"
	MostlyProgressive    Stance = "MOSTLY_PROGRESSIVE"
	Moderate             Stance = "MODERATE"
	MostlyConservative   Stance = "MOSTLY_CONSERVATIVE"
	StronglyConservative Stance = "STRONGLY_CONSERVATIVE"
	InsufficientData     Stance = "INSUFFICIENT_DATA"
	StanceError          Stance = "ERROR"
)

// Confidence is a categorical certainty tier for a stance computation.
type Confidence string

// Confidence tiers.
const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)
