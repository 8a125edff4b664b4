package models

// Prediction is one stored score guess, in the layout of the prediction files.
type Prediction struct {
	MatchID   int `json:"match_id" db:"match_id"`
	HomeScore int `json:"score_h" db:"score_home"`
	AwayScore int `json:"score_a" db:"score_away"`
}

// ParticipantPredictions holds one participant's predictions in submission order.
// LoadErr is set when the participant's source could not be decoded; Predictions
// is then empty and the participant is reported as a failure instead of scored.
type ParticipantPredictions struct {
	ParticipantID string       `json:"participant_id"`
	Predictions   []Prediction `json:"predictions"`
	LoadErr       error        `json:"-"`
}

type MatchPredictionResult int

const (
	MatchPredictionFail         MatchPredictionResult = 0
	MatchPredictionOutcomeOK    MatchPredictionResult = 3
	MatchPredictionExactScoreOK MatchPredictionResult = 5
)

func (r MatchPredictionResult) String() string {
	switch r {
	case MatchPredictionExactScoreOK:
		return "score_ok"
	case MatchPredictionOutcomeOK:
		return "result_ok"
	default:
		return "fail"
	}
}

// MatchPrediction is a participant's guess for a match and how it scored.
type MatchPrediction struct {
	MatchNumber int                   `json:"match_number"`
	HomeScore   int                   `json:"home_score"`
	AwayScore   int                   `json:"away_score"`
	Result      MatchPredictionResult `json:"result"`
}

type GroupPredictionResult int

const (
	GroupPredictionFail                GroupPredictionResult = 0
	GroupPredictionQualifiedWrongOrder GroupPredictionResult = 1
	GroupPredictionQualifiedRightOrder GroupPredictionResult = 3
	GroupPredictionPerfect             GroupPredictionResult = 5
)

func (r GroupPredictionResult) String() string {
	switch r {
	case GroupPredictionPerfect:
		return "all_ok"
	case GroupPredictionQualifiedRightOrder:
		return "two_order_ok"
	case GroupPredictionQualifiedWrongOrder:
		return "two_ok"
	default:
		return "fail"
	}
}
