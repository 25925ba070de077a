package scorecard

import "errors"

var (
	errMissingScoreField = errors.New("rubric.json: missing \"score\" field")
	errNonNumericScore   = errors.New("rubric.json: \"score\" field is not numeric")

	errScorecardMissingScore = errors.New("scorecard: missing \"score\" field")
)
