package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/Dosada05/prono-scoreboard/models"
)

var (
	ErrPredictionsSourceEmpty  = errors.New("no participant predictions found")
	ErrPredictionsMalformed    = errors.New("predictions file is malformed")
	ErrParticipantIDInvalid    = errors.New("participant id is invalid")
	ErrPredictionMatchConflict = errors.New("participant already has a prediction for this match")
)

// PredictionRepository loads every participant's predictions. Participants are
// returned in a stable order, which is the order ties are listed in. A source
// that cannot be read fails the whole call; a single participant that does not
// decode is returned with LoadErr set.
type PredictionRepository interface {
	ListParticipants(ctx context.Context) ([]models.ParticipantPredictions, error)
}

// ParticipantIDFromFileName maps "Francois Mary.json" to "Francois_Mary".
func ParticipantIDFromFileName(name string) string {
	base := strings.TrimSuffix(path.Base(name), path.Ext(name))
	return strings.ReplaceAll(strings.TrimSpace(base), " ", "_")
}

func decodePredictions(r io.Reader, source string) ([]models.Prediction, error) {
	var predictions []models.Prediction
	dec := json.NewDecoder(r)
	if err := dec.Decode(&predictions); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrPredictionsMalformed, source, err)
	}
	for i, p := range predictions {
		if p.HomeScore < 0 || p.AwayScore < 0 {
			return nil, fmt.Errorf("%w: %s: entry %d has a negative score", ErrPredictionsMalformed, source, i)
		}
	}
	return predictions, nil
}
