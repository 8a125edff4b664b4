package repositories

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Dosada05/prono-scoreboard/models"
)

type filePredictionRepository struct {
	dir string
}

// NewFilePredictionRepository reads one JSON file per participant from dir.
func NewFilePredictionRepository(dir string) PredictionRepository {
	return &filePredictionRepository{dir: dir}
}

func (r *filePredictionRepository) ListParticipants(ctx context.Context) ([]models.ParticipantPredictions, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read predictions directory %s: %w", r.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrPredictionsSourceEmpty, r.dir)
	}
	sort.Strings(names)

	participants := make([]models.ParticipantPredictions, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		participant, err := r.readFile(filepath.Join(r.dir, name))
		if err != nil {
			return nil, err
		}
		participants = append(participants, participant)
	}
	return participants, nil
}

// readFile fails only when the file cannot be opened. A file that opens but
// does not decode yields a participant carrying LoadErr.
func (r *filePredictionRepository) readFile(path string) (models.ParticipantPredictions, error) {
	name := filepath.Base(path)
	participant := models.ParticipantPredictions{ParticipantID: ParticipantIDFromFileName(name)}

	f, err := os.Open(path)
	if err != nil {
		return participant, fmt.Errorf("failed to open predictions file %s: %w", path, err)
	}
	defer f.Close()

	participant.Predictions, participant.LoadErr = decodePredictions(f, name)
	return participant, nil
}
