package repositories

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/Dosada05/prono-scoreboard/models"
	"github.com/Dosada05/prono-scoreboard/storage"
	"golang.org/x/sync/errgroup"
)

const bucketFetchConcurrency = 4

type bucketPredictionRepository struct {
	store  storage.ObjectStore
	prefix string
}

// NewBucketPredictionRepository reads the same per-participant JSON files as
// the file repository, stored under prefix in an object bucket.
func NewBucketPredictionRepository(store storage.ObjectStore, prefix string) PredictionRepository {
	return &bucketPredictionRepository{store: store, prefix: prefix}
}

func (r *bucketPredictionRepository) ListParticipants(ctx context.Context) ([]models.ParticipantPredictions, error) {
	keys, err := r.store.List(ctx, r.prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions under %q: %w", r.prefix, err)
	}

	jsonKeys := make([]string, 0, len(keys))
	for _, key := range keys {
		if strings.EqualFold(path.Ext(key), ".json") {
			jsonKeys = append(jsonKeys, key)
		}
	}
	if len(jsonKeys) == 0 {
		return nil, fmt.Errorf("%w under %q", ErrPredictionsSourceEmpty, r.prefix)
	}
	sort.Strings(jsonKeys)

	participants := make([]models.ParticipantPredictions, len(jsonKeys))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bucketFetchConcurrency)
	for i, key := range jsonKeys {
		i, key := i, key
		g.Go(func() error {
			body, err := r.store.Get(gctx, key)
			if err != nil {
				return err
			}
			defer body.Close()

			participants[i] = models.ParticipantPredictions{ParticipantID: ParticipantIDFromFileName(key)}
			participants[i].Predictions, participants[i].LoadErr = decodePredictions(body, key)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return participants, nil
}
