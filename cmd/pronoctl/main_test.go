package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Dosada05/prono-scoreboard/models"
	"github.com/Dosada05/prono-scoreboard/repositories"
	"github.com/Dosada05/prono-scoreboard/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintLeaderboard(t *testing.T) {
	scores := []*models.PlayerScore{
		{PlayerID: "Remy", Name: "Remy", MatchesScore: 10, GroupsScore: 3, BonusScore: 3, TotalScore: 16},
		{PlayerID: "Francois_Mary", Name: "Francois Mary", MatchesScore: 13, GroupsScore: 3, TotalScore: 16},
		{PlayerID: "Antoine", Name: "Antoine", MatchesScore: 5, TotalScore: 5},
	}
	rankings := []models.RankEntry{
		{Points: 16, Players: []string{"Remy", "Francois_Mary"}},
		{Points: 5, Players: []string{"Antoine"}},
	}

	var out bytes.Buffer
	require.NoError(t, printLeaderboard(&out, scores, rankings))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "1 "))
	assert.Contains(t, lines[2], "Francois Mary")
	assert.True(t, strings.HasPrefix(lines[2], "1 "))
	assert.True(t, strings.HasPrefix(lines[3], "3 "))
}

type captureStore struct {
	key, contentType, body string
}

func (c *captureStore) List(ctx context.Context, prefix string) ([]string, error) { return nil, nil }
func (c *captureStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	return nil, storage.ErrObjectNotFound
}
func (c *captureStore) Upload(ctx context.Context, key, contentType string, r io.Reader) (*storage.UploadResult, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	c.key, c.contentType, c.body = key, contentType, string(b)
	return &storage.UploadResult{Key: key}, nil
}
func (c *captureStore) GetPublicURL(key string) string { return "" }

func TestPublishParticipant(t *testing.T) {
	store := &captureStore{}
	key, err := publishParticipant(context.Background(), store, "predictions", models.ParticipantPredictions{
		ParticipantID: "Francois_Mary",
		Predictions:   []models.Prediction{{MatchID: 1, HomeScore: 2, AwayScore: 0}},
	})
	require.NoError(t, err)

	assert.Equal(t, "predictions/Francois_Mary.json", key)
	assert.Equal(t, "application/json", store.contentType)
	assert.JSONEq(t, `[{"match_id": 1, "score_h": 2, "score_a": 0}]`, store.body)
}

func TestLoadCleanParticipants(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Remy.json"), []byte(`[{"match_id": 1, "score_h": 0, "score_a": 1}]`), 0o644))

	participants, err := loadCleanParticipants(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, participants, 1)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "Antoine.json"), []byte(`not json`), 0o644))
	_, err = loadCleanParticipants(context.Background(), dir)
	assert.ErrorIs(t, err, repositories.ErrPredictionsMalformed)
}
