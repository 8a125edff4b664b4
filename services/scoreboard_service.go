package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Dosada05/prono-scoreboard/live"
	"github.com/Dosada05/prono-scoreboard/models"
	"github.com/Dosada05/prono-scoreboard/repositories"
	"github.com/Dosada05/prono-scoreboard/telemetry"
	"golang.org/x/sync/errgroup"
)

const defaultScoringConcurrency = 8

// TournamentFetcher retrieves the raw calendar payload.
type TournamentFetcher interface {
	Fetch(ctx context.Context) (*models.FifaCalendarResponse, error)
}

// Broadcaster pushes messages to websocket viewers.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

// MatchView is a match together with every player's prediction for it.
type MatchView struct {
	Match       models.Match                      `json:"match"`
	HomeTeam    string                            `json:"home_team"`
	AwayTeam    string                            `json:"away_team"`
	GroupID     string                            `json:"group_id"`
	Predictions map[string]models.MatchPrediction `json:"predictions"`
}

type ScoreboardService interface {
	Refresh(ctx context.Context) (*models.Scoreboard, error)
	Current() (*models.Scoreboard, error)
	GetPlayer(playerID string) (*models.PlayerScore, error)
	GetMatch(matchNumber int) (*MatchView, error)
	LiveMatch() (*MatchView, error)
	Leaders() ([]*models.PlayerScore, error)
}

type ScoreboardServiceConfig struct {
	Concurrency int
}

type scoreboardService struct {
	fetcher     TournamentFetcher
	predictions repositories.PredictionRepository
	scorer      *Scorer
	broadcaster Broadcaster
	metrics     *telemetry.Metrics
	logger      *slog.Logger
	concurrency int

	refreshMu sync.Mutex
	mu        sync.RWMutex
	current   *models.Scoreboard
}

func NewScoreboardService(
	fetcher TournamentFetcher,
	predictions repositories.PredictionRepository,
	scorer *Scorer,
	broadcaster Broadcaster,
	metrics *telemetry.Metrics,
	logger *slog.Logger,
	cfg ScoreboardServiceConfig,
) ScoreboardService {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = defaultScoringConcurrency
	}
	return &scoreboardService{
		fetcher:     fetcher,
		predictions: predictions,
		scorer:      scorer,
		broadcaster: broadcaster,
		metrics:     metrics,
		logger:      logger,
		concurrency: concurrency,
	}
}

// Refresh recomputes the whole scoreboard from a fresh snapshot. A failure
// keeps the previous scoreboard in place.
func (s *scoreboardService) Refresh(ctx context.Context) (*models.Scoreboard, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	start := time.Now()
	board, err := s.compute(ctx)
	s.metrics.ObserveRefresh(err, time.Since(start))
	if err != nil {
		s.logger.ErrorContext(ctx, "scoreboard refresh failed", slog.Any("error", err))
		return nil, err
	}

	s.mu.Lock()
	s.current = board
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "scoreboard refreshed",
		slog.Int("players", len(board.Players)),
		slog.Int("failures", len(board.Failures)),
		slog.Duration("elapsed", time.Since(start)),
	)

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToRoom(live.ScoreboardRoom, live.WebSocketMessage{
			Type:    "SCOREBOARD_UPDATED",
			Payload: board.Rankings,
			RoomID:  live.ScoreboardRoom,
		})
	}
	return board, nil
}

func (s *scoreboardService) compute(ctx context.Context) (*models.Scoreboard, error) {
	raw, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	snapshot, err := Normalize(raw)
	if err != nil {
		return nil, err
	}
	s.metrics.SetMatchesStarted(countStarted(snapshot))

	participants, err := s.predictions.ListParticipants(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPredictionsLoadFailed, err)
	}

	return s.scoreAll(ctx, snapshot, participants)
}

// scoreAll scores every participant over the same immutable snapshot. One
// participant failing does not prevent the others from being scored.
func (s *scoreboardService) scoreAll(ctx context.Context, snapshot *models.Snapshot, participants []models.ParticipantPredictions) (*models.Scoreboard, error) {
	scores := make([]*models.PlayerScore, len(participants))
	errs := make([]error, len(participants))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, participant := range participants {
		i, participant := i, participant
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if participant.LoadErr != nil {
				errs[i] = participant.LoadErr
				return nil
			}
			scores[i], errs[i] = s.scorer.ScoreParticipant(snapshot, participant.ParticipantID, participant.Predictions)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	board := &models.Scoreboard{
		Snapshot:    snapshot,
		Players:     make([]*models.PlayerScore, 0, len(participants)),
		GeneratedAt: time.Now(),
	}
	for i, participant := range participants {
		if errs[i] != nil {
			if board.Failures == nil {
				board.Failures = make(map[string]string)
			}
			board.Failures[participant.ParticipantID] = errs[i].Error()
			s.logger.WarnContext(ctx, "participant scoring failed",
				slog.String("participant_id", participant.ParticipantID),
				slog.Any("error", errs[i]),
			)
			continue
		}
		board.Players = append(board.Players, scores[i])
	}
	board.Rankings = BuildLeaderboard(board.Players)

	s.metrics.SetParticipantsScored(len(board.Players))
	s.metrics.AddParticipantFailures(len(board.Failures))
	return board, nil
}

func (s *scoreboardService) Current() (*models.Scoreboard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, ErrScoreboardNotReady
	}
	return s.current, nil
}

func (s *scoreboardService) GetPlayer(playerID string) (*models.PlayerScore, error) {
	board, err := s.Current()
	if err != nil {
		return nil, err
	}
	player, ok := board.Player(playerID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	return player, nil
}

func (s *scoreboardService) GetMatch(matchNumber int) (*MatchView, error) {
	board, err := s.Current()
	if err != nil {
		return nil, err
	}
	match, ok := board.Snapshot.Matches[matchNumber]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMatch, matchNumber)
	}
	return buildMatchView(board, match), nil
}

// LiveMatch returns the first match in feed order that is being played.
func (s *scoreboardService) LiveMatch() (*MatchView, error) {
	board, err := s.Current()
	if err != nil {
		return nil, err
	}
	for _, match := range board.Snapshot.OrderedMatches() {
		if match.IsLive() {
			return buildMatchView(board, match), nil
		}
	}
	return nil, fmt.Errorf("%w: no match in progress", ErrUnknownMatch)
}

// Leaders returns the players sharing first place.
func (s *scoreboardService) Leaders() ([]*models.PlayerScore, error) {
	board, err := s.Current()
	if err != nil {
		return nil, err
	}
	if len(board.Rankings) == 0 {
		return []*models.PlayerScore{}, nil
	}
	leaders := make([]*models.PlayerScore, 0, len(board.Rankings[0].Players))
	for _, id := range board.Rankings[0].Players {
		if p, ok := board.Player(id); ok {
			leaders = append(leaders, p)
		}
	}
	return leaders, nil
}
