package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/prono-scoreboard/models"
	"github.com/lib/pq"
)

// SQLExecutor is satisfied by both *sql.DB and *sql.Tx.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// PostgresPredictionRepository stores predictions in
//
//	predictions(participant_id text, match_id int, score_home int, score_away int, position int,
//	            primary key (participant_id, match_id))
type PostgresPredictionRepository struct {
	db *sql.DB
}

func NewPostgresPredictionRepository(db *sql.DB) *PostgresPredictionRepository {
	return &PostgresPredictionRepository{db: db}
}

func (r *PostgresPredictionRepository) ListParticipants(ctx context.Context) ([]models.ParticipantPredictions, error) {
	query := `
		SELECT participant_id, match_id, score_home, score_away
		FROM predictions
		ORDER BY participant_id ASC, position ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	defer rows.Close()

	return collectParticipants(rows)
}

// predictionRows is the part of *sql.Rows read by collectParticipants.
type predictionRows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// collectParticipants groups rows ordered by participant then position into
// one entry per participant, keeping the row order within each.
func collectParticipants(rows predictionRows) ([]models.ParticipantPredictions, error) {
	participants := make([]models.ParticipantPredictions, 0)
	for rows.Next() {
		var participantID string
		var p models.Prediction
		if err := rows.Scan(&participantID, &p.MatchID, &p.HomeScore, &p.AwayScore); err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		n := len(participants)
		if n == 0 || participants[n-1].ParticipantID != participantID {
			participants = append(participants, models.ParticipantPredictions{ParticipantID: participantID})
			n++
		}
		participants[n-1].Predictions = append(participants[n-1].Predictions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate predictions: %w", err)
	}
	if len(participants) == 0 {
		return nil, ErrPredictionsSourceEmpty
	}
	return participants, nil
}

// ReplaceParticipant overwrites everything stored for one participant in a
// single transaction.
func (r *PostgresPredictionRepository) ReplaceParticipant(ctx context.Context, participant models.ParticipantPredictions) (err error) {
	if participant.ParticipantID == "" {
		return ErrParticipantIDInvalid
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ReplaceParticipant failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM predictions WHERE participant_id = $1`, participant.ParticipantID); err != nil {
		return fmt.Errorf("failed to clear predictions of %s: %w", participant.ParticipantID, err)
	}
	return insertPredictions(ctx, tx, participant)
}

func insertPredictions(ctx context.Context, exec SQLExecutor, participant models.ParticipantPredictions) error {
	query := `
		INSERT INTO predictions (participant_id, match_id, score_home, score_away, position)
		VALUES ($1, $2, $3, $4, $5)`
	for i, p := range participant.Predictions {
		_, err := exec.ExecContext(ctx, query, participant.ParticipantID, p.MatchID, p.HomeScore, p.AwayScore, i)
		if err != nil {
			return translateInsertError(err, participant.ParticipantID, p.MatchID)
		}
	}
	return nil
}

func translateInsertError(err error, participantID string, matchID int) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%w: %s, match %d", ErrPredictionMatchConflict, participantID, matchID)
		case "23514": // check_violation
			return fmt.Errorf("%w: %s, match %d", ErrPredictionsMalformed, participantID, matchID)
		}
	}
	return fmt.Errorf("failed to insert prediction for %s, match %d: %w", participantID, matchID, err)
}
