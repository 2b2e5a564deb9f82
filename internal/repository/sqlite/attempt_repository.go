package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/quizhub/quizhub/internal/logger"
	"github.com/quizhub/quizhub/internal/models"
	"github.com/quizhub/quizhub/internal/repository"
)

type attemptRepository struct {
	db *sql.DB
}

// NewAttemptRepository creates a new AttemptRepository implementation
func NewAttemptRepository(db *sql.DB) repository.AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Insert(ctx context.Context, a models.Attempt) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("inserting attempt: quiz_id=%d, user_id=%d, score=%d/%d", a.QuizID, a.UserID, a.Score, a.TotalQuestions)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO attempts (quiz_id, user_id, score, total_questions, answers_revealed)
VALUES (?, ?, ?, ?, ?)
`, a.QuizID, a.UserID, a.Score, a.TotalQuestions, a.AnswersRevealed)
	if err != nil {
		log.Error("failed to insert attempt: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get attempt id: %v", err)
		return 0, err
	}
	log.Debug("attempt inserted: id=%d", id)
	return id, nil
}

// Top returns the highest-scoring attempts. Ties are broken by ascending
// attempt id, i.e. the earlier-recorded attempt ranks first.
func (r *attemptRepository) Top(ctx context.Context, limit int) ([]models.AttemptEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("loading leaderboard: limit=%d", limit)

	query := entryQuery().OrderBy("a.score DESC", "a.id ASC")
	return r.queryEntries(ctx, query, limit)
}

func (r *attemptRepository) ByUser(ctx context.Context, userID int64, limit int) ([]models.AttemptEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("loading attempts: user_id=%d, limit=%d", userID, limit)

	query := entryQuery().Where(squirrel.Eq{"a.user_id": userID}).OrderBy("a.id DESC")
	return r.queryEntries(ctx, query, limit)
}

func entryQuery() squirrel.SelectBuilder {
	return sqlBuilder.Select(
		"a.id", "a.quiz_id", "a.user_id", "a.score", "a.total_questions",
		"a.answers_revealed", "a.completed_at", "u.username", "q.title",
	).From("attempts a").
		Join("users u ON u.id = a.user_id").
		Join("quizzes q ON q.id = a.quiz_id")
}

func (r *attemptRepository) queryEntries(ctx context.Context, query squirrel.SelectBuilder, limit int) ([]models.AttemptEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")

	if limit <= 0 {
		limit = 50
	}
	sqlStr, args, err := query.Limit(uint64(limit)).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query attempts: %v", err)
		return nil, err
	}
	defer rows.Close()
	var entries []models.AttemptEntry
	for rows.Next() {
		var e models.AttemptEntry
		if err := rows.Scan(&e.ID, &e.QuizID, &e.UserID, &e.Score, &e.TotalQuestions,
			&e.AnswersRevealed, &e.CompletedAt, &e.Username, &e.QuizTitle); err != nil {
			log.Error("failed to scan attempt row: %v", err)
			return nil, err
		}
		entries = append(entries, e)
	}
	log.Debug("found %d attempts", len(entries))
	return entries, rows.Err()
}

func (r *attemptRepository) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("clearing attempts: user_id=%d", userID)

	res, err := r.db.ExecContext(ctx, `DELETE FROM attempts WHERE user_id = ?`, userID)
	if err != nil {
		log.Error("failed to clear attempts: %v", err)
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	log.Debug("cleared %d attempts", n)
	return n, nil
}
