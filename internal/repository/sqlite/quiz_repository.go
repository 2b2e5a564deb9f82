package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/quizhub/quizhub/internal/db"
	"github.com/quizhub/quizhub/internal/logger"
	"github.com/quizhub/quizhub/internal/models"
	"github.com/quizhub/quizhub/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type quizRepository struct {
	db *sql.DB
}

// NewQuizRepository creates a new QuizRepository implementation
func NewQuizRepository(db *sql.DB) repository.QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Insert(ctx context.Context, quiz models.Quiz) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz_repo")
	log.Debug("inserting quiz: title=%s, creator_id=%d, questions=%d", quiz.Title, quiz.CreatorID, len(quiz.Questions))

	var quizID int64
	err := db.Tx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
INSERT INTO quizzes (title, description, creator_id)
VALUES (?, ?, ?)
`, quiz.Title, quiz.Description, quiz.CreatorID)
		if err != nil {
			return err
		}
		quizID, err = res.LastInsertId()
		if err != nil {
			return err
		}
		return insertQuestions(ctx, tx, quizID, quiz.Questions)
	})
	if err != nil {
		log.Error("failed to insert quiz: %v", err)
		return 0, err
	}
	log.Debug("quiz inserted: id=%d", quizID)
	return quizID, nil
}

func insertQuestions(ctx context.Context, tx *sql.Tx, quizID int64, questions []models.Question) error {
	for _, q := range questions {
		res, err := tx.ExecContext(ctx, `
INSERT INTO questions (quiz_id, text, hint)
VALUES (?, ?, ?)
`, quizID, q.Text, q.Hint)
		if err != nil {
			return err
		}
		questionID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		for _, o := range q.Options {
			if _, err := tx.ExecContext(ctx, `
INSERT INTO options (question_id, text, is_correct)
VALUES (?, ?, ?)
`, questionID, o.Text, o.IsCorrect); err != nil {
				return err
			}
		}
	}
	return nil
}

// Get loads a quiz with its questions and options. Questions and options are
// ordered by ascending id so scoring iterates in a stable catalog order.
func (r *quizRepository) Get(ctx context.Context, id int64) (*models.Quiz, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz_repo")
	log.Debug("getting quiz: id=%d", id)

	var quiz models.Quiz
	err := r.db.QueryRowContext(ctx, `
SELECT id, title, description, creator_id, created_at
FROM quizzes
WHERE id = ?
`, id).Scan(&quiz.ID, &quiz.Title, &quiz.Description, &quiz.CreatorID, &quiz.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("quiz not found: id=%d", id)
		} else {
			log.Error("failed to get quiz: %v", err)
		}
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, quiz_id, text, hint
FROM questions
WHERE quiz_id = ?
ORDER BY id ASC
`, id)
	if err != nil {
		log.Error("failed to query questions: %v", err)
		return nil, err
	}
	defer rows.Close()
	index := map[int64]int{}
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.QuizID, &q.Text, &q.Hint); err != nil {
			log.Error("failed to scan question row: %v", err)
			return nil, err
		}
		index[q.ID] = len(quiz.Questions)
		quiz.Questions = append(quiz.Questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	optRows, err := r.db.QueryContext(ctx, `
SELECT o.id, o.question_id, o.text, o.is_correct
FROM options o
JOIN questions q ON q.id = o.question_id
WHERE q.quiz_id = ?
ORDER BY o.id ASC
`, id)
	if err != nil {
		log.Error("failed to query options: %v", err)
		return nil, err
	}
	defer optRows.Close()
	for optRows.Next() {
		var o models.Option
		if err := optRows.Scan(&o.ID, &o.QuestionID, &o.Text, &o.IsCorrect); err != nil {
			log.Error("failed to scan option row: %v", err)
			return nil, err
		}
		if i, ok := index[o.QuestionID]; ok {
			quiz.Questions[i].Options = append(quiz.Questions[i].Options, o)
		}
	}
	if err := optRows.Err(); err != nil {
		return nil, err
	}

	log.Debug("quiz found: title=%s, questions=%d", quiz.Title, len(quiz.Questions))
	return &quiz, nil
}

func (r *quizRepository) CreatorID(ctx context.Context, id int64) (int64, error) {
	var creatorID int64
	err := r.db.QueryRowContext(ctx, `SELECT creator_id FROM quizzes WHERE id = ?`, id).Scan(&creatorID)
	return creatorID, err
}

func (r *quizRepository) List(ctx context.Context, filter models.QuizFilter) ([]models.QuizSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz_repo")
	log.Debug("listing quizzes: creator_id=%d, exclude_creator_id=%d", filter.CreatorID, filter.ExcludeCreatorID)

	query := sqlBuilder.Select(
		"q.id", "q.title", "q.description", "q.creator_id", "u.username",
		"(SELECT COUNT(*) FROM questions WHERE quiz_id = q.id)", "q.created_at",
	).From("quizzes q").Join("users u ON u.id = q.creator_id")

	if filter.CreatorID != 0 {
		query = query.Where(squirrel.Eq{"q.creator_id": filter.CreatorID})
	}
	if filter.ExcludeCreatorID != 0 {
		query = query.Where(squirrel.NotEq{"q.creator_id": filter.ExcludeCreatorID})
	}

	query = query.OrderBy("q.created_at DESC, q.id DESC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list quizzes: %v", err)
		return nil, err
	}
	defer rows.Close()
	var quizzes []models.QuizSummary
	for rows.Next() {
		var s models.QuizSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.CreatorID, &s.CreatorUsername, &s.QuestionCount, &s.CreatedAt); err != nil {
			log.Error("failed to scan quiz row: %v", err)
			return nil, err
		}
		quizzes = append(quizzes, s)
	}
	log.Debug("found %d quizzes", len(quizzes))
	return quizzes, rows.Err()
}

// Update rewrites the quiz row and, when replaceQuestions is set, swaps the
// whole question set in the same transaction. The creator is never touched.
func (r *quizRepository) Update(ctx context.Context, quiz models.Quiz, replaceQuestions bool) error {
	log := logger.FromContext(ctx).WithPrefix("quiz_repo")
	log.Debug("updating quiz: id=%d, replace_questions=%v", quiz.ID, replaceQuestions)

	err := db.Tx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
UPDATE quizzes
SET title = ?, description = ?
WHERE id = ?
`, quiz.Title, quiz.Description, quiz.ID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return sql.ErrNoRows
		}
		if !replaceQuestions {
			return nil
		}
		// Cascade removes the old options with their questions.
		if _, err := tx.ExecContext(ctx, `DELETE FROM questions WHERE quiz_id = ?`, quiz.ID); err != nil {
			return err
		}
		return insertQuestions(ctx, tx, quiz.ID, quiz.Questions)
	})
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Error("failed to update quiz: %v", err)
	}
	return err
}

func (r *quizRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("quiz_repo")
	log.Debug("deleting quiz: id=%d", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM quizzes WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete quiz: %v", err)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	log.Debug("quiz deleted: id=%d", id)
	return nil
}
