package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/quizhub/quizhub/internal/db"
	"github.com/quizhub/quizhub/internal/models"
	"github.com/quizhub/quizhub/internal/repository"
	"github.com/quizhub/quizhub/internal/repository/sqlite"
	"github.com/quizhub/quizhub/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type QuizRepositorySuite struct {
	suite.Suite
	db   *db.DB
	repo repository.QuizRepository
}

func (s *QuizRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewQuizRepository(s.db.DB)
}

func (s *QuizRepositorySuite) createUser(username string) int64 {
	res, err := s.db.ExecContext(context.Background(), `INSERT INTO users (username, password_hash) VALUES (?, ?)`, username, "hash")
	s.Require().NoError(err)
	id, err := res.LastInsertId()
	s.Require().NoError(err)
	return id
}

func mathQuiz(creatorID int64) models.Quiz {
	return models.Quiz{
		Title:       "Math",
		Description: "Basic arithmetic",
		CreatorID:   creatorID,
		Questions: []models.Question{
			{
				Text: "What is 2+2?",
				Hint: "It's simple arithmetic.",
				Options: []models.Option{
					{Text: "3", IsCorrect: false},
					{Text: "4", IsCorrect: true},
					{Text: "5", IsCorrect: false},
				},
			},
			{
				Text: "What is 3+3?",
				Options: []models.Option{
					{Text: "6", IsCorrect: true},
					{Text: "7", IsCorrect: false},
					{Text: "8", IsCorrect: false},
				},
			},
		},
	}
}

func (s *QuizRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()
	creatorID := s.createUser("alice")

	id, err := s.repo.Insert(ctx, mathQuiz(creatorID))
	s.Require().NoError(err)
	s.Assert().Greater(id, int64(0))

	quiz, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Assert().Equal("Math", quiz.Title)
	s.Assert().Equal(creatorID, quiz.CreatorID)
	s.Require().Len(quiz.Questions, 2)

	// Questions and options come back in insertion (id) order.
	q1 := quiz.Questions[0]
	s.Assert().Equal("What is 2+2?", q1.Text)
	s.Assert().Equal("It's simple arithmetic.", q1.Hint)
	s.Require().Len(q1.Options, 3)
	s.Assert().Equal("3", q1.Options[0].Text)
	s.Assert().True(q1.Options[1].IsCorrect)

	q2 := quiz.Questions[1]
	s.Require().Len(q2.Options, 3)
	s.Assert().True(q2.Options[0].IsCorrect)
}

func (s *QuizRepositorySuite) TestGetMissing() {
	_, err := s.repo.Get(context.Background(), 42)
	s.Require().ErrorIs(err, sql.ErrNoRows)
}

func (s *QuizRepositorySuite) TestCreatorID() {
	ctx := context.Background()
	creatorID := s.createUser("alice")

	id, err := s.repo.Insert(ctx, mathQuiz(creatorID))
	s.Require().NoError(err)

	got, err := s.repo.CreatorID(ctx, id)
	s.Require().NoError(err)
	s.Assert().Equal(creatorID, got)

	_, err = s.repo.CreatorID(ctx, 42)
	s.Require().ErrorIs(err, sql.ErrNoRows)
}

func (s *QuizRepositorySuite) TestListFilters() {
	ctx := context.Background()
	alice := s.createUser("alice")
	bob := s.createUser("bob")

	_, err := s.repo.Insert(ctx, models.Quiz{Title: "Alice Quiz", CreatorID: alice})
	s.Require().NoError(err)
	_, err = s.repo.Insert(ctx, mathQuiz(bob))
	s.Require().NoError(err)

	all, err := s.repo.List(ctx, models.QuizFilter{})
	s.Require().NoError(err)
	s.Assert().Len(all, 2)

	mine, err := s.repo.List(ctx, models.QuizFilter{CreatorID: alice})
	s.Require().NoError(err)
	s.Require().Len(mine, 1)
	s.Assert().Equal("Alice Quiz", mine[0].Title)
	s.Assert().Equal("alice", mine[0].CreatorUsername)
	s.Assert().Equal(0, mine[0].QuestionCount)

	others, err := s.repo.List(ctx, models.QuizFilter{ExcludeCreatorID: alice})
	s.Require().NoError(err)
	s.Require().Len(others, 1)
	s.Assert().Equal("Math", others[0].Title)
	s.Assert().Equal(2, others[0].QuestionCount)
}

func (s *QuizRepositorySuite) TestUpdateReplacesQuestions() {
	ctx := context.Background()
	creatorID := s.createUser("alice")

	id, err := s.repo.Insert(ctx, mathQuiz(creatorID))
	s.Require().NoError(err)

	updated := models.Quiz{
		ID:          id,
		Title:       "Math v2",
		Description: "Revised",
		CreatorID:   creatorID,
		Questions: []models.Question{
			{
				Text:    "What is 10/2?",
				Options: []models.Option{{Text: "5", IsCorrect: true}},
			},
		},
	}
	s.Require().NoError(s.repo.Update(ctx, updated, true))

	quiz, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Assert().Equal("Math v2", quiz.Title)
	s.Require().Len(quiz.Questions, 1)
	s.Assert().Equal("What is 10/2?", quiz.Questions[0].Text)

	// Old options must be gone with their questions.
	var options int
	s.Require().NoError(s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM options`).Scan(&options))
	s.Assert().Equal(1, options)
}

func (s *QuizRepositorySuite) TestUpdateRowOnly() {
	ctx := context.Background()
	creatorID := s.createUser("alice")

	id, err := s.repo.Insert(ctx, mathQuiz(creatorID))
	s.Require().NoError(err)

	s.Require().NoError(s.repo.Update(ctx, models.Quiz{ID: id, Title: "Renamed", CreatorID: creatorID}, false))

	quiz, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Assert().Equal("Renamed", quiz.Title)
	s.Assert().Len(quiz.Questions, 2)
}

func (s *QuizRepositorySuite) TestUpdateMissing() {
	err := s.repo.Update(context.Background(), models.Quiz{ID: 42, Title: "Ghost"}, false)
	s.Require().ErrorIs(err, sql.ErrNoRows)
}

func (s *QuizRepositorySuite) TestDeleteCascades() {
	ctx := context.Background()
	creatorID := s.createUser("alice")

	// 2 questions with 3 options each.
	id, err := s.repo.Insert(ctx, mathQuiz(creatorID))
	s.Require().NoError(err)

	var questions, options int
	s.Require().NoError(s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`).Scan(&questions))
	s.Require().NoError(s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM options`).Scan(&options))
	s.Require().Equal(2, questions)
	s.Require().Equal(6, options)

	s.Require().NoError(s.repo.Delete(ctx, id))

	s.Require().NoError(s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`).Scan(&questions))
	s.Require().NoError(s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM options`).Scan(&options))
	s.Assert().Equal(0, questions)
	s.Assert().Equal(0, options)

	_, err = s.repo.Get(ctx, id)
	s.Require().ErrorIs(err, sql.ErrNoRows)
}

func (s *QuizRepositorySuite) TestDeleteMissing() {
	err := s.repo.Delete(context.Background(), 42)
	s.Require().ErrorIs(err, sql.ErrNoRows)
}

func TestQuizRepositorySuite(t *testing.T) {
	suite.Run(t, new(QuizRepositorySuite))
}
