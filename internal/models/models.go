package models

import "time"

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Quiz struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CreatorID   int64      `json:"creator_id"`
	CreatedAt   time.Time  `json:"created_at"`
	Questions   []Question `json:"questions"`
}

type Question struct {
	ID      int64    `json:"id"`
	QuizID  int64    `json:"quiz_id"`
	Text    string   `json:"text"`
	Hint    string   `json:"hint,omitempty"`
	Options []Option `json:"options"`
}

type Option struct {
	ID         int64  `json:"id"`
	QuestionID int64  `json:"question_id"`
	Text       string `json:"text"`
	IsCorrect  bool   `json:"is_correct"`
}

// QuizSummary is the list-view projection of a quiz. It deliberately carries
// no question or option data.
type QuizSummary struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	CreatorID       int64     `json:"creator_id"`
	CreatorUsername string    `json:"creator_username"`
	QuestionCount   int       `json:"question_count"`
	CreatedAt       time.Time `json:"created_at"`
}

type QuizFilter struct {
	CreatorID        int64 // only quizzes created by this user
	ExcludeCreatorID int64 // only quizzes created by other users
	Limit            int
	Offset           int
}

// Attempt is one immutable scored submission of a quiz by a user.
type Attempt struct {
	ID              int64     `json:"id"`
	QuizID          int64     `json:"quiz_id"`
	UserID          int64     `json:"user_id"`
	Score           int       `json:"score"`
	TotalQuestions  int       `json:"total_questions"`
	AnswersRevealed bool      `json:"answers_revealed"`
	CompletedAt     time.Time `json:"completed_at"`
}

// AttemptEntry is an attempt joined with display names for leaderboard and
// history views.
type AttemptEntry struct {
	Attempt
	Username  string `json:"username"`
	QuizTitle string `json:"quiz_title"`
}

// ScoreResult is what the scoring engine hands back after recording an attempt.
type ScoreResult struct {
	AttemptID      int64   `json:"attempt_id"`
	QuizID         int64   `json:"quiz_id"`
	Score          int     `json:"score"`
	TotalQuestions int     `json:"total_questions"`
	Percentage     float64 `json:"percentage"`
}
