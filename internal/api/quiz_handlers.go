package api

import (
	"net/http"

	"github.com/quizhub/quizhub/internal/errors"
	"github.com/quizhub/quizhub/internal/logger"
	"github.com/quizhub/quizhub/internal/models"
)

type optionRequest struct {
	Text      string `json:"text" validate:"required,max=255"`
	IsCorrect bool   `json:"is_correct"`
}

type questionRequest struct {
	Text    string          `json:"text" validate:"required,max=255"`
	Hint    string          `json:"hint" validate:"max=255"`
	Options []optionRequest `json:"options" validate:"required,min=1,dive"`
}

type quizRequest struct {
	Title       string            `json:"title" validate:"required,max=255"`
	Description string            `json:"description" validate:"max=2000"`
	Questions   []questionRequest `json:"questions" validate:"dive"`
}

func (req quizRequest) toModel(id, creatorID int64) models.Quiz {
	quiz := models.Quiz{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		CreatorID:   creatorID,
	}
	for _, q := range req.Questions {
		question := models.Question{Text: q.Text, Hint: q.Hint}
		for _, o := range q.Options {
			question.Options = append(question.Options, models.Option{Text: o.Text, IsCorrect: o.IsCorrect})
		}
		quiz.Questions = append(quiz.Questions, question)
	}
	return quiz
}

func (s *Server) handleListQuizzes(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	filter := models.QuizFilter{
		Limit:  queryInt(r, "limit", 0),
		Offset: queryInt(r, "offset", 0),
	}

	scope := r.URL.Query().Get("scope")
	switch scope {
	case "", "all":
	case "mine", "others":
		principal := principalFromContext(r.Context())
		if principal == nil {
			handleError(w, r, errors.NewUnauthorizedError("authentication required for scope "+scope))
			return
		}
		if scope == "mine" {
			filter.CreatorID = principal.ID
		} else {
			filter.ExcludeCreatorID = principal.ID
		}
	default:
		handleError(w, r, errors.NewBadRequestError("unknown scope: "+scope))
		return
	}

	quizzes, err := s.QuizService.ListQuizzes(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("listed %d quizzes, scope=%s", len(quizzes), scope)
	respondJSON(w, r, http.StatusOK, quizzes)
}

func (s *Server) handleCreateQuiz(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())

	var req quizRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	quiz, err := s.QuizService.CreateQuiz(r.Context(), req.toModel(0, principal.ID))
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, quiz)
}

func (s *Server) handleGetQuiz(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	quiz, err := s.QuizService.GetQuiz(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, quiz)
}

func (s *Server) handleUpdateQuiz(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())

	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req quizRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	// Omitting questions updates the quiz row only; supplying them replaces
	// the whole question set.
	replaceQuestions := req.Questions != nil

	quiz, err := s.QuizService.UpdateQuiz(r.Context(), principal.ID, req.toModel(id, principal.ID), replaceQuestions)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, quiz)
}

func (s *Server) handleDeleteQuiz(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())

	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.QuizService.DeleteQuiz(r.Context(), principal.ID, id); err != nil {
		handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type submitRequest struct {
	Answers         map[int64]int64 `json:"answers"`
	AnswersRevealed bool            `json:"answers_revealed"`
}

func (s *Server) handleSubmitQuiz(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	principal := principalFromContext(r.Context())

	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req submitRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.ScoringService.Submit(r.Context(), principal.ID, id, req.Answers, req.AnswersRevealed)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("quiz submitted: quiz_id=%d, score=%d/%d", id, result.Score, result.TotalQuestions)
	respondJSON(w, r, http.StatusOK, result)
}
