package trivia

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	httperrors "github.com/triviahub/trivia-api/pkg/http/errors"
)

// HTTPHandler exposes the trivia REST endpoints.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandler constructs the trivia HTTP handler.
func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "trivia_http").Logger(),
	}
}

type categoriesResponse struct {
	Success         bool           `json:"success"`
	Categories      map[int]string `json:"categories"`
	TotalCategories int            `json:"total_categories"`
}

type questionListResponse struct {
	Success         bool           `json:"success"`
	Questions       []Question     `json:"questions"`
	Categories      map[int]string `json:"categories"`
	TotalQuestions  int            `json:"total_questions"`
	CurrentCategory string         `json:"current_category"`
}

type searchResponse struct {
	Success        bool       `json:"success"`
	Questions      []Question `json:"questions"`
	TotalQuestions int        `json:"total_questions"`
}

type categoryQuestionsResponse struct {
	Success         bool       `json:"success"`
	Questions       []Question `json:"questions"`
	TotalQuestions  int        `json:"total_questions"`
	CurrentCategory string     `json:"current_category"`
}

type createResponse struct {
	Success        bool       `json:"success"`
	Created        int        `json:"created"`
	Questions      []Question `json:"questions"`
	TotalQuestions int        `json:"total_questions"`
}

type deleteResponse struct {
	Success        bool       `json:"success"`
	Deleted        int        `json:"deleted"`
	Questions      []Question `json:"questions"`
	TotalQuestions int        `json:"total_questions"`
}

type quizRequest struct {
	QuizCategory      *quizCategory `json:"quiz_category"`
	PreviousQuestions []int         `json:"previous_questions"`
}

type quizCategory struct {
	ID int `json:"id"`
}

type quizResponse struct {
	Success           bool      `json:"success"`
	Question          *Question `json:"question"`
	PreviousQuestions []int     `json:"previous_questions"`
}

// HandleListCategories serves GET /categories.
func (h *HTTPHandler) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Categories(r.Context())
	if err != nil {
		// Observed contract: an unreadable category collection is 404.
		h.logger.Error().Err(err).Msg("list categories failed")
		httperrors.RespondNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, categoriesResponse{
		Success:         true,
		Categories:      CategoryMap(categories),
		TotalCategories: len(categories),
	})
}

// HandleListQuestions serves GET /questions?page=N.
func (h *HTTPHandler) HandleListQuestions(w http.ResponseWriter, r *http.Request) {
	page := ParsePage(r.URL.Query().Get("page"))
	result, err := h.svc.QuestionPage(r.Context(), page)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, questionListResponse{
		Success:         true,
		Questions:       nonNil(result.Questions),
		Categories:      result.Categories,
		TotalQuestions:  result.TotalQuestions,
		CurrentCategory: result.CurrentCategory,
	})
}

// HandleQuestionsPost serves POST /questions, which is two operations on
// one route: a body carrying searchTerm is a search, anything else is a
// create.
func (h *HTTPHandler) HandleQuestionsPost(w http.ResponseWriter, r *http.Request) {
	var probe struct {
		SearchTerm *string `json:"searchTerm"`
		NewQuestion
	}
	if err := json.NewDecoder(r.Body).Decode(&probe); err != nil {
		httperrors.RespondUnprocessable(w)
		return
	}

	if probe.SearchTerm != nil {
		h.search(w, r, *probe.SearchTerm)
		return
	}
	h.create(w, r, probe.NewQuestion)
}

func (h *HTTPHandler) search(w http.ResponseWriter, r *http.Request, term string) {
	page := ParsePage(r.URL.Query().Get("page"))
	result, err := h.svc.SearchQuestions(r.Context(), term, page)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, searchResponse{
		Success:        true,
		Questions:      nonNil(result.Questions),
		TotalQuestions: result.TotalQuestions,
	})
}

func (h *HTTPHandler) create(w http.ResponseWriter, r *http.Request, input NewQuestion) {
	result, err := h.svc.CreateQuestion(r.Context(), input)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createResponse{
		Success:        true,
		Created:        result.ID,
		Questions:      nonNil(result.Questions),
		TotalQuestions: result.TotalQuestions,
	})
}

// HandleDeleteQuestion serves DELETE /questions/{id}?page=N.
func (h *HTTPHandler) HandleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httperrors.RespondBadRequest(w)
		return
	}
	page := ParsePage(r.URL.Query().Get("page"))

	result, err := h.svc.DeleteQuestion(r.Context(), id, page)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{
		Success:        true,
		Deleted:        result.Deleted,
		Questions:      nonNil(result.Questions),
		TotalQuestions: result.TotalQuestions,
	})
}

// HandleCategoryQuestions serves GET /categories/{id}/questions?page=N.
func (h *HTTPHandler) HandleCategoryQuestions(w http.ResponseWriter, r *http.Request) {
	categoryID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httperrors.RespondBadRequest(w)
		return
	}
	page := ParsePage(r.URL.Query().Get("page"))

	result, err := h.svc.QuestionsByCategory(r.Context(), categoryID, page)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categoryQuestionsResponse{
		Success:         true,
		Questions:       nonNil(result.Questions),
		TotalQuestions:  result.TotalQuestions,
		CurrentCategory: result.CurrentCategory,
	})
}

// HandleQuiz serves POST /quizzes. A body that does not decode (for
// example previous_questions given as an object) is unprocessable; an
// absent quiz_category or id 0 means any category.
func (h *HTTPHandler) HandleQuiz(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondUnprocessable(w)
		return
	}

	categoryID := AnyCategory
	if req.QuizCategory != nil {
		categoryID = req.QuizCategory.ID
	}
	previous := req.PreviousQuestions
	if previous == nil {
		previous = []int{}
	}

	question, err := h.svc.NextQuizQuestion(r.Context(), categoryID, previous)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quizResponse{
		Success:           true,
		Question:          question,
		PreviousQuestions: previous,
	})
}

func (h *HTTPHandler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httperrors.RespondNotFound(w)
	case errors.Is(err, ErrUnprocessable):
		httperrors.RespondUnprocessable(w)
	default:
		h.logger.Error().Err(err).Msg("request failed")
		httperrors.RespondInternalError(w)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func nonNil(qs []Question) []Question {
	if qs == nil {
		return []Question{}
	}
	return qs
}
