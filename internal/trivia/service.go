package trivia

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// QuestionStore is the persistence capability the service needs for
// questions. Implemented by the pgx repository in production and by
// in-memory stubs in tests.
type QuestionStore interface {
	List(ctx context.Context) ([]Question, error)
	ListByCategory(ctx context.Context, categoryID int) ([]Question, error)
	Search(ctx context.Context, term string) ([]Question, error)
	Insert(ctx context.Context, q NewQuestion) (int, error)
	Delete(ctx context.Context, id int) error
}

// CategoryStore is the persistence capability for categories.
type CategoryStore interface {
	List(ctx context.Context) ([]Category, error)
	GetByID(ctx context.Context, id int) (Category, error)
}

// Service implements the trivia API operations on top of the stores.
type Service struct {
	questions  QuestionStore
	categories CategoryStore
	cache      CategoryCache
	intn       func(n int) int
	logger     zerolog.Logger
}

// ServiceOptions tunes optional service behavior.
type ServiceOptions struct {
	// Cache, when set, is consulted before the category store.
	Cache CategoryCache
	// IntN overrides the random source used by quiz selection. Tests
	// supply a deterministic one; the default is math/rand/v2.
	IntN func(n int) int
}

func NewService(questions QuestionStore, categories CategoryStore, opts ServiceOptions, logger zerolog.Logger) *Service {
	intn := opts.IntN
	if intn == nil {
		intn = defaultIntN
	}
	return &Service{
		questions:  questions,
		categories: categories,
		cache:      opts.Cache,
		intn:       intn,
		logger:     logger.With().Str("component", "trivia_service").Logger(),
	}
}

// Categories returns every category ordered by ascending id, preferring the
// cache when one is configured. Cache failures fall through to the store.
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx); err == nil && cached != nil {
			return cached, nil
		} else if err != nil {
			s.logger.Warn().Err(err).Msg("category cache read failed")
		}
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, categories); err != nil {
			s.logger.Warn().Err(err).Msg("category cache write failed")
		}
	}
	return categories, nil
}

// QuestionPage returns one page of all questions together with the full
// category map. A page past the end of the data is ErrNotFound: the plain
// listing endpoint promises at least one question per page.
func (s *Service) QuestionPage(ctx context.Context, page int) (QuestionPage, error) {
	all, err := s.questions.List(ctx)
	if err != nil {
		return QuestionPage{}, fmt.Errorf("list questions: %w", err)
	}

	slice := Paginate(all, page)
	if len(slice) == 0 {
		return QuestionPage{}, fmt.Errorf("page %d: %w", page, ErrNotFound)
	}

	categories, err := s.Categories(ctx)
	if err != nil {
		return QuestionPage{}, err
	}

	current := ""
	if len(categories) > 0 {
		current = categories[0].Type
	}
	return QuestionPage{
		Questions:       slice,
		TotalQuestions:  len(all),
		Categories:      CategoryMap(categories),
		CurrentCategory: current,
	}, nil
}

// SearchQuestions returns the page of questions whose text contains term as
// a case-insensitive substring. No matches is a valid empty result.
func (s *Service) SearchQuestions(ctx context.Context, term string, page int) (QuestionPage, error) {
	matches, err := s.questions.Search(ctx, term)
	if err != nil {
		return QuestionPage{}, fmt.Errorf("search questions: %w", err)
	}
	return QuestionPage{
		Questions:      Paginate(matches, page),
		TotalQuestions: len(matches),
	}, nil
}

// QuestionsByCategory returns the page of questions in the given category.
// The category must exist; its display name is returned as context.
func (s *Service) QuestionsByCategory(ctx context.Context, categoryID, page int) (QuestionPage, error) {
	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return QuestionPage{}, fmt.Errorf("category %d: %w", categoryID, err)
	}

	questions, err := s.questions.ListByCategory(ctx, categoryID)
	if err != nil {
		return QuestionPage{}, fmt.Errorf("list questions by category: %w", err)
	}
	return QuestionPage{
		Questions:       Paginate(questions, page),
		TotalQuestions:  len(questions),
		CurrentCategory: category.Type,
	}, nil
}

// CreateResult reports a successful question creation: the assigned id plus
// the page the new question landed on.
type CreateResult struct {
	ID             int
	Questions      []Question
	TotalQuestions int
}

// CreateQuestion validates and persists a new question. Empty question or
// answer text is ErrUnprocessable; zero category/difficulty take defaults.
// Category references are not checked against the category store.
func (s *Service) CreateQuestion(ctx context.Context, input NewQuestion) (CreateResult, error) {
	if strings.TrimSpace(input.Question) == "" || strings.TrimSpace(input.Answer) == "" {
		return CreateResult{}, fmt.Errorf("question and answer are required: %w", ErrUnprocessable)
	}
	if input.Category == 0 {
		input.Category = DefaultCategory
	}
	if input.Difficulty == 0 {
		input.Difficulty = DefaultDifficulty
	}

	id, err := s.questions.Insert(ctx, input)
	if err != nil {
		return CreateResult{}, fmt.Errorf("insert question: %w", err)
	}
	s.logger.Info().Int("question_id", id).Int("category", input.Category).Msg("question created")

	all, err := s.questions.List(ctx)
	if err != nil {
		return CreateResult{}, fmt.Errorf("list questions: %w", err)
	}
	// Ids ascend, so the freshly created question sits on the last page.
	return CreateResult{
		ID:             id,
		Questions:      Paginate(all, PageCount(len(all))),
		TotalQuestions: len(all),
	}, nil
}

// DeleteResult reports a successful deletion: the removed id plus the
// caller's page of the remaining questions.
type DeleteResult struct {
	Deleted        int
	Questions      []Question
	TotalQuestions int
}

// DeleteQuestion removes the question with the given id, failing with
// ErrNotFound when it does not exist.
func (s *Service) DeleteQuestion(ctx context.Context, id, page int) (DeleteResult, error) {
	if err := s.questions.Delete(ctx, id); err != nil {
		return DeleteResult{}, fmt.Errorf("delete question %d: %w", id, err)
	}
	s.logger.Info().Int("question_id", id).Msg("question deleted")

	remaining, err := s.questions.List(ctx)
	if err != nil {
		return DeleteResult{}, fmt.Errorf("list questions: %w", err)
	}
	return DeleteResult{
		Deleted:        id,
		Questions:      Paginate(remaining, page),
		TotalQuestions: len(remaining),
	}, nil
}

// NextQuizQuestion picks one question uniformly at random from the
// questions in categoryID (all questions when categoryID is AnyCategory)
// whose ids are not in previous. A nil question means the pool is
// exhausted.
func (s *Service) NextQuizQuestion(ctx context.Context, categoryID int, previous []int) (*Question, error) {
	var (
		candidates []Question
		err        error
	)
	if categoryID == AnyCategory {
		candidates, err = s.questions.List(ctx)
	} else {
		candidates, err = s.questions.ListByCategory(ctx, categoryID)
	}
	if err != nil {
		return nil, fmt.Errorf("load quiz pool: %w", err)
	}
	return pickQuizQuestion(candidates, previous, s.intn), nil
}
