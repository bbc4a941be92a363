package trivia

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memQuestionStore struct {
	questions []Question
	nextID    int
	failWith  error
}

func newMemQuestionStore(questions ...Question) *memQuestionStore {
	nextID := 1
	for _, q := range questions {
		if q.ID >= nextID {
			nextID = q.ID + 1
		}
	}
	return &memQuestionStore{questions: questions, nextID: nextID}
}

func (s *memQuestionStore) List(context.Context) ([]Question, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	out := append([]Question(nil), s.questions...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memQuestionStore) ListByCategory(ctx context.Context, categoryID int) ([]Question, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []Question
	for _, q := range all {
		if q.Category == categoryID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *memQuestionStore) Search(ctx context.Context, term string) ([]Question, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []Question
	for _, q := range all {
		if strings.Contains(strings.ToLower(q.Question), strings.ToLower(term)) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *memQuestionStore) Insert(_ context.Context, q NewQuestion) (int, error) {
	if s.failWith != nil {
		return 0, s.failWith
	}
	id := s.nextID
	s.nextID++
	s.questions = append(s.questions, Question{
		ID:         id,
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   q.Category,
		Difficulty: q.Difficulty,
	})
	return id, nil
}

func (s *memQuestionStore) Delete(_ context.Context, id int) error {
	if s.failWith != nil {
		return s.failWith
	}
	for i, q := range s.questions {
		if q.ID == id {
			s.questions = append(s.questions[:i], s.questions[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

type memCategoryStore struct {
	categories []Category
	failWith   error
}

func (s *memCategoryStore) List(context.Context) ([]Category, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	return append([]Category(nil), s.categories...), nil
}

func (s *memCategoryStore) GetByID(ctx context.Context, id int) (Category, error) {
	if s.failWith != nil {
		return Category{}, s.failWith
	}
	for _, c := range s.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return Category{}, ErrNotFound
}

type memCategoryCache struct {
	categories []Category
	sets       int
}

func (c *memCategoryCache) Get(context.Context) ([]Category, error) {
	return c.categories, nil
}

func (c *memCategoryCache) Set(_ context.Context, categories []Category) error {
	c.categories = categories
	c.sets++
	return nil
}

func defaultCategories() *memCategoryStore {
	return &memCategoryStore{categories: []Category{
		{ID: 1, Type: "Science"},
		{ID: 2, Type: "Art"},
	}}
}

func newTestService(questions *memQuestionStore, categories *memCategoryStore, opts ServiceOptions) *Service {
	return NewService(questions, categories, opts, zerolog.Nop())
}

func TestCategoriesPrefersCache(t *testing.T) {
	cache := &memCategoryCache{categories: []Category{{ID: 9, Type: "Cached"}}}
	store := defaultCategories()
	store.failWith = errors.New("db down")
	svc := newTestService(newMemQuestionStore(), store, ServiceOptions{Cache: cache})

	categories, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Category{{ID: 9, Type: "Cached"}}, categories)
}

func TestCategoriesFillsCacheOnMiss(t *testing.T) {
	cache := &memCategoryCache{}
	svc := newTestService(newMemQuestionStore(), defaultCategories(), ServiceOptions{Cache: cache})

	categories, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 2)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, categories, cache.categories)
}

func TestQuestionPage(t *testing.T) {
	svc := newTestService(newMemQuestionStore(numberedQuestions(25)...), defaultCategories(), ServiceOptions{})

	page, err := svc.QuestionPage(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, page.Questions, 5)
	assert.Equal(t, 21, page.Questions[0].ID)
	assert.Equal(t, 25, page.TotalQuestions)
	assert.Equal(t, map[int]string{1: "Science", 2: "Art"}, page.Categories)
	assert.Equal(t, "Science", page.CurrentCategory)
}

func TestQuestionPageBeyondDataIsNotFound(t *testing.T) {
	svc := newTestService(newMemQuestionStore(numberedQuestions(25)...), defaultCategories(), ServiceOptions{})

	_, err := svc.QuestionPage(context.Background(), 4)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchQuestionsCaseInsensitive(t *testing.T) {
	store := newMemQuestionStore(
		Question{ID: 1, Question: "What movie Title won in 1996?", Category: 1},
		Question{ID: 2, Question: "Who painted the Mona Lisa?", Category: 2},
	)
	svc := newTestService(store, defaultCategories(), ServiceOptions{})

	result, err := svc.SearchQuestions(context.Background(), "title", 1)
	require.NoError(t, err)
	require.Len(t, result.Questions, 1)
	assert.Equal(t, 1, result.Questions[0].ID)
	assert.Equal(t, 1, result.TotalQuestions)
}

func TestSearchQuestionsNoMatchesIsEmptyNotError(t *testing.T) {
	svc := newTestService(newMemQuestionStore(numberedQuestions(3)...), defaultCategories(), ServiceOptions{})

	result, err := svc.SearchQuestions(context.Background(), "zzz-no-match", 1)
	require.NoError(t, err)
	assert.Empty(t, result.Questions)
	assert.Zero(t, result.TotalQuestions)
}

func TestQuestionsByCategory(t *testing.T) {
	store := newMemQuestionStore(
		Question{ID: 1, Question: "a", Category: 1},
		Question{ID: 2, Question: "b", Category: 2},
		Question{ID: 3, Question: "c", Category: 2},
	)
	svc := newTestService(store, defaultCategories(), ServiceOptions{})

	result, err := svc.QuestionsByCategory(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.Len(t, result.Questions, 2)
	assert.Equal(t, 2, result.TotalQuestions)
	assert.Equal(t, "Art", result.CurrentCategory)
}

func TestQuestionsByCategoryMissingCategory(t *testing.T) {
	svc := newTestService(newMemQuestionStore(), defaultCategories(), ServiceOptions{})

	_, err := svc.QuestionsByCategory(context.Background(), 42, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateQuestionRejectsEmptyText(t *testing.T) {
	svc := newTestService(newMemQuestionStore(), defaultCategories(), ServiceOptions{})

	_, err := svc.CreateQuestion(context.Background(), NewQuestion{Question: "", Answer: "x"})
	assert.ErrorIs(t, err, ErrUnprocessable)

	_, err = svc.CreateQuestion(context.Background(), NewQuestion{Question: "x", Answer: "   "})
	assert.ErrorIs(t, err, ErrUnprocessable)
}

func TestCreateQuestionAppliesDefaults(t *testing.T) {
	store := newMemQuestionStore()
	svc := newTestService(store, defaultCategories(), ServiceOptions{})

	result, err := svc.CreateQuestion(context.Background(), NewQuestion{Question: "q", Answer: "a"})
	require.NoError(t, err)
	require.Len(t, store.questions, 1)
	assert.Equal(t, DefaultCategory, store.questions[0].Category)
	assert.Equal(t, DefaultDifficulty, store.questions[0].Difficulty)
	assert.Equal(t, result.ID, store.questions[0].ID)
}

func TestCreateQuestionReturnsLandingPage(t *testing.T) {
	store := newMemQuestionStore(numberedQuestions(10)...)
	svc := newTestService(store, defaultCategories(), ServiceOptions{})

	result, err := svc.CreateQuestion(context.Background(), NewQuestion{Question: "q", Answer: "a"})
	require.NoError(t, err)
	assert.Equal(t, 11, result.TotalQuestions)
	// The new question opens page 2.
	require.Len(t, result.Questions, 1)
	assert.Equal(t, result.ID, result.Questions[0].ID)
}

func TestCreateThenDeleteRoundTrip(t *testing.T) {
	store := newMemQuestionStore(numberedQuestions(5)...)
	svc := newTestService(store, defaultCategories(), ServiceOptions{})
	before := len(store.questions)

	created, err := svc.CreateQuestion(context.Background(), NewQuestion{Question: "q", Answer: "a"})
	require.NoError(t, err)

	deleted, err := svc.DeleteQuestion(context.Background(), created.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.Deleted)
	assert.Equal(t, before, deleted.TotalQuestions)
}

func TestDeleteQuestionMissing(t *testing.T) {
	svc := newTestService(newMemQuestionStore(), defaultCategories(), ServiceOptions{})

	_, err := svc.DeleteQuestion(context.Background(), 999999, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNextQuizQuestionFiltersCategoryAndPrevious(t *testing.T) {
	store := newMemQuestionStore(
		Question{ID: 5, Question: "a", Category: 1},
		Question{ID: 6, Question: "b", Category: 1},
		Question{ID: 7, Question: "c", Category: 1},
		Question{ID: 8, Question: "d", Category: 2},
	)
	svc := newTestService(store, defaultCategories(), ServiceOptions{})

	for i := 0; i < 25; i++ {
		q, err := svc.NextQuizQuestion(context.Background(), 1, []int{5, 6})
		require.NoError(t, err)
		require.NotNil(t, q)
		assert.Equal(t, 7, q.ID)
	}
}

func TestNextQuizQuestionAnyCategory(t *testing.T) {
	store := newMemQuestionStore(
		Question{ID: 1, Question: "a", Category: 1},
		Question{ID: 2, Question: "b", Category: 2},
	)
	svc := newTestService(store, defaultCategories(), ServiceOptions{})

	q, err := svc.NextQuizQuestion(context.Background(), AnyCategory, []int{1})
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, 2, q.ID)
}

func TestNextQuizQuestionExhaustedPool(t *testing.T) {
	store := newMemQuestionStore(Question{ID: 1, Question: "a", Category: 1})
	svc := newTestService(store, defaultCategories(), ServiceOptions{})

	q, err := svc.NextQuizQuestion(context.Background(), 1, []int{1})
	require.NoError(t, err)
	assert.Nil(t, q)
}
