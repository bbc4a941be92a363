package trivia

// Defaults applied when a create request omits the field.
const (
	DefaultCategory   = 1
	DefaultDifficulty = 1
)

// AnyCategory is the sentinel category id meaning "no category filter".
const AnyCategory = 0

// Question is a stored trivia question as delivered to clients.
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// Category is a question grouping. Categories are seed data and read-only
// through the API.
type Category struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// CategoryMap renders categories the way every listing response carries
// them: an id -> display-name object.
func CategoryMap(categories []Category) map[int]string {
	m := make(map[int]string, len(categories))
	for _, c := range categories {
		m[c.ID] = c.Type
	}
	return m
}

// NewQuestion is the payload accepted by question creation. Category and
// Difficulty fall back to defaults when left zero.
type NewQuestion struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// QuestionPage bundles everything the paged listing endpoints return.
type QuestionPage struct {
	Questions       []Question
	TotalQuestions  int
	Categories      map[int]string
	CurrentCategory string
}
