package eval

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinDataset(t *testing.T) {
	cases := Questions()
	require.Len(t, cases, 10)

	for _, c := range cases {
		assert.NotEmpty(t, c.Question)
		assert.NotEmpty(t, c.ExpectedAnswerKeywords, "question %q", c.Question)
		assert.NotEmpty(t, c.ExpectedSQLKeywords, "question %q", c.Question)
		assert.Contains(t, Categories, c.Category, "question %q", c.Question)
		assert.Contains(t, DifficultyLevels, c.Difficulty, "question %q", c.Question)
	}
}

func TestBuiltinDatasetPinsKnownFacts(t *testing.T) {
	cases := Questions()

	assert.Equal(t, []string{"USA"}, cases[0].ExpectedAnswerKeywords)
	assert.Equal(t, []string{"Peacock"}, cases[1].ExpectedAnswerKeywords)
	assert.Equal(t, []string{"11"}, cases[3].ExpectedAnswerKeywords)
	assert.Equal(t, "How many customers are from Germany?", cases[3].Question)
}

func TestByCategory(t *testing.T) {
	cases := ByCategory(Questions(), "customer_analysis")
	require.Len(t, cases, 3)
	for _, c := range cases {
		assert.Equal(t, "customer_analysis", c.Category)
	}

	assert.Len(t, ByCategory(Questions(), ""), 10)
	assert.Empty(t, ByCategory(Questions(), "nope"))
}

func TestByDifficulty(t *testing.T) {
	easy := ByDifficulty(Questions(), "easy")
	require.Len(t, easy, 3)
	for _, c := range easy {
		assert.Equal(t, "easy", c.Difficulty)
	}

	assert.Len(t, ByDifficulty(Questions(), "hard"), 2)
}

func TestSample(t *testing.T) {
	all := Questions()

	assert.Len(t, Sample(all, 4), 4)
	assert.Len(t, Sample(all, 0), 10)
	assert.Len(t, Sample(all, -1), 10)
	assert.Len(t, Sample(all, 99), 10)

	// Sampled cases must come from the dataset, without duplicates.
	seen := map[string]bool{}
	for _, c := range Sample(all, 5) {
		assert.False(t, seen[c.Question], "duplicate %q", c.Question)
		seen[c.Question] = true
	}
}

func TestLoadDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.yml")
	content := `- question: "How many widgets were sold?"
  expected_sql_keywords:
    - widgets
    - COUNT
  expected_answer_keywords:
    - "42"
  category: sales_analysis
  difficulty: easy
- question: "Which region grew fastest?"
  expected_answer_keywords:
    - region
  category: financial_analysis
  difficulty: hard
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cases, err := LoadDataset(path)
	require.NoError(t, err)
	require.Len(t, cases, 2)
	assert.Equal(t, "How many widgets were sold?", cases[0].Question)
	assert.Equal(t, []string{"widgets", "COUNT"}, cases[0].ExpectedSQLKeywords)
	assert.Equal(t, []string{"42"}, cases[0].ExpectedAnswerKeywords)
	assert.Equal(t, "hard", cases[1].Difficulty)
}

func TestLoadDatasetRejectsBadFiles(t *testing.T) {
	_, err := LoadDataset(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.yml")
	require.NoError(t, os.WriteFile(empty, []byte("[]\n"), 0o644))
	_, err = LoadDataset(empty)
	assert.ErrorContains(t, err, "no cases")

	noQuestion := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(noQuestion, []byte("- category: x\n"), 0o644))
	_, err = LoadDataset(noQuestion)
	assert.ErrorContains(t, err, "has no question")
}
