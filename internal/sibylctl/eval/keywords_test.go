package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAnswerKeywords(t *testing.T) {
	v := ValidateAnswerKeywords("There are 11 customers from Germany.", []string{"11", "germany"})
	assert.Equal(t, []string{"11", "germany"}, v.Found)
	assert.Empty(t, v.Missing)
	assert.Equal(t, 1.0, v.Score)
	assert.True(t, v.Passed())
}

func TestValidateAnswerKeywordsPartial(t *testing.T) {
	v := ValidateAnswerKeywords("The top product is Raclette Courdavault.", []string{"Côte de Blaye", "Thüringer", "Raclette"})
	assert.Equal(t, []string{"Raclette"}, v.Found)
	assert.Equal(t, []string{"Côte de Blaye", "Thüringer"}, v.Missing)
	assert.InDelta(t, 1.0/3.0, v.Score, 1e-9)
	assert.False(t, v.Passed())
}

func TestValidateAnswerKeywordsCaseInsensitive(t *testing.T) {
	v := ValidateAnswerKeywords("the usa leads.", []string{"USA"})
	assert.True(t, v.Passed())
}

func TestValidateAnswerKeywordsEmptyExpected(t *testing.T) {
	v := ValidateAnswerKeywords("anything", nil)
	assert.Empty(t, v.Found)
	assert.Empty(t, v.Missing)
	assert.Equal(t, 0.0, v.Score)

	// Nothing expected means nothing can be missing.
	assert.True(t, v.Passed())
}

func TestValidateSQLKeywords(t *testing.T) {
	query := "SELECT country, COUNT(*) FROM customers GROUP BY country ORDER BY COUNT(*) DESC LIMIT 1"
	v := ValidateSQLKeywords(query, []string{"customers", "COUNT", "GROUP BY", "country", "ORDER BY", "LIMIT 1"})
	assert.True(t, v.Passed())
	assert.Equal(t, 1.0, v.Score)
}

func TestValidateSQLKeywordsMissing(t *testing.T) {
	v := ValidateSQLKeywords("SELECT * FROM customers", []string{"customers", "JOIN"})
	assert.Equal(t, []string{"customers"}, v.Found)
	assert.Equal(t, []string{"JOIN"}, v.Missing)
	assert.Equal(t, 0.5, v.Score)
}
