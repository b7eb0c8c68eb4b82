package eval

import "strings"

// Validation is the result of checking a text against its expected
// keywords. Score is found over expected, zero when nothing was
// expected.
type Validation struct {
	Found   []string
	Missing []string
	Score   float64
}

// ValidateSQLKeywords checks that a SQL query contains the expected
// keywords, case-insensitively.
func ValidateSQLKeywords(sqlQuery string, expected []string) Validation {
	sqlUpper := strings.ToUpper(sqlQuery)
	v := Validation{}
	for _, keyword := range expected {
		if strings.Contains(sqlUpper, strings.ToUpper(keyword)) {
			v.Found = append(v.Found, keyword)
		} else {
			v.Missing = append(v.Missing, keyword)
		}
	}
	if len(expected) > 0 {
		v.Score = float64(len(v.Found)) / float64(len(expected))
	}
	return v
}

// ValidateAnswerKeywords checks that an answer contains the expected
// keywords, case-insensitively.
func ValidateAnswerKeywords(answer string, expected []string) Validation {
	answerLower := strings.ToLower(answer)
	v := Validation{}
	for _, keyword := range expected {
		if strings.Contains(answerLower, strings.ToLower(keyword)) {
			v.Found = append(v.Found, keyword)
		} else {
			v.Missing = append(v.Missing, keyword)
		}
	}
	if len(expected) > 0 {
		v.Score = float64(len(v.Found)) / float64(len(expected))
	}
	return v
}

// Passed reports whether every expected keyword was found.
func (v Validation) Passed() bool {
	return len(v.Missing) == 0
}
