// Package eval holds the golden question dataset and the keyword
// validators the evaluation harness scores answers with.
package eval

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/goccy/go-yaml"
)

// Case is one evaluation question with the keywords a correct SQL query
// and a correct answer are expected to contain.
type Case struct {
	Question               string   `yaml:"question"                 json:"question"`
	ExpectedSQLKeywords    []string `yaml:"expected_sql_keywords"    json:"expected_sql_keywords"`
	ExpectedAnswerKeywords []string `yaml:"expected_answer_keywords" json:"expected_answer_keywords"`
	Category               string   `yaml:"category"                 json:"category"`
	Difficulty             string   `yaml:"difficulty"               json:"difficulty"`
	Note                   string   `yaml:"note,omitempty"           json:"note,omitempty"`
}

// Categories describes the question groupings.
var Categories = map[string]string{
	"customer_analysis":    "Questions about customer data, segmentation, and behavior",
	"employee_performance": "Questions about employee sales and performance metrics",
	"product_performance":  "Questions about product sales, rankings, and performance",
	"sales_analysis":       "Questions about sales data, trends, and metrics",
	"supply_chain":         "Questions about suppliers and supply chain relationships",
	"product_analysis":     "Questions about product categories, pricing, and characteristics",
	"financial_analysis":   "Questions about revenue, costs, and financial metrics",
}

// DifficultyLevels describes the difficulty tiers.
var DifficultyLevels = map[string]string{
	"easy":   "Basic queries with simple WHERE clauses and aggregations",
	"medium": "Queries involving JOINs and more complex aggregations",
	"hard":   "Complex queries with multiple JOINs, subqueries, or advanced functions",
}

// Questions returns the built-in golden dataset. The expected answers
// are facts of the bundled sample warehouse.
func Questions() []Case {
	return []Case{
		{
			Question:               "Which country has the most customers?",
			ExpectedSQLKeywords:    []string{"customers", "COUNT", "GROUP BY", "country", "ORDER BY", "LIMIT 1"},
			ExpectedAnswerKeywords: []string{"USA"},
			Category:               "customer_analysis",
			Difficulty:             "easy",
		},
		{
			Question:               "What is the name of the employee who has the most sales orders?",
			ExpectedSQLKeywords:    []string{"employees", "orders", "COUNT", "JOIN", "GROUP BY", "employee_id"},
			ExpectedAnswerKeywords: []string{"Peacock"},
			Category:               "employee_performance",
			Difficulty:             "medium",
			Note:                   "Margaret Peacock handles the most orders in the sample dataset.",
		},
		{
			Question:               "What are the top 3 best-selling products by total sales amount?",
			ExpectedSQLKeywords:    []string{"order_details", "products", "SUM", "unit_price", "quantity", "LIMIT 3"},
			ExpectedAnswerKeywords: []string{"Côte de Blaye", "Thüringer", "Raclette"},
			Category:               "product_performance",
			Difficulty:             "medium",
		},
		{
			Question:               "How many customers are from Germany?",
			ExpectedSQLKeywords:    []string{"customers", "COUNT", "WHERE", "country", "Germany"},
			ExpectedAnswerKeywords: []string{"11"},
			Category:               "customer_analysis",
			Difficulty:             "easy",
		},
		{
			Question:               "What is the average order value?",
			ExpectedSQLKeywords:    []string{"order_details", "AVG", "unit_price", "quantity"},
			ExpectedAnswerKeywords: []string{"average"},
			Category:               "sales_analysis",
			Difficulty:             "medium",
		},
		{
			Question:               "Which supplier provides the most products?",
			ExpectedSQLKeywords:    []string{"suppliers", "products", "COUNT", "JOIN", "GROUP BY", "supplier_id"},
			ExpectedAnswerKeywords: []string{"supplier"},
			Category:               "supply_chain",
			Difficulty:             "medium",
		},
		{
			Question:               "What are the top 5 customers by total order value?",
			ExpectedSQLKeywords:    []string{"customers", "orders", "order_details", "SUM", "unit_price", "quantity", "JOIN", "GROUP BY", "customer_id", "LIMIT 5"},
			ExpectedAnswerKeywords: []string{"customer"},
			Category:               "customer_analysis",
			Difficulty:             "hard",
		},
		{
			Question:               "How many orders were placed in 1997?",
			ExpectedSQLKeywords:    []string{"orders", "COUNT", "WHERE", "order_date", "1997"},
			ExpectedAnswerKeywords: []string{"1997"},
			Category:               "sales_analysis",
			Difficulty:             "easy",
		},
		{
			Question:               "Which product category has the highest average unit price?",
			ExpectedSQLKeywords:    []string{"products", "categories", "AVG", "unit_price", "JOIN", "GROUP BY", "category_id"},
			ExpectedAnswerKeywords: []string{"category"},
			Category:               "product_analysis",
			Difficulty:             "medium",
		},
		{
			Question:               "What is the total revenue for each quarter of 1997?",
			ExpectedSQLKeywords:    []string{"orders", "order_details", "SUM", "unit_price", "quantity", "EXTRACT", "QUARTER", "order_date", "WHERE", "1997"},
			ExpectedAnswerKeywords: []string{"quarter", "1997"},
			Category:               "financial_analysis",
			Difficulty:             "hard",
		},
	}
}

// LoadDataset reads cases from a YAML file: a list of mappings with the
// same keys the built-in dataset uses.
func LoadDataset(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	var cases []Case
	if err := yaml.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	if len(cases) == 0 {
		return nil, fmt.Errorf("dataset %s contains no cases", path)
	}
	for i, c := range cases {
		if c.Question == "" {
			return nil, fmt.Errorf("dataset %s: case %d has no question", path, i+1)
		}
	}
	return cases, nil
}

// ByCategory filters cases to one category; an empty category keeps all.
func ByCategory(cases []Case, category string) []Case {
	if category == "" {
		return cases
	}
	out := make([]Case, 0, len(cases))
	for _, c := range cases {
		if c.Category == category {
			out = append(out, c)
		}
	}
	return out
}

// ByDifficulty filters cases to one difficulty; empty keeps all.
func ByDifficulty(cases []Case, difficulty string) []Case {
	if difficulty == "" {
		return cases
	}
	out := make([]Case, 0, len(cases))
	for _, c := range cases {
		if c.Difficulty == difficulty {
			out = append(out, c)
		}
	}
	return out
}

// Sample returns n randomly chosen cases without replacement; n <= 0 or
// n >= len(cases) keeps all, in order.
func Sample(cases []Case, n int) []Case {
	if n <= 0 || n >= len(cases) {
		return cases
	}
	idx := rand.Perm(len(cases))[:n]
	out := make([]Case, 0, n)
	for _, i := range idx {
		out = append(out, cases[i])
	}
	return out
}
