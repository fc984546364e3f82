package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/scom-repos/scom-scatter-chart-sub000/database"
	"github.com/yaoapp/kun/log"
)

var (
	sqlPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)\b(SELECT|WITH)\s.*?;`),
		regexp.MustCompile(`(?is)\b(SELECT|WITH)\s[^;]*`),
	}
	sqlLead = regexp.MustCompile(`(?is)^.*?(\bSELECT\b|\bWITH\b)`)
)

// GenerateQuery turns a natural-language prompt into a single PostgreSQL
// query. The draft query is rewritten against tables when any are given and
// then extracted from the model's final answer.
func GenerateQuery(ctx context.Context, llm LLM, prompt string, tables []database.TableSchema) (string, error) {
	initial, err := initialQuery(ctx, llm, prompt)
	if err != nil {
		return "", fmt.Errorf("initial query generation error: %w", err)
	}
	log.Trace("[services] initial query: %s", initial)

	query := initial
	if len(tables) > 0 {
		query, err = refineQuery(ctx, llm, initial, tables)
		if err != nil {
			return "", fmt.Errorf("query refinement error: %w", err)
		}
		log.Trace("[services] refined query: %s", query)
	}

	final, err := finalQuery(ctx, llm, query)
	if err != nil {
		return "", fmt.Errorf("final query generation error: %w", err)
	}
	log.With(log.F{"prompt": prompt, "query": final}).Info("[services] query generated")
	return final, nil
}

func initialQuery(ctx context.Context, llm LLM, prompt string) (string, error) {
	text, err := llm.Generate(ctx,
		fmt.Sprintf("Return ONLY the PostgreSQL query, no explanations or extra text:\n\n%s\n\nPostgreSQL Query:\n", prompt),
		Params{MaxTokens: 500, Temperature: 0.5, TopK: 50, TopP: 0.9},
	)
	if err != nil {
		return "", err
	}
	return checkQuery(cleanQuery(text))
}

func refineQuery(ctx context.Context, llm LLM, query string, tables []database.TableSchema) (string, error) {
	prompt := fmt.Sprintf(
		`Generate only the PostgreSQL plain query without any explanation.
You should follow the Database Schema:
%s

Query Requirements:
- replace the tables and columns names with database schema.
- no explanation or extra text only query.
- Should follow the schema for column types and constraints.

Query:
%s

PostgreSQL Query:
`, database.Describe(tables), query)

	text, err := llm.Generate(ctx, prompt, Params{MaxTokens: 800, Temperature: 0.4, TopK: 50, TopP: 0.95})
	if err != nil {
		return "", err
	}
	return checkQuery(strings.Join(strings.Fields(cleanQuery(text)), " "))
}

func finalQuery(ctx context.Context, llm LLM, query string) (string, error) {
	prompt := fmt.Sprintf(
		`Instruction: Generate ONLY a valid PostgreSQL query based on the following context.
NO ADDITIONAL TEXT. NO EXPLANATION.
PURE SQL QUERY ONLY:

Context: %s
QUERY:`, query)

	text, err := llm.Generate(ctx, prompt, Params{MaxTokens: 800, Temperature: 0.1, TopK: 10, TopP: 0.9})
	if err != nil {
		return "", err
	}

	final := extractSQLQuery(text)
	final = strings.TrimSpace(final)
	final = strings.Trim(final, "`;\"'")
	final = sqlLead.ReplaceAllString(final, "$1")
	return checkQuery(strings.TrimSpace(final))
}

func cleanQuery(text string) string {
	q := strings.TrimSpace(text)
	q = strings.TrimPrefix(q, "```sql")
	q = strings.TrimPrefix(q, "```")
	q = strings.TrimSuffix(q, "```")
	return strings.TrimSpace(q)
}

func checkQuery(q string) (string, error) {
	if q == "" {
		return "", ErrEmptyResponse
	}
	lower := strings.ToLower(q)
	if !strings.HasPrefix(lower, "select") && !strings.HasPrefix(lower, "with") {
		return "", fmt.Errorf("generated text does not appear to be a valid PostgreSQL query: %s", q)
	}
	return q, nil
}

func extractSQLQuery(text string) string {
	for _, re := range sqlPatterns {
		if match := re.FindString(text); match != "" {
			return match
		}
	}
	return ""
}
