package services

import (
	"context"
	"errors"
	"testing"

	"github.com/scom-repos/scom-scatter-chart-sub000/chart"
	"github.com/scom-repos/scom-scatter-chart-sub000/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedLLM struct {
	answers []string
	prompts []string
	err     error
}

func (s *scriptedLLM) Generate(_ context.Context, prompt string, _ Params) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	if len(s.answers) == 0 {
		return "", nil
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer, nil
}

func TestGenerateQuery(t *testing.T) {
	llm := &scriptedLLM{answers: []string{
		"```sql\nSELECT day, amount FROM stake\n```",
		"SELECT day,\n  staked_eth FROM staking",
		"Sure! Here it is: SELECT day, staked_eth FROM staking; Hope this helps",
	}}
	tables := []database.TableSchema{{
		Name:    "staking",
		Columns: []database.ColumnSchema{{Name: "day", Type: "date"}, {Name: "staked_eth", Type: "numeric", Nullable: true}},
	}}

	query, err := GenerateQuery(context.Background(), llm, "ETH staked per day", tables)
	require.NoError(t, err)
	assert.Equal(t, "SELECT day, staked_eth FROM staking", query)
	require.Len(t, llm.prompts, 3)
	assert.Contains(t, llm.prompts[0], "ETH staked per day")
	assert.Contains(t, llm.prompts[1], "staked_eth (numeric)")
	assert.Contains(t, llm.prompts[2], "SELECT day, staked_eth FROM staking")
}

func TestGenerateQueryWithoutSchema(t *testing.T) {
	llm := &scriptedLLM{answers: []string{"SELECT 1", "SELECT 1"}}
	query, err := GenerateQuery(context.Background(), llm, "one", nil)
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1", query)
	assert.Len(t, llm.prompts, 2)
}

func TestGenerateQueryErrors(t *testing.T) {
	_, err := GenerateQuery(context.Background(), &scriptedLLM{}, "x", nil)
	assert.ErrorIs(t, err, ErrEmptyResponse)

	_, err = GenerateQuery(context.Background(), &scriptedLLM{answers: []string{"I cannot do that"}}, "x", nil)
	assert.Error(t, err)

	boom := errors.New("boom")
	_, err = GenerateQuery(context.Background(), &scriptedLLM{err: boom}, "x", nil)
	assert.ErrorIs(t, err, boom)
}

func TestExtractSQLQuery(t *testing.T) {
	assert.Equal(t, "SELECT a FROM t;", extractSQLQuery("text SELECT a FROM t; more"))
	assert.Equal(t, "WITH x AS (SELECT 1) SELECT * FROM x", extractSQLQuery("WITH x AS (SELECT 1) SELECT * FROM x"))
	assert.Equal(t, "", extractSQLQuery("nothing here"))
}

func TestSuggestOptions(t *testing.T) {
	llm := &scriptedLLM{answers: []string{
		`Here you go: {"title":"Staked","xColumn":{"key":"day","type":"time"},"yColumns":["staked_eth"],"groupBy":"entity"} done`,
	}}
	rows := []map[string]interface{}{{"day": "2024-01-01", "staked_eth": 1, "entity": "lido"}}

	s, err := SuggestOptions(context.Background(), llm, []string{"day", "staked_eth", "entity"}, rows, "show staking")
	require.NoError(t, err)
	assert.Equal(t, "Staked", s.Title)
	assert.Equal(t, "day", s.Options.XColumn.Key)
	assert.Equal(t, chart.Time{}, s.Options.XColumn.Kind)
	assert.Equal(t, []string{"staked_eth"}, s.Options.YColumns)
	assert.Equal(t, "entity", s.Options.GroupBy)
	assert.Contains(t, llm.prompts[0], "show staking")
}

func TestSuggestOptionsRejectsUnknownColumns(t *testing.T) {
	cases := []string{
		`{"xColumn":{"key":"when","type":"time"},"yColumns":["v"]}`,
		`{"xColumn":{"key":"t","type":"time"},"yColumns":["price"]}`,
		`{"xColumn":{"key":"t","type":"time"},"yColumns":["v"],"groupBy":"g"}`,
		`{"xColumn":{"key":"t","type":"time"}}`,
		`no json`,
	}
	for _, answer := range cases {
		_, err := SuggestOptions(context.Background(), &scriptedLLM{answers: []string{answer}}, []string{"t", "v"}, nil, "")
		assert.Error(t, err, answer)
	}

	_, err := SuggestOptions(context.Background(), &scriptedLLM{}, nil, nil, "")
	assert.Error(t, err)
}

func TestNewLLM(t *testing.T) {
	llm, err := NewLLM("", "key", "", "")
	require.NoError(t, err)
	assert.IsType(t, &HuggingFace{}, llm)

	llm, err = NewLLM("OpenAI", "key", "", "")
	require.NoError(t, err)
	assert.IsType(t, &OpenAI{}, llm)

	_, err = NewLLM("bard", "key", "", "")
	assert.Error(t, err)
}
