package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyRecordTolerantUnmarshal(t *testing.T) {
	raw := `{
		"title": "Acme",
		"team_size": "1,200",
		"key_features": ["SSO", "API"],
		"competitors": ["Globex", {"name": "Initech"}, {"name": ""}, 42, {"name": "Globex"}],
		"historical_metrics": [{"name": "Funding", "date": "2023-06-01", "value": 500000}]
	}`

	var rec CompanyRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))

	assert.Equal(t, "Acme", rec.Title)
	require.NotNil(t, rec.TeamSize.Value)
	assert.Equal(t, 1200, *rec.TeamSize.Value)
	assert.Equal(t, CompetitorList{"Globex", "Initech"}, rec.Competitors)
	require.Len(t, rec.HistoricalMetrics, 1)
	assert.Equal(t, "Funding", rec.HistoricalMetrics[0].Name)
}

func TestFlexIntDegradesToNil(t *testing.T) {
	cases := []string{`null`, `""`, `"unknown"`, `"50-100"`}
	for _, c := range cases {
		var f FlexInt
		require.NoError(t, json.Unmarshal([]byte(c), &f), "input %s", c)
		assert.Nil(t, f.Value, "input %s", c)
	}

	var f FlexInt
	require.NoError(t, json.Unmarshal([]byte(`"85"`), &f))
	require.NotNil(t, f.Value)
	assert.Equal(t, 85, *f.Value)
}

func TestCompetitorListNonArray(t *testing.T) {
	var c CompetitorList
	require.NoError(t, json.Unmarshal([]byte(`"geen concurrenten"`), &c))
	assert.Nil(t, c)
}
