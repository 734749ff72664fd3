package service

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Praveen5612/skill-survey-bot/internal/survey/model"
	"github.com/Praveen5612/skill-survey-bot/store"
)

func parseCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestExportCSV(t *testing.T) {
	svc := newTestService(t)
	id := createSurvey(t, svc, model.CreateSurveyRequest{
		Process:   "Order to Cash",
		Skills:    []string{"SAP", "Invoicing"},
		Questions: []string{"How confident are you?", "Any blockers?"},
	})

	require.NoError(t, svc.SubmitResponse("alice@example.com", model.SubmitResponseRequest{
		SurveyID:       id,
		SkillsSelected: []string{"SAP"},
		SkillRatings:   map[string]string{"SAP": "High"},
		Answers:        map[string]string{"q1": "very", "q2": "none"},
		Comments:       "all good",
	}))
	require.NoError(t, svc.SubmitResponse("stranger@example.com", model.SubmitResponseRequest{
		SurveyID: id,
	}))

	data, filename, err := svc.ExportCSV(id)
	require.NoError(t, err)
	assert.Equal(t, "responses_"+id+".csv", filename)

	records := parseCSV(t, data)
	require.Len(t, records, 3) // header + one row per response

	header := records[0]
	assert.Equal(t, []string{
		"respondent_email", "respondent_name", "timestamp", "comments",
		"has_SAP", "rating_SAP", "has_Invoicing", "rating_Invoicing",
		"q1", "q2",
	}, header)

	// Column set is stable across rows.
	for _, row := range records[1:] {
		assert.Len(t, row, len(header))
	}

	first := records[1]
	assert.Equal(t, "alice@example.com", first[0])
	assert.Equal(t, "Alice", first[1])
	assert.Equal(t, "all good", first[3])
	assert.Equal(t, "true", first[4])
	assert.Equal(t, "High", first[5])
	assert.Equal(t, "false", first[6])
	assert.Equal(t, "", first[7])
	assert.Equal(t, "very", first[8])

	second := records[2]
	assert.Equal(t, "Guest", second[1])
	assert.Equal(t, "false", second[4])
	assert.Equal(t, "", second[5])
}

func TestExportCSVStaleResponses(t *testing.T) {
	svc := newTestService(t)
	id := createSurvey(t, svc, model.CreateSurveyRequest{
		Process: "Order to Cash",
		Skills:  []string{"SAP"},
	})

	// Simulate a response collected under a previously-larger skill and
	// question set.
	require.NoError(t, svc.Repo.Store.Update(func(doc *store.Document) error {
		doc.Responses[id] = append(doc.Responses[id], store.Response{
			RespondentEmail: "old@example.com",
			RespondentName:  "Old",
			SkillsSelected:  []string{"SAP", "Retired Skill"},
			SkillRatings:    map[string]string{"Retired Skill": "High"},
			Answers:         map[string]string{"q1": "stale answer"},
			Timestamp:       "2025-01-01T00:00:00Z",
		})
		return nil
	}))

	data, _, err := svc.ExportCSV(id)
	require.NoError(t, err)

	records := parseCSV(t, data)
	require.Len(t, records, 2)
	// Columns derive from the current survey only: no Retired Skill
	// column, no question columns.
	assert.Equal(t, []string{"respondent_email", "respondent_name", "timestamp", "comments", "has_SAP", "rating_SAP"}, records[0])
	assert.Len(t, records[1], 6)
	assert.Equal(t, "true", records[1][4])
	assert.Equal(t, "", records[1][5]) // SAP selected but never rated
}

func TestExportCSVNoResponses(t *testing.T) {
	svc := newTestService(t)
	id := createSurvey(t, svc, model.CreateSurveyRequest{
		Process: "Order to Cash",
		Skills:  []string{"SAP"},
	})

	data, _, err := svc.ExportCSV(id)
	require.NoError(t, err)

	records := parseCSV(t, data)
	assert.Len(t, records, 1) // header only
}

func TestExportCSVUnknownSurvey(t *testing.T) {
	svc := newTestService(t)
	_, _, err := svc.ExportCSV("missing1")
	assert.ErrorIs(t, err, store.ErrSurveyNotFound)
}
