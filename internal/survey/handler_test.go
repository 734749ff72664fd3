package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Praveen5612/skill-survey-bot/catalog"
	"github.com/Praveen5612/skill-survey-bot/internal/survey/model"
	"github.com/Praveen5612/skill-survey-bot/internal/survey/repository"
	"github.com/Praveen5612/skill-survey-bot/internal/survey/service"
	"github.com/Praveen5612/skill-survey-bot/middleware"
	"github.com/Praveen5612/skill-survey-bot/pkg/logger"
	"github.com/Praveen5612/skill-survey-bot/resume"
	"github.com/Praveen5612/skill-survey-bot/store"
)

func TestMain(m *testing.M) {
	logger.Init("error")
	os.Exit(m.Run())
}

func newTestHandler(t *testing.T) *SurveyHandler {
	t.Helper()
	dir := t.TempDir()

	procPath := filepath.Join(dir, "processes.csv")
	require.NoError(t, os.WriteFile(procPath, []byte(
		"ProcessID,ProcessName,Description,Industry\n1,Order to Cash,,\n"), 0o644))

	st := store.Open(filepath.Join(dir, "data.json"))
	repo := repository.NewSurveyRepository(st)
	cat := catalog.New(procPath, filepath.Join(dir, "users.csv"))
	corpus := resume.NewCorpus(filepath.Join(dir, "resumes"))
	return NewSurveyHandler(service.NewSurveyService(repo, cat, corpus, nil))
}

// asUser injects the authenticated email the way the auth middleware
// does.
func asUser(r *http.Request, email string) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.UserEmailKey, email)
	return r.WithContext(ctx)
}

func createTestSurvey(t *testing.T, h *SurveyHandler, body string) string {
	t.Helper()
	req := asUser(httptest.NewRequest(http.MethodPost, "/api/surveys/create", strings.NewReader(body)), "admin@example.com")
	rec := httptest.NewRecorder()
	h.CreateSurvey(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp model.CreateSurveyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.SurveyID, 8)
	return resp.SurveyID
}

func TestCreateSurveyHandler(t *testing.T) {
	h := newTestHandler(t)
	id := createTestSurvey(t, h, `{"process":"Order to Cash","skills":["SAP"],"assignees":["alice@example.com"]}`)

	sv, err := h.Service.Repo.GetSurvey(id)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", sv.Creator)
}

func TestCreateSurveyHandlerValidation(t *testing.T) {
	h := newTestHandler(t)

	cases := []struct {
		name string
		body string
	}{
		{"empty process", `{"skills":["SAP"]}`},
		{"unknown process", `{"process":"Nope","skills":["SAP"]}`},
		{"empty skills", `{"process":"Order to Cash","skills":["  "]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := asUser(httptest.NewRequest(http.MethodPost, "/api/surveys/create", strings.NewReader(tc.body)), "admin@example.com")
			rec := httptest.NewRecorder()
			h.CreateSurvey(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCreateSurveyHandlerMethodNotAllowed(t *testing.T) {
	h := newTestHandler(t)
	req := asUser(httptest.NewRequest(http.MethodGet, "/api/surveys/create", nil), "admin@example.com")
	rec := httptest.NewRecorder()
	h.CreateSurvey(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestSubmitResponseHandler(t *testing.T) {
	h := newTestHandler(t)
	id := createTestSurvey(t, h, `{"process":"Order to Cash","skills":["SAP"]}`)

	body := `{"survey_id":"` + id + `","skills_selected":["SAP"],"skill_ratings":{"SAP":"High"}}`
	req := asUser(httptest.NewRequest(http.MethodPost, "/api/surveys/respond", strings.NewReader(body)), "alice@example.com")
	rec := httptest.NewRecorder()
	h.SubmitResponse(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)

	responses, err := h.Service.Repo.Responses(id)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, "alice@example.com", responses[0].RespondentEmail)
}

func TestSubmitResponseHandlerUnknownSurvey(t *testing.T) {
	h := newTestHandler(t)
	body := `{"survey_id":"missing1"}`
	req := asUser(httptest.NewRequest(http.MethodPost, "/api/surveys/respond", strings.NewReader(body)), "alice@example.com")
	rec := httptest.NewRecorder()
	h.SubmitResponse(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReportHandler(t *testing.T) {
	h := newTestHandler(t)
	id := createTestSurvey(t, h, `{"process":"Order to Cash","skills":["SAP","Invoicing"]}`)

	req := asUser(httptest.NewRequest(http.MethodGet, "/api/surveys/report?surveyId="+id, nil), "admin@example.com")
	rec := httptest.NewRecorder()
	h.Report(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var report model.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, id, report.Survey.ID)
	assert.Equal(t, []string{"invoicing", "sap"}, report.MissingSkills)
}

func TestReportHandlerUnknownSurvey(t *testing.T) {
	h := newTestHandler(t)
	req := asUser(httptest.NewRequest(http.MethodGet, "/api/surveys/report?surveyId=missing1", nil), "admin@example.com")
	rec := httptest.NewRecorder()
	h.Report(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportHandler(t *testing.T) {
	h := newTestHandler(t)
	id := createTestSurvey(t, h, `{"process":"Order to Cash","skills":["SAP"]}`)

	req := asUser(httptest.NewRequest(http.MethodGet, "/api/surveys/export?surveyId="+id, nil), "admin@example.com")
	rec := httptest.NewRecorder()
	h.ExportResponses(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "responses_"+id+".csv")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "respondent_email,"))
}

func TestSuggestSkillsHandler(t *testing.T) {
	h := newTestHandler(t)

	req := asUser(httptest.NewRequest(http.MethodGet, "/api/surveys/suggest?process=Order+to+Cash", nil), "admin@example.com")
	rec := httptest.NewRecorder()
	h.SuggestSkills(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.SuggestSkillsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Order Processing", "Invoicing", "Accounts Receivable", "SAP"}, resp.Skills)
}

func TestAssignedSurveysHandler(t *testing.T) {
	h := newTestHandler(t)
	id := createTestSurvey(t, h, `{"process":"Order to Cash","skills":["SAP"],"assignees":["alice@example.com"]}`)

	req := asUser(httptest.NewRequest(http.MethodGet, "/api/surveys/assigned", nil), "alice@example.com")
	rec := httptest.NewRecorder()
	h.AssignedSurveys(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var surveys []store.Survey
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &surveys))
	require.Len(t, surveys, 1)
	assert.Equal(t, id, surveys[0].ID)

	// Unassigned users get an empty list, not null.
	req = asUser(httptest.NewRequest(http.MethodGet, "/api/surveys/assigned", nil), "bob@example.com")
	rec = httptest.NewRecorder()
	h.AssignedSurveys(rec, req)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestDeleteSurveyHandler(t *testing.T) {
	h := newTestHandler(t)
	id := createTestSurvey(t, h, `{"process":"Order to Cash","skills":["SAP"]}`)

	req := asUser(httptest.NewRequest(http.MethodDelete, "/api/surveys/delete?surveyId="+id, nil), "admin@example.com")
	rec := httptest.NewRecorder()
	h.DeleteSurvey(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.DeleteSurvey(rec, asUser(httptest.NewRequest(http.MethodDelete, "/api/surveys/delete?surveyId="+id, nil), "admin@example.com"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
