package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Praveen5612/skill-survey-bot/internal/survey/model"
	"github.com/Praveen5612/skill-survey-bot/internal/survey/service"
	"github.com/Praveen5612/skill-survey-bot/middleware"
	"github.com/Praveen5612/skill-survey-bot/pkg/logger"
	"github.com/Praveen5612/skill-survey-bot/store"
)

type SurveyHandler struct {
	Service *service.SurveyService
}

func NewSurveyHandler(svc *service.SurveyService) *SurveyHandler {
	return &SurveyHandler{Service: svc}
}

func actorEmail(r *http.Request) string {
	email, _ := r.Context().Value(middleware.UserEmailKey).(string)
	return email
}

// isValidationError reports whether err is actor input the service
// rejected, as opposed to a server-side failure.
func isValidationError(err error) bool {
	return errors.Is(err, service.ErrProcessRequired) ||
		errors.Is(err, service.ErrUnknownProcess) ||
		errors.Is(err, service.ErrSkillsRequired)
}

func (h *SurveyHandler) CreateSurvey(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req model.CreateSurveyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	id, err := h.Service.CreateSurvey(actorEmail(r), req)
	if err != nil {
		if isValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.Sugar.Errorf("Handler: Failed to create survey: %v", err)
		http.Error(w, "Failed to create survey", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(model.CreateSurveyResponse{SurveyID: id})
}

func (h *SurveyHandler) DeleteSurvey(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	surveyID := r.URL.Query().Get("surveyId")
	if surveyID == "" {
		http.Error(w, "Missing surveyId parameter", http.StatusBadRequest)
		return
	}

	if err := h.Service.DeleteSurvey(surveyID); err != nil {
		if errors.Is(err, store.ErrSurveyNotFound) {
			http.Error(w, "Survey not found", http.StatusNotFound)
			return
		}
		logger.Sugar.Errorf("Handler: Failed to delete survey %s: %v", surveyID, err)
		http.Error(w, "Failed to delete survey", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Survey deleted successfully"))
}

func (h *SurveyHandler) ListSurveys(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	surveys, err := h.Service.ListSurveys()
	if err != nil {
		logger.Sugar.Errorf("Error listing surveys: %v", err)
		http.Error(w, "Failed to list surveys", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(surveys)
}

func (h *SurveyHandler) SuggestSkills(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	process := r.URL.Query().Get("process")
	resp := model.SuggestSkillsResponse{
		Process: process,
		Skills:  h.Service.SuggestSkills(process),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *SurveyHandler) AssignedSurveys(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	surveys, err := h.Service.AssignedSurveys(actorEmail(r))
	if err != nil {
		logger.Sugar.Errorf("Error listing assigned surveys: %v", err)
		http.Error(w, "Failed to list assigned surveys", http.StatusInternalServerError)
		return
	}
	if surveys == nil {
		surveys = []store.Survey{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(surveys)
}

func (h *SurveyHandler) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req model.SubmitResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.SurveyID == "" {
		http.Error(w, "survey_id is required", http.StatusBadRequest)
		return
	}

	if err := h.Service.SubmitResponse(actorEmail(r), req); err != nil {
		if errors.Is(err, store.ErrSurveyNotFound) {
			http.Error(w, "Survey not found", http.StatusNotFound)
			return
		}
		logger.Sugar.Errorf("Handler: Failed to submit response for survey %s: %v", req.SurveyID, err)
		http.Error(w, "Failed to submit response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	w.Write([]byte("Response saved. Thank you!"))
}

func (h *SurveyHandler) Report(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	surveyID := r.URL.Query().Get("surveyId")
	if surveyID == "" {
		http.Error(w, "Missing surveyId parameter", http.StatusBadRequest)
		return
	}

	report, err := h.Service.Report(surveyID)
	if err != nil {
		if errors.Is(err, store.ErrSurveyNotFound) {
			http.Error(w, "Survey not found", http.StatusNotFound)
			return
		}
		logger.Sugar.Errorf("Handler: Failed to build report for survey %s: %v", surveyID, err)
		http.Error(w, "Failed to build report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

func (h *SurveyHandler) ExportResponses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	surveyID := r.URL.Query().Get("surveyId")
	if surveyID == "" {
		http.Error(w, "Missing surveyId parameter", http.StatusBadRequest)
		return
	}

	data, filename, err := h.Service.ExportCSV(surveyID)
	if err != nil {
		if errors.Is(err, store.ErrSurveyNotFound) {
			http.Error(w, "Survey not found", http.StatusNotFound)
			return
		}
		logger.Sugar.Errorf("Handler: Failed to export survey %s: %v", surveyID, err)
		http.Error(w, "Failed to export responses", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Write(data)
}
