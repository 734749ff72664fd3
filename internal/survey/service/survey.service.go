package service

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Praveen5612/skill-survey-bot/catalog"
	"github.com/Praveen5612/skill-survey-bot/internal/survey/model"
	"github.com/Praveen5612/skill-survey-bot/internal/survey/repository"
	"github.com/Praveen5612/skill-survey-bot/resume"
	"github.com/Praveen5612/skill-survey-bot/socket"
	"github.com/Praveen5612/skill-survey-bot/store"
)

// Validation errors reported to the actor. None of them leaves a
// mutation behind.
var (
	ErrProcessRequired = errors.New("please select a process")
	ErrUnknownProcess  = errors.New("process is not in the catalog")
	ErrSkillsRequired  = errors.New("please provide at least one skill")
)

// idAttempts bounds collision regeneration. The 8-char token space
// makes a second attempt already vanishingly rare.
const idAttempts = 5

type SurveyService struct {
	Repo    *repository.SurveyRepository
	Catalog *catalog.Catalog
	Resumes *resume.Corpus
	Hub     *socket.Hub
}

func NewSurveyService(repo *repository.SurveyRepository, cat *catalog.Catalog, corpus *resume.Corpus, hub *socket.Hub) *SurveyService {
	return &SurveyService{Repo: repo, Catalog: cat, Resumes: corpus, Hub: hub}
}

// CreateSurvey validates the admin input, assembles the survey record
// and persists it together with its assignment.
func (s *SurveyService) CreateSurvey(creator string, req model.CreateSurveyRequest) (string, error) {
	process := strings.TrimSpace(req.Process)
	if process == "" {
		return "", ErrProcessRequired
	}

	var processID *int
	if procs := s.Catalog.Processes(); len(procs) > 0 {
		proc, ok := s.Catalog.ProcessByName(process)
		if !ok {
			return "", ErrUnknownProcess
		}
		id := proc.ID
		processID = &id
	}

	skills := trimNonEmpty(req.Skills)
	if len(skills) == 0 {
		return "", ErrSkillsRequired
	}
	questions := trimNonEmpty(req.Questions)

	id, err := s.generateSurveyID()
	if err != nil {
		return "", err
	}

	if creator == "" {
		creator = "admin"
	}
	sv := store.Survey{
		ID:        id,
		Process:   process,
		ProcessID: processID,
		Skills:    skills,
		Questions: questions,
		Creator:   creator,
	}
	if err := s.Repo.CreateSurvey(sv, req.Assignees); err != nil {
		return "", err
	}
	return id, nil
}

// generateSurveyID returns an unused 8-char token, regenerating on the
// rare collision.
func (s *SurveyService) generateSurveyID() (string, error) {
	existing, err := s.Repo.SurveyIDs()
	if err != nil {
		return "", err
	}
	for i := 0; i < idAttempts; i++ {
		id := uuid.New().String()[:8]
		if !existing[id] {
			return id, nil
		}
	}
	return "", errors.New("failed to generate survey ID")
}

// DeleteSurvey removes the survey with all its responses and its
// assignment, then tells connected dashboards.
func (s *SurveyService) DeleteSurvey(id string) error {
	if err := s.Repo.DeleteSurvey(id); err != nil {
		return err
	}
	if s.Hub != nil {
		s.Hub.RemoveSurvey(id)
	}
	return nil
}

// ListSurveys returns every survey with assignment and response count,
// sorted by id for stable output.
func (s *SurveyService) ListSurveys() ([]model.SurveySummary, error) {
	surveys, assignments, counts, err := s.Repo.ListSurveys()
	if err != nil {
		return nil, err
	}
	summaries := make([]model.SurveySummary, 0, len(surveys))
	for _, sv := range surveys {
		assignees := assignments[sv.ID]
		if assignees == nil {
			assignees = []string{}
		}
		summaries = append(summaries, model.SurveySummary{
			Survey:        sv,
			Assignees:     assignees,
			ResponseCount: counts[sv.ID],
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })
	return summaries, nil
}

// AssignedSurveys returns the surveys assigned to the email, sorted by
// id.
func (s *SurveyService) AssignedSurveys(email string) ([]store.Survey, error) {
	assigned, err := s.Repo.SurveysAssignedTo(email)
	if err != nil {
		return nil, err
	}
	sort.Slice(assigned, func(i, j int) bool { return assigned[i].ID < assigned[j].ID })
	return assigned, nil
}

// SubmitResponse appends the respondent's answers to the survey. The
// respondent's display name comes from the user catalog; unknown emails
// submit as "Guest". Prior responses from the same respondent stay.
func (s *SurveyService) SubmitResponse(email string, req model.SubmitResponseRequest) error {
	name := "Guest"
	if u, ok := s.Catalog.UserByEmail(email); ok {
		name = u.Name
	}

	resp := store.Response{
		RespondentEmail: email,
		RespondentName:  name,
		SkillsSelected:  req.SkillsSelected,
		SkillRatings:    req.SkillRatings,
		Answers:         req.Answers,
		Comments:        req.Comments,
		Timestamp:       time.Now().Format(time.RFC3339),
	}
	if resp.SkillsSelected == nil {
		resp.SkillsSelected = []string{}
	}
	if resp.SkillRatings == nil {
		resp.SkillRatings = map[string]string{}
	}
	if resp.Answers == nil {
		resp.Answers = map[string]string{}
	}

	if err := s.Repo.AppendResponse(req.SurveyID, resp); err != nil {
		return err
	}
	if s.Hub != nil {
		s.Hub.BroadcastResponse(req.SurveyID, resp.RespondentEmail)
	}
	return nil
}

func trimNonEmpty(in []string) []string {
	var out []string
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
