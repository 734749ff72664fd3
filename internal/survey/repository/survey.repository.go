package repository

import (
	"github.com/Praveen5612/skill-survey-bot/pkg/logger"
	"github.com/Praveen5612/skill-survey-bot/store"
)

// SurveyRepository exposes document-granularity operations over the
// store. Every call loads the document fresh; writes rewrite it whole.
type SurveyRepository struct {
	Store *store.Store
}

func NewSurveyRepository(s *store.Store) *SurveyRepository {
	return &SurveyRepository{Store: s}
}

// CreateSurvey writes the survey and its assignment together.
func (r *SurveyRepository) CreateSurvey(sv store.Survey, assignees []string) error {
	if assignees == nil {
		assignees = []string{}
	}
	err := r.Store.Update(func(doc *store.Document) error {
		doc.Surveys[sv.ID] = sv
		doc.Assignments[sv.ID] = assignees
		return nil
	})
	if err != nil {
		logger.Sugar.Errorf("Failed to create survey %s: %v", sv.ID, err)
	}
	return err
}

// GetSurvey returns the survey with the given id.
func (r *SurveyRepository) GetSurvey(id string) (store.Survey, error) {
	doc, err := r.Store.Load()
	if err != nil {
		return store.Survey{}, err
	}
	sv, ok := doc.Surveys[id]
	if !ok {
		return store.Survey{}, store.ErrSurveyNotFound
	}
	return sv, nil
}

// SurveyIDs returns the set of existing survey ids.
func (r *SurveyRepository) SurveyIDs() (map[string]bool, error) {
	doc, err := r.Store.Load()
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(doc.Surveys))
	for id := range doc.Surveys {
		ids[id] = true
	}
	return ids, nil
}

// ListSurveys returns every survey with its assignees and response
// count.
func (r *SurveyRepository) ListSurveys() ([]store.Survey, map[string][]string, map[string]int, error) {
	doc, err := r.Store.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	surveys := make([]store.Survey, 0, len(doc.Surveys))
	counts := make(map[string]int, len(doc.Surveys))
	assignments := make(map[string][]string, len(doc.Surveys))
	for id, sv := range doc.Surveys {
		surveys = append(surveys, sv)
		counts[id] = len(doc.Responses[id])
		assignments[id] = doc.Assignments[id]
	}
	return surveys, assignments, counts, nil
}

// DeleteSurvey removes the survey, its responses and its assignment.
func (r *SurveyRepository) DeleteSurvey(id string) error {
	err := r.Store.Update(func(doc *store.Document) error {
		if _, ok := doc.Surveys[id]; !ok {
			return store.ErrSurveyNotFound
		}
		delete(doc.Surveys, id)
		delete(doc.Responses, id)
		delete(doc.Assignments, id)
		return nil
	})
	if err != nil && err != store.ErrSurveyNotFound {
		logger.Sugar.Errorf("Failed to delete survey %s: %v", id, err)
	}
	return err
}

// AppendResponse adds one response to the survey's list. Prior
// responses from the same respondent are kept.
func (r *SurveyRepository) AppendResponse(id string, resp store.Response) error {
	err := r.Store.Update(func(doc *store.Document) error {
		if _, ok := doc.Surveys[id]; !ok {
			return store.ErrSurveyNotFound
		}
		doc.Responses[id] = append(doc.Responses[id], resp)
		return nil
	})
	if err != nil && err != store.ErrSurveyNotFound {
		logger.Sugar.Errorf("Failed to append response to survey %s: %v", id, err)
	}
	return err
}

// Responses returns the responses recorded for the survey.
func (r *SurveyRepository) Responses(id string) ([]store.Response, error) {
	doc, err := r.Store.Load()
	if err != nil {
		return nil, err
	}
	return doc.Responses[id], nil
}

// Assignees returns the emails the survey is assigned to.
func (r *SurveyRepository) Assignees(id string) ([]string, error) {
	doc, err := r.Store.Load()
	if err != nil {
		return nil, err
	}
	return doc.Assignments[id], nil
}

// SurveysAssignedTo returns the surveys whose assignment contains the
// email. Assignment entries without a matching survey are skipped.
func (r *SurveyRepository) SurveysAssignedTo(email string) ([]store.Survey, error) {
	doc, err := r.Store.Load()
	if err != nil {
		return nil, err
	}
	var assigned []store.Survey
	for id, emails := range doc.Assignments {
		sv, ok := doc.Surveys[id]
		if !ok {
			continue
		}
		for _, e := range emails {
			if e == email {
				assigned = append(assigned, sv)
				break
			}
		}
	}
	return assigned, nil
}
