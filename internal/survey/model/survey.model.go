package model

import "github.com/Praveen5612/skill-survey-bot/store"

type CreateSurveyRequest struct {
	Process   string   `json:"process"`
	Skills    []string `json:"skills"`
	Questions []string `json:"questions"`
	Assignees []string `json:"assignees"`
}

type CreateSurveyResponse struct {
	SurveyID string `json:"survey_id"`
}

// SurveySummary is a survey together with its assignment and the number
// of responses collected so far.
type SurveySummary struct {
	store.Survey
	Assignees     []string `json:"assignees"`
	ResponseCount int      `json:"response_count"`
}

type SubmitResponseRequest struct {
	SurveyID       string            `json:"survey_id"`
	SkillsSelected []string          `json:"skills_selected"`
	SkillRatings   map[string]string `json:"skill_ratings"`
	Answers        map[string]string `json:"answers"`
	Comments       string            `json:"comments"`
}

type SuggestSkillsResponse struct {
	Process string   `json:"process"`
	Skills  []string `json:"skills"`
}

// SkillAggregate counts the ratings recorded for one skill across all
// responses that selected it.
type SkillAggregate struct {
	Skill  string `json:"skill"`
	High   int    `json:"high"`
	Medium int    `json:"medium"`
	Low    int    `json:"low"`
	Total  int    `json:"total"`
}

// SkillMatch lists the resumes evidencing one missing skill. Fallback
// is only populated when no direct match exists.
type SkillMatch struct {
	Skill    string   `json:"skill"`
	Direct   []string `json:"direct_matches"`
	Fallback []string `json:"fallback_matches"`
}

// Report is the dashboard view of one survey: raw responses plus the
// gap analysis over them.
type Report struct {
	Survey        store.Survey     `json:"survey"`
	Assignees     []string         `json:"assignees"`
	Responses     []store.Response `json:"responses"`
	Aggregation   []SkillAggregate `json:"aggregation"`
	MissingSkills []string         `json:"missing_skills"`
	ResumeMatches []SkillMatch     `json:"resume_matches"`
}
