package service

import (
	"sort"
	"strings"

	"github.com/Praveen5612/skill-survey-bot/internal/survey/model"
	"github.com/Praveen5612/skill-survey-bot/resume"
	"github.com/Praveen5612/skill-survey-bot/store"
)

const defaultRating = "Low"

// Report assembles the dashboard view: raw responses, skill
// aggregation, missing skills and resume matches for the gaps.
func (s *SurveyService) Report(id string) (*model.Report, error) {
	sv, err := s.Repo.GetSurvey(id)
	if err != nil {
		return nil, err
	}
	responses, err := s.Repo.Responses(id)
	if err != nil {
		return nil, err
	}
	assignees, err := s.Repo.Assignees(id)
	if err != nil {
		return nil, err
	}
	if responses == nil {
		responses = []store.Response{}
	}
	if assignees == nil {
		assignees = []string{}
	}

	aggregation := AggregateSkills(responses)
	missing := MissingSkills(sv.Skills, aggregation)
	matches := s.matchMissingSkills(missing)

	return &model.Report{
		Survey:        sv,
		Assignees:     assignees,
		Responses:     responses,
		Aggregation:   aggregation,
		MissingSkills: missing,
		ResumeMatches: matches,
	}, nil
}

// AggregateSkills counts High/Medium/Low per skill over every skill a
// respondent selected. A selected skill with no rating entry counts as
// Low; the UI may never have collected one. Output is sorted by skill.
func AggregateSkills(responses []store.Response) []model.SkillAggregate {
	bySkill := make(map[string]*model.SkillAggregate)
	for _, r := range responses {
		for _, skill := range r.SkillsSelected {
			agg, ok := bySkill[skill]
			if !ok {
				agg = &model.SkillAggregate{Skill: skill}
				bySkill[skill] = agg
			}
			rating, ok := r.SkillRatings[skill]
			if !ok {
				rating = defaultRating
			}
			switch rating {
			case "High":
				agg.High++
			case "Medium":
				agg.Medium++
			default:
				agg.Low++
			}
			agg.Total++
		}
	}

	out := make([]model.SkillAggregate, 0, len(bySkill))
	for _, agg := range bySkill {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Skill < out[j].Skill })
	return out
}

// MissingSkills returns the required skills no response evidenced:
// lower-cased set difference, sorted for deterministic output.
func MissingSkills(required []string, aggregation []model.SkillAggregate) []string {
	available := make(map[string]bool, len(aggregation))
	for _, agg := range aggregation {
		available[strings.ToLower(agg.Skill)] = true
	}

	seen := make(map[string]bool)
	missing := []string{}
	for _, skill := range required {
		lower := strings.ToLower(skill)
		if !available[lower] && !seen[lower] {
			seen[lower] = true
			missing = append(missing, lower)
		}
	}
	sort.Strings(missing)
	return missing
}

// matchMissingSkills finds resume evidence for each missing skill.
// Direct substring matches take priority; the token-extraction fallback
// is only computed when there is no direct match.
func (s *SurveyService) matchMissingSkills(missing []string) []model.SkillMatch {
	matches := make([]model.SkillMatch, 0, len(missing))
	if len(missing) == 0 {
		return matches
	}
	texts := s.Resumes.Texts()
	for _, skill := range missing {
		m := model.SkillMatch{Skill: skill, Direct: []string{}, Fallback: []string{}}
		if direct := resume.MatchSkill(skill, texts); len(direct) > 0 {
			m.Direct = direct
		} else if fallback := resume.FallbackMatches(skill, texts); len(fallback) > 0 {
			m.Fallback = fallback
		}
		matches = append(matches, m)
	}
	return matches
}
