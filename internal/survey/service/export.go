package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// ExportCSV flattens the survey's responses into CSV: fixed columns,
// then a has_/rating_ pair per current survey skill, then one column
// per current question position. Responses collected under an older
// skill or question set render empty cells, never a ragged row.
func (s *SurveyService) ExportCSV(id string) ([]byte, string, error) {
	sv, err := s.Repo.GetSurvey(id)
	if err != nil {
		return nil, "", err
	}
	responses, err := s.Repo.Responses(id)
	if err != nil {
		return nil, "", err
	}

	header := []string{"respondent_email", "respondent_name", "timestamp", "comments"}
	for _, skill := range sv.Skills {
		header = append(header, "has_"+skill, "rating_"+skill)
	}
	for i := range sv.Questions {
		header = append(header, fmt.Sprintf("q%d", i+1))
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, "", err
	}

	for _, r := range responses {
		row := []string{r.RespondentEmail, r.RespondentName, r.Timestamp, r.Comments}
		selected := make(map[string]bool, len(r.SkillsSelected))
		for _, skill := range r.SkillsSelected {
			selected[skill] = true
		}
		for _, skill := range sv.Skills {
			row = append(row, strconv.FormatBool(selected[skill]))
			rating := ""
			if selected[skill] {
				rating = r.SkillRatings[skill]
			}
			row = append(row, rating)
		}
		for i := range sv.Questions {
			row = append(row, r.Answers[fmt.Sprintf("q%d", i+1)])
		}
		if err := w.Write(row); err != nil {
			return nil, "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("responses_%s.csv", id), nil
}
