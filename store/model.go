package store

// Survey is a named bundle of skills and questions targeted at a
// business process. Immutable once created except via delete.
type Survey struct {
	ID        string   `json:"survey_id"`
	Process   string   `json:"process"`
	ProcessID *int     `json:"process_id"`
	Skills    []string `json:"skills"`
	Questions []string `json:"questions"`
	Creator   string   `json:"creator"`
}

// Response is one respondent's submitted answers to one survey.
// Appended to the survey's response list, never mutated.
type Response struct {
	RespondentEmail string            `json:"respondent_email"`
	RespondentName  string            `json:"respondent_name"`
	SkillsSelected  []string          `json:"skills_selected"`
	SkillRatings    map[string]string `json:"skill_ratings"`
	Answers         map[string]string `json:"answers"`
	Comments        string            `json:"comments"`
	Timestamp       string            `json:"timestamp"`
}

// Document is the whole persisted state: surveys by id, response lists
// by survey id, and assigned emails by survey id. Entries under
// Responses or Assignments whose survey id no longer exists are
// tolerated; readers skip them.
type Document struct {
	Surveys     map[string]Survey     `json:"surveys"`
	Responses   map[string][]Response `json:"responses"`
	Assignments map[string][]string   `json:"assignments"`
}

// EnsureStructure fills in any missing top-level map and reports
// whether anything was added. Idempotent.
func (d *Document) EnsureStructure() bool {
	changed := false
	if d.Surveys == nil {
		d.Surveys = make(map[string]Survey)
		changed = true
	}
	if d.Responses == nil {
		d.Responses = make(map[string][]Response)
		changed = true
	}
	if d.Assignments == nil {
		d.Assignments = make(map[string][]string)
		changed = true
	}
	return changed
}
