package service

import "strings"

// suggestion pairs a process-domain key with its advisory skill list.
// The table is ordered; the first key contained in the process name
// wins.
type suggestion struct {
	domain string
	skills []string
}

var suggestionTable = []suggestion{
	{"Order to Cash", []string{"Order Processing", "Invoicing", "Accounts Receivable", "SAP"}},
	{"Procure to Pay", []string{"Procurement", "Supplier Management", "PO Processing", "SAP"}},
	{"Hire to Retire", []string{"Recruitment", "Payroll", "Onboarding", "Employee Relations"}},
	{"Record to Report", []string{"Financial Reporting", "Reconcilations", "Excel", "Accounting"}},
	{"Incident Management", []string{"Incident Triage", "Troubleshooting", "Ticketing Systems"}},
	{"Inventory Management", []string{"Stock Control", "Cycle Count", "ERP", "Logistics"}},
	{"Data Migration", []string{"ETL", "Data Mapping", "SQL", "Python"}},
	{"Network Security", []string{"Firewalls", "IDS/IPS", "Vulnerability Management"}},
	{"Event Management", []string{"Venue Management", "Vendor Coordination", "Logistics"}},
}

var genericSkills = []string{"Communication", "Process Knowledge", "Documentation", "Tools"}

// SuggestSkills returns the advisory skill list for a process name:
// case-insensitive substring lookup against the table keys, generic
// fallback when nothing matches. The admin may edit the result before
// submission.
func (s *SurveyService) SuggestSkills(processName string) []string {
	nameLower := strings.ToLower(processName)
	for _, entry := range suggestionTable {
		if strings.Contains(nameLower, strings.ToLower(entry.domain)) {
			return append([]string(nil), entry.skills...)
		}
	}
	return append([]string(nil), genericSkills...)
}
