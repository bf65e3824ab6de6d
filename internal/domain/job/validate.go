package job

import (
	"strings"
	"time"
)

const (
	minTitleLen       = 5
	minDescriptionLen = 100
)

// ValidateForm checks a posting form and returns a field-keyed error map.
// An empty map means the form is valid. Runs before any persistence.
func ValidateForm(f *Form, now time.Time) map[string]string {
	errs := make(map[string]string)

	title := strings.TrimSpace(f.Title)
	if title == "" {
		errs["title"] = "Job title is required"
	} else if len(title) < minTitleLen {
		errs["title"] = "Title must be at least 5 characters"
	}

	if f.Category == "" {
		errs["category"] = "Please select a category"
	}
	if f.Type == "" {
		errs["type"] = "Please select a job type"
	}
	if strings.TrimSpace(f.Location) == "" {
		errs["location"] = "Location is required"
	}

	if f.SalaryMin != nil && f.SalaryMax != nil {
		if *f.SalaryMin >= *f.SalaryMax {
			errs["salary_max"] = "Maximum salary must be greater than minimum"
		}
	}

	desc := strings.TrimSpace(f.Description)
	if desc == "" {
		errs["description"] = "Job description is required"
	} else if len(desc) < minDescriptionLen {
		errs["description"] = "Description must be at least 100 characters"
	}

	if f.ExperienceLevel == "" {
		errs["experience_level"] = "Please select experience level"
	}

	if f.Deadline == "" {
		errs["deadline"] = "Application deadline is required"
	} else if deadline, err := time.Parse("2006-01-02", f.Deadline); err != nil {
		errs["deadline"] = "Deadline must be a valid date (YYYY-MM-DD)"
	} else {
		// Date-only comparison: a deadline of "today" is already too late
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if !deadline.After(today) {
			errs["deadline"] = "Deadline must be a future date"
		}
	}

	if f.Openings < 1 {
		errs["openings"] = "At least 1 opening is required"
	}

	if f.WorkMode != "" {
		switch WorkMode(f.WorkMode) {
		case WorkModeOnsite, WorkModeHybrid, WorkModeRemote:
		default:
			errs["work_mode"] = "Work mode must be onsite, hybrid or remote"
		}
	}

	return errs
}

// normalizeSkills preserves order and drops duplicates and blanks.
func normalizeSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

// MatchesFilter reports whether a job satisfies both filter predicates.
// Matching is a plain case-insensitive substring check, the same the
// listing page does.
func MatchesFilter(j *Job, f Filter) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		hay := []string{j.Title, j.Company, j.Type, j.Category}
		hay = append(hay, j.Skills...)
		if !anyContains(hay, q) {
			return false
		}
	}
	if loc := strings.ToLower(strings.TrimSpace(f.Location)); loc != "" {
		if !anyContains([]string{j.Location, string(j.WorkMode)}, loc) {
			return false
		}
	}
	return true
}

func anyContains(fields []string, needle string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
