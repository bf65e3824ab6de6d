package job

import "time"

// SampleJobs is the illustrative set the listing falls back to while the
// store is still empty, so the browse page is never blank on a cold start.
// cmd/seed persists the same set for local development.
func SampleJobs(now time.Time) []*Job {
	intp := func(v int) *int { return &v }
	mk := func(id, title, company, location, jobType string, min, max int, posted time.Duration, mode WorkMode, skills ...string) *Job {
		return &Job{
			ID:              id,
			Title:           title,
			Company:         company,
			Category:        "Technology & IT",
			Type:            jobType,
			Location:        location,
			SalaryMin:       intp(min),
			SalaryMax:       intp(max),
			Description:     "This is an illustrative listing shown while no employer has posted yet. Sign in as an employer to replace it with a real opening.",
			Skills:          skills,
			ExperienceLevel: "Mid Level",
			WorkMode:        mode,
			Deadline:        now.AddDate(0, 1, 0),
			Openings:        1,
			Status:          StatusPublished,
			CreatedAt:       now.Add(-posted),
			UpdatedAt:       now.Add(-posted),
		}
	}

	jobs := []*Job{
		mk("sample-1", "Senior Software Engineer", "TechCorp Industries", "New York, NY", "Full-Time", 120000, 180000, 48*time.Hour, WorkModeHybrid, "React", "Node.js", "AWS"),
		mk("sample-2", "Production Manager", "GlobalManufacture Co.", "Detroit, MI", "Full-Time", 95000, 130000, 24*time.Hour, WorkModeOnsite, "Manufacturing", "Lean", "Leadership"),
		mk("sample-3", "Data Scientist", "AnalyticsPro", "San Francisco, CA", "Full-Time", 140000, 200000, 72*time.Hour, WorkModeRemote, "Python", "ML", "TensorFlow"),
		mk("sample-4", "Financial Analyst", "Capital Dynamics", "Chicago, IL", "Full-Time", 85000, 110000, 5*time.Hour, WorkModeOnsite, "Excel", "SQL", "Finance"),
		mk("sample-5", "Civil Engineer", "BuildRight Construction", "Houston, TX", "Full-Time", 90000, 125000, 96*time.Hour, WorkModeOnsite, "AutoCAD", "Project Mgmt", "Civil"),
		mk("sample-6", "Healthcare Administrator", "MedGroup Health", "Boston, MA", "Full-Time", 75000, 100000, 7*24*time.Hour, WorkModeHybrid, "Healthcare", "Admin", "HIPAA"),
	}
	jobs[1].Category = "Manufacturing"
	jobs[3].Category = "Finance & Banking"
	jobs[4].Category = "Construction"
	jobs[5].Category = "Healthcare"
	return jobs
}
