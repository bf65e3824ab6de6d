package identity

import "time"

// Role is the principal's account type.
type Role string

const (
	RoleJobSeeker Role = "jobseeker"
	RoleEmployer  Role = "employer"
	RoleAdmin     Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleJobSeeker, RoleEmployer, RoleAdmin:
		return Role(s), true
	default:
		return "", false
	}
}

// User is an authenticated principal.
type User struct {
	ID           string    `gorm:"column:id;primaryKey" json:"id"`
	Email        string    `gorm:"column:email;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password_hash" json:"-"`
	Name         string    `gorm:"column:name" json:"name"`
	Phone        string    `gorm:"column:phone" json:"phone,omitempty"`
	Role         Role      `gorm:"column:role" json:"role"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (User) TableName() string { return "users" }

// DashboardConfig tells the client which dashboard to render for a role.
// One pure mapping instead of role conditionals scattered over handlers.
type DashboardConfig struct {
	Home     string   `json:"home"`
	Sections []string `json:"sections"`
}

func DashboardFor(role Role) DashboardConfig {
	switch role {
	case RoleEmployer:
		return DashboardConfig{
			Home:     "/dashboard/employer",
			Sections: []string{"jobs", "applications", "messages", "notifications"},
		}
	case RoleAdmin:
		return DashboardConfig{
			Home:     "/dashboard/admin",
			Sections: []string{"users", "jobs"},
		}
	default:
		return DashboardConfig{
			Home:     "/dashboard/seeker",
			Sections: []string{"jobs", "applications", "messages", "notifications"},
		}
	}
}
