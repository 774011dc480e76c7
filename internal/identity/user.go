package identity

import "time"

// Role tags what a user may do.
type Role string

const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleFaculty
}

// Profile holds the role-specific half of a user. The concrete type decides
// the role.
type Profile interface {
	Role() Role
}

// StudentProfile is the profile of a student enrolled in one batch.
type StudentProfile struct {
	Batch string
}

func (StudentProfile) Role() Role { return RoleStudent }

// FacultyProfile is the profile of a faculty member.
type FacultyProfile struct {
	Department string
}

func (FacultyProfile) Role() Role { return RoleFaculty }

// User is a registered account.
type User struct {
	ID           string
	Email        string
	FullName     string
	Profile      Profile
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
}

// Role returns the role implied by the profile; users without one have none.
func (u User) Role() Role {
	if u.Profile == nil {
		return ""
	}
	return u.Profile.Role()
}

// Student returns the student profile when u is a student.
func (u User) Student() (StudentProfile, bool) {
	p, ok := u.Profile.(StudentProfile)
	return p, ok
}

// Faculty returns the faculty profile when u is a faculty member.
func (u User) Faculty() (FacultyProfile, bool) {
	p, ok := u.Profile.(FacultyProfile)
	return p, ok
}

// View is the public JSON shape of a user.
type View struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	Role       Role    `json:"role"`
	FullName   string  `json:"full_name"`
	Batch      *string `json:"batch"`
	Department *string `json:"department"`
}

// View renders u without credentials.
func (u User) View() View {
	v := View{ID: u.ID, Email: u.Email, Role: u.Role(), FullName: u.FullName}
	switch p := u.Profile.(type) {
	case StudentProfile:
		v.Batch = &p.Batch
	case FacultyProfile:
		v.Department = &p.Department
	}
	return v
}
