package model

type UserRole string

const (
	Admin   UserRole = "admin"
	HOD     UserRole = "hod"
	Teacher UserRole = "teacher"
	Student UserRole = "student"
)

func (r UserRole) Valid() bool {
	switch r {
	case Admin, HOD, Teacher, Student:
		return true
	}
	return false
}

// IsStaff reports whether the role may see answer keys and manage curriculum.
func (r UserRole) IsStaff() bool {
	return r == Admin || r == HOD || r == Teacher
}

// swagger:model User
type User struct {
	BaseModel
	Email    string   `gorm:"size:191;uniqueIndex;not null" json:"email"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Name     string   `gorm:"size:100;not null" json:"name"`
	Role     UserRole `gorm:"size:20;index;not null" json:"role"`
	BranchID *uint    `gorm:"index" json:"branchId"`
}

func (User) TableName() string {
	return "users"
}
