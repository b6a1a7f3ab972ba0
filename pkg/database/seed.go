package database

import (
	"fmt"
	"institute_backend/internal/model"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

type SeedFixture struct {
	Branches []SeedBranch  `yaml:"branches"`
	Users    []SeedUser    `yaml:"users"`
	Subjects []SeedSubject `yaml:"subjects"`
}

type SeedBranch struct {
	Name     string `yaml:"name"`
	HodEmail string `yaml:"hod_email"`
}

type SeedUser struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Role     string `yaml:"role"`
	Branch   string `yaml:"branch"`
}

type SeedSubject struct {
	Name         string     `yaml:"name"`
	Branch       string     `yaml:"branch"`
	TeacherEmail string     `yaml:"teacher_email"`
	Units        []SeedUnit `yaml:"units"`
}

type SeedUnit struct {
	UnitNo    int            `yaml:"unit_no"`
	Title     string         `yaml:"title"`
	Summary   string         `yaml:"summary"`
	Questions []SeedQuestion `yaml:"questions"`
}

type SeedQuestion struct {
	Question      string   `yaml:"question"`
	Type          string   `yaml:"type"`
	Options       []string `yaml:"options"`
	CorrectAnswer string   `yaml:"correct_answer"`
}

func LoadSeedFile(path string) (*SeedFixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fixture SeedFixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &fixture, nil
}

// Seed 写入初始数据。已存在用户时直接跳过，返回 false
func Seed(db *gorm.DB, fixture *SeedFixture) (bool, error) {
	var count int64
	if err := db.Model(&model.User{}).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		branchIDs := make(map[string]uint, len(fixture.Branches))
		for _, b := range fixture.Branches {
			branch := model.Branch{Name: b.Name, HodEmail: b.HodEmail}
			if err := tx.Create(&branch).Error; err != nil {
				return err
			}
			branchIDs[b.Name] = branch.ID
		}

		for _, u := range fixture.Users {
			role := model.UserRole(u.Role)
			if !role.Valid() {
				return fmt.Errorf("user %s: unknown role %q", u.Email, u.Role)
			}
			hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			user := model.User{Email: u.Email, Password: string(hashed), Name: u.Name, Role: role}
			if id, ok := branchIDs[u.Branch]; ok {
				user.BranchID = &id
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
		}

		for _, s := range fixture.Subjects {
			branchID, ok := branchIDs[s.Branch]
			if !ok {
				return fmt.Errorf("subject %s: unknown branch %q", s.Name, s.Branch)
			}
			subject := model.Subject{Name: s.Name, BranchID: branchID, TeacherEmail: s.TeacherEmail}
			if err := tx.Create(&subject).Error; err != nil {
				return err
			}

			for _, u := range s.Units {
				unit := model.Unit{SubjectID: subject.ID, UnitNo: u.UnitNo, Title: u.Title, Summary: u.Summary}
				if err := tx.Create(&unit).Error; err != nil {
					return err
				}
				for _, q := range u.Questions {
					question := model.Question{
						UnitID:        unit.ID,
						Question:      q.Question,
						Type:          model.QuestionType(q.Type),
						Options:       q.Options,
						CorrectAnswer: q.CorrectAnswer,
					}
					if err := tx.Create(&question).Error; err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
