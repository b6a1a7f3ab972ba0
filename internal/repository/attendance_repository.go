package repository

import (
	"context"
	"institute_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttendanceRepository struct {
	DB *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{DB: db}
}

// UpsertBatch 在一个事务中写入整批考勤，同一天同一学生同一科目重复标记时覆盖 present
func (r *AttendanceRepository) UpsertBatch(ctx context.Context, records []model.Attendance) ([]model.Attendance, error) {
	saved := make([]model.Attendance, 0, len(records))
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range records {
			rec := records[i]
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "date"}, {Name: "student_email"}, {Name: "subject_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"present"}),
			}).Create(&rec).Error
			if err != nil {
				return err
			}

			var stored model.Attendance
			if err := tx.Where("date = ? AND student_email = ? AND subject_id = ?", rec.Date, rec.StudentEmail, rec.SubjectID).
				First(&stored).Error; err != nil {
				return err
			}
			saved = append(saved, stored)
		}
		return nil
	})
	if err != nil {
		return nil, wrapDBError(err, "attendance")
	}
	return saved, nil
}

func (r *AttendanceRepository) FindByDateAndSubject(ctx context.Context, date string, subjectID uint) ([]model.Attendance, error) {
	var records []model.Attendance
	err := r.DB.WithContext(ctx).
		Where("date = ? AND subject_id = ?", date, subjectID).
		Order("student_email ASC").
		Find(&records).Error
	return records, wrapDBError(err, "attendance")
}

func (r *AttendanceRepository) FindByStudent(ctx context.Context, studentEmail string, subjectID *uint) ([]model.Attendance, error) {
	query := r.DB.WithContext(ctx).Where("student_email = ?", studentEmail)
	if subjectID != nil {
		query = query.Where("subject_id = ?", *subjectID)
	}

	var records []model.Attendance
	err := query.Order("date DESC").Find(&records).Error
	return records, wrapDBError(err, "attendance")
}
