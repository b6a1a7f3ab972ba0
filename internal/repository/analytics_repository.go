package repository

import (
	"context"
	"institute_backend/internal/model"

	"gorm.io/gorm"
)

type AnalyticsRepository struct {
	DB *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{DB: db}
}

func (r *AnalyticsRepository) subjects(ctx context.Context, branchID *uint) ([]model.Subject, error) {
	query := r.DB.WithContext(ctx).Model(&model.Subject{})
	if branchID != nil {
		query = query.Where("branch_id = ?", *branchID)
	}
	var subjects []model.Subject
	err := query.Order("id ASC").Find(&subjects).Error
	return subjects, err
}

func subjectIDs(subjects []model.Subject) []uint {
	ids := make([]uint, len(subjects))
	for i, s := range subjects {
		ids[i] = s.ID
	}
	return ids
}

func (r *AnalyticsRepository) BranchStats(ctx context.Context) ([]model.BranchStats, error) {
	db := r.DB.WithContext(ctx)

	var branches []model.Branch
	if err := db.Order("id ASC").Find(&branches).Error; err != nil {
		return nil, wrapDBError(err, "branch")
	}

	var userCounts []struct {
		BranchID uint
		Role     model.UserRole
		Total    int64
	}
	err := db.Model(&model.User{}).
		Select("branch_id, role, COUNT(*) AS total").
		Where("branch_id IS NOT NULL").
		Group("branch_id, role").
		Scan(&userCounts).Error
	if err != nil {
		return nil, wrapDBError(err, "user")
	}

	var subjectCounts []struct {
		BranchID uint
		Total    int64
	}
	err = db.Model(&model.Subject{}).
		Select("branch_id, COUNT(*) AS total").
		Group("branch_id").
		Scan(&subjectCounts).Error
	if err != nil {
		return nil, wrapDBError(err, "subject")
	}

	index := make(map[uint]*model.BranchStats, len(branches))
	stats := make([]model.BranchStats, len(branches))
	for i, b := range branches {
		stats[i] = model.BranchStats{BranchID: b.ID, BranchName: b.Name}
		index[b.ID] = &stats[i]
	}
	for _, uc := range userCounts {
		s, ok := index[uc.BranchID]
		if !ok {
			continue
		}
		switch uc.Role {
		case model.Student:
			s.TotalStudents += uc.Total
		case model.Teacher:
			s.TotalTeachers += uc.Total
		}
	}
	for _, sc := range subjectCounts {
		if s, ok := index[sc.BranchID]; ok {
			s.TotalSubjects = sc.Total
		}
	}
	return stats, nil
}

func (r *AnalyticsRepository) AttendanceStats(ctx context.Context, branchID *uint) ([]model.AttendanceStats, error) {
	subjects, err := r.subjects(ctx, branchID)
	if err != nil {
		return nil, wrapDBError(err, "subject")
	}
	stats := make([]model.AttendanceStats, 0, len(subjects))
	if len(subjects) == 0 {
		return stats, nil
	}

	var rows []struct {
		SubjectID uint
		Present   int64
		Total     int64
	}
	err = r.DB.WithContext(ctx).Model(&model.Attendance{}).
		Select("subject_id, SUM(CASE WHEN present THEN 1 ELSE 0 END) AS present, COUNT(*) AS total").
		Where("subject_id IN ?", subjectIDs(subjects)).
		Group("subject_id").
		Scan(&rows).Error
	if err != nil {
		return nil, wrapDBError(err, "attendance")
	}

	bySubject := make(map[uint]int, len(rows))
	for i, row := range rows {
		bySubject[row.SubjectID] = i
	}
	for _, s := range subjects {
		st := model.AttendanceStats{SubjectID: s.ID, SubjectName: s.Name}
		if i, ok := bySubject[s.ID]; ok {
			st.TotalPresent = rows[i].Present
			st.TotalAbsent = rows[i].Total - rows[i].Present
			if rows[i].Total > 0 {
				st.AttendanceRate = float64(rows[i].Present) / float64(rows[i].Total) * 100
			}
		}
		stats = append(stats, st)
	}
	return stats, nil
}

func (r *AnalyticsRepository) ProgressStats(ctx context.Context, branchID *uint) ([]model.ProgressStats, error) {
	subjects, err := r.subjects(ctx, branchID)
	if err != nil {
		return nil, wrapDBError(err, "subject")
	}
	stats := make([]model.ProgressStats, 0, len(subjects))
	if len(subjects) == 0 {
		return stats, nil
	}
	ids := subjectIDs(subjects)
	db := r.DB.WithContext(ctx)

	var progressRows []struct {
		SubjectID  uint
		AvgTeacher float64
		AvgStudent float64
		Completed  int64
	}
	err = db.Model(&model.Progress{}).
		Select("subject_id, AVG(teacher_coverage) AS avg_teacher, AVG(student_coverage) AS avg_student, " +
			"SUM(CASE WHEN completed THEN 1 ELSE 0 END) AS completed").
		Where("subject_id IN ?", ids).
		Group("subject_id").
		Scan(&progressRows).Error
	if err != nil {
		return nil, wrapDBError(err, "progress")
	}

	var unitRows []struct {
		SubjectID uint
		Total     int64
	}
	err = db.Model(&model.Unit{}).
		Select("subject_id, COUNT(*) AS total").
		Where("subject_id IN ?", ids).
		Group("subject_id").
		Scan(&unitRows).Error
	if err != nil {
		return nil, wrapDBError(err, "unit")
	}

	units := make(map[uint]int64, len(unitRows))
	for _, u := range unitRows {
		units[u.SubjectID] = u.Total
	}
	progress := make(map[uint]int, len(progressRows))
	for i, p := range progressRows {
		progress[p.SubjectID] = i
	}

	for _, s := range subjects {
		st := model.ProgressStats{SubjectID: s.ID, SubjectName: s.Name, TotalUnits: units[s.ID]}
		if i, ok := progress[s.ID]; ok {
			st.AvgTeacherCoverage = progressRows[i].AvgTeacher
			st.AvgStudentCoverage = progressRows[i].AvgStudent
			st.CompletedUnits = progressRows[i].Completed
		}
		stats = append(stats, st)
	}
	return stats, nil
}
