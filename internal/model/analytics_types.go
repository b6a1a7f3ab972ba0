package model

type BranchStats struct {
	BranchID      uint   `json:"branchId"`
	BranchName    string `json:"branchName"`
	TotalStudents int64  `json:"totalStudents"`
	TotalTeachers int64  `json:"totalTeachers"`
	TotalSubjects int64  `json:"totalSubjects"`
}

type AttendanceStats struct {
	SubjectID      uint    `json:"subjectId"`
	SubjectName    string  `json:"subjectName"`
	AttendanceRate float64 `json:"attendanceRate"`
	TotalPresent   int64   `json:"totalPresent"`
	TotalAbsent    int64   `json:"totalAbsent"`
}

type ProgressStats struct {
	SubjectID          uint    `json:"subjectId"`
	SubjectName        string  `json:"subjectName"`
	AvgTeacherCoverage float64 `json:"avgTeacherCoverage"`
	AvgStudentCoverage float64 `json:"avgStudentCoverage"`
	CompletedUnits     int64   `json:"completedUnits"`
	TotalUnits         int64   `json:"totalUnits"`
}
