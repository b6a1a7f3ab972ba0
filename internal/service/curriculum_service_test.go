package service

import (
	"context"
	"institute_backend/internal/model"
	"institute_backend/internal/repository"
	"institute_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBranchSubjectUnitServices(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	branchRepo := repository.NewBranchRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	stats := new(mockStatsCache)
	stats.On("Invalidate", mock.Anything).Return()

	branches := NewBranchService(branchRepo, stats)
	subjects := NewSubjectService(subjectRepo, branchRepo, stats)
	units := NewUnitService(repository.NewUnitRepository(db), subjectRepo)

	cs, err := branches.Create(ctx, BranchRequest{Name: "Computer Science", HodEmail: "hod.cs@institute.edu"})
	require.NoError(t, err)

	_, err = branches.Create(ctx, BranchRequest{Name: ""})
	assert.ErrorIs(t, err, util.ErrInvalidInput)

	_, err = subjects.Create(ctx, SubjectRequest{Name: "DS", BranchID: 999})
	assert.ErrorIs(t, err, util.ErrNotFound)

	ds, err := subjects.Create(ctx, SubjectRequest{Name: "Data Structures", BranchID: cs.ID, TeacherEmail: "teacher1@institute.edu"})
	require.NoError(t, err)

	mine, err := subjects.List(ctx, repository.SubjectFilter{TeacherEmail: "teacher1@institute.edu"})
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	_, err = units.Create(ctx, UnitRequest{SubjectID: 999, UnitNo: 1, Title: "Arrays"})
	assert.ErrorIs(t, err, util.ErrNotFound)

	u2, err := units.Create(ctx, UnitRequest{SubjectID: ds.ID, UnitNo: 2, Title: "Lists"})
	require.NoError(t, err)
	_, err = units.Create(ctx, UnitRequest{SubjectID: ds.ID, UnitNo: 1, Title: "Arrays"})
	require.NoError(t, err)

	list, err := units.ListBySubject(ctx, ds.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].UnitNo)

	updated, err := units.Update(ctx, u2.ID, UnitRequest{SubjectID: ds.ID, UnitNo: 2, Title: "Linked Lists", Summary: "Nodes"})
	require.NoError(t, err)
	assert.Equal(t, "Linked Lists", updated.Title)

	_, err = units.Get(ctx, 999)
	assert.ErrorIs(t, err, util.ErrNotFound)

	renamed, err := branches.Update(ctx, cs.ID, BranchRequest{Name: "CSE"})
	require.NoError(t, err)
	assert.Equal(t, "CSE", renamed.Name)

	stats.AssertNumberOfCalls(t, "Invalidate", 3)
}

func TestQuestionService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)
	svc := NewQuestionService(repository.NewQuestionRepository(f.db), repository.NewUnitRepository(f.db))

	tests := []struct {
		name string
		req  CreateQuestionRequest
		want error
	}{
		{"unknown type", CreateQuestionRequest{UnitID: f.unit.ID, Question: "Q", Type: "essay", CorrectAnswer: "a"}, util.ErrInvalidInput},
		{"mcq with one option", CreateQuestionRequest{UnitID: f.unit.ID, Question: "Q", Type: model.MultipleChoice, Options: []string{"a"}, CorrectAnswer: "a"}, util.ErrInvalidInput},
		{"mcq answer not an option", CreateQuestionRequest{UnitID: f.unit.ID, Question: "Q", Type: model.MultipleChoice, Options: []string{"a", "b"}, CorrectAnswer: "c"}, util.ErrInvalidInput},
		{"missing answer", CreateQuestionRequest{UnitID: f.unit.ID, Question: "Q", Type: model.ShortAnswer}, util.ErrInvalidInput},
		{"unknown unit", CreateQuestionRequest{UnitID: 999, Question: "Q", Type: model.ShortAnswer, CorrectAnswer: "a"}, util.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := svc.Create(ctx, CreateQuestionRequest{
		UnitID: f.unit.ID, Question: "Which is O(1)?", Type: model.MultipleChoice,
		Options: []string{"Array index", "List search"}, CorrectAnswer: "Array index",
	})
	require.NoError(t, err)
	short, err := svc.Create(ctx, CreateQuestionRequest{
		UnitID: f.unit.ID, Question: "LIFO structure?", Type: model.ShortAnswer,
		Options: []string{"ignored"}, CorrectAnswer: "stack",
	})
	require.NoError(t, err)
	assert.Nil(t, short.Options)

	forStudent, err := svc.ListForUnit(ctx, f.unit.ID, model.Student)
	require.NoError(t, err)
	require.Len(t, forStudent, 2)
	for _, q := range forStudent {
		assert.Empty(t, q.CorrectAnswer)
	}
	assert.Equal(t, []string{"Array index", "List search"}, forStudent[0].Options)

	forTeacher, err := svc.ListForUnit(ctx, f.unit.ID, model.Teacher)
	require.NoError(t, err)
	assert.Equal(t, "Array index", forTeacher[0].CorrectAnswer)
}

func TestAttendanceService(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	stats := new(mockStatsCache)
	stats.On("Invalidate", mock.Anything).Return()
	svc := NewAttendanceService(repository.NewAttendanceRepository(db), stats)

	present, absent := true, false
	saved, err := svc.Record(ctx, []AttendanceEntry{
		{Date: "2024-03-01", StudentEmail: "a@x.edu", SubjectID: 1, Present: &present},
		{Date: "2024-03-01", StudentEmail: "b@x.edu", SubjectID: 1, Present: &absent},
	})
	require.NoError(t, err)
	assert.Len(t, saved, 2)
	stats.AssertNumberOfCalls(t, "Invalidate", 1)

	invalid := []struct {
		name    string
		entries []AttendanceEntry
	}{
		{"empty batch", nil},
		{"bad date", []AttendanceEntry{{Date: "01/03/2024", StudentEmail: "a@x.edu", SubjectID: 1, Present: &present}}},
		{"missing present", []AttendanceEntry{{Date: "2024-03-01", StudentEmail: "a@x.edu", SubjectID: 1}}},
		{"one bad entry rejects batch", []AttendanceEntry{
			{Date: "2024-03-02", StudentEmail: "a@x.edu", SubjectID: 1, Present: &present},
			{Date: "2024-03-02", StudentEmail: "bad", SubjectID: 1, Present: &present},
		}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Record(ctx, tt.entries)
			assert.ErrorIs(t, err, util.ErrInvalidInput)
		})
	}

	mine, err := svc.Query(ctx, AttendanceQuery{StudentEmail: "a@x.edu"})
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	day, err := svc.Query(ctx, AttendanceQuery{Date: "2024-03-01", SubjectID: ptr(uint(1))})
	require.NoError(t, err)
	assert.Len(t, day, 2)

	_, err = svc.Query(ctx, AttendanceQuery{Date: "2024-03-01"})
	assert.ErrorIs(t, err, util.ErrInvalidInput)
	_, err = svc.Query(ctx, AttendanceQuery{Date: "March 1", SubjectID: ptr(uint(1))})
	assert.ErrorIs(t, err, util.ErrInvalidInput)
}
