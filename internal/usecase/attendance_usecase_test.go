package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"face-attendance-backend/internal/model"
	"face-attendance-backend/internal/policy"
	"face-attendance-backend/internal/recognizer"
	"face-attendance-backend/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeEmployeeRepo struct {
	employees map[uint]*model.Employee
}

func newFakeEmployeeRepo(employees ...*model.Employee) *fakeEmployeeRepo {
	repo := &fakeEmployeeRepo{employees: make(map[uint]*model.Employee)}
	for _, e := range employees {
		repo.employees[e.ID] = e
	}
	return repo
}

func (r *fakeEmployeeRepo) FindByID(id uint) (*model.Employee, error) {
	if e, ok := r.employees[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeEmployeeRepo) FindByEmployeeNumber(number string) (*model.Employee, error) {
	for _, e := range r.employees {
		if e.EmployeeNumber == number {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeEmployeeRepo) Create(e *model.Employee) error { r.employees[e.ID] = e; return nil }
func (r *fakeEmployeeRepo) Update(e *model.Employee) error { r.employees[e.ID] = e; return nil }
func (r *fakeEmployeeRepo) Delete(id uint) error           { delete(r.employees, id); return nil }
func (r *fakeEmployeeRepo) GetAll(string) ([]model.Employee, error) {
	var all []model.Employee
	for _, e := range r.employees {
		all = append(all, *e)
	}
	return all, nil
}
func (r *fakeEmployeeRepo) Count() (int64, error) { return int64(len(r.employees)), nil }

type fakeRecognizer struct {
	match *recognizer.Match
	err   error
}

func (f *fakeRecognizer) Identify(context.Context, []byte, string) (*recognizer.Match, error) {
	return f.match, f.err
}

func (f *fakeRecognizer) Enroll(context.Context, string, string, []byte, string) error {
	return f.err
}

func newTestUsecase(t *testing.T) (*AttendanceUsecase, *repository.MemoryAttendanceRepository) {
	t.Helper()
	ledger := repository.NewMemoryAttendanceRepository()
	employees := newFakeEmployeeRepo(&model.Employee{
		Model:          gorm.Model{ID: 1},
		Name:           "Arif Rahman",
		EmployeeNumber: "EMP-0001",
		Department:     "Engineering",
		FaceEnrolled:   true,
	})
	u := NewAttendanceUsecase(
		ledger,
		employees,
		&fakeRecognizer{},
		policy.Window{Start: "09:30", End: "09:45"},
		policy.Window{Start: "22:00", End: "22:30"},
	)
	return u, ledger
}

func at(hour, min, sec int) time.Time {
	return time.Date(2026, time.March, 10, hour, min, sec, 0, time.Local)
}

func TestClockInWithinWindow(t *testing.T) {
	u, ledger := newTestUsecase(t)

	record, err := u.Clock(1, ClockActionIn, at(9, 40, 0))
	require.NoError(t, err)
	require.NotNil(t, record.ClockIn)
	require.Nil(t, record.ClockOut)
	require.Equal(t, "2026-03-10", record.Date)
	require.Equal(t, model.StatusPresent, record.Status)
	require.Zero(t, record.WorkingHours)

	stored, err := ledger.GetByEmployeeAndDate(1, "2026-03-10")
	require.NoError(t, err)
	require.Equal(t, record.ClockIn.Unix(), stored.ClockIn.Unix())
}

func TestClockInOutsideWindow(t *testing.T) {
	u, ledger := newTestUsecase(t)

	_, err := u.Clock(1, ClockActionIn, at(9, 50, 0))
	require.ErrorIs(t, err, ErrOutOfWindow)

	// No record may exist after a rejected attempt
	_, err = ledger.GetByEmployeeAndDate(1, "2026-03-10")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestClockInTwiceSameDay(t *testing.T) {
	u, ledger := newTestUsecase(t)

	_, err := u.Clock(1, ClockActionIn, at(9, 35, 0))
	require.NoError(t, err)

	_, err = u.Clock(1, ClockActionIn, at(9, 42, 0))
	require.ErrorIs(t, err, ErrAlreadyClockedIn)

	list, err := ledger.List(repository.AttendanceFilter{EmployeeID: 1})
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestClockOutComputesWorkingHours(t *testing.T) {
	u, _ := newTestUsecase(t)

	_, err := u.Clock(1, ClockActionIn, at(9, 40, 0))
	require.NoError(t, err)

	// 09:40 -> 22:10 is 12h30m
	record, err := u.Clock(1, ClockActionOut, at(22, 10, 0))
	require.NoError(t, err)
	require.NotNil(t, record.ClockOut)
	require.Equal(t, 12.5, record.WorkingHours)

	// Working hours are written together with clock-out, nothing recomputes
	// them afterwards
	again, err := u.TodayStatus(1, at(23, 0, 0))
	require.NoError(t, err)
	require.Equal(t, 12.5, again.WorkingHours)
}

func TestClockOutWithoutClockIn(t *testing.T) {
	u, _ := newTestUsecase(t)

	_, err := u.Clock(1, ClockActionOut, at(22, 10, 0))
	require.ErrorIs(t, err, ErrNotClockedIn)
}

func TestClockOutOutsideWindow(t *testing.T) {
	u, _ := newTestUsecase(t)

	_, err := u.Clock(1, ClockActionIn, at(9, 40, 0))
	require.NoError(t, err)

	_, err = u.Clock(1, ClockActionOut, at(21, 0, 0))
	require.ErrorIs(t, err, ErrOutOfWindow)
}

func TestClockOutTwice(t *testing.T) {
	u, _ := newTestUsecase(t)

	_, err := u.Clock(1, ClockActionIn, at(9, 40, 0))
	require.NoError(t, err)
	_, err = u.Clock(1, ClockActionOut, at(22, 5, 0))
	require.NoError(t, err)

	_, err = u.Clock(1, ClockActionOut, at(22, 20, 0))
	require.ErrorIs(t, err, ErrAlreadyClockedOut)
}

// The window check runs before the state check: an out-of-window attempt on
// an already-closed day still reports the window violation.
func TestOutOfWindowReportedBeforeStateRejection(t *testing.T) {
	u, _ := newTestUsecase(t)

	_, err := u.Clock(1, ClockActionIn, at(9, 40, 0))
	require.NoError(t, err)
	_, err = u.Clock(1, ClockActionOut, at(22, 5, 0))
	require.NoError(t, err)

	_, err = u.Clock(1, ClockActionIn, at(10, 0, 0))
	require.ErrorIs(t, err, ErrOutOfWindow)

	_, err = u.Clock(1, ClockActionOut, at(23, 0, 0))
	require.ErrorIs(t, err, ErrOutOfWindow)
}

func TestWorkingHoursRounding(t *testing.T) {
	u, _ := newTestUsecase(t)

	_, err := u.Clock(1, ClockActionIn, at(9, 40, 0))
	require.NoError(t, err)

	// 09:40:00 -> 22:10:30 is 12h30m30s = 12.508333... -> 12.51
	record, err := u.Clock(1, ClockActionOut, at(22, 10, 30))
	require.NoError(t, err)
	require.Equal(t, 12.51, record.WorkingHours)
}

// With overlapping windows nothing orders the two instants, so the usecase
// itself must refuse a clock-out earlier than the stored clock-in.
func TestClockOutEarlierThanClockIn(t *testing.T) {
	ledger := repository.NewMemoryAttendanceRepository()
	employees := newFakeEmployeeRepo(&model.Employee{
		Model:          gorm.Model{ID: 1},
		Name:           "Arif Rahman",
		EmployeeNumber: "EMP-0001",
	})
	allDay := policy.Window{Start: "00:00", End: "23:59"}
	u := NewAttendanceUsecase(ledger, employees, &fakeRecognizer{}, allDay, allDay)

	_, err := u.Clock(1, ClockActionIn, at(10, 0, 0))
	require.NoError(t, err)

	_, err = u.Clock(1, ClockActionOut, at(9, 0, 0))
	require.ErrorIs(t, err, ErrClockOutBeforeIn)

	// The rejected attempt must not have touched the record
	stored, err := ledger.GetByEmployeeAndDate(1, "2026-03-10")
	require.NoError(t, err)
	require.Nil(t, stored.ClockOut)
	require.Zero(t, stored.WorkingHours)

	// Clock-out at the exact clock-in instant is allowed: zero hours, not negative
	record, err := u.Clock(1, ClockActionOut, at(10, 0, 0))
	require.NoError(t, err)
	require.Zero(t, record.WorkingHours)
}

func TestHistoryPadsSingleDigitMonth(t *testing.T) {
	u, _ := newTestUsecase(t)

	_, err := u.Clock(1, ClockActionIn, at(9, 40, 0))
	require.NoError(t, err)

	list, err := u.History(1, "3", "2026")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "2026-03-10", list[0].Date)
}

func TestClockUnknownEmployee(t *testing.T) {
	u, _ := newTestUsecase(t)

	_, err := u.Clock(99, ClockActionIn, at(9, 40, 0))
	require.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestClockInvalidAction(t *testing.T) {
	u, _ := newTestUsecase(t)

	_, err := u.Clock(1, "sideways", at(9, 40, 0))
	require.ErrorIs(t, err, ErrInvalidAction)
}

func TestConcurrentClockInOneWinner(t *testing.T) {
	u, ledger := newTestUsecase(t)

	const attempts = 10
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = u.Clock(1, ClockActionIn, at(9, 35, 0))
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		// The loser sees either the pre-check or the ledger's hard guard
		ok := errors.Is(err, ErrAlreadyClockedIn) || errors.Is(err, repository.ErrDuplicateRecord)
		require.True(t, ok, "unexpected error: %v", err)
	}
	require.Equal(t, 1, winners)

	list, err := ledger.List(repository.AttendanceFilter{EmployeeID: 1})
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestRecognizeMatch(t *testing.T) {
	u, _ := newTestUsecase(t)
	u.recognizer = &fakeRecognizer{match: &recognizer.Match{EmployeeNumber: "EMP-0001", Confidence: 0.93}}

	summary, err := u.Recognize(context.Background(), []byte("jpeg"), "frame.jpg")
	require.NoError(t, err)
	require.NotNil(t, summary)
	require.Equal(t, uint(1), summary.ID)
	require.Equal(t, "Arif Rahman", summary.Name)
	require.Equal(t, "EMP-0001", summary.EmployeeNumber)
	require.Equal(t, "Engineering", summary.Department)
	require.Equal(t, 0.93, summary.Confidence)
}

func TestRecognizeNoMatch(t *testing.T) {
	u, _ := newTestUsecase(t)
	u.recognizer = &fakeRecognizer{match: nil}

	summary, err := u.Recognize(context.Background(), []byte("jpeg"), "frame.jpg")
	require.NoError(t, err)
	require.Nil(t, summary)
}

func TestRecognizeServiceDown(t *testing.T) {
	u, ledger := newTestUsecase(t)
	u.recognizer = &fakeRecognizer{err: recognizer.ErrUnavailable}

	_, err := u.Recognize(context.Background(), []byte("jpeg"), "frame.jpg")
	require.ErrorIs(t, err, recognizer.ErrUnavailable)

	// Dependency failure must not leave partial state behind
	list, err := ledger.List(repository.AttendanceFilter{})
	require.NoError(t, err)
	require.Empty(t, list)
}

// The face service can answer with an identity the directory no longer has.
func TestRecognizeStaleIdentity(t *testing.T) {
	u, _ := newTestUsecase(t)
	u.recognizer = &fakeRecognizer{match: &recognizer.Match{EmployeeNumber: "EMP-GONE", Confidence: 0.88}}

	_, err := u.Recognize(context.Background(), []byte("jpeg"), "frame.jpg")
	require.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestRecap(t *testing.T) {
	u, _ := newTestUsecase(t)

	_, err := u.Clock(1, ClockActionIn, at(9, 40, 0))
	require.NoError(t, err)

	recap, err := u.Recap("2026-03-10")
	require.NoError(t, err)
	require.EqualValues(t, 1, recap.Present)
	require.EqualValues(t, 0, recap.Partial)
	require.EqualValues(t, 1, recap.Total)
}
