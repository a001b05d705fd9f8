package usecase

import (
	"context"
	"errors"
	"math"
	"time"

	"face-attendance-backend/internal/model"
	"face-attendance-backend/internal/policy"
	"face-attendance-backend/internal/recognizer"
	"face-attendance-backend/internal/repository"

	"gorm.io/gorm"
)

const (
	ClockActionIn  = "in"
	ClockActionOut = "out"
)

// EmployeeSummary is what Recognize hands back to the kiosk so it can show
// who was matched and then call clock-in/out with the resolved id.
type EmployeeSummary struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	EmployeeNumber string  `json:"employee_number"`
	Department     string  `json:"department"`
	Confidence     float64 `json:"confidence"`
}

// AttendanceUsecase runs the per-day clock state machine:
// no record -> clocked in -> clocked out, with admission windows deciding
// when each transition is allowed.
type AttendanceUsecase struct {
	attendanceRepo repository.AttendanceRepository
	employeeRepo   repository.EmployeeRepository
	recognizer     recognizer.Client
	clockInWindow  policy.Window
	clockOutWindow policy.Window
}

func NewAttendanceUsecase(
	attendanceRepo repository.AttendanceRepository,
	employeeRepo repository.EmployeeRepository,
	recognizerClient recognizer.Client,
	clockInWindow policy.Window,
	clockOutWindow policy.Window,
) *AttendanceUsecase {
	return &AttendanceUsecase{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		recognizer:     recognizerClient,
		clockInWindow:  clockInWindow,
		clockOutWindow: clockOutWindow,
	}
}

// Clock records a clock-in or clock-out for the employee at the given
// instant. The window check runs before the state check for both actions,
// so an out-of-window attempt reports ErrOutOfWindow even when the day is
// already closed.
func (u *AttendanceUsecase) Clock(employeeID uint, action string, now time.Time) (*model.Attendance, error) {
	// Recognize and clock are two separate calls, so the identity may have
	// gone stale in between. Re-check it exists before touching the ledger.
	if _, err := u.employeeRepo.FindByID(employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	switch action {
	case ClockActionIn:
		return u.clockIn(employeeID, now)
	case ClockActionOut:
		return u.clockOut(employeeID, now)
	default:
		return nil, ErrInvalidAction
	}
}

func (u *AttendanceUsecase) clockIn(employeeID uint, now time.Time) (*model.Attendance, error) {
	// 1. Window first
	if !u.clockInWindow.Contains(now) {
		return nil, ErrOutOfWindow
	}

	// 2. Then state: any record for today means this day already started
	date := now.Format("2006-01-02")
	existing, err := u.attendanceRepo.GetByEmployeeAndDate(employeeID, date)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyClockedIn
	}

	// 3. Create the record. The repository's uniqueness guard decides the
	// winner if two requests race past the check above.
	clockIn := now
	attendance := &model.Attendance{
		EmployeeID: employeeID,
		Date:       date,
		ClockIn:    &clockIn,
		Status:     model.StatusPresent,
	}
	if err := u.attendanceRepo.CreateClockIn(attendance); err != nil {
		return nil, err
	}
	return attendance, nil
}

func (u *AttendanceUsecase) clockOut(employeeID uint, now time.Time) (*model.Attendance, error) {
	// 1. Window first
	if !u.clockOutWindow.Contains(now) {
		return nil, ErrOutOfWindow
	}

	// 2. Then state
	date := now.Format("2006-01-02")
	existing, err := u.attendanceRepo.GetByEmployeeAndDate(employeeID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotClockedIn
		}
		return nil, err
	}
	if existing.ClockIn == nil {
		return nil, ErrNotClockedIn
	}
	if existing.ClockOut != nil {
		return nil, ErrAlreadyClockedOut
	}
	// The windows are configurable and nothing stops them from overlapping,
	// so the record invariant clockOut >= clockIn has to be checked here.
	// Working hours are never negative.
	if now.Before(*existing.ClockIn) {
		return nil, ErrClockOutBeforeIn
	}

	// 3. Commit on a copy; the conditional update decides the winner and a
	// losing request leaves no trace.
	clockOut := now
	existing.ClockOut = &clockOut
	existing.WorkingHours = roundHours(clockOut.Sub(*existing.ClockIn))
	if err := u.attendanceRepo.CommitClockOut(existing); err != nil {
		if errors.Is(err, repository.ErrClockOutConflict) {
			return nil, ErrAlreadyClockedOut
		}
		return nil, err
	}
	return existing, nil
}

// Recognize resolves a captured image to an employee. A no-match comes back
// as (nil, nil): the kiosk shows "not recognized", it is not an error. A
// dead face service surfaces as recognizer.ErrUnavailable.
func (u *AttendanceUsecase) Recognize(ctx context.Context, image []byte, filename string) (*EmployeeSummary, error) {
	match, err := u.recognizer.Identify(ctx, image, filename)
	if err != nil {
		return nil, err
	}
	if match == nil {
		return nil, nil
	}

	employee, err := u.employeeRepo.FindByEmployeeNumber(match.EmployeeNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Enrolled in the face service but gone from the directory
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	return &EmployeeSummary{
		ID:             employee.ID,
		Name:           employee.Name,
		EmployeeNumber: employee.EmployeeNumber,
		Department:     employee.Department,
		Confidence:     match.Confidence,
	}, nil
}

func (u *AttendanceUsecase) List(filter repository.AttendanceFilter) ([]model.Attendance, error) {
	return u.attendanceRepo.List(filter)
}

func (u *AttendanceUsecase) History(employeeID uint, month string, year string) ([]model.Attendance, error) {
	if month != "" && year != "" {
		// Pad month to 2 digits so it matches the stored YYYY-MM-DD dates
		if len(month) == 1 {
			month = "0" + month
		}
		return u.attendanceRepo.GetByMonth(employeeID, month, year)
	}
	return u.attendanceRepo.List(repository.AttendanceFilter{EmployeeID: employeeID})
}

func (u *AttendanceUsecase) TodayStatus(employeeID uint, now time.Time) (*model.Attendance, error) {
	record, err := u.attendanceRepo.GetByEmployeeAndDate(employeeID, now.Format("2006-01-02"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

// RecapRow is the per-day headcount used by the admin dashboard.
type RecapRow struct {
	Date    string `json:"date"`
	Present int64  `json:"present"`
	Partial int64  `json:"partial"`
	Absent  int64  `json:"absent"`
	Total   int64  `json:"total_employees"`
}

func (u *AttendanceUsecase) Recap(date string) (*RecapRow, error) {
	present, err := u.attendanceRepo.CountByStatus(date, model.StatusPresent)
	if err != nil {
		return nil, err
	}
	partial, err := u.attendanceRepo.CountByStatus(date, model.StatusPartial)
	if err != nil {
		return nil, err
	}
	absent, err := u.attendanceRepo.CountByStatus(date, model.StatusAbsent)
	if err != nil {
		return nil, err
	}
	total, err := u.employeeRepo.Count()
	if err != nil {
		return nil, err
	}
	return &RecapRow{Date: date, Present: present, Partial: partial, Absent: absent, Total: total}, nil
}

// roundHours converts a duration to hours with 2 decimals. Working hours
// are derived strictly from clock-out minus clock-in, nothing else.
func roundHours(d time.Duration) float64 {
	return math.Round(d.Hours()*100) / 100
}
