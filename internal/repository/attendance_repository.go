package repository

import (
	"errors"

	"face-attendance-backend/internal/model"

	"gorm.io/gorm"
)

var (
	// ErrDuplicateRecord: a row for (employee, date) already exists. Raised
	// by the unique index, so the loser of a concurrent clock-in race gets
	// this instead of silently overwriting.
	ErrDuplicateRecord = errors.New("attendance record already exists for this date")
	// ErrClockOutConflict: the conditional clock-out update matched no row,
	// meaning clock_out was already set by someone else.
	ErrClockOutConflict = errors.New("attendance record already clocked out")
)

// AttendanceFilter narrows List. Zero values mean "no filter".
type AttendanceFilter struct {
	EmployeeID uint
	Date       string // exact day, YYYY-MM-DD
	From       string // inclusive range start, YYYY-MM-DD
	To         string // inclusive range end, YYYY-MM-DD
}

type AttendanceRepository interface {
	GetByEmployeeAndDate(employeeID uint, date string) (*model.Attendance, error)
	CreateClockIn(attendance *model.Attendance) error
	CommitClockOut(attendance *model.Attendance) error
	List(filter AttendanceFilter) ([]model.Attendance, error)
	GetByMonth(employeeID uint, month string, year string) ([]model.Attendance, error)
	CountByStatus(date string, status string) (int64, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db}
}

func (r *attendanceRepository) GetByEmployeeAndDate(employeeID uint, date string) (*model.Attendance, error) {
	var attendance model.Attendance
	err := r.db.Where("employee_id = ? AND date = ?", employeeID, date).First(&attendance).Error
	if err != nil {
		return nil, err
	}
	return &attendance, nil
}

func (r *attendanceRepository) CreateClockIn(attendance *model.Attendance) error {
	if err := r.db.Create(attendance).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateRecord
		}
		return err
	}
	return nil
}

// CommitClockOut persists clock-out and working hours with a conditional
// update: only the row that still has clock_out unset is touched. If another
// request already closed the day, RowsAffected is 0 and nothing is written.
func (r *attendanceRepository) CommitClockOut(attendance *model.Attendance) error {
	res := r.db.Model(&model.Attendance{}).
		Where("id = ? AND clock_out IS NULL", attendance.ID).
		Updates(map[string]interface{}{
			"clock_out":     attendance.ClockOut,
			"working_hours": attendance.WorkingHours,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrClockOutConflict
	}
	return nil
}

func (r *attendanceRepository) List(filter AttendanceFilter) ([]model.Attendance, error) {
	var list []model.Attendance
	query := r.db.Preload("Employee")

	if filter.EmployeeID != 0 {
		query = query.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Date != "" {
		query = query.Where("date = ?", filter.Date)
	}
	if filter.From != "" {
		query = query.Where("date >= ?", filter.From)
	}
	if filter.To != "" {
		query = query.Where("date <= ?", filter.To)
	}

	err := query.Order("date desc").Order("clock_in desc").Find(&list).Error
	return list, err
}

func (r *attendanceRepository) GetByMonth(employeeID uint, month string, year string) ([]model.Attendance, error) {
	var list []model.Attendance
	err := r.db.Where("employee_id = ? AND date LIKE ?", employeeID, year+"-"+month+"-%").
		Order("date desc").Find(&list).Error
	return list, err
}

func (r *attendanceRepository) CountByStatus(date string, status string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Attendance{}).Where("date = ? AND status = ?", date, status).Count(&count).Error
	return count, err
}
