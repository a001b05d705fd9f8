package repository

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"face-attendance-backend/internal/model"

	"gorm.io/gorm"
)

// MemoryAttendanceRepository keeps the ledger in a mutex-guarded map keyed
// by (employee, date). It honors the same duplicate and clock-out conflict
// semantics as the MySQL repository, which makes it usable for tests and
// for running the API without a database.
type MemoryAttendanceRepository struct {
	mu      sync.Mutex
	records map[string]*model.Attendance
	nextID  uint
}

func NewMemoryAttendanceRepository() *MemoryAttendanceRepository {
	return &MemoryAttendanceRepository{records: make(map[string]*model.Attendance), nextID: 1}
}

func attendanceKey(employeeID uint, date string) string {
	return fmt.Sprintf("%d|%s", employeeID, date)
}

func (r *MemoryAttendanceRepository) GetByEmployeeAndDate(employeeID uint, date string) (*model.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[attendanceKey(employeeID, date)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *record
	return &copied, nil
}

func (r *MemoryAttendanceRepository) CreateClockIn(attendance *model.Attendance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := attendanceKey(attendance.EmployeeID, attendance.Date)
	if _, exists := r.records[key]; exists {
		return ErrDuplicateRecord
	}

	attendance.ID = r.nextID
	r.nextID++

	stored := *attendance
	r.records[key] = &stored
	return nil
}

func (r *MemoryAttendanceRepository) CommitClockOut(attendance *model.Attendance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := attendanceKey(attendance.EmployeeID, attendance.Date)
	stored, ok := r.records[key]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if stored.ClockOut != nil {
		return ErrClockOutConflict
	}

	stored.ClockOut = attendance.ClockOut
	stored.WorkingHours = attendance.WorkingHours
	return nil
}

func (r *MemoryAttendanceRepository) List(filter AttendanceFilter) ([]model.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var list []model.Attendance
	for _, record := range r.records {
		if filter.EmployeeID != 0 && record.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Date != "" && record.Date != filter.Date {
			continue
		}
		if filter.From != "" && record.Date < filter.From {
			continue
		}
		if filter.To != "" && record.Date > filter.To {
			continue
		}
		list = append(list, *record)
	}

	// Most recent date first, ties broken by most recent clock-in
	sort.Slice(list, func(i, j int) bool {
		if list[i].Date != list[j].Date {
			return list[i].Date > list[j].Date
		}
		a, b := list[i].ClockIn, list[j].ClockIn
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		return a.After(*b)
	})
	return list, nil
}

func (r *MemoryAttendanceRepository) GetByMonth(employeeID uint, month string, year string) ([]model.Attendance, error) {
	return r.List(AttendanceFilter{
		EmployeeID: employeeID,
		From:       year + "-" + month + "-01",
		To:         year + "-" + month + "-31",
	})
}

func (r *MemoryAttendanceRepository) CountByStatus(date string, status string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, record := range r.records {
		if record.Date == date && strings.EqualFold(record.Status, status) {
			count++
		}
	}
	return count, nil
}
