package repository

import (
	"face-attendance-backend/internal/model"

	"gorm.io/gorm"
)

type EmployeeRepository interface {
	FindByID(id uint) (*model.Employee, error)
	FindByEmployeeNumber(number string) (*model.Employee, error)
	Create(employee *model.Employee) error
	Update(employee *model.Employee) error
	Delete(id uint) error
	GetAll(search string) ([]model.Employee, error)
	Count() (int64, error)
}

type employeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db}
}

func (r *employeeRepository) FindByID(id uint) (*model.Employee, error) {
	var employee model.Employee
	err := r.db.First(&employee, id).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) FindByEmployeeNumber(number string) (*model.Employee, error) {
	var employee model.Employee
	err := r.db.Where("employee_number = ?", number).First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) Create(employee *model.Employee) error {
	return r.db.Create(employee).Error
}

func (r *employeeRepository) Update(employee *model.Employee) error {
	return r.db.Save(employee).Error
}

func (r *employeeRepository) Delete(id uint) error {
	return r.db.Delete(&model.Employee{}, id).Error
}

func (r *employeeRepository) GetAll(search string) ([]model.Employee, error) {
	var employees []model.Employee
	query := r.db

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name LIKE ? OR employee_number LIKE ? OR department LIKE ?", pattern, pattern, pattern)
	}

	err := query.Order("name asc").Find(&employees).Error
	return employees, err
}

func (r *employeeRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Employee{}).Count(&count).Error
	return count, err
}
