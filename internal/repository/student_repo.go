package repository

import (
	"errors"

	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/common"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/domain"
	"gorm.io/gorm"
)

// StudentRepository student account data access interface
type StudentRepository interface {
	FindByID(id int) (*domain.Student, error)
	Exists(id int) (bool, error)
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

// FindByID finds an active student by ID
func (r *studentRepository) FindByID(id int) (*domain.Student, error) {
	var s domain.Student
	err := r.db.Where("id = ? AND active = ?", id, true).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrAccountNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Exists reports whether an active student with the ID exists
func (r *studentRepository) Exists(id int) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Student{}).
		Where("id = ? AND active = ?", id, true).
		Count(&count).Error
	return count > 0, err
}
