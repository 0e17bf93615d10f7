package repository

import (
	"errors"

	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/common"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/domain"
	"gorm.io/gorm"
)

// MentorRepository mentor account data access interface
type MentorRepository interface {
	FindByID(id int) (*domain.Mentor, error)
	Exists(id int) (bool, error)
}

type mentorRepository struct {
	db *gorm.DB
}

// NewMentorRepository creates a new MentorRepository
func NewMentorRepository(db *gorm.DB) MentorRepository {
	return &mentorRepository{db: db}
}

// FindByID finds an active mentor by ID
func (r *mentorRepository) FindByID(id int) (*domain.Mentor, error) {
	var m domain.Mentor
	err := r.db.Where("id = ? AND active = ?", id, true).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrAccountNotFound
		}
		return nil, err
	}
	return &m, nil
}

// Exists reports whether an active mentor with the ID exists
func (r *mentorRepository) Exists(id int) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Mentor{}).
		Where("id = ? AND active = ?", id, true).
		Count(&count).Error
	return count > 0, err
}
