package repository

import (
	"slp_caseload_backend/internal/model"

	"gorm.io/gorm"
)

type SchoolRepository struct {
	DB *gorm.DB
}

func NewSchoolRepository(db *gorm.DB) *SchoolRepository {
	return &SchoolRepository{DB: db}
}

func (r *SchoolRepository) Create(school *model.School) error {
	return r.DB.Create(school).Error
}

func (r *SchoolRepository) Update(school *model.School) error {
	return r.DB.Save(school).Error
}

func (r *SchoolRepository) Delete(id uint) error {
	return r.DB.Delete(&model.School{}, id).Error
}

func (r *SchoolRepository) FindByID(id uint) (*model.School, error) {
	var school model.School
	err := r.DB.First(&school, id).Error
	return &school, err
}

func (r *SchoolRepository) FindAll() ([]model.School, error) {
	var schools []model.School
	err := r.DB.Order("name").Find(&schools).Error
	return schools, err
}
