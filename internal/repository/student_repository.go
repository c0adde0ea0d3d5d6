package repository

import (
	"slp_caseload_backend/internal/model"

	"gorm.io/gorm"
)

// StudentRepository handles caseload entry data access.

type StudentRepository struct {
	DB *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{DB: db}
}

func (r *StudentRepository) Create(student *model.Student) error {
	return r.DB.Create(student).Error
}

func (r *StudentRepository) Update(student *model.Student) error {
	return r.DB.Save(student).Error
}

func (r *StudentRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Student{}, id).Error
}

func (r *StudentRepository) FindByID(id uint) (*model.Student, error) {
	var student model.Student
	err := r.DB.Preload("School").First(&student, id).Error
	return &student, err
}

func (r *StudentRepository) FindByIDAndTherapist(id, therapistID uint) (*model.Student, error) {
	var student model.Student
	err := r.DB.Preload("School").
		Where("id = ? AND therapist_id = ?", id, therapistID).
		First(&student).Error
	return &student, err
}

// FindByTherapist lists a therapist's caseload, optionally filtered by
// name and active flag, ordered by last name.
func (r *StudentRepository) FindByTherapist(therapistID uint, name string, activeOnly bool, page, pageSize int) ([]model.Student, int64, error) {
	var students []model.Student
	var total int64

	query := r.DB.Model(&model.Student{}).Where("therapist_id = ?", therapistID)
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	if name != "" {
		query = query.Where("(first_name LIKE ? OR last_name LIKE ?)", "%"+name+"%", "%"+name+"%")
	}
	query.Count(&total)

	offset := (page - 1) * pageSize
	err := query.Preload("School").
		Order("last_name, first_name").
		Offset(offset).Limit(pageSize).
		Find(&students).Error
	return students, total, err
}

func (r *StudentRepository) FindAllActive() ([]model.Student, error) {
	var students []model.Student
	err := r.DB.Where("active = ?", true).Find(&students).Error
	return students, err
}

func (r *StudentRepository) CountByTherapist(therapistID uint) (int64, error) {
	var total int64
	err := r.DB.Model(&model.Student{}).
		Where("therapist_id = ? AND active = ?", therapistID, true).
		Count(&total).Error
	return total, err
}
