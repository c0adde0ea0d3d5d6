package repository

import (
	"slp_caseload_backend/internal/model"

	"gorm.io/gorm"
)

type CommunicationRepository struct {
	DB *gorm.DB
}

func NewCommunicationRepository(db *gorm.DB) *CommunicationRepository {
	return &CommunicationRepository{DB: db}
}

func (r *CommunicationRepository) Create(comm *model.Communication) error {
	return r.DB.Create(comm).Error
}

func (r *CommunicationRepository) Update(comm *model.Communication) error {
	return r.DB.Save(comm).Error
}

func (r *CommunicationRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Communication{}, id).Error
}

func (r *CommunicationRepository) FindByID(id uint) (*model.Communication, error) {
	var comm model.Communication
	err := r.DB.Preload("Contact").First(&comm, id).Error
	return &comm, err
}

func (r *CommunicationRepository) FindByStudentID(studentID uint, page, pageSize int) ([]model.Communication, int64, error) {
	var comms []model.Communication
	var total int64

	query := r.DB.Model(&model.Communication{}).Where("student_id = ?", studentID)
	query.Count(&total)

	offset := (page - 1) * pageSize
	err := query.Preload("Contact").
		Order("date DESC").
		Offset(offset).Limit(pageSize).
		Find(&comms).Error
	return comms, total, err
}

func (r *CommunicationRepository) FindNeedingFollowUp(therapistID uint) ([]model.Communication, error) {
	var comms []model.Communication
	err := r.DB.Preload("Contact").
		Joins("JOIN students ON students.id = communications.student_id").
		Where("students.therapist_id = ? AND communications.follow_up_needed = ?", therapistID, true).
		Order("communications.date").
		Find(&comms).Error
	return comms, err
}
