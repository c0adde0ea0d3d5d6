package repository

import (
	"slp_caseload_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type ScheduleRepository struct {
	DB *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{DB: db}
}

func (r *ScheduleRepository) Create(slot *model.ScheduleSlot) error {
	return r.DB.Create(slot).Error
}

func (r *ScheduleRepository) Update(slot *model.ScheduleSlot) error {
	return r.DB.Save(slot).Error
}

func (r *ScheduleRepository) Delete(id uint) error {
	return r.DB.Delete(&model.ScheduleSlot{}, id).Error
}

func (r *ScheduleRepository) FindByID(id uint) (*model.ScheduleSlot, error) {
	var slot model.ScheduleSlot
	err := r.DB.Preload("Student").First(&slot, id).Error
	return &slot, err
}

func (r *ScheduleRepository) FindByTherapist(therapistID uint) ([]model.ScheduleSlot, error) {
	var slots []model.ScheduleSlot
	err := r.DB.Preload("Student").
		Where("therapist_id = ?", therapistID).
		Order("weekday, start_time").
		Find(&slots).Error
	return slots, err
}

func (r *ScheduleRepository) FindByTherapistAndWeekday(therapistID uint, weekday time.Weekday) ([]model.ScheduleSlot, error) {
	var slots []model.ScheduleSlot
	err := r.DB.Preload("Student").
		Where("therapist_id = ? AND weekday = ?", therapistID, weekday).
		Order("start_time").
		Find(&slots).Error
	return slots, err
}

func (r *ScheduleRepository) DeleteByStudentID(studentID uint) error {
	return r.DB.Delete(&model.ScheduleSlot{}, "student_id = ?", studentID).Error
}
