package service

import (
	"slp_caseload_backend/internal/model"
	"slp_caseload_backend/internal/repository"
	"slp_caseload_backend/internal/util"
	"time"
)

// ScheduleService manages the recurring weekly session slots.

type ScheduleService struct {
	ScheduleRepo *repository.ScheduleRepository
	StudentRepo  *repository.StudentRepository
}

func NewScheduleService(scheduleRepo *repository.ScheduleRepository, studentRepo *repository.StudentRepository) *ScheduleService {
	return &ScheduleService{
		ScheduleRepo: scheduleRepo,
		StudentRepo:  studentRepo,
	}
}

type SlotRequest struct {
	StudentID       uint   `json:"studentId" binding:"required"`
	Weekday         int    `json:"weekday" binding:"min=0,max=6"`
	StartTime       string `json:"startTime" binding:"required,len=5"` // HH:MM
	DurationMinutes int    `json:"durationMinutes" binding:"required,min=5"`
	SessionType     string `json:"sessionType" binding:"omitempty,oneof=individual group evaluation makeup"`
	Location        string `json:"location" binding:"max=100"`
}

func (s *ScheduleService) CreateSlot(therapistID uint, req SlotRequest) (*model.ScheduleSlot, error) {
	if _, err := s.StudentRepo.FindByIDAndTherapist(req.StudentID, therapistID); err != nil {
		return nil, err
	}

	sessionType := model.SessionIndividual
	if req.SessionType != "" {
		sessionType = model.SessionType(req.SessionType)
	}

	slot := &model.ScheduleSlot{
		TherapistID:     therapistID,
		StudentID:       req.StudentID,
		Weekday:         time.Weekday(req.Weekday),
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		SessionType:     sessionType,
		Location:        req.Location,
	}
	return slot, s.ScheduleRepo.Create(slot)
}

func (s *ScheduleService) UpdateSlot(therapistID, slotID uint, req SlotRequest) (*model.ScheduleSlot, error) {
	slot, err := s.ScheduleRepo.FindByID(slotID)
	if err != nil {
		return nil, err
	}
	if slot.TherapistID != therapistID {
		return nil, util.ErrPermissionDenied
	}

	slot.StudentID = req.StudentID
	slot.Weekday = time.Weekday(req.Weekday)
	slot.StartTime = req.StartTime
	slot.DurationMinutes = req.DurationMinutes
	if req.SessionType != "" {
		slot.SessionType = model.SessionType(req.SessionType)
	}
	slot.Location = req.Location

	return slot, s.ScheduleRepo.Update(slot)
}

func (s *ScheduleService) DeleteSlot(therapistID, slotID uint) error {
	slot, err := s.ScheduleRepo.FindByID(slotID)
	if err != nil {
		return err
	}
	if slot.TherapistID != therapistID {
		return util.ErrPermissionDenied
	}
	return s.ScheduleRepo.Delete(slotID)
}

// WeekView groups a therapist's slots by weekday for the calendar grid.
func (s *ScheduleService) WeekView(therapistID uint) (map[time.Weekday][]model.ScheduleSlot, error) {
	slots, err := s.ScheduleRepo.FindByTherapist(therapistID)
	if err != nil {
		return nil, err
	}

	week := make(map[time.Weekday][]model.ScheduleSlot)
	for _, slot := range slots {
		week[slot.Weekday] = append(week[slot.Weekday], slot)
	}
	return week, nil
}

func (s *ScheduleService) ListSlots(therapistID uint) ([]model.ScheduleSlot, error) {
	return s.ScheduleRepo.FindByTherapist(therapistID)
}
