package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"slp_caseload_backend/internal/model"
	"slp_caseload_backend/internal/repository"
	"strings"
	"time"
)

// CommunicationService logs parent/teacher contacts, with optional
// document attachments stored through the storage provider.

type CommunicationService struct {
	CommRepo *repository.CommunicationRepository
	Storage  *StorageService
}

func NewCommunicationService(commRepo *repository.CommunicationRepository, storage *StorageService) *CommunicationService {
	return &CommunicationService{
		CommRepo: commRepo,
		Storage:  storage,
	}
}

type CommunicationRequest struct {
	ContactID      *uint     `json:"contactId"`
	Date           time.Time `json:"date" binding:"required"`
	Method         string    `json:"method" binding:"required,oneof=call email meeting note"`
	Summary        string    `json:"summary" binding:"max=5000"`
	FollowUpNeeded bool      `json:"followUpNeeded"`
}

func (s *CommunicationService) CreateCommunication(studentID uint, req CommunicationRequest) (*model.Communication, error) {
	comm := &model.Communication{
		StudentID:      studentID,
		ContactID:      req.ContactID,
		Date:           req.Date,
		Method:         model.CommunicationMethod(req.Method),
		Summary:        req.Summary,
		FollowUpNeeded: req.FollowUpNeeded,
	}
	return comm, s.CommRepo.Create(comm)
}

func (s *CommunicationService) UpdateCommunication(id uint, req CommunicationRequest) (*model.Communication, error) {
	comm, err := s.CommRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	comm.ContactID = req.ContactID
	comm.Date = req.Date
	comm.Method = model.CommunicationMethod(req.Method)
	comm.Summary = req.Summary
	comm.FollowUpNeeded = req.FollowUpNeeded
	return comm, s.CommRepo.Update(comm)
}

func (s *CommunicationService) DeleteCommunication(id uint) error {
	return s.CommRepo.Delete(id)
}

func (s *CommunicationService) GetCommunication(id uint) (*model.Communication, error) {
	return s.CommRepo.FindByID(id)
}

func (s *CommunicationService) ListByStudent(studentID uint, page, pageSize int) ([]model.Communication, int64, error) {
	return s.CommRepo.FindByStudentID(studentID, page, pageSize)
}

func (s *CommunicationService) ListNeedingFollowUp(therapistID uint) ([]model.Communication, error) {
	return s.CommRepo.FindNeedingFollowUp(therapistID)
}

// AttachFile stores an uploaded document against a logged communication.
func (s *CommunicationService) AttachFile(ctx context.Context, commID uint, header *multipart.FileHeader) (*model.Communication, error) {
	comm, err := s.CommRepo.FindByID(commID)
	if err != nil {
		return nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	name := fmt.Sprintf("communications/%d/%d%s", commID, time.Now().UnixNano(), ext)

	url, err := s.Storage.Provider.Upload(ctx, name, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	comm.AttachmentURL = url
	return comm, s.CommRepo.Update(comm)
}
