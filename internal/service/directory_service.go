package service

import (
	"slp_caseload_backend/internal/model"
	"slp_caseload_backend/internal/repository"
)

// DirectoryService manages the school and contact directory.

type DirectoryService struct {
	SchoolRepo  *repository.SchoolRepository
	ContactRepo *repository.ContactRepository
}

func NewDirectoryService(schoolRepo *repository.SchoolRepository, contactRepo *repository.ContactRepository) *DirectoryService {
	return &DirectoryService{
		SchoolRepo:  schoolRepo,
		ContactRepo: contactRepo,
	}
}

type SchoolRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	District string `json:"district" binding:"max=255"`
	Address  string `json:"address" binding:"max=255"`
	Phone    string `json:"phone" binding:"max=30"`
}

func (s *DirectoryService) CreateSchool(req SchoolRequest) (*model.School, error) {
	school := &model.School{
		Name:     req.Name,
		District: req.District,
		Address:  req.Address,
		Phone:    req.Phone,
	}
	return school, s.SchoolRepo.Create(school)
}

func (s *DirectoryService) UpdateSchool(id uint, req SchoolRequest) (*model.School, error) {
	school, err := s.SchoolRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	school.Name = req.Name
	school.District = req.District
	school.Address = req.Address
	school.Phone = req.Phone
	return school, s.SchoolRepo.Update(school)
}

func (s *DirectoryService) DeleteSchool(id uint) error {
	return s.SchoolRepo.Delete(id)
}

func (s *DirectoryService) ListSchools() ([]model.School, error) {
	return s.SchoolRepo.FindAll()
}

func (s *DirectoryService) GetSchool(id uint) (*model.School, error) {
	return s.SchoolRepo.FindByID(id)
}

type ContactRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Role     string `json:"role" binding:"max=100"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone" binding:"max=30"`
	SchoolID *uint  `json:"schoolId"`
	Notes    string `json:"notes"`
}

func (s *DirectoryService) CreateContact(req ContactRequest) (*model.Contact, error) {
	contact := &model.Contact{
		Name:     req.Name,
		Role:     req.Role,
		Email:    req.Email,
		Phone:    req.Phone,
		SchoolID: req.SchoolID,
		Notes:    req.Notes,
	}
	return contact, s.ContactRepo.Create(contact)
}

func (s *DirectoryService) UpdateContact(id uint, req ContactRequest) (*model.Contact, error) {
	contact, err := s.ContactRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	contact.Name = req.Name
	contact.Role = req.Role
	contact.Email = req.Email
	contact.Phone = req.Phone
	contact.SchoolID = req.SchoolID
	contact.Notes = req.Notes
	return contact, s.ContactRepo.Update(contact)
}

func (s *DirectoryService) DeleteContact(id uint) error {
	return s.ContactRepo.Delete(id)
}

func (s *DirectoryService) ListContacts(name string) ([]model.Contact, error) {
	return s.ContactRepo.FindAll(name)
}

func (s *DirectoryService) ListContactsBySchool(schoolID uint) ([]model.Contact, error) {
	return s.ContactRepo.FindBySchoolID(schoolID)
}
