package repository

import (
	"slp_caseload_backend/internal/model"

	"gorm.io/gorm"
)

type ContactRepository struct {
	DB *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{DB: db}
}

func (r *ContactRepository) Create(contact *model.Contact) error {
	return r.DB.Create(contact).Error
}

func (r *ContactRepository) Update(contact *model.Contact) error {
	return r.DB.Save(contact).Error
}

func (r *ContactRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Contact{}, id).Error
}

func (r *ContactRepository) FindByID(id uint) (*model.Contact, error) {
	var contact model.Contact
	err := r.DB.Preload("School").First(&contact, id).Error
	return &contact, err
}

func (r *ContactRepository) FindAll(name string) ([]model.Contact, error) {
	var contacts []model.Contact
	query := r.DB.Preload("School").Order("name")
	if name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}
	err := query.Find(&contacts).Error
	return contacts, err
}

func (r *ContactRepository) FindBySchoolID(schoolID uint) ([]model.Contact, error) {
	var contacts []model.Contact
	err := r.DB.Where("school_id = ?", schoolID).Order("name").Find(&contacts).Error
	return contacts, err
}
