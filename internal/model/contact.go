package model

// Contact is a directory entry: a teacher, case manager, parent or other
// person tied to a school or a student's team.
// swagger:model Contact
type Contact struct {
	BaseModel
	Name     string  `gorm:"size:100;not null" json:"name"`
	Role     string  `gorm:"size:100" json:"role"` // e.g. "Case Manager", "Parent"
	Email    string  `gorm:"size:100" json:"email"`
	Phone    string  `gorm:"size:30" json:"phone"`
	SchoolID *uint   `gorm:"index" json:"schoolId,omitempty"`
	School   *School `gorm:"foreignKey:SchoolID" json:"school,omitempty"`
	Notes    string  `gorm:"type:text" json:"notes"`
}

func (Contact) TableName() string {
	return "contacts"
}
