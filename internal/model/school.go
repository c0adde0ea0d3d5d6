package model

// swagger:model School
type School struct {
	BaseModel
	Name     string `gorm:"size:255;not null" json:"name"`
	District string `gorm:"size:255" json:"district"`
	Address  string `gorm:"size:255" json:"address"`
	Phone    string `gorm:"size:30" json:"phone"`
}

func (School) TableName() string {
	return "schools"
}
