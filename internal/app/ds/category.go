package ds

// Category groups services (infrastructure, access, applications, support).
type Category struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Description *string `gorm:"type:text" json:"description"`
}

func (Category) TableName() string { return "categories" }

func (c Category) Key() uint { return c.ID }
