package ds

// Role groups users (administrator, OTIC coordinator, end user).
type Role struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Description *string `gorm:"type:text" json:"description"`
}

func (Role) TableName() string { return "roles" }

func (r Role) Key() uint { return r.ID }
