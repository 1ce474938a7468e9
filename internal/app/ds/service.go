package ds

import "time"

// Service is an IT service published in the OTIC catalog.
//
// Category and CreatedByUser are read-side resolutions of the foreign keys;
// writes only look at CategoryID and CreatedBy.
type Service struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Name        string        `gorm:"type:varchar(150);not null" json:"name" validate:"required"`
	Description string        `gorm:"type:text;not null" json:"description" validate:"required"`
	CategoryID  *uint         `gorm:"index" json:"category_id"`
	SLA         *string       `gorm:"column:sla;type:varchar(100)" json:"sla"`
	Status      ServiceStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';check:,status IN ('ACTIVE','RETIRED','PLANNED')" json:"status" validate:"oneof=ACTIVE RETIRED PLANNED"`
	CreatedBy   *uint         `gorm:"index" json:"created_by"`
	CreatedAt   time.Time     `gorm:"not null" json:"created_at"`

	Category      *Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"category,omitempty" validate:"-"`
	CreatedByUser *User     `gorm:"foreignKey:CreatedBy;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"created_by_user,omitempty" validate:"-"`
}

func (Service) TableName() string { return "services" }

func (s Service) Key() uint { return s.ID }

func (s *Service) ApplyDefaults(time.Time) {
	if s.Status == "" {
		s.Status = ServiceActive
	}
}
