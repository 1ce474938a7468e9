package ds

import "time"

// Request is a user's request for a catalog service.
type Request struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	UserID      uint          `gorm:"not null;index" json:"user_id" validate:"required"`
	ServiceID   uint          `gorm:"not null;index" json:"service_id" validate:"required"`
	RequestDate time.Time     `gorm:"not null" json:"request_date"`
	Status      RequestStatus `gorm:"type:varchar(20);not null;default:'PENDING';check:,status IN ('PENDING','IN_PROGRESS','COMPLETED','CANCELLED')" json:"status" validate:"oneof=PENDING IN_PROGRESS COMPLETED CANCELLED"`
	Details     *string       `gorm:"type:text" json:"details"`

	User    *User    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"user,omitempty" validate:"-"`
	Service *Service `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"service,omitempty" validate:"-"`
}

func (Request) TableName() string { return "requests" }

func (r Request) Key() uint { return r.ID }

func (r *Request) ApplyDefaults(now time.Time) {
	if r.Status == "" {
		r.Status = RequestPending
	}
	if r.RequestDate.IsZero() {
		r.RequestDate = now
	}
}
