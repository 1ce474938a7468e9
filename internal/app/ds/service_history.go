package ds

import "time"

// ServiceHistory is one audit entry of a change made to a Service.
// OldValue and NewValue hold JSON snapshots of the changed field and are
// stored as given.
type ServiceHistory struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ServiceID  uint      `gorm:"not null;index" json:"service_id" validate:"required"`
	ChangeDate time.Time `gorm:"not null" json:"change_date"`
	ChangedBy  *uint     `gorm:"index" json:"changed_by"`
	OldValue   *string   `gorm:"type:text" json:"old_value"`
	NewValue   *string   `gorm:"type:text" json:"new_value"`

	Service       *Service `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"service,omitempty" validate:"-"`
	ChangedByUser *User    `gorm:"foreignKey:ChangedBy;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"changed_by_user,omitempty" validate:"-"`
}

func (ServiceHistory) TableName() string { return "service_history" }

func (h ServiceHistory) Key() uint { return h.ID }

func (h *ServiceHistory) ApplyDefaults(now time.Time) {
	if h.ChangeDate.IsZero() {
		h.ChangeDate = now
	}
}
