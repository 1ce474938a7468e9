package dto

import (
	"strings"
	"time"

	"gestic/internal/app/apperr"
	"gestic/internal/app/ds"
)

// ============ Common ============

type ErrorResponse struct {
	Status  string              `json:"status"`
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  []apperr.FieldError `json:"fields,omitempty"`
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

func NewList[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Total: len(items)}
}

// ============ Roles and categories ============

type RolePayload struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description *string `json:"description"`
}

func (p RolePayload) Model() ds.Role {
	return ds.Role{Name: strings.TrimSpace(p.Name), Description: p.Description}
}

type CategoryPayload struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description *string `json:"description"`
}

func (p CategoryPayload) Model() ds.Category {
	return ds.Category{Name: strings.TrimSpace(p.Name), Description: p.Description}
}

// ============ Users ============

type UserCreatePayload struct {
	Username string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"required,min=6"`
	Email    string `json:"email" binding:"required,email,max=100"`
	RoleID   uint   `json:"role_id" binding:"required"`
}

// UserUpdatePayload keeps the stored password when Password is empty.
type UserUpdatePayload struct {
	Username string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"omitempty,min=6"`
	Email    string `json:"email" binding:"required,email,max=100"`
	RoleID   uint   `json:"role_id" binding:"required"`
}

// ============ Services ============

type ServicePayload struct {
	Name        string  `json:"name" binding:"required,max=150"`
	Description string  `json:"description" binding:"required"`
	CategoryID  *uint   `json:"category_id"`
	SLA         *string `json:"sla" binding:"omitempty,max=100"`
	Status      string  `json:"status" binding:"omitempty,service_status"`
	CreatedBy   *uint   `json:"created_by"`
}

func (p ServicePayload) Model() ds.Service {
	svc := ds.Service{
		Name:        strings.TrimSpace(p.Name),
		Description: p.Description,
		CategoryID:  p.CategoryID,
		SLA:         p.SLA,
		CreatedBy:   p.CreatedBy,
	}
	if p.Status != "" {
		// binding has already restricted the value to a known status
		svc.Status, _ = ds.ParseServiceStatus(p.Status)
	}
	return svc
}

// AuditedUpdateResponse is returned by PUT /api/services/{id}?audit=true.
type AuditedUpdateResponse struct {
	Service *ds.Service         `json:"service"`
	History []ds.ServiceHistory `json:"history"`
}

// ============ Service history ============

type HistoryPayload struct {
	ServiceID  uint       `json:"service_id" binding:"required"`
	ChangeDate *time.Time `json:"change_date"`
	ChangedBy  *uint      `json:"changed_by"`
	OldValue   *string    `json:"old_value"`
	NewValue   *string    `json:"new_value"`
}

func (p HistoryPayload) Model() ds.ServiceHistory {
	h := ds.ServiceHistory{
		ServiceID: p.ServiceID,
		ChangedBy: p.ChangedBy,
		OldValue:  p.OldValue,
		NewValue:  p.NewValue,
	}
	if p.ChangeDate != nil {
		h.ChangeDate = *p.ChangeDate
	}
	return h
}

// ============ Requests ============

type RequestPayload struct {
	UserID      uint       `json:"user_id" binding:"required"`
	ServiceID   uint       `json:"service_id" binding:"required"`
	RequestDate *time.Time `json:"request_date"`
	Status      string     `json:"status" binding:"omitempty,request_status"`
	Details     *string    `json:"details"`
}

func (p RequestPayload) Model() ds.Request {
	r := ds.Request{
		UserID:    p.UserID,
		ServiceID: p.ServiceID,
		Details:   p.Details,
	}
	if p.RequestDate != nil {
		r.RequestDate = *p.RequestDate
	}
	if p.Status != "" {
		r.Status, _ = ds.ParseRequestStatus(p.Status)
	}
	return r
}

// ============ Catalog export ============

// ServiceSnapshot is a service as published in an export: forward references
// only, no resolved objects.
type ServiceSnapshot struct {
	ID          uint             `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	CategoryID  *uint            `json:"category_id"`
	SLA         *string          `json:"sla"`
	Status      ds.ServiceStatus `json:"status"`
}

type CatalogSnapshot struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Categories  []ds.Category     `json:"categories"`
	Services    []ServiceSnapshot `json:"services"`
}

func NewCatalogSnapshot(now time.Time, categories []ds.Category, services []ds.Service) CatalogSnapshot {
	snap := CatalogSnapshot{
		GeneratedAt: now,
		Categories:  categories,
		Services:    make([]ServiceSnapshot, len(services)),
	}
	for i, s := range services {
		snap.Services[i] = ServiceSnapshot{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			CategoryID:  s.CategoryID,
			SLA:         s.SLA,
			Status:      s.Status,
		}
	}
	return snap
}

type ExportResponse struct {
	Object     string `json:"object"`
	URL        string `json:"url"`
	Categories int    `json:"categories"`
	Services   int    `json:"services"`
}

type ExportURLResponse struct {
	Object string `json:"object"`
	URL    string `json:"url"`
}
