package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"gestic/internal/app/apperr"
	"gestic/internal/app/ds"
	"gestic/internal/app/dto"
	"gestic/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// ServiceAuditor updates a service and records the change in its history.
type ServiceAuditor interface {
	UpdateServiceAudited(ctx context.Context, id uint, payload *ds.Service, changedBy *uint) (*ds.Service, []ds.ServiceHistory, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// SnapshotStore keeps exported catalog snapshots.
type SnapshotStore interface {
	UploadFile(ctx context.Context, data []byte, originalFilename string) (string, error)
	GetFileURL(ctx context.Context, name string) (string, error)
	FileExists(ctx context.Context, name string) (bool, error)
	DeleteFile(ctx context.Context, name string) error
}

type Handler struct {
	Roles      repository.Store[ds.Role]
	Users      repository.Store[ds.User]
	Categories repository.Store[ds.Category]
	Services   repository.Store[ds.Service]
	History    repository.Store[ds.ServiceHistory]
	Requests   repository.Store[ds.Request]

	Auditor ServiceAuditor
	Health  Pinger
	// Exports is nil when object storage is not configured.
	Exports SnapshotStore

	now func() time.Time
}

func NewHandler(r *repository.Repository, exports SnapshotStore) *Handler {
	return &Handler{
		Roles:      r.Roles,
		Users:      r.Users,
		Categories: r.Categories,
		Services:   r.Services,
		History:    r.History,
		Requests:   r.Requests,
		Auditor:    r,
		Health:     r,
		Exports:    exports,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// ============ Helpers ============

// errorResponse writes err using the status and code of its apperr kind.
func (h *Handler) errorResponse(c *gin.Context, err error) {
	e := apperr.From(err)

	entry := logrus.WithFields(logrus.Fields{
		"path": c.FullPath(),
		"code": e.Code,
	})
	if e.HTTPStatus >= http.StatusInternalServerError {
		entry.WithError(err).Error("request failed")
	} else {
		entry.Debug(e.Message)
	}

	c.AbortWithStatusJSON(e.HTTPStatus, dto.ErrorResponse{
		Status:  "fail",
		Code:    e.Code,
		Message: e.Message,
		Fields:  e.Fields,
	})
}

func (h *Handler) successResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	response := dto.SuccessResponse{
		Status:  "success",
		Message: message,
	}
	if data != nil {
		response.Data = data
	}
	c.JSON(statusCode, response)
}

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.Validation("invalid "+name+": "+raw, []apperr.FieldError{{Field: name, Rule: "uint"}}, err)
	}
	return uint(id), nil
}

var registerValidations sync.Once

// useValidations installs the payload rules on gin's binding validator.
func useValidations() {
	registerValidations.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		if err := dto.RegisterValidations(v); err != nil {
			logrus.WithError(err).Error("register binding validations")
		}
	})
}

// bindJSON decodes the body into payload and runs its binding rules.
func bindJSON(c *gin.Context, payload any) error {
	err := c.ShouldBindJSON(payload)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]apperr.FieldError, len(verrs))
		for i, fe := range verrs {
			fields[i] = apperr.FieldError{Field: fe.Field(), Rule: fe.Tag()}
		}
		return apperr.Validation("invalid request body", fields, err)
	}
	return apperr.Validation("malformed request body: "+err.Error(), nil, err)
}
