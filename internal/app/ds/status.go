package ds

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// ServiceStatus is the lifecycle state of a catalog service.
// It is stored by its symbolic name, never by ordinal.
type ServiceStatus string

const (
	ServiceActive  ServiceStatus = "ACTIVE"
	ServiceRetired ServiceStatus = "RETIRED"
	ServicePlanned ServiceStatus = "PLANNED"
)

// ServiceStatuses lists every accepted ServiceStatus.
var ServiceStatuses = []ServiceStatus{ServiceActive, ServiceRetired, ServicePlanned}

func (s ServiceStatus) Valid() bool {
	switch s {
	case ServiceActive, ServiceRetired, ServicePlanned:
		return true
	}
	return false
}

func (s ServiceStatus) String() string { return string(s) }

// ParseServiceStatus accepts the symbolic name in any letter case.
func ParseServiceStatus(v string) (ServiceStatus, error) {
	s := ServiceStatus(strings.ToUpper(strings.TrimSpace(v)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown service status %q", v)
	}
	return s, nil
}

func (s ServiceStatus) MarshalText() ([]byte, error) {
	return []byte(s), nil
}

// UnmarshalText leaves an empty value empty so that defaults can be applied later.
func (s *ServiceStatus) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*s = ""
		return nil
	}
	parsed, err := ParseServiceStatus(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s ServiceStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown service status %q", string(s))
	}
	return string(s), nil
}

func (s *ServiceStatus) Scan(value interface{}) error {
	raw, err := scanText(value)
	if err != nil {
		return fmt.Errorf("scan service status: %w", err)
	}
	parsed, err := ParseServiceStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// RequestStatus is the state of a user's service request.
type RequestStatus string

const (
	RequestPending    RequestStatus = "PENDING"
	RequestInProgress RequestStatus = "IN_PROGRESS"
	RequestCompleted  RequestStatus = "COMPLETED"
	RequestCancelled  RequestStatus = "CANCELLED"
)

// RequestStatuses lists every accepted RequestStatus.
var RequestStatuses = []RequestStatus{RequestPending, RequestInProgress, RequestCompleted, RequestCancelled}

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestInProgress, RequestCompleted, RequestCancelled:
		return true
	}
	return false
}

func (s RequestStatus) String() string { return string(s) }

func ParseRequestStatus(v string) (RequestStatus, error) {
	s := RequestStatus(strings.ToUpper(strings.TrimSpace(v)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown request status %q", v)
	}
	return s, nil
}

func (s RequestStatus) MarshalText() ([]byte, error) {
	return []byte(s), nil
}

func (s *RequestStatus) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*s = ""
		return nil
	}
	parsed, err := ParseRequestStatus(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s RequestStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown request status %q", string(s))
	}
	return string(s), nil
}

func (s *RequestStatus) Scan(value interface{}) error {
	raw, err := scanText(value)
	if err != nil {
		return fmt.Errorf("scan request status: %w", err)
	}
	parsed, err := ParseRequestStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func scanText(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case nil:
		return "", fmt.Errorf("unexpected NULL")
	}
	return "", fmt.Errorf("unsupported type %T", value)
}
