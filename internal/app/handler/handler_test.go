package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gestic/internal/app/apperr"
	"gestic/internal/app/ds"
	"gestic/internal/app/dto"
	"gestic/internal/app/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func (env *testEnv) do(t *testing.T, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	r.Use(middleware.ActingUser())
	env.handler.RegisterRoutes(r)

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func uintPtr(v uint) *uint { return &v }

func TestRoles_CRUD(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodPost, "/api/roles", `{"name":" Administrador ","description":"Full access"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[ds.Role](t, w)
	assert.Equal(t, uint(1), created.ID)
	assert.Equal(t, "Administrador", created.Name)

	w = env.do(t, http.MethodGet, "/api/roles/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created, decode[ds.Role](t, w))

	w = env.do(t, http.MethodPut, "/api/roles/1", `{"name":"Admin"}`)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[ds.Role](t, w)
	assert.Equal(t, "Admin", updated.Name)
	assert.Nil(t, updated.Description)

	w = env.do(t, http.MethodGet, "/api/roles", "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[dto.ListResponse[ds.Role]](t, w)
	assert.Equal(t, 1, list.Total)

	w = env.do(t, http.MethodDelete, "/api/roles/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodGet, "/api/roles/1", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	body := decode[dto.ErrorResponse](t, w)
	assert.Equal(t, apperr.CodeNotFound, body.Code)
	assert.Equal(t, "role 1 not found", body.Message)
}

func TestEmptyListIsArray(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodGet, "/api/categories", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[],"total":0}`, w.Body.String())
}

func TestInvalidID(t *testing.T) {
	env := newTestEnv()

	for _, path := range []string{"/api/roles/abc", "/api/roles/0", "/api/services/-3"} {
		w := env.do(t, http.MethodGet, path, "")
		require.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Equal(t, apperr.CodeValidation, decode[dto.ErrorResponse](t, w).Code)
	}
}

func TestCreate_InvalidBody(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodPost, "/api/roles", `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[dto.ErrorResponse](t, w)
	assert.Equal(t, apperr.CodeValidation, body.Code)
	assert.Equal(t, []apperr.FieldError{{Field: "Name", Rule: "required"}}, body.Fields)

	w = env.do(t, http.MethodPost, "/api/categories", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Empty(t, env.roles.rows)
}

func TestDelete_Referenced(t *testing.T) {
	env := newTestEnv()
	env.roles.put(ds.Role{Name: "Coordinador"})
	env.roles.deleteErr = apperr.ReferentialIntegrity("role", "fk_users_role", errors.New("23503"))

	w := env.do(t, http.MethodDelete, "/api/roles/1", "")
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, apperr.CodeReferentialIntegrity, decode[dto.ErrorResponse](t, w).Code)
	assert.Len(t, env.roles.rows, 1)
}

func TestStoreUnavailable(t *testing.T) {
	env := newTestEnv()
	env.services.err = apperr.StoreUnavailable(errors.New("dial tcp: connection refused"))

	w := env.do(t, http.MethodGet, "/api/services", "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, apperr.CodeStoreUnavailable, decode[dto.ErrorResponse](t, w).Code)
}

func TestInternalErrorIsOpaque(t *testing.T) {
	env := newTestEnv()
	env.roles.err = errors.New("relation secret_table does not exist")

	w := env.do(t, http.MethodGet, "/api/roles", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, apperr.CodeInternal, decode[dto.ErrorResponse](t, w).Code)
	assert.NotContains(t, w.Body.String(), "secret_table")
}

func TestCreateUser_HashesPassword(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodPost, "/api/users",
		`{"username":"jperez","password":"s3cret!","email":"jperez@otic.example","role_id":1}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "s3cret!")

	stored := env.users.rows[1]
	assert.NotEqual(t, "s3cret!", stored.PasswordHash)
	assert.True(t, stored.CheckPassword("s3cret!"))
}

func TestCreateUser_Invalid(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodPost, "/api/users",
		`{"username":"jperez","password":"s3cret!","email":"not-an-email","role_id":1}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[dto.ErrorResponse](t, w).Fields, apperr.FieldError{Field: "Email", Rule: "email"})

	w = env.do(t, http.MethodPost, "/api/users",
		`{"username":"jperez","password":"123","email":"jperez@otic.example","role_id":1}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[dto.ErrorResponse](t, w).Fields, apperr.FieldError{Field: "Password", Rule: "min"})

	w = env.do(t, http.MethodPost, "/api/users",
		`{"username":"jperez","password":"s3cret!","email":"jperez@otic.example"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[dto.ErrorResponse](t, w).Fields, apperr.FieldError{Field: "RoleID", Rule: "required"})
}

func TestUpdateUser_KeepsPassword(t *testing.T) {
	env := newTestEnv()
	hash, err := ds.HashPassword("original")
	require.NoError(t, err)
	env.users.put(ds.User{Username: "jperez", PasswordHash: hash, Email: "jperez@otic.example", RoleID: 1})

	w := env.do(t, http.MethodPut, "/api/users/1",
		`{"username":"jperez","email":"juan.perez@otic.example","role_id":2}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	stored := env.users.rows[1]
	assert.Equal(t, hash, stored.PasswordHash)
	assert.Equal(t, uint(2), stored.RoleID)

	w = env.do(t, http.MethodPut, "/api/users/1",
		`{"username":"jperez","password":"changed","email":"juan.perez@otic.example","role_id":2}`)
	require.Equal(t, http.StatusOK, w.Code)
	changed := env.users.rows[1]
	assert.True(t, changed.CheckPassword("changed"))

	w = env.do(t, http.MethodPut, "/api/users/9",
		`{"username":"x","email":"x@otic.example","role_id":2}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateService_Status(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodPost, "/api/services",
		`{"name":"VPN","description":"Acceso remoto","status":"planned","sla":"8x5"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, ds.ServicePlanned, env.services.rows[1].Status)
	require.NotNil(t, env.services.rows[1].SLA)
	assert.Equal(t, "8x5", *env.services.rows[1].SLA)

	w = env.do(t, http.MethodPost, "/api/services",
		`{"name":"Wifi","description":"Red inalámbrica","status":"Retired"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, ds.ServiceRetired, env.services.rows[2].Status)

	w = env.do(t, http.MethodPost, "/api/services",
		`{"name":"VPN","description":"Acceso remoto","status":"ARCHIVED"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[dto.ErrorResponse](t, w).Fields, apperr.FieldError{Field: "Status", Rule: "service_status"})
}

func TestUpdateService_Audited(t *testing.T) {
	env := newTestEnv()
	env.services.put(ds.Service{Name: "Correo", Description: "Buzón", Status: ds.ServiceActive})
	body := `{"name":"Correo","description":"Buzón","status":"RETIRED"}`

	w := env.do(t, http.MethodPut, "/api/services/1?audit=true", body, middleware.ActingUserHeader, "5")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[dto.AuditedUpdateResponse](t, w)
	require.NotNil(t, resp.Service)
	assert.Equal(t, ds.ServiceRetired, resp.Service.Status)
	require.Len(t, resp.History, 1)

	assert.Equal(t, uint(1), env.auditor.id)
	require.NotNil(t, env.auditor.changedBy)
	assert.Equal(t, uint(5), *env.auditor.changedBy)
	assert.Equal(t, ds.ServiceActive, env.services.rows[1].Status, "audited path goes through the auditor only")

	w = env.do(t, http.MethodPut, "/api/services/1?audit=1", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, env.auditor.changedBy)

	w = env.do(t, http.MethodPut, "/api/services/1?audit=maybe", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateService_Plain(t *testing.T) {
	env := newTestEnv()
	env.services.put(ds.Service{Name: "Correo", Description: "Buzón", Status: ds.ServiceActive})

	w := env.do(t, http.MethodPut, "/api/services/1", `{"name":"Correo","description":"Buzón","status":"RETIRED","category_id":3}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, env.auditor.payload)
	stored := env.services.rows[1]
	assert.Equal(t, ds.ServiceRetired, stored.Status)
	assert.Equal(t, uint(3), deref(stored.CategoryID))
}

func TestUpdateService_AuditErrors(t *testing.T) {
	env := newTestEnv()
	env.auditor.err = apperr.NotFound("service", 4)

	w := env.do(t, http.MethodPut, "/api/services/4?audit=true", `{"name":"x","description":"y"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDerivedViews(t *testing.T) {
	env := newTestEnv()
	env.categories.put(ds.Category{Name: "Infraestructura"})
	env.categories.put(ds.Category{Name: "Soporte"})
	env.services.put(ds.Service{Name: "Correo", Description: "x", CategoryID: uintPtr(1), CreatedBy: uintPtr(1)})
	env.services.put(ds.Service{Name: "VPN", Description: "y", CategoryID: uintPtr(2)})
	env.services.put(ds.Service{Name: "Backup", Description: "z"})
	env.users.put(ds.User{Username: "jperez", RoleID: 1})
	env.roles.put(ds.Role{Name: "Admin"})

	w := env.do(t, http.MethodGet, "/api/categories/1/services", "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[dto.ListResponse[ds.Service]](t, w)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "Correo", list.Items[0].Name)

	w = env.do(t, http.MethodGet, "/api/users/1/services", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[dto.ListResponse[ds.Service]](t, w).Total)

	w = env.do(t, http.MethodGet, "/api/roles/1/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[dto.ListResponse[ds.User]](t, w).Total)

	w = env.do(t, http.MethodGet, "/api/services/3/history", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, decode[dto.ListResponse[ds.ServiceHistory]](t, w).Total)

	w = env.do(t, http.MethodGet, "/api/categories/9/services", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "category 9 not found", decode[dto.ErrorResponse](t, w).Message)

	w = env.do(t, http.MethodGet, "/api/services/9/requests", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequests(t *testing.T) {
	env := newTestEnv()
	date := time.Date(2024, 2, 10, 8, 0, 0, 0, time.UTC)
	env.requests.put(ds.Request{UserID: 1, ServiceID: 1, RequestDate: date, Status: ds.RequestPending})

	w := env.do(t, http.MethodPut, "/api/requests/1", `{"user_id":1,"service_id":1,"status":"in_progress","details":"urgente"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	stored := env.requests.rows[1]
	assert.True(t, date.Equal(stored.RequestDate))
	assert.Equal(t, ds.RequestInProgress, stored.Status)
	require.NotNil(t, stored.Details)
	assert.Equal(t, "urgente", *stored.Details)

	w = env.do(t, http.MethodPost, "/api/requests", `{"user_id":1}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[dto.ErrorResponse](t, w).Fields, apperr.FieldError{Field: "ServiceID", Rule: "required"})

	w = env.do(t, http.MethodPost, "/api/requests", `{"user_id":1,"service_id":1,"status":"DONE"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPut, "/api/requests/1", `{"user_id":1,"service_id":1,"status":"Completed"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, ds.RequestCompleted, env.requests.rows[1].Status)
}

func TestHistory(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodPost, "/api/service-history",
		`{"service_id":1,"change_date":"2024-02-10T08:00:00Z","old_value":"{\"name\":\"a\"}","new_value":"{\"name\":\"b\"}"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	entry := decode[ds.ServiceHistory](t, w)
	assert.Equal(t, `{"name":"a"}`, *entry.OldValue)

	w = env.do(t, http.MethodPut, "/api/service-history/1", `{"service_id":1,"new_value":"{}"}`)
	require.Equal(t, http.StatusOK, w.Code)
	stored := env.history.rows[1]
	assert.True(t, time.Date(2024, 2, 10, 8, 0, 0, 0, time.UTC).Equal(stored.ChangeDate))
	assert.Nil(t, stored.OldValue)
}

func TestExportCatalog_Disabled(t *testing.T) {
	env := newTestEnv()

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/catalog/export"},
		{http.MethodGet, "/api/catalog/exports/x.json"},
		{http.MethodDelete, "/api/catalog/exports/x.json"},
	} {
		w := env.do(t, tc.method, tc.path, "")
		require.Equal(t, http.StatusServiceUnavailable, w.Code, tc.path)
		assert.Equal(t, apperr.CodeStoreUnavailable, decode[dto.ErrorResponse](t, w).Code)
	}
}

func TestExportCatalog(t *testing.T) {
	env := newTestEnv()
	exports := newFakeExports()
	env.handler.Exports = exports
	env.categories.put(ds.Category{Name: "Infraestructura"})
	env.services.put(ds.Service{
		Name:        "Correo",
		Description: "Buzón",
		CategoryID:  uintPtr(1),
		Status:      ds.ServiceActive,
		Category:    &ds.Category{ID: 1, Name: "Infraestructura"},
	})

	w := env.do(t, http.MethodPost, "/api/catalog/export", "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decode[dto.ExportResponse](t, w)
	assert.Equal(t, "catalog_test_1.json", resp.Object)
	assert.Contains(t, resp.URL, "catalog_test_1.json")
	assert.Equal(t, 1, resp.Categories)
	assert.Equal(t, 1, resp.Services)

	raw := exports.objects[resp.Object]
	var snap dto.CatalogSnapshot
	require.NoError(t, json.Unmarshal(raw, &snap))
	assert.True(t, testNow.Equal(snap.GeneratedAt))
	require.Len(t, snap.Services, 1)
	assert.Equal(t, uint(1), deref(snap.Services[0].CategoryID))
	assert.NotContains(t, string(raw), `"category":`)

	w = env.do(t, http.MethodGet, "/api/catalog/exports/"+resp.Object, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, resp.Object, decode[dto.ExportURLResponse](t, w).Object)

	w = env.do(t, http.MethodDelete, "/api/catalog/exports/"+resp.Object, "")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodGet, "/api/catalog/exports/"+resp.Object, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportCatalog_UploadFails(t *testing.T) {
	env := newTestEnv()
	exports := newFakeExports()
	exports.err = errors.New("bucket unreachable")
	env.handler.Exports = exports

	w := env.do(t, http.MethodPost, "/api/catalog/export", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealth(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodGet, "/ping", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())

	w = env.do(t, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", decode[dto.SuccessResponse](t, w).Status)

	env.handler.Health = fakePinger{err: apperr.StoreUnavailable(errors.New("connection refused"))}
	w = env.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
