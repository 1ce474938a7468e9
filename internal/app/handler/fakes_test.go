package handler

import (
	"context"
	"sort"
	"sync"
	"time"

	"gestic/internal/app/apperr"
	"gestic/internal/app/ds"
	"gestic/internal/app/repository"
)

// fakeStore is an in-memory repository.Store. fk resolves the foreign key
// columns used by ListBy.
type fakeStore[T ds.Record] struct {
	mu    sync.Mutex
	name  string
	rows  map[uint]T
	next  uint
	setID func(*T, uint)
	fk    func(rec T, column string) uint

	err       error // returned by every call when set
	deleteErr error
}

var _ repository.Store[ds.Role] = (*fakeStore[ds.Role])(nil)

func newFakeStore[T ds.Record](name string, setID func(*T, uint), fk func(T, string) uint) *fakeStore[T] {
	return &fakeStore[T]{name: name, rows: map[uint]T{}, setID: setID, fk: fk}
}

func (f *fakeStore[T]) put(rec T) *T {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	f.setID(&rec, f.next)
	f.rows[f.next] = rec
	return &rec
}

func (f *fakeStore[T]) sorted(keep func(T) bool) []T {
	ids := make([]uint, 0, len(f.rows))
	for id := range f.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := []T{}
	for _, id := range ids {
		if keep(f.rows[id]) {
			out = append(out, f.rows[id])
		}
	}
	return out
}

func (f *fakeStore[T]) List(context.Context) ([]T, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sorted(func(T) bool { return true }), nil
}

func (f *fakeStore[T]) ListBy(_ context.Context, column string, id uint) ([]T, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sorted(func(rec T) bool { return f.fk(rec, column) == id }), nil
}

func (f *fakeStore[T]) Get(_ context.Context, id uint) (*T, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.rows[id]
	if !ok {
		return nil, apperr.NotFound(f.name, id)
	}
	return &rec, nil
}

func (f *fakeStore[T]) Create(_ context.Context, rec *T) (*T, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.put(*rec), nil
}

func (f *fakeStore[T]) Update(_ context.Context, id uint, rec *T) (*T, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return nil, apperr.NotFound(f.name, id)
	}
	out := *rec
	f.setID(&out, id)
	f.rows[id] = out
	return &out, nil
}

func (f *fakeStore[T]) Delete(_ context.Context, id uint) error {
	if f.err != nil {
		return f.err
	}
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return apperr.NotFound(f.name, id)
	}
	delete(f.rows, id)
	return nil
}

func deref(p *uint) uint {
	if p == nil {
		return 0
	}
	return *p
}

type fakeAuditor struct {
	id        uint
	payload   *ds.Service
	changedBy *uint
	err       error
}

func (a *fakeAuditor) UpdateServiceAudited(_ context.Context, id uint, payload *ds.Service, changedBy *uint) (*ds.Service, []ds.ServiceHistory, error) {
	a.id, a.payload, a.changedBy = id, payload, changedBy
	if a.err != nil {
		return nil, nil, a.err
	}
	out := *payload
	out.ID = id
	old, updated := `{"status":"ACTIVE"}`, `{"status":"RETIRED"}`
	return &out, []ds.ServiceHistory{{ID: 1, ServiceID: id, ChangedBy: changedBy, OldValue: &old, NewValue: &updated}}, nil
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type fakeExports struct {
	mu      sync.Mutex
	objects map[string][]byte
	err     error
}

func newFakeExports() *fakeExports { return &fakeExports{objects: map[string][]byte{}} }

func (e *fakeExports) UploadFile(_ context.Context, data []byte, _ string) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	name := "catalog_test_1.json"
	e.objects[name] = data
	return name, nil
}

func (e *fakeExports) GetFileURL(_ context.Context, name string) (string, error) {
	return "http://minio.local/gestic-exports/" + name + "?sig=x", nil
}

func (e *fakeExports) FileExists(_ context.Context, name string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.objects[name]
	return ok, nil
}

func (e *fakeExports) DeleteFile(_ context.Context, name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.objects, name)
	return nil
}

type testEnv struct {
	handler    *Handler
	roles      *fakeStore[ds.Role]
	users      *fakeStore[ds.User]
	categories *fakeStore[ds.Category]
	services   *fakeStore[ds.Service]
	history    *fakeStore[ds.ServiceHistory]
	requests   *fakeStore[ds.Request]
	auditor    *fakeAuditor
}

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestEnv() *testEnv {
	env := &testEnv{
		roles: newFakeStore("role", func(r *ds.Role, id uint) { r.ID = id },
			func(ds.Role, string) uint { return 0 }),
		users: newFakeStore("user", func(u *ds.User, id uint) { u.ID = id },
			func(u ds.User, col string) uint {
				if col == "role_id" {
					return u.RoleID
				}
				return 0
			}),
		categories: newFakeStore("category", func(c *ds.Category, id uint) { c.ID = id },
			func(ds.Category, string) uint { return 0 }),
		services: newFakeStore("service", func(s *ds.Service, id uint) { s.ID = id },
			func(s ds.Service, col string) uint {
				switch col {
				case "category_id":
					return deref(s.CategoryID)
				case "created_by":
					return deref(s.CreatedBy)
				}
				return 0
			}),
		history: newFakeStore("service history", func(h *ds.ServiceHistory, id uint) { h.ID = id },
			func(h ds.ServiceHistory, col string) uint {
				if col == "service_id" {
					return h.ServiceID
				}
				return 0
			}),
		requests: newFakeStore("request", func(r *ds.Request, id uint) { r.ID = id },
			func(r ds.Request, col string) uint {
				switch col {
				case "user_id":
					return r.UserID
				case "service_id":
					return r.ServiceID
				}
				return 0
			}),
		auditor: &fakeAuditor{},
	}
	env.handler = &Handler{
		Roles:      env.roles,
		Users:      env.users,
		Categories: env.categories,
		Services:   env.services,
		History:    env.history,
		Requests:   env.requests,
		Auditor:    env.auditor,
		Health:     fakePinger{},
		now:        func() time.Time { return testNow },
	}
	return env
}
