package repository

import (
	"context"
	"time"

	"gestic/internal/app/ds"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the access contract every catalog entity offers.
type Store[T ds.Record] interface {
	List(ctx context.Context) ([]T, error)
	ListBy(ctx context.Context, column string, id uint) ([]T, error)
	Get(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, rec *T) (*T, error)
	Update(ctx context.Context, id uint, rec *T) (*T, error)
	Delete(ctx context.Context, id uint) error
}

// Entity implements Store for one table. It is described by the entity name
// used in errors, the belongs-to references resolved on every read, and the
// columns an update may overwrite.
type Entity[T ds.Record] struct {
	db       *gorm.DB
	name     string
	preloads []string
	mutable  []string
	now      func() time.Time
}

func newEntity[T ds.Record](db *gorm.DB, name string, preloads []string, mutable ...string) *Entity[T] {
	return &Entity[T]{
		db:       db,
		name:     name,
		preloads: preloads,
		mutable:  mutable,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (e *Entity[T]) Name() string { return e.name }

func (e *Entity[T]) withPreloads(tx *gorm.DB) *gorm.DB {
	for _, p := range e.preloads {
		tx = tx.Preload(p)
	}
	return tx
}

func (e *Entity[T]) first(tx *gorm.DB, id uint, rec *T) error {
	return e.withPreloads(tx).First(rec, id).Error
}

// prepare fills server defaults and rejects invalid payloads before any
// statement is sent.
func (e *Entity[T]) prepare(rec *T) error {
	if d, ok := any(rec).(ds.Defaulter); ok {
		d.ApplyDefaults(e.now())
	}
	if err := ds.Validate(rec); err != nil {
		return validationError(err)
	}
	return nil
}

func (e *Entity[T]) List(ctx context.Context) ([]T, error) {
	out := []T{}
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return e.withPreloads(tx).Order("id").Find(&out).Error
	})
	if err != nil {
		return nil, translate(e.name, 0, err)
	}
	return out, nil
}

// ListBy returns the rows whose foreign key column equals id. It backs the
// derived back-reference views (services of a category, users of a role).
func (e *Entity[T]) ListBy(ctx context.Context, column string, id uint) ([]T, error) {
	out := []T{}
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return e.withPreloads(tx).
			Where(clause.Eq{Column: clause.Column{Name: column}, Value: id}).
			Order("id").
			Find(&out).Error
	})
	if err != nil {
		return nil, translate(e.name, 0, err)
	}
	return out, nil
}

func (e *Entity[T]) Get(ctx context.Context, id uint) (*T, error) {
	var rec T
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return e.first(tx, id, &rec)
	})
	if err != nil {
		return nil, translate(e.name, id, err)
	}
	return &rec, nil
}

// Create inserts rec and returns the stored row with its defaults and
// resolved references. Navigation fields of rec are never written.
func (e *Entity[T]) Create(ctx context.Context, rec *T) (*T, error) {
	if err := e.prepare(rec); err != nil {
		return nil, err
	}
	var out T
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(rec).Error; err != nil {
			return err
		}
		return e.first(tx, (*rec).Key(), &out)
	})
	if err != nil {
		return nil, translate(e.name, 0, err)
	}
	return &out, nil
}

// Update replaces the whitelisted columns of row id with the values of rec.
// Identity and creation timestamps are never touched.
func (e *Entity[T]) Update(ctx context.Context, id uint, rec *T) (*T, error) {
	if err := e.prepare(rec); err != nil {
		return nil, err
	}
	var out T
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := e.replace(tx, id, rec); err != nil {
			return err
		}
		return e.first(tx, id, &out)
	})
	if err != nil {
		return nil, translate(e.name, id, err)
	}
	return &out, nil
}

func (e *Entity[T]) replace(tx *gorm.DB, id uint, rec *T) error {
	var current T
	if err := tx.First(&current, id).Error; err != nil {
		return err
	}
	return tx.Model(&current).Select(e.mutable).Omit(clause.Associations).Updates(rec).Error
}

// Delete removes row id. Dependents follow the foreign key rules of the
// schema: restrict edges make the delete fail, cascade and set-null edges
// are applied in the same statement.
func (e *Entity[T]) Delete(ctx context.Context, id uint) error {
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(new(T), id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate(e.name, id, err)
}
