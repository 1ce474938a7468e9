package repository

import (
	"context"
	"encoding/json"
	"time"

	"gestic/internal/app/ds"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UpdateServiceAudited replaces the mutable fields of service id like
// Services.Update and, in the same transaction, appends one ServiceHistory
// row per field whose value changed. Old and new values are stored as JSON
// objects keyed by column name.
func (r *Repository) UpdateServiceAudited(ctx context.Context, id uint, payload *ds.Service, changedBy *uint) (*ds.Service, []ds.ServiceHistory, error) {
	svc := r.Services
	if err := svc.prepare(payload); err != nil {
		return nil, nil, err
	}

	var out ds.Service
	entries := []ds.ServiceHistory{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The row stays locked until commit so concurrent audited updates
		// diff against the value they actually overwrite.
		var before ds.Service
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&before, id).Error; err != nil {
			return err
		}
		// Updates writes the new values back into its model; keep before untouched.
		if err := tx.Model(&ds.Service{ID: id}).Select(svc.mutable).Omit(clause.Associations).Updates(payload).Error; err != nil {
			return err
		}

		changes, err := diffService(&before, payload)
		if err != nil {
			return err
		}
		now := svc.now()
		for _, c := range changes {
			entries = append(entries, ds.ServiceHistory{
				ServiceID:  id,
				ChangeDate: now,
				ChangedBy:  changedBy,
				OldValue:   c.from,
				NewValue:   c.to,
			})
		}
		if len(entries) > 0 {
			if err := tx.Omit(clause.Associations).Create(&entries).Error; err != nil {
				return err
			}
		}
		return svc.first(tx, id, &out)
	})
	if err != nil {
		return nil, nil, translate(svc.name, id, err)
	}
	return &out, entries, nil
}

type fieldChange struct {
	from *string
	to   *string
}

func diffService(before, after *ds.Service) ([]fieldChange, error) {
	fields := []struct {
		column   string
		from, to any
		changed  bool
	}{
		{"name", before.Name, after.Name, before.Name != after.Name},
		{"description", before.Description, after.Description, before.Description != after.Description},
		{"category_id", before.CategoryID, after.CategoryID, !equalPtr(before.CategoryID, after.CategoryID)},
		{"sla", before.SLA, after.SLA, !equalPtr(before.SLA, after.SLA)},
		{"status", before.Status, after.Status, before.Status != after.Status},
		{"created_by", before.CreatedBy, after.CreatedBy, !equalPtr(before.CreatedBy, after.CreatedBy)},
	}

	var changes []fieldChange
	for _, f := range fields {
		if !f.changed {
			continue
		}
		oldJSON, err := snapshotJSON(f.column, f.from)
		if err != nil {
			return nil, err
		}
		newJSON, err := snapshotJSON(f.column, f.to)
		if err != nil {
			return nil, err
		}
		changes = append(changes, fieldChange{from: &oldJSON, to: &newJSON})
	}
	return changes, nil
}

func snapshotJSON(column string, v any) (string, error) {
	b, err := json.Marshal(map[string]any{column: v})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// setClock pins the time source used for server-assigned dates.
func (r *Repository) setClock(now func() time.Time) {
	r.Roles.now = now
	r.Users.now = now
	r.Categories.now = now
	r.Services.now = now
	r.History.now = now
	r.Requests.now = now
}
