package repository

import (
	"context"
	"fmt"
	"sort"
)

// DeleteRule is the ON DELETE action of a foreign key as reported by
// information_schema.
type DeleteRule string

const (
	Restrict DeleteRule = "RESTRICT"
	SetNull  DeleteRule = "SET NULL"
	Cascade  DeleteRule = "CASCADE"
)

// ForeignKey is one child→parent edge of the catalog schema.
type ForeignKey struct {
	Table    string
	Column   string
	RefTable string
	OnDelete DeleteRule
}

// ForeignKeys is the delete policy of the schema. The ds model tags declare
// it; VerifyConstraints checks that the database actually enforces it.
var ForeignKeys = []ForeignKey{
	{Table: "users", Column: "role_id", RefTable: "roles", OnDelete: Restrict},
	{Table: "services", Column: "category_id", RefTable: "categories", OnDelete: SetNull},
	{Table: "services", Column: "created_by", RefTable: "users", OnDelete: SetNull},
	{Table: "service_history", Column: "service_id", RefTable: "services", OnDelete: Cascade},
	{Table: "service_history", Column: "changed_by", RefTable: "users", OnDelete: SetNull},
	{Table: "requests", Column: "user_id", RefTable: "users", OnDelete: Restrict},
	{Table: "requests", Column: "service_id", RefTable: "services", OnDelete: Restrict},
}

const foreignKeysQuery = `
SELECT kcu.table_name  AS table_name,
       kcu.column_name AS column_name,
       ccu.table_name  AS ref_table,
       rc.delete_rule  AS delete_rule
FROM information_schema.referential_constraints rc
JOIN information_schema.key_column_usage kcu
  ON kcu.constraint_name = rc.constraint_name
 AND kcu.constraint_schema = rc.constraint_schema
JOIN information_schema.constraint_column_usage ccu
  ON ccu.constraint_name = rc.constraint_name
 AND ccu.constraint_schema = rc.constraint_schema
WHERE rc.constraint_schema = current_schema()`

type foreignKeyRow struct {
	TableName  string
	ColumnName string
	RefTable   string
	DeleteRule string
}

// VerifyConstraints lists every declared foreign key that is missing from the
// database or carries a different delete rule. An empty result means the
// schema enforces the policy.
func (r *Repository) VerifyConstraints(ctx context.Context) ([]string, error) {
	var rows []foreignKeyRow
	if err := r.db.WithContext(ctx).Raw(foreignKeysQuery).Scan(&rows).Error; err != nil {
		return nil, translate("database", 0, err)
	}
	return compareForeignKeys(ForeignKeys, rows), nil
}

func compareForeignKeys(want []ForeignKey, rows []foreignKeyRow) []string {
	got := make(map[string]foreignKeyRow, len(rows))
	for _, row := range rows {
		got[row.TableName+"."+row.ColumnName] = row
	}

	var problems []string
	for _, fk := range want {
		key := fk.Table + "." + fk.Column
		row, ok := got[key]
		switch {
		case !ok:
			problems = append(problems, fmt.Sprintf("%s: missing foreign key to %s", key, fk.RefTable))
		case row.RefTable != fk.RefTable:
			problems = append(problems, fmt.Sprintf("%s: references %s, want %s", key, row.RefTable, fk.RefTable))
		case DeleteRule(row.DeleteRule) != fk.OnDelete:
			problems = append(problems, fmt.Sprintf("%s: ON DELETE %s, want %s", key, row.DeleteRule, fk.OnDelete))
		}
	}
	sort.Strings(problems)
	return problems
}
