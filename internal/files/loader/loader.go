package loader

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/vvka-141/pgload/pkg/pgload"
)

// Store implements pgload.TableStore on top of pgx.
type Store struct{}

var _ pgload.TableStore = (*Store)(nil)

// NewStore creates a new table store.
func NewStore() *Store {
	return &Store{}
}

// EnsureSchema creates schema when it does not exist. The public schema is
// assumed to be present.
func (s *Store) EnsureSchema(ctx context.Context, q pgload.Querier, schema string) error {
	if schema == "" || schema == pgload.DefaultSchema {
		return nil
	}
	if err := validateIdentifier("schema", schema); err != nil {
		return err
	}
	if _, err := q.Exec(ctx, "CREATE SCHEMA IF NOT EXISTS "+pgx.Identifier{schema}.Sanitize()); err != nil {
		return fmt.Errorf("%w: failed to create schema %s: %w", pgload.ErrPersistFailed, schema, err)
	}
	return nil
}

// Replace drops table, recreates it from ds and copies every row in one
// transaction. A non-empty comment is attached to the new table.
func (s *Store) Replace(ctx context.Context, q pgload.Querier, table pgload.TableRef, ds *pgload.Dataset, comment string) (int64, error) {
	if ds == nil || len(ds.Columns) == 0 {
		return 0, fmt.Errorf("%w: %s: dataset has no columns", pgload.ErrPersistFailed, table)
	}
	if err := validateIdentifier("table", table.Name); err != nil {
		return 0, err
	}

	tx, err := q.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: failed to begin transaction: %w", pgload.ErrPersistFailed, table, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	batch := &pgx.Batch{}
	batch.Queue(buildDropTableSQL(table))
	batch.Queue(buildCreateTableSQL(table, ds.Columns))

	results := tx.SendBatch(ctx, batch)
	for _, step := range []string{"drop", "create"} {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return 0, fmt.Errorf("%w: %s: failed to %s table: %w", pgload.ErrPersistFailed, table, step, err)
		}
	}
	if err := results.Close(); err != nil {
		return 0, fmt.Errorf("%w: %s: %w", pgload.ErrPersistFailed, table, err)
	}

	n, err := tx.CopyFrom(ctx, identifier(table), ds.ColumnNames(), pgx.CopyFromRows(ds.Rows))
	if err != nil {
		return 0, fmt.Errorf("%w: %s: copy failed: %w", pgload.ErrPersistFailed, table, err)
	}
	if n != int64(len(ds.Rows)) {
		return 0, fmt.Errorf("%w: %s: copied %d of %d rows", pgload.ErrPersistFailed, table, n, len(ds.Rows))
	}

	if comment != "" {
		if _, err := tx.Exec(ctx, buildCommentSQL(table, comment)); err != nil {
			return 0, fmt.Errorf("%w: %s: failed to comment table: %w", pgload.ErrPersistFailed, table, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%w: %s: commit failed: %w", pgload.ErrPersistFailed, table, err)
	}
	return n, nil
}

// ReadBack runs SELECT * against table and returns the full result.
// Column names come from the result's field descriptions.
func (s *Store) ReadBack(ctx context.Context, q pgload.Querier, table pgload.TableRef) (*pgload.Dataset, error) {
	rows, err := q.Query(ctx, buildSelectSQL(table))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", pgload.ErrVerifyFailed, table, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	ds := &pgload.Dataset{Columns: make([]pgload.Column, len(fields))}
	for i, fd := range fields {
		ds.Columns[i] = pgload.Column{Name: fd.Name, Type: columnTypeForOID(fd.DataTypeOID)}
	}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: failed to decode row %d: %w", pgload.ErrVerifyFailed, table, len(ds.Rows)+1, err)
		}
		for i, v := range values {
			values[i] = normalizeValue(v)
		}
		ds.Rows = append(ds.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", pgload.ErrVerifyFailed, table, err)
	}
	return ds, nil
}

func identifier(table pgload.TableRef) pgx.Identifier {
	if table.Schema == "" {
		return pgx.Identifier{table.Name}
	}
	return pgx.Identifier{table.Schema, table.Name}
}

func buildDropTableSQL(table pgload.TableRef) string {
	return "DROP TABLE IF EXISTS " + identifier(table).Sanitize()
}

func buildCreateTableSQL(table pgload.TableRef, columns []pgload.Column) string {
	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = pgx.Identifier{c.Name}.Sanitize() + " " + c.Type.SQLType()
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", identifier(table).Sanitize(), strings.Join(defs, ", "))
}

// COMMENT ON does not accept bind parameters.
func buildCommentSQL(table pgload.TableRef, comment string) string {
	return fmt.Sprintf("COMMENT ON TABLE %s IS %s", identifier(table).Sanitize(), quoteLiteral(comment))
}

func buildSelectSQL(table pgload.TableRef) string {
	return "SELECT * FROM " + identifier(table).Sanitize()
}

// quoteLiteral quotes s as a standard-conforming string literal.
func quoteLiteral(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func validateIdentifier(kind, name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: %s name is empty", pgload.ErrPersistFailed, kind)
	case len(name) > pgload.MaxIdentifierLength:
		return fmt.Errorf("%w: %s name %q exceeds %d bytes", pgload.ErrPersistFailed, kind, name, pgload.MaxIdentifierLength)
	case strings.ContainsRune(name, 0):
		return fmt.Errorf("%w: %s name %q contains a NUL byte", pgload.ErrPersistFailed, kind, name)
	}
	return nil
}

func columnTypeForOID(oid uint32) pgload.ColumnType {
	switch oid {
	case pgtype.Int8OID, pgtype.Int4OID, pgtype.Int2OID:
		return pgload.ColumnBigint
	case pgtype.Float8OID, pgtype.Float4OID:
		return pgload.ColumnDouble
	case pgtype.BoolOID:
		return pgload.ColumnBoolean
	default:
		return pgload.ColumnText
	}
}

// normalizeValue maps decoded pgx values onto the Dataset value set:
// nil, string, int64, float64 or bool.
func normalizeValue(v any) any {
	switch x := v.(type) {
	case nil, string, int64, float64, bool:
		return x
	case int32:
		return int64(x)
	case int16:
		return int64(x)
	case float32:
		return float64(x)
	case []byte:
		return string(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
