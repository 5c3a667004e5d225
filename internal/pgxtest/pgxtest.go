// Package pgxtest provides in-memory pgx.Row/pgx.Rows doubles for repository and handler tests.
package pgxtest

import (
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Row scans a fixed set of values, or returns Err.
type Row struct {
	Values []any
	Err    error
}

func NewRow(values ...any) Row {
	return Row{Values: values}
}

func ErrRow(err error) Row {
	return Row{Err: err}
}

func (r Row) Scan(dest ...any) error {
	if r.Err != nil {
		return r.Err
	}
	if r.Values == nil {
		return pgx.ErrNoRows
	}
	return assign(r.Values, dest)
}

// Rows iterates over Data; ScanErr is returned from every Scan when set.
type Rows struct {
	Data    [][]any
	ScanErr error
	IterErr error
	Closed  bool
	idx     int
}

func NewRows(data ...[]any) *Rows {
	return &Rows{Data: data}
}

func (r *Rows) Next() bool {
	if r.idx >= len(r.Data) {
		return false
	}
	r.idx++
	return true
}

func (r *Rows) Scan(dest ...any) error {
	if r.ScanErr != nil {
		return r.ScanErr
	}
	if r.idx == 0 || r.idx > len(r.Data) {
		return pgx.ErrNoRows
	}
	return assign(r.Data[r.idx-1], dest)
}

func (r *Rows) Err() error { return r.IterErr }

func (r *Rows) Close() { r.Closed = true }

func (r *Rows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }

func (r *Rows) Conn() *pgx.Conn { return nil }

func (r *Rows) FieldDescriptions() []pgconn.FieldDescription { return nil }

func (r *Rows) Values() ([]any, error) {
	if r.idx == 0 || r.idx > len(r.Data) {
		return nil, pgx.ErrNoRows
	}
	return r.Data[r.idx-1], nil
}

func (r *Rows) RawValues() [][]byte { return nil }

func assign(values []any, dest []any) error {
	if len(values) != len(dest) {
		return fmt.Errorf("pgxtest: scan %d values into %d destinations", len(values), len(dest))
	}
	for i, v := range values {
		target := reflect.ValueOf(dest[i])
		if target.Kind() != reflect.Pointer || target.IsNil() {
			return fmt.Errorf("pgxtest: destination %d is not a pointer", i)
		}
		elem := target.Elem()
		if v == nil {
			elem.Set(reflect.Zero(elem.Type()))
			continue
		}
		src := reflect.ValueOf(v)
		if src.Type().AssignableTo(elem.Type()) {
			elem.Set(src)
			continue
		}
		if scanner, ok := dest[i].(interface{ Scan(any) error }); ok {
			if err := scanner.Scan(v); err != nil {
				return err
			}
			continue
		}
		if src.Kind() != reflect.String && src.Type().ConvertibleTo(elem.Type()) {
			elem.Set(src.Convert(elem.Type()))
			continue
		}
		return fmt.Errorf("pgxtest: cannot assign %T to %s", v, elem.Type())
	}
	return nil
}

var (
	_ pgx.Row  = Row{}
	_ pgx.Rows = (*Rows)(nil)
)
