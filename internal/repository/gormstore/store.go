// Package gormstore persists records through gorm. A Store is generic over the record type and
// addresses columns by the record's JSON field names, so callers never see database column names.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"

	"github.com/CameronXie/ecommerce-backend/commerce/page"
	"github.com/CameronXie/ecommerce-backend/internal/repository"
)

// Store provides database operations for records of type T
type Store[T any] struct {
	db       *gorm.DB
	resource string
	idField  string
	pk       string
	pkField  *schema.Field
	columns  map[string]string
}

// New creates a Store for T. The gorm model of T must have exactly one primary key.
func New[T any](db *gorm.DB, resource string) (*Store[T], error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(new(T)); err != nil {
		return nil, fmt.Errorf("failed to parse %s model: %w", resource, err)
	}

	pk := stmt.Schema.PrioritizedPrimaryField
	if pk == nil {
		return nil, fmt.Errorf("%s model has no primary key", resource)
	}

	columns := make(map[string]string, len(stmt.Schema.Fields))
	for _, field := range stmt.Schema.Fields {
		if field.DBName == "" {
			continue
		}
		columns[jsonName(field.Tag.Get("json"), field.Name)] = field.DBName
	}

	return &Store[T]{
		db:       db,
		resource: resource,
		idField:  jsonName(pk.Tag.Get("json"), pk.Name),
		pk:       pk.DBName,
		pkField:  pk,
		columns:  columns,
	}, nil
}

// MustNew is like New but panics when the model cannot be parsed.
func MustNew[T any](db *gorm.DB, resource string) *Store[T] {
	s, err := New[T](db, resource)
	if err != nil {
		panic(err)
	}
	return s
}

// Resource returns the name used in errors raised by the store.
func (s *Store[T]) Resource() string {
	return s.resource
}

// Get retrieves a record by its identifier
func (s *Store[T]) Get(ctx context.Context, id string) (*T, error) {
	var rec T
	err := s.db.WithContext(ctx).Where(s.eq(s.pk, id)).Take(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.notFound(s.idField, id)
		}
		return nil, fmt.Errorf("failed to retrieve %s with %s %s: %w", s.resource, s.idField, id, err)
	}

	return &rec, nil
}

// Exists reports whether a record with the identifier is stored
func (s *Store[T]) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(new(T)).Where(s.eq(s.pk, id)).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check %s with %s %s: %w", s.resource, s.idField, id, err)
	}

	return count > 0, nil
}

// Create inserts a new record. A duplicate identifier yields an AlreadyExistsError.
func (s *Store[T]) Create(ctx context.Context, rec *T) error {
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &repository.AlreadyExistsError{Resource: s.resource, Key: s.idField, Value: s.id(rec)}
		}
		return fmt.Errorf("failed to create %s: %w", s.resource, err)
	}

	return nil
}

// Save writes every updatable column of the record
func (s *Store[T]) Save(ctx context.Context, rec *T) error {
	if err := s.db.WithContext(ctx).Save(rec).Error; err != nil {
		return fmt.Errorf("failed to save %s with %s %s: %w", s.resource, s.idField, s.id(rec), err)
	}

	return nil
}

// Delete removes a record by its identifier
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where(s.eq(s.pk, id)).Delete(new(T))
	if res.Error != nil {
		return fmt.Errorf("failed to delete %s with %s %s: %w", s.resource, s.idField, id, res.Error)
	}

	if res.RowsAffected == 0 {
		return s.notFound(s.idField, id)
	}

	return nil
}

// List returns one page of all records
func (s *Store[T]) List(ctx context.Context, p page.Pageable) (page.Page[T], error) {
	return s.list(s.db.WithContext(ctx).Model(new(T)), p)
}

// ListBy returns one page of the records whose field equals value
func (s *Store[T]) ListBy(ctx context.Context, field string, value any, p page.Pageable) (page.Page[T], error) {
	column, err := s.column(field)
	if err != nil {
		return page.Page[T]{}, err
	}

	return s.list(s.db.WithContext(ctx).Model(new(T)).Where(s.eq(column, value)), p)
}

// FindBy returns the first record whose field equals value
func (s *Store[T]) FindBy(ctx context.Context, field string, value string) (*T, error) {
	column, err := s.column(field)
	if err != nil {
		return nil, err
	}

	var rec T
	err = s.db.WithContext(ctx).Where(s.eq(column, value)).Order(s.pk).Take(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.notFound(field, value)
		}
		return nil, fmt.Errorf("failed to retrieve %s with %s %s: %w", s.resource, field, value, err)
	}

	return &rec, nil
}

// GetByIDs returns the records with the given identifiers. Missing identifiers are skipped.
func (s *Store[T]) GetByIDs(ctx context.Context, ids []string) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}

	var recs []T
	err := s.db.WithContext(ctx).
		Where(clause.IN{Column: clause.Column{Name: s.pk}, Values: toValues(ids)}).
		Order(s.pk).
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve %s records by %s: %w", s.resource, s.idField, err)
	}

	return recs, nil
}

func (s *Store[T]) list(query *gorm.DB, p page.Pageable) (page.Page[T], error) {
	order, err := s.order(p)
	if err != nil {
		return page.Page[T]{}, err
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return page.Page[T]{}, fmt.Errorf("failed to count %s records: %w", s.resource, err)
	}

	var recs []T
	if total > int64(p.Offset()) {
		err := query.Session(&gorm.Session{}).
			Order(order).
			Offset(p.Offset()).
			Limit(p.Size).
			Find(&recs).Error
		if err != nil {
			return page.Page[T]{}, fmt.Errorf("failed to list %s records: %w", s.resource, err)
		}
	}

	return page.New(recs, p, total), nil
}

func (s *Store[T]) order(p page.Pageable) (clause.OrderBy, error) {
	tiebreak := clause.OrderByColumn{Column: clause.Column{Name: s.pk}}
	if p.Sort == "" {
		return clause.OrderBy{Columns: []clause.OrderByColumn{tiebreak}}, nil
	}

	column, ok := s.columns[p.Sort]
	if !ok {
		return clause.OrderBy{}, &page.SortError{Resource: s.resource, Key: p.Sort}
	}

	columns := []clause.OrderByColumn{{Column: clause.Column{Name: column}, Desc: p.Descending()}}
	if column != s.pk {
		columns = append(columns, tiebreak)
	}

	return clause.OrderBy{Columns: columns}, nil
}

func (s *Store[T]) column(field string) (string, error) {
	column, ok := s.columns[field]
	if !ok {
		return "", fmt.Errorf("%s has no field %q", s.resource, field)
	}
	return column, nil
}

func (s *Store[T]) eq(column string, value any) clause.Eq {
	return clause.Eq{Column: clause.Column{Name: column}, Value: value}
}

func (s *Store[T]) id(rec *T) string {
	value, _ := s.pkField.ValueOf(context.Background(), reflect.ValueOf(rec).Elem())
	return fmt.Sprint(value)
}

func (s *Store[T]) notFound(key, value string) error {
	return &repository.NotFoundError{Resource: s.resource, Key: key, Value: value}
}

func jsonName(tag, fallback string) string {
	name, _, _ := strings.Cut(tag, ",")
	if name == "" || name == "-" {
		return fallback
	}
	return name
}

func toValues(ids []string) []any {
	values := make([]any, len(ids))
	for i, id := range ids {
		values[i] = id
	}
	return values
}
