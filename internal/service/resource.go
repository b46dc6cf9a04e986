// Package service implements the lifecycle of the stored records: create, read, list, full replace,
// partial update and delete, plus the queries specific to users, orders, products and wishlists.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/CameronXie/ecommerce-backend/commerce/page"
	"github.com/CameronXie/ecommerce-backend/commerce/patch"
	"github.com/CameronXie/ecommerce-backend/internal/repository"
)

// Store defines the persistence operations for records of type T
type Store[T any] interface {
	Get(ctx context.Context, id string) (*T, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, rec *T) error
	Save(ctx context.Context, rec *T) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, p page.Pageable) (page.Page[T], error)
	ListBy(ctx context.Context, field string, value any, p page.Pageable) (page.Page[T], error)
	FindBy(ctx context.Context, field string, value string) (*T, error)
	GetByIDs(ctx context.Context, ids []string) ([]T, error)
}

// ResourceService manages records of type T described by a patch schema
type ResourceService[T any] struct {
	store  Store[T]
	schema *patch.Schema[T]
	newID  func() string
}

// NewResourceService creates a new ResourceService instance
func NewResourceService[T any](store Store[T], schema *patch.Schema[T]) *ResourceService[T] {
	return &ResourceService[T]{
		store:  store,
		schema: schema,
		newID:  uuid.NewString,
	}
}

// Schema returns the patch schema of the managed records.
func (s *ResourceService[T]) Schema() *patch.Schema[T] {
	return s.schema
}

// Create stores a new record. A record without identifier is assigned a random UUID.
func (s *ResourceService[T]) Create(ctx context.Context, rec *T) (*T, error) {
	id := s.schema.ID(rec)
	if id == "" {
		s.schema.SetID(rec, s.newID())
	} else {
		exists, err := s.store.Exists(ctx, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, &repository.AlreadyExistsError{Resource: s.schema.Resource(), Key: s.schema.IDField(), Value: id}
		}
	}

	if err := s.schema.Validate(rec); err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

// Get returns the record with the identifier
func (s *ResourceService[T]) Get(ctx context.Context, id string) (*T, error) {
	return s.store.Get(ctx, id)
}

// List returns one page of records
func (s *ResourceService[T]) List(ctx context.Context, p page.Pageable) (page.Page[T], error) {
	return s.store.List(ctx, p)
}

// ListBy returns one page of the records whose field equals value
func (s *ResourceService[T]) ListBy(ctx context.Context, field, value string, p page.Pageable) (page.Page[T], error) {
	if value == "" {
		return page.Page[T]{}, &ValidationError{Field: field, Message: "cannot be empty"}
	}

	return s.store.ListBy(ctx, field, value, p)
}

// FindBy returns the first record whose field equals value
func (s *ResourceService[T]) FindBy(ctx context.Context, field, value string) (*T, error) {
	if value == "" {
		return nil, &ValidationError{Field: field, Message: "cannot be empty"}
	}

	return s.store.FindBy(ctx, field, value)
}

// Update replaces the stored record with rec. The identifier in the path wins over the one in rec.
func (s *ResourceService[T]) Update(ctx context.Context, id string, rec *T) (*T, error) {
	if err := s.mustExist(ctx, id); err != nil {
		return nil, err
	}

	s.schema.SetID(rec, id)
	if err := s.schema.Validate(rec); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, rec); err != nil {
		return nil, err
	}

	// reload to pick up columns the store maintains
	return s.store.Get(ctx, id)
}

// Patch applies a sparse update to the stored record. Nothing is written when any update is rejected.
func (s *ResourceService[T]) Patch(ctx context.Context, id string, updates map[string]any) (*T, error) {
	current, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patched, err := s.schema.Apply(*current, updates)
	if err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, &patched); err != nil {
		return nil, err
	}

	return &patched, nil
}

// Delete removes the record with the identifier
func (s *ResourceService[T]) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

func (s *ResourceService[T]) mustExist(ctx context.Context, id string) error {
	exists, err := s.store.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check %s %s: %w", s.schema.Resource(), id, err)
	}

	if !exists {
		return &repository.NotFoundError{Resource: s.schema.Resource(), Key: s.schema.IDField(), Value: id}
	}

	return nil
}
