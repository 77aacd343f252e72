package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/99minutos/domain-console/internal/core/domain"
)

// Resource is the CRUD surface of one domain. Every domain shares the same
// method shapes; the domain's capability set decides which ones may be called.
type Resource[T any] struct {
	client *Client
	spec   domain.DomainSpec
}

// NewResource binds a domain spec to a client.
func NewResource[T any](c *Client, spec domain.DomainSpec) *Resource[T] {
	return &Resource[T]{client: c, spec: spec}
}

// Spec returns the domain this resource serves.
func (r *Resource[T]) Spec() domain.DomainSpec { return r.spec }

// List returns one page. params may be nil.
func (r *Resource[T]) List(ctx context.Context, params *domain.ListParams) (*domain.Page[T], error) {
	if err := r.require(domain.CapList); err != nil {
		return nil, err
	}
	endpoint := r.base()
	if q := params.Encode(); q != "" {
		endpoint += "?" + q
	}
	var page domain.Page[T]
	if err := r.client.Do(ctx, http.MethodGet, endpoint, nil, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get fetches one record by _id.
func (r *Resource[T]) Get(ctx context.Context, id string) (*T, error) {
	if err := r.require(domain.CapGet); err != nil {
		return nil, err
	}
	var out T
	if err := r.client.Do(ctx, http.MethodGet, r.item(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create posts a new record and returns its _id.
func (r *Resource[T]) Create(ctx context.Context, in domain.RecordInput) (*domain.CreatedRef, error) {
	if err := r.require(domain.CapCreate); err != nil {
		return nil, err
	}
	var out domain.CreatedRef
	if err := r.client.Do(ctx, http.MethodPost, r.base(), in, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update patches a record and returns the stored result.
func (r *Resource[T]) Update(ctx context.Context, id string, patch domain.RecordUpdate) (*T, error) {
	if err := r.require(domain.CapUpdate); err != nil {
		return nil, err
	}
	var out T
	if err := r.client.Do(ctx, http.MethodPatch, r.item(id), patch, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T]) require(c domain.Capability) error {
	if !r.spec.Can(c) {
		return fmt.Errorf("%s %s: %w", c, r.spec.Name, domain.ErrOperationNotSupported)
	}
	return nil
}

func (r *Resource[T]) base() string { return "/" + r.spec.Name }

func (r *Resource[T]) item(id string) string { return r.base() + "/" + url.PathEscape(id) }
