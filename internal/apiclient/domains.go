package apiclient

import (
	"context"

	"github.com/99minutos/domain-console/internal/core/domain"
)

// Records is a record-type-agnostic view of a Resource, used where the caller
// only relays records (console handlers, CLI output).
type Records interface {
	Spec() domain.DomainSpec
	List(ctx context.Context, params *domain.ListParams) (any, error)
	Get(ctx context.Context, id string) (any, error)
	Create(ctx context.Context, in domain.RecordInput) (*domain.CreatedRef, error)
	Update(ctx context.Context, id string, patch domain.RecordUpdate) (any, error)
}

// Records returns the resource for spec typed by its domain kind.
func (c *Client) Records(spec domain.DomainSpec) Records {
	switch spec.Kind {
	case domain.KindControl:
		return erased[domain.ControlRecord]{NewResource[domain.ControlRecord](c, spec)}
	case domain.KindCreate:
		return erased[domain.CreateRecord]{NewResource[domain.CreateRecord](c, spec)}
	default:
		return erased[domain.ConsumeRecord]{NewResource[domain.ConsumeRecord](c, spec)}
	}
}

// Profiles is the Control domain "profile".
func (c *Client) Profiles() *Resource[domain.ControlRecord] {
	return NewResource[domain.ControlRecord](c, mustLookup("profile"))
}

// Organizations is the Control domain "organization".
func (c *Client) Organizations() *Resource[domain.ControlRecord] {
	return NewResource[domain.ControlRecord](c, mustLookup("organization"))
}

// Events is the Create domain "event".
func (c *Client) Events() *Resource[domain.CreateRecord] {
	return NewResource[domain.CreateRecord](c, mustLookup("event"))
}

// Identities is the Consume domain "identity".
func (c *Client) Identities() *Resource[domain.ConsumeRecord] {
	return NewResource[domain.ConsumeRecord](c, mustLookup("identity"))
}

func mustLookup(name string) domain.DomainSpec {
	spec, ok := domain.DefaultCatalog().Lookup(name)
	if !ok {
		panic("apiclient: domain " + name + " missing from default catalog")
	}
	return spec
}

type erased[T any] struct {
	r *Resource[T]
}

func (e erased[T]) Spec() domain.DomainSpec { return e.r.Spec() }

func (e erased[T]) List(ctx context.Context, params *domain.ListParams) (any, error) {
	page, err := e.r.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return page, nil
}

func (e erased[T]) Get(ctx context.Context, id string) (any, error) {
	rec, err := e.r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (e erased[T]) Create(ctx context.Context, in domain.RecordInput) (*domain.CreatedRef, error) {
	return e.r.Create(ctx, in)
}

func (e erased[T]) Update(ctx context.Context, id string, patch domain.RecordUpdate) (any, error) {
	rec, err := e.r.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return rec, nil
}
