package domain

import (
	"net/url"
	"strconv"
	"strings"
)

// Breadcrumb is the audit trail the backend attaches to create and save
// operations.
type Breadcrumb struct {
	FromIP        string `json:"from_ip"`
	ByUser        string `json:"by_user"`
	AtTime        string `json:"at_time"`
	CorrelationID string `json:"correlation_id"`
}

// ControlRecord is a fully managed record (create, read, update).
type ControlRecord struct {
	ID          string     `json:"_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status,omitempty"`
	Created     Breadcrumb `json:"created"`
	Saved       Breadcrumb `json:"saved"`
}

// CreateRecord is an append-only record (create, read).
type CreateRecord struct {
	ID          string     `json:"_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status,omitempty"`
	Created     Breadcrumb `json:"created"`
}

// ConsumeRecord is a read-only record owned by another system.
type ConsumeRecord struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
}

// RecordInput is the create payload shared by Control and Create domains.
type RecordInput struct {
	Name        string `json:"name"                  validate:"required"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
}

// RecordUpdate is a PATCH payload; nil fields are left untouched.
type RecordUpdate struct {
	Name        *string `json:"name,omitempty"        validate:"omitempty,min=1"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// CreatedRef is the response of a create call.
type CreatedRef struct {
	ID string `json:"_id"`
}

// Page is the infinite-scroll envelope shared by every list endpoint.
// NextCursor is nil iff HasMore is false.
type Page[T any] struct {
	Items      []T     `json:"items"`
	Limit      int     `json:"limit"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

// Sort orders accepted by list endpoints.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ListParams are the optional list filters. Zero values are omitted.
type ListParams struct {
	Name    string `query:"name"     json:"name,omitempty"`
	AfterID string `query:"after_id" json:"after_id,omitempty"`
	Limit   int    `query:"limit"    json:"limit,omitempty"    validate:"omitempty,min=1,max=500"`
	SortBy  string `query:"sort_by"  json:"sort_by,omitempty"`
	Order   string `query:"order"    json:"order,omitempty"    validate:"omitempty,oneof=asc desc"`
}

// Encode renders the present fields as a query string in the fixed order
// name, after_id, limit, sort_by, order. It returns "" when nothing is set.
func (p *ListParams) Encode() string {
	if p == nil {
		return ""
	}
	var parts []string
	add := func(key, value string) {
		if value == "" {
			return
		}
		parts = append(parts, url.QueryEscape(key)+"="+url.QueryEscape(value))
	}
	add("name", p.Name)
	add("after_id", p.AfterID)
	if p.Limit != 0 {
		add("limit", strconv.Itoa(p.Limit))
	}
	add("sort_by", p.SortBy)
	add("order", p.Order)
	return strings.Join(parts, "&")
}
