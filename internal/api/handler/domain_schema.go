package handler

import (
	"github.com/99minutos/domain-console/internal/core/domain"
)

// statusEnumerator is the enumerator that lists a domain's status values.
const statusEnumerator = "status"

type domainModel struct {
	Name         string `json:"name"`
	Title        string `json:"title"`
	Kind         string `json:"kind"`
	Capabilities string `json:"capabilities"`
	ListPath     string `json:"list_path"`
	NewPath      string `json:"new_path,omitempty"`
}

func toDomainModel(spec domain.DomainSpec) domainModel {
	m := domainModel{
		Name:         spec.Name,
		Title:        spec.Title,
		Kind:         string(spec.Kind),
		Capabilities: spec.Kind.Capabilities().String(),
		ListPath:     spec.ListPath(),
	}
	if spec.Can(domain.CapCreate) {
		m.NewPath = spec.NewPath()
	}
	return m
}

type listPageResponse struct {
	Domain domainModel       `json:"domain"`
	Query  domain.ListParams `json:"query"`
	Page   any               `json:"page"`
}

type formField struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
}

type newFormResponse struct {
	Domain        domainModel           `json:"domain"`
	Fields        []formField           `json:"fields"`
	StatusOptions []domain.DropdownItem `json:"status_options"`
}

type detailResponse struct {
	Domain   domainModel `json:"domain"`
	Editable bool        `json:"editable"`
	Record   any         `json:"record"`
	// StatusOptions is only filled for editable records.
	StatusOptions []domain.DropdownItem `json:"status_options,omitempty"`
}

var recordFields = []formField{
	{Name: "name", Required: true},
	{Name: "description"},
	{Name: "status"},
}
