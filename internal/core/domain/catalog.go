package domain

import (
	"strings"
)

// Kind classifies a data domain by what this application may do with it.
type Kind string

const (
	KindControl Kind = "control"
	KindCreate  Kind = "create"
	KindConsume Kind = "consume"
)

// Capability is a bit set of the CRUD methods a domain exposes.
type Capability uint8

const (
	CapList Capability = 1 << iota
	CapGet
	CapCreate
	CapUpdate
)

// Capabilities returns the method set of a domain kind.
func (k Kind) Capabilities() Capability {
	switch k {
	case KindControl:
		return CapList | CapGet | CapCreate | CapUpdate
	case KindCreate:
		return CapList | CapGet | CapCreate
	case KindConsume:
		return CapList | CapGet
	default:
		return 0
	}
}

func (c Capability) String() string {
	var names []string
	for _, n := range []struct {
		bit  Capability
		name string
	}{{CapList, "list"}, {CapGet, "get"}, {CapCreate, "create"}, {CapUpdate, "update"}} {
		if c&n.bit != 0 {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, ",")
}

// DomainSpec describes one data domain served by the backend.
type DomainSpec struct {
	// Name is the REST path segment, e.g. "profile".
	Name string
	// Title is the display and route-name stem, e.g. "Profile".
	Title string
	// Collection is the collection name used for config version lookups.
	Collection string
	Kind       Kind
}

// Can reports whether the domain supports every capability in c.
func (d DomainSpec) Can(c Capability) bool {
	return d.Kind.Capabilities()&c == c
}

// ListPath is the client-side list route, e.g. "/profiles".
func (d DomainSpec) ListPath() string { return "/" + d.Name + "s" }

// NewPath is the client-side create route.
func (d DomainSpec) NewPath() string { return d.ListPath() + "/new" }

// DetailPath is the client-side detail route pattern.
func (d DomainSpec) DetailPath() string { return d.ListPath() + "/:id" }

// ListRouteName is e.g. "Profiles".
func (d DomainSpec) ListRouteName() string { return d.Title + "s" }

// NewRouteName is e.g. "ProfileNew".
func (d DomainSpec) NewRouteName() string { return d.Title + "New" }

// DetailRouteName is "<Title>Edit" for Control domains and "<Title>View"
// otherwise.
func (d DomainSpec) DetailRouteName() string {
	if d.Can(CapUpdate) {
		return d.Title + "Edit"
	}
	return d.Title + "View"
}

// Catalog is the ordered set of domains. The first domain's list route is the
// default landing route.
type Catalog []DomainSpec

// DefaultCatalog is the domain set the console ships with.
func DefaultCatalog() Catalog {
	return Catalog{
		{Name: "profile", Title: "Profile", Collection: "Profile", Kind: KindControl},
		{Name: "organization", Title: "Organization", Collection: "Organization", Kind: KindControl},
		{Name: "event", Title: "Event", Collection: "Event", Kind: KindCreate},
		{Name: "identity", Title: "Identity", Collection: "Identity", Kind: KindConsume},
	}
}

// Lookup finds a domain by path segment, accepting the plural route form too.
func (c Catalog) Lookup(name string) (DomainSpec, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, d := range c {
		if d.Name == name || d.Name+"s" == name {
			return d, true
		}
	}
	return DomainSpec{}, false
}

// DefaultRoute is the first domain's list route, or "/login" for an empty
// catalog.
func (c Catalog) DefaultRoute() string {
	if len(c) == 0 {
		return LoginPath
	}
	return c[0].ListPath()
}
