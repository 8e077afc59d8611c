// Package endpoints maps logical resource names to request addresses.
package endpoints

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tbckr/catalog/internal/apperr"
)

// Name identifies a resource collection exposed by the catalog API.
type Name string

// Logical endpoints known to the catalog.
const (
	Services Name = "services"
	Branches Name = "branches"
)

// Default relative paths for the logical endpoints.
const (
	DefaultServicesPath = "/services"
	DefaultBranchesPath = "/branches"
)

// Table resolves endpoint names against BaseURL.
type Table struct {
	BaseURL string
	Paths   map[Name]string
}

// NewTable returns a Table with the default paths, overridden by any non-empty
// servicesPath / branchesPath.
func NewTable(baseURL, servicesPath, branchesPath string) Table {
	t := Table{
		BaseURL: baseURL,
		Paths: map[Name]string{
			Services: DefaultServicesPath,
			Branches: DefaultBranchesPath,
		},
	}
	if servicesPath != "" {
		t.Paths[Services] = servicesPath
	}
	if branchesPath != "" {
		t.Paths[Branches] = branchesPath
	}
	return t
}

// Names returns the registered endpoint names in sorted order.
func (t Table) Names() []string {
	names := make([]string, 0, len(t.Paths))
	for n := range t.Paths {
		names = append(names, string(n))
	}
	sort.Strings(names)
	return names
}

// Resolve returns the full address for the named endpoint.
func (t Table) Resolve(name Name) (string, error) {
	path, ok := t.Paths[name]
	if !ok {
		return "", apperr.New(apperr.ErrUnknownEndpoint, fmt.Sprintf("unknown endpoint %q", name))
	}
	return t.ResolvePath(path)
}

// ResolvePath joins an arbitrary relative path onto BaseURL with exactly one
// slash between them. Query strings in path are kept as-is.
func (t Table) ResolvePath(path string) (string, error) {
	if t.BaseURL == "" {
		return "", apperr.New(apperr.ErrUnknownEndpoint, "base URL is not configured (set --base-url or CATALOG_BASE_URL)")
	}
	base := strings.TrimRight(t.BaseURL, "/")
	path = strings.TrimLeft(path, "/")
	if path == "" {
		return base, nil
	}
	return base + "/" + path, nil
}

// Lookup resolves s as an endpoint name when it is one, otherwise as a path.
func (t Table) Lookup(s string) (string, error) {
	if _, ok := t.Paths[Name(s)]; ok {
		return t.Resolve(Name(s))
	}
	return t.ResolvePath(s)
}
