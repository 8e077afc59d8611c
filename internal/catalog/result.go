package catalog

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tbckr/catalog/internal/fetch"
	"github.com/tbckr/catalog/internal/output"
)

// ServiceResult is the outcome of FetchServices. Categories is non-nil exactly
// when the fetch succeeded.
type ServiceResult struct {
	fetch.Result[[]Service]
	Categories *Categories
}

// NewServiceResult returns a successful ServiceResult for services, with the
// categories computed from them.
func NewServiceResult(services []Service) ServiceResult {
	if services == nil {
		services = []Service{}
	}
	return ServiceResult{
		Result:     fetch.Success(services),
		Categories: Categorize(services),
	}
}

// Category narrows a successful result to a single category. It reports false
// when r failed or has no such category.
func (r ServiceResult) Category(name string) (ServiceResult, bool) {
	services, ok := r.Categories.Get(name)
	if !r.OK() || !ok {
		return ServiceResult{}, false
	}
	return NewServiceResult(services), true
}

// MarshalJSON renders {"data", "error", "categorizedServices"}.
func (r ServiceResult) MarshalJSON() ([]byte, error) {
	var wire struct {
		Data                []Service   `json:"data"`
		Error               *string     `json:"error"`
		CategorizedServices *Categories `json:"categorizedServices"`
	}
	if r.OK() {
		wire.Data = r.Data()
		wire.CategorizedServices = r.Categories
	} else {
		msg := r.Message()
		wire.Error = &msg
	}
	return json.Marshal(wire)
}

// WriteTable renders the services grouped by category.
func (r ServiceResult) WriteTable(w io.Writer) error {
	var rows [][]string
	for _, name := range r.Categories.Names() {
		services, _ := r.Categories.Get(name)
		for _, s := range services {
			rows = append(rows, []string{output.Sanitize(name), output.Sanitize(s.Name()), output.Sanitize(s.ID())})
		}
	}
	table := output.NewGroupedWrappingTable(w, 20, 30)
	table.Header([]string{"Category", "Service", "ID"})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// WritePlain renders one "category<TAB>service" line per service.
func (r ServiceResult) WritePlain(w io.Writer) error {
	for _, name := range r.Categories.Names() {
		services, _ := r.Categories.Get(name)
		for _, s := range services {
			if _, err := fmt.Fprintf(w, "%s\t%s\n", output.Sanitize(name), output.Sanitize(s.Name())); err != nil {
				return err
			}
		}
	}
	return nil
}

// BranchListing attaches terminal rendering to the result of FetchBranches.
type BranchListing struct {
	fetch.Result[[]Branch]
}

// WriteTable renders one row per branch.
func (l BranchListing) WriteTable(w io.Writer) error {
	var rows [][]string
	for _, b := range l.Data() {
		rows = append(rows, []string{output.Sanitize(b.Name()), output.Sanitize(b.Address()), output.Sanitize(b.Phone())})
	}
	table := output.NewWrappingTable(w, 20, 30)
	table.Header([]string{"Branch", "Address", "Phone"})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// WritePlain renders one "name<TAB>address" line per branch.
func (l BranchListing) WritePlain(w io.Writer) error {
	for _, b := range l.Data() {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", output.Sanitize(b.Name()), output.Sanitize(b.Address())); err != nil {
			return err
		}
	}
	return nil
}
