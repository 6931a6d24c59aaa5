// Package query translates list query parameters (filter, sort, fields,
// relations, page) into a Request that repositories apply to the database.
package query

import (
	"errors"
	"net/url"

	"github.com/gorilla/schema"
)

// Request is the parsed form of a list query.
type Request struct {
	Filters   []Predicate
	Sort      []SortSpec
	Relations Relations
	Fields    Fields
	Page      Page
}

type rawParams struct {
	Sort       string `schema:"sort"`
	Fields     string `schema:"fields"`
	Relations  string `schema:"relations"`
	PageNumber string `schema:"page[number]"`
	PageSize   string `schema:"page[size]"`
}

var decoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

// Parse validates values against res. Each parameter category stops at its
// first problem; problems from different categories are returned together as
// ValidationErrors.
func Parse(values url.Values, res *Resource, maxPageSize int) (*Request, error) {
	var raw rawParams
	if err := decoder.Decode(&raw, values); err != nil {
		return nil, ValidationErrors{invalid("query", "malformed query string")}
	}

	var (
		req  = &Request{}
		errs ValidationErrors
		err  error
	)
	collect := func(err error) {
		var ve *ValidationError
		if errors.As(err, &ve) {
			errs = append(errs, ve)
		} else if err != nil {
			errs = append(errs, invalid("query", "%v", err))
		}
	}

	if req.Filters, err = ParseFilters(values, res.Filterable); err != nil {
		collect(err)
	}
	if req.Sort, err = ParseSort(raw.Sort, res.Sortable); err != nil {
		collect(err)
	}
	if len(req.Sort) == 0 {
		req.Sort = append([]SortSpec(nil), res.DefaultSort...)
	}
	if req.Relations, err = ParseRelations(raw.Relations, res.Relations); err != nil {
		collect(err)
	}
	if req.Fields, err = ParseFields(raw.Fields, res.Fields, res.DefaultFields); err != nil {
		collect(err)
	}
	if req.Page, err = ParsePage(PageParams{Number: raw.PageNumber, Size: raw.PageSize}, maxPageSize); err != nil {
		collect(err)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return req, nil
}

// ParseShape parses only fields and relations, for single-resource reads.
func ParseShape(values url.Values, res *Resource) (Fields, Relations, error) {
	var raw rawParams
	if err := decoder.Decode(&raw, values); err != nil {
		return Fields{}, Relations{}, ValidationErrors{invalid("query", "malformed query string")}
	}
	var errs ValidationErrors
	rel, err := ParseRelations(raw.Relations, res.Relations)
	if err != nil {
		errs = append(errs, err.(*ValidationError))
	}
	fields, err := ParseFields(raw.Fields, res.Fields, res.DefaultFields)
	if err != nil {
		errs = append(errs, err.(*ValidationError))
	}
	if len(errs) > 0 {
		return Fields{}, Relations{}, errs
	}
	return fields, rel, nil
}
