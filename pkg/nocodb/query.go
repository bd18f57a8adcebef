package nocodb

import (
	"net/url"
	"strconv"
	"strings"
)

// QueryParams represents the query parameters accepted by the NocoDB list
// endpoints. Optional values that are left unset are never emitted, so the
// server always sees either a meaningful value or nothing at all.
type QueryParams struct {
	// Where holds a NocoDB filter expression, e.g. "(status,eq,open)".
	Where string
	// Limit is the number of rows to fetch (SQL limit value). When nil the
	// client determines the row count first and fetches all rows.
	Limit *int
	// Offset is the pagination offset (SQL offset value).
	Offset int
	// Sort lists column names to sort by; prefix with "-" for descending.
	Sort []string
	// Fields selects the columns included in the result.
	Fields []string
	// Fields1 selects the columns included in child results.
	Fields1 []string
	// ColumnName names the column used by group-by and aggregate queries.
	ColumnName string
	// Func lists aggregate functions (min, max, avg, sum, count).
	Func []string
	// Having holds a having expression for aggregate queries.
	Having string
}

// NewQueryParams creates an empty QueryParams.
func NewQueryParams() *QueryParams {
	return &QueryParams{}
}

// WithWhere sets the filter expression.
func (p *QueryParams) WithWhere(where string) *QueryParams {
	p.Where = where

	return p
}

// WithLimit sets the row limit.
func (p *QueryParams) WithLimit(limit int) *QueryParams {
	p.Limit = &limit

	return p
}

// WithOffset sets the pagination offset.
func (p *QueryParams) WithOffset(offset int) *QueryParams {
	p.Offset = offset

	return p
}

// WithSort appends sort columns.
func (p *QueryParams) WithSort(columns ...string) *QueryParams {
	p.Sort = append(p.Sort, columns...)

	return p
}

// WithFields appends result columns.
func (p *QueryParams) WithFields(fields ...string) *QueryParams {
	p.Fields = append(p.Fields, fields...)

	return p
}

// WithFields1 appends child-result columns.
func (p *QueryParams) WithFields1(fields ...string) *QueryParams {
	p.Fields1 = append(p.Fields1, fields...)

	return p
}

// WithColumnName sets the group-by/aggregate column.
func (p *QueryParams) WithColumnName(name string) *QueryParams {
	p.ColumnName = name

	return p
}

// WithFunc appends aggregate functions.
func (p *QueryParams) WithFunc(funcs ...string) *QueryParams {
	p.Func = append(p.Func, funcs...)

	return p
}

// WithHaving sets the having expression.
func (p *QueryParams) WithHaving(having string) *QueryParams {
	p.Having = having

	return p
}

// ToValues converts the parameters to url.Values. The offset is always
// emitted; the limit only when set; every other parameter only when
// non-empty. List values are comma-joined.
func (p *QueryParams) ToValues() url.Values {
	values := url.Values{}

	values.Set("offset", strconv.Itoa(p.Offset))

	if p.Limit != nil {
		values.Set("limit", strconv.Itoa(*p.Limit))
	}

	addParam(values, "where", p.Where)
	addParam(values, "sort", strings.Join(p.Sort, ","))
	addParam(values, "fields", strings.Join(p.Fields, ","))
	addParam(values, "fields1", strings.Join(p.Fields1, ","))
	addParam(values, "column_name", p.ColumnName)
	addParam(values, "func", strings.Join(p.Func, ","))
	addParam(values, "having", p.Having)

	return values
}

// addParam adds a key to the values only when the value is non-empty.
func addParam(values url.Values, key, value string) {
	if value == "" {
		return
	}

	values.Set(key, value)
}
