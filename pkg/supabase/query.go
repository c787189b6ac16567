package supabase

import (
	"net/url"
	"strconv"
	"strings"
)

// Query builds a resource path in the store's filter grammar:
// field=eq.value, field=neq.value, order=field.desc, limit=N, offset=N.
// Parameters appear in the order they were added.
type Query struct {
	resource string
	params   []string
}

// NewQuery starts a query against the named resource (table).
func NewQuery(resource string) *Query {
	return &Query{resource: resource}
}

// Select sets the column list, e.g. "*" or "count".
func (q *Query) Select(cols string) *Query {
	return q.raw("select", cols)
}

// Eq adds an equality filter on field.
func (q *Query) Eq(field, value string) *Query {
	return q.raw(field, "eq."+url.QueryEscape(value))
}

// Neq adds a not-equal filter on field.
func (q *Query) Neq(field, value string) *Query {
	return q.raw(field, "neq."+url.QueryEscape(value))
}

// OrderDesc sorts results by field, newest first.
func (q *Query) OrderDesc(field string) *Query {
	return q.raw("order", field+".desc")
}

// Limit caps the number of returned rows.
func (q *Query) Limit(n int) *Query {
	return q.raw("limit", strconv.Itoa(n))
}

// Offset skips the first n rows.
func (q *Query) Offset(n int) *Query {
	return q.raw("offset", strconv.Itoa(n))
}

func (q *Query) raw(key, value string) *Query {
	q.params = append(q.params, key+"="+value)
	return q
}

// String renders the resource path for Client.Do.
func (q *Query) String() string {
	if len(q.params) == 0 {
		return q.resource
	}
	return q.resource + "?" + strings.Join(q.params, "&")
}
