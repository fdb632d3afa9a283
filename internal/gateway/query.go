package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"tribex/internal/cache"
	"tribex/internal/observability"
)

// QueryBuilder composes a query against one table. Builders are single-use:
// finish with Get or Insert.
type QueryBuilder struct {
	c          *Client
	table      string
	selectCols string
	filters    url.Values
	order      string
	limit      int
	single     bool
	cacheKey   string
	cacheTTL   time.Duration
}

// Select sets the returned columns, including embedded-resource selects such
// as "*,profiles(name,avatar_url),clubs(name)".
func (q *QueryBuilder) Select(cols string) *QueryBuilder {
	q.selectCols = cols
	return q
}

// Eq adds an equality filter on a column.
func (q *QueryBuilder) Eq(column, value string) *QueryBuilder {
	q.filters.Add(column, "eq."+value)
	return q
}

// Order sets the sort column and direction.
func (q *QueryBuilder) Order(column string, descending bool) *QueryBuilder {
	dir := "asc"
	if descending {
		dir = "desc"
	}
	q.order = column + "." + dir
	return q
}

// Limit bounds the number of returned rows.
func (q *QueryBuilder) Limit(n int) *QueryBuilder {
	q.limit = n
	return q
}

// Single requests exactly one row decoded as an object; zero rows become a
// NOT_FOUND error.
func (q *QueryBuilder) Single() *QueryBuilder {
	q.single = true
	return q
}

// Cached enables a read-through cache for Get under the given key. The cache
// is consulted only when a Redis client is configured.
func (q *QueryBuilder) Cached(key string, ttl time.Duration) *QueryBuilder {
	q.cacheKey = key
	q.cacheTTL = ttl
	return q
}

// Get executes the composed query and decodes the rows into dest. dest must
// be a pointer to a slice, or to a struct when Single was requested.
func (q *QueryBuilder) Get(ctx context.Context, dest any) error {
	if q.cacheKey != "" {
		return cache.Aside(ctx, q.cacheKey, dest, q.cacheTTL, func() error {
			return q.get(ctx, dest)
		})
	}
	return q.get(ctx, dest)
}

func (q *QueryBuilder) get(ctx context.Context, dest any) error {
	query := q.wireQuery()
	headers := map[string]string{}
	if q.single {
		headers["Accept"] = "application/vnd.pgrst.object+json"
	}

	status, err := q.c.do(ctx, http.MethodGet, "/rest/v1/"+q.table, query, headers, nil, dest)
	q.c.log.LogRequest(ctx, http.MethodGet, q.table, status)
	if err != nil {
		q.c.log.LogError(ctx, http.MethodGet, q.table, err)
		observability.GatewayRequests.WithLabelValues(q.table, "GET", "error").Inc()
		return err
	}
	observability.GatewayRequests.WithLabelValues(q.table, "GET", "ok").Inc()
	return nil
}

// Insert writes one row and decodes the created representation into dest when
// dest is non-nil.
func (q *QueryBuilder) Insert(ctx context.Context, row, dest any) error {
	query := q.wireQuery()
	headers := map[string]string{"Prefer": "return=representation"}
	if dest != nil {
		headers["Accept"] = "application/vnd.pgrst.object+json"
	}

	status, err := q.c.do(ctx, http.MethodPost, "/rest/v1/"+q.table, query, headers, row, dest)
	q.c.log.LogRequest(ctx, http.MethodPost, q.table, status)
	if err != nil {
		q.c.log.LogError(ctx, http.MethodPost, q.table, err)
		observability.GatewayRequests.WithLabelValues(q.table, "POST", "error").Inc()
		return err
	}
	observability.GatewayRequests.WithLabelValues(q.table, "POST", "ok").Inc()
	return nil
}

func (q *QueryBuilder) wireQuery() url.Values {
	query := url.Values{}
	if q.selectCols != "" {
		query.Set("select", q.selectCols)
	}
	for col, vals := range q.filters {
		for _, v := range vals {
			query.Add(col, v)
		}
	}
	if q.order != "" {
		query.Set("order", q.order)
	}
	if q.limit > 0 {
		query.Set("limit", strconv.Itoa(q.limit))
	}
	return query
}

// String renders the query for logging.
func (q *QueryBuilder) String() string {
	return fmt.Sprintf("%s?%s", q.table, q.wireQuery().Encode())
}
