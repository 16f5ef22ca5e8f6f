// Package query turns list-request query strings into GORM scopes. Every
// list endpoint shares the same pipeline: structural filters with relational
// operators, free-text search, a whitelisted sort, a field projection and a
// pagination window, plus a count scope that ignores the window so reported
// totals stay pagination-independent.
package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// DefaultLimit is the page size applied when the request does not set one
const DefaultLimit = 20

// Reserved control keys. The three id keys (clientId, initiativeId, storeId)
// carry visibility scoping that callers resolve against the caller's role
// before building the base conditions, so the builder must not apply them
// structurally a second time.
var reservedKeys = map[string]bool{
	"page":         true,
	"limit":        true,
	"sort":         true,
	"fields":       true,
	"search":       true,
	"clientId":     true,
	"initiativeId": true,
	"storeId":      true,
}

// Relational operators accepted in field[op]=value pairs
var operators = map[string]string{
	"gte": ">=",
	"gt":  ">",
	"lte": "<=",
	"lt":  "<",
	"ne":  "<>",
	"in":  "IN",
}

// Resource declares a resource's query capabilities: which query keys map to
// which columns, and which columns free-text search runs over. Repositories
// satisfy this instead of the builder guessing at document shapes.
type Resource interface {
	FilterFields() map[string]string
	SearchFields() []string
}

type condition struct {
	column string
	op     string
	value  any
	list   []string
}

// Builder accumulates the filter, sort, projection and pagination derived
// from one request. The four chained steps mutate and return the builder;
// order does not matter.
type Builder struct {
	resource Resource
	values   url.Values

	base       map[string]any
	conds      []condition
	searchTerm string
	orderExpr  string
	selectCols []string

	page  int
	limit int

	filtered  bool
	sorted    bool
	projected bool
	paginated bool
}

// New creates a builder for one request. base holds column conditions the
// caller already resolved (resource scope, role visibility); incoming
// filters never override a base column.
func New(resource Resource, values url.Values, base map[string]any) *Builder {
	if base == nil {
		base = map[string]any{}
	}
	return &Builder{
		resource: resource,
		values:   values,
		base:     base,
		page:     1,
		limit:    DefaultLimit,
	}
}

// Filter parses every non-reserved query key into a structural condition.
// field=value is equality; field[op]=value applies a relational operator.
// A bracketed key with an unknown operator falls back to equality on the
// raw value; validation of shapes is the request schema's job, not ours.
func (b *Builder) Filter() *Builder {
	if b.filtered {
		return b
	}
	b.filtered = true

	fields := b.resource.FilterFields()
	for key, vals := range b.values {
		if len(vals) == 0 || vals[0] == "" {
			continue
		}
		name, op := splitOperatorKey(key)
		if reservedKeys[name] {
			continue
		}
		column, ok := fields[name]
		if !ok {
			continue
		}
		if _, taken := b.base[column]; taken {
			continue
		}

		raw := vals[0]
		switch {
		case op == "in":
			b.conds = append(b.conds, condition{column: column, op: "IN", list: strings.Split(raw, ",")})
		case op != "" && operators[op] != "":
			b.conds = append(b.conds, condition{column: column, op: operators[op], value: raw})
		default:
			b.conds = append(b.conds, condition{column: column, op: "=", value: raw})
		}
	}

	if term := b.values.Get("search"); term != "" {
		b.searchTerm = term
	}
	return b
}

// Sort parses the comma-separated sort key; a leading '-' means descending.
// Fields outside the resource's whitelist are dropped. Defaults to newest
// first.
func (b *Builder) Sort() *Builder {
	if b.sorted {
		return b
	}
	b.sorted = true

	fields := b.resource.FilterFields()
	var parts []string
	for _, spec := range strings.Split(b.values.Get("sort"), ",") {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}
		dir := "ASC"
		if strings.HasPrefix(spec, "-") {
			dir = "DESC"
			spec = spec[1:]
		}
		if column, ok := fields[spec]; ok {
			parts = append(parts, column+" "+dir)
		}
	}
	if len(parts) == 0 {
		parts = []string{"created_at DESC"}
	}
	b.orderExpr = strings.Join(parts, ", ")
	return b
}

// LimitFields parses the comma-separated projection list. When absent, only
// the optimistic-lock version column is omitted.
func (b *Builder) LimitFields() *Builder {
	if b.projected {
		return b
	}
	b.projected = true

	fields := b.resource.FilterFields()
	for _, f := range strings.Split(b.values.Get("fields"), ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if column, ok := fields[f]; ok {
			b.selectCols = append(b.selectCols, column)
		}
	}
	return b
}

// Paginate computes the skip/limit window from page and limit
func (b *Builder) Paginate() *Builder {
	if b.paginated {
		return b
	}
	b.paginated = true

	if v, err := strconv.Atoi(b.values.Get("page")); err == nil && v > 0 {
		b.page = v
	}
	if v, err := strconv.Atoi(b.values.Get("limit")); err == nil && v > 0 {
		b.limit = v
	}
	return b
}

// Page returns the resolved page number
func (b *Builder) Page() int { return b.page }

// Limit returns the resolved page size
func (b *Builder) Limit() int { return b.limit }

// Scope applies every step that has been enabled on the builder
func (b *Builder) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = b.applyFilter(db)
		if b.sorted && b.orderExpr != "" {
			db = db.Order(b.orderExpr)
		}
		if b.projected {
			if len(b.selectCols) > 0 {
				db = db.Select(b.selectCols)
			} else {
				db = db.Omit("version")
			}
		}
		if b.paginated {
			db = db.Offset((b.page - 1) * b.limit).Limit(b.limit)
		}
		return db
	}
}

// CountScope applies only the base conditions, structural filter and search,
// so a count run with it reflects the filter regardless of the page window.
func (b *Builder) CountScope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return b.applyFilter(db)
	}
}

// RangeScope applies filter and sort with an explicit skip/limit window,
// ignoring page-based pagination and projection. Exports use it.
func (b *Builder) RangeScope(skip, limit int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = b.applyFilter(db)
		if b.sorted && b.orderExpr != "" {
			db = db.Order(b.orderExpr)
		}
		return db.Offset(skip).Limit(limit)
	}
}

func (b *Builder) applyFilter(db *gorm.DB) *gorm.DB {
	for column, value := range b.base {
		db = db.Where(column+" = ?", value)
	}
	for _, c := range b.conds {
		if c.op == "IN" {
			db = db.Where(c.column+" IN ?", c.list)
			continue
		}
		db = db.Where(fmt.Sprintf("%s %s ?", c.column, c.op), c.value)
	}
	if b.searchTerm != "" {
		if clause, args := b.searchClause(); clause != "" {
			db = db.Where(clause, args...)
		}
	}
	return db
}

// searchClause builds a case-insensitive LIKE across the resource's search
// columns. LIKE metacharacters in the term are escaped so user input always
// matches literally.
func (b *Builder) searchClause() (string, []any) {
	cols := b.resource.SearchFields()
	if len(cols) == 0 {
		return "", nil
	}
	pattern := "%" + escapeLike(strings.ToLower(b.searchTerm)) + "%"
	parts := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, col := range cols {
		parts[i] = fmt.Sprintf("LOWER(%s) LIKE ? ESCAPE '\\'", col)
		args[i] = pattern
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// splitOperatorKey splits "price[gte]" into ("price", "gte"); a plain key
// returns an empty operator.
func splitOperatorKey(key string) (string, string) {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return key, ""
	}
	return key[:open], key[open+1 : len(key)-1]
}
