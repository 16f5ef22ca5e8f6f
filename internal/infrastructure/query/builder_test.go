package query

import (
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type companyRow struct {
	ID          string `gorm:"primaryKey"`
	CompanyName string
	Email       string
	Units       int
	IsDeleted   bool
	CreatedAt   time.Time
	Version     int64
}

func (companyRow) TableName() string { return "companies" }

type companyResource struct{}

func (companyResource) FilterFields() map[string]string {
	return map[string]string{
		"companyName": "company_name",
		"email":       "email",
		"units":       "units",
		"createdAt":   "created_at",
	}
}

func (companyResource) SearchFields() []string {
	return []string{"company_name", "email"}
}

type deletableCompanyResource struct{ companyResource }

func (deletableCompanyResource) FilterFields() map[string]string {
	m := companyResource{}.FilterFields()
	m["isDeleted"] = "is_deleted"
	return m
}

func setupQueryTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&companyRow{}))
	return db
}

func seedCompanies(t *testing.T, db *gorm.DB, rows []companyRow) {
	require.NoError(t, db.Create(&rows).Error)
}

func values(raw string) url.Values {
	v, _ := url.ParseQuery(raw)
	return v
}

func base() map[string]any {
	return map[string]any{"is_deleted": false}
}

func TestBuilder_FilterOperators(t *testing.T) {
	db := setupQueryTestDB(t)
	seedCompanies(t, db, []companyRow{
		{ID: "a", CompanyName: "Alpha", Units: 5},
		{ID: "b", CompanyName: "Beta", Units: 10},
		{ID: "c", CompanyName: "Gamma", Units: 20},
	})

	cases := []struct {
		query string
		want  []string
	}{
		{"units[gte]=10", []string{"b", "c"}},
		{"units[gt]=10", []string{"c"}},
		{"units[lte]=10", []string{"a", "b"}},
		{"units[lt]=10", []string{"a"}},
		{"units[ne]=10", []string{"a", "c"}},
		{"companyName[in]=Alpha,Beta", []string{"a", "b"}},
		{"companyName=Gamma", []string{"c"}},
	}

	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			qb := New(companyResource{}, values(tc.query), base()).Filter()
			var rows []companyRow
			require.NoError(t, db.Model(&companyRow{}).Scopes(qb.Scope()).Order("id").Find(&rows).Error)
			ids := make([]string, len(rows))
			for i, r := range rows {
				ids[i] = r.ID
			}
			assert.Equal(t, tc.want, ids)
		})
	}
}

func TestBuilder_UnknownOperatorFallsBackToEquality(t *testing.T) {
	db := setupQueryTestDB(t)
	seedCompanies(t, db, []companyRow{
		{ID: "a", CompanyName: "Alpha"},
		{ID: "b", CompanyName: "Beta"},
	})

	qb := New(companyResource{}, values("companyName[regex]=Alpha"), base()).Filter()
	var rows []companyRow
	require.NoError(t, db.Model(&companyRow{}).Scopes(qb.Scope()).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "a", rows[0].ID)
}

func TestBuilder_ReservedAndUnknownKeysIgnored(t *testing.T) {
	db := setupQueryTestDB(t)
	seedCompanies(t, db, []companyRow{
		{ID: "a", CompanyName: "Alpha"},
		{ID: "b", CompanyName: "Beta"},
	})

	// clientId is caller-scoped, password is not a declared filter field;
	// neither may leak into the WHERE clause.
	qb := New(companyResource{}, values("clientId=zzz&password=oops&page=3"), base()).Filter()
	var rows []companyRow
	require.NoError(t, db.Model(&companyRow{}).Scopes(qb.Scope()).Find(&rows).Error)
	assert.Len(t, rows, 2)
}

func TestBuilder_BaseConditionsWin(t *testing.T) {
	db := setupQueryTestDB(t)
	seedCompanies(t, db, []companyRow{
		{ID: "a", CompanyName: "Alpha", IsDeleted: true},
		{ID: "b", CompanyName: "Beta"},
	})

	// The caller scoped the list to non-deleted rows; a filter on the same
	// column must not widen it.
	qb := New(deletableCompanyResource{}, values("isDeleted=true"), base()).Filter()
	var rows []companyRow
	require.NoError(t, db.Model(&companyRow{}).Scopes(qb.Scope()).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "b", rows[0].ID)
}

func TestBuilder_SortDirectionsAndDefault(t *testing.T) {
	db := setupQueryTestDB(t)
	now := time.Now()
	seedCompanies(t, db, []companyRow{
		{ID: "a", CompanyName: "Beta", CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "b", CompanyName: "Alpha", CreatedAt: now.Add(-1 * time.Hour)},
		{ID: "c", CompanyName: "Gamma", CreatedAt: now},
	})

	firstID := func(raw string) string {
		qb := New(companyResource{}, values(raw), base()).Filter().Sort()
		var rows []companyRow
		require.NoError(t, db.Model(&companyRow{}).Scopes(qb.Scope()).Find(&rows).Error)
		require.NotEmpty(t, rows)
		return rows[0].ID
	}

	assert.Equal(t, "b", firstID("sort=companyName"))
	assert.Equal(t, "c", firstID("sort=-companyName"))
	// Default is newest first.
	assert.Equal(t, "c", firstID(""))
	// Non-whitelisted sort fields fall back to the default.
	assert.Equal(t, "c", firstID("sort=passwordHash"))
}

func TestBuilder_Paginate(t *testing.T) {
	db := setupQueryTestDB(t)
	rows := make([]companyRow, 25)
	for i := range rows {
		rows[i] = companyRow{ID: fmt.Sprintf("c%02d", i), CompanyName: "Acme", Units: i}
	}
	seedCompanies(t, db, rows)

	qb := New(companyResource{}, values("page=3&limit=10&sort=units"), base()).
		Filter().Sort().Paginate()
	assert.Equal(t, 3, qb.Page())
	assert.Equal(t, 10, qb.Limit())

	var got []companyRow
	require.NoError(t, db.Model(&companyRow{}).Scopes(qb.Scope()).Find(&got).Error)
	require.Len(t, got, 5)
	assert.Equal(t, "c20", got[0].ID)
}

func TestBuilder_SearchEscapesMetacharacters(t *testing.T) {
	db := setupQueryTestDB(t)
	seedCompanies(t, db, []companyRow{
		{ID: "a", CompanyName: "100% Juice Co"},
		{ID: "b", CompanyName: "100 Fruits"},
		{ID: "c", CompanyName: "Underscore_Brand"},
	})

	qb := New(companyResource{}, values("search=100%25"), base()).Filter()
	var rows []companyRow
	require.NoError(t, db.Model(&companyRow{}).Scopes(qb.CountScope()).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "a", rows[0].ID)

	qb = New(companyResource{}, values("search=score_b"), base()).Filter()
	rows = nil
	require.NoError(t, db.Model(&companyRow{}).Scopes(qb.CountScope()).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "c", rows[0].ID)
}

// Count with the count scope must reflect the structural filter, never the
// page window.
func TestBuilder_CountIsPaginationIndependent(t *testing.T) {
	db := setupQueryTestDB(t)
	rows := make([]companyRow, 40)
	for i := range rows {
		name := "Acme Retail"
		if i >= 25 {
			name = "Other Corp"
		}
		rows[i] = companyRow{
			ID:          fmt.Sprintf("c%02d", i),
			CompanyName: name,
			CreatedAt:   time.Now().Add(time.Duration(i) * time.Minute),
		}
	}
	seedCompanies(t, db, rows)

	qb := New(companyResource{}, values("search=acme&page=2&limit=10&sort=-createdAt"), base()).
		Filter().Sort().LimitFields().Paginate()

	var page []companyRow
	require.NoError(t, db.Model(&companyRow{}).Scopes(qb.Scope()).Find(&page).Error)
	assert.Len(t, page, 10)
	// Page 2 of newest-first starts at the 11th newest match.
	assert.Equal(t, "c14", page[0].ID)

	var total int64
	require.NoError(t, db.Model(&companyRow{}).Scopes(qb.CountScope()).Count(&total).Error)
	assert.Equal(t, int64(25), total)
}

func TestBuilder_ProjectionDefaultsToOmittingVersion(t *testing.T) {
	db := setupQueryTestDB(t)
	seedCompanies(t, db, []companyRow{{ID: "a", CompanyName: "Alpha", Version: 7}})

	qb := New(companyResource{}, values(""), base()).Filter().LimitFields()
	var rows []companyRow
	require.NoError(t, db.Model(&companyRow{}).Scopes(qb.Scope()).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Zero(t, rows[0].Version)

	qb = New(companyResource{}, values("fields=companyName"), base()).Filter().LimitFields()
	rows = nil
	require.NoError(t, db.Model(&companyRow{}).Scopes(qb.Scope()).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "Alpha", rows[0].CompanyName)
	assert.Empty(t, rows[0].Email)
}
