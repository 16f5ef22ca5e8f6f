package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
	"github.com/xuri/excelize/v2"
)

func TestParseRange(t *testing.T) {
	r, err := ParseRange(1, 50000)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Skip())
	assert.Equal(t, 50000, r.Limit())

	r, err = ParseRange(101, 200)
	require.NoError(t, err)
	assert.Equal(t, 100, r.Skip())
	assert.Equal(t, 100, r.Limit())
}

func TestParseRange_Rejections(t *testing.T) {
	cases := []struct {
		name       string
		start, end int
	}{
		{"zero start", 0, 10},
		{"zero end", 1, 0},
		{"inverted", 50, 10},
		{"window too large", 1, 50001},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseRange(tc.start, tc.end)
			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, "BAD_REQUEST", domainErr.Code)
		})
	}
}

type winnerRow struct {
	Name  string
	Prize string
	Units int
}

func TestExporter_Build(t *testing.T) {
	exp := NewExporter([]Column[winnerRow]{
		{Header: "Winner Name", Value: func(r winnerRow) any { return r.Name }},
		{Header: "Prize", Value: func(r winnerRow) any { return r.Prize }},
		{Header: "Units", Value: func(r winnerRow) any { return r.Units }},
	})

	buf, err := exp.Build([]winnerRow{
		{Name: "Ada", Prize: "Blender", Units: 3},
		{Name: "Chidi", Prize: "Voucher", Units: 1},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Winner Name", "Prize", "Units"}, rows[0])
	assert.Equal(t, []string{"Ada", "Blender", "3"}, rows[1])
	assert.Equal(t, []string{"Chidi", "Voucher", "1"}, rows[2])
}

func TestExporter_EmptyResultStillHasHeader(t *testing.T) {
	exp := NewExporter([]Column[winnerRow]{
		{Header: "Winner Name", Value: func(r winnerRow) any { return r.Name }},
	})

	buf, err := exp.Build(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
