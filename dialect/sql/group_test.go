package sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroup(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Group
		want  string
	}{
		{
			name:  "empty",
			build: func() *Group { return NewGroup() },
			want:  "",
		},
		{
			name:  "plain_column",
			build: func() *Group { return NewGroup().By("Country") },
			want:  "GROUP BY Country",
		},
		{
			name:  "column_and_year",
			build: func() *Group { return NewGroup().By("Country").ByYear("HireDate") },
			want:  "GROUP BY Country,`$year`",
		},
		{
			name:  "day",
			build: func() *Group { return NewGroup().ByDay("InvoiceDate") },
			want:  "GROUP BY `$yearDay`",
		},
		{
			name:  "week",
			build: func() *Group { return NewGroup().ByWeek("InvoiceDate") },
			want:  "GROUP BY `$yearWeek`",
		},
		{
			name:  "month",
			build: func() *Group { return NewGroup().ByMonth("InvoiceDate") },
			want:  "GROUP BY `$yearMonth`",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.build().String())
		})
	}
}

func TestGroupProjectedColumns(t *testing.T) {
	t.Run("no_keys_is_wildcard", func(t *testing.T) {
		assert.Equal(t, []string{"*"}, NewGroup().ProjectedColumns())
	})

	t.Run("count_first_then_keys", func(t *testing.T) {
		g := NewGroup().By("Country").ByYear("HireDate")
		assert.Equal(t, []string{
			"COUNT(*) AS `$count`",
			"Country",
			"YEAR(HireDate) AS `$year`",
		}, g.ProjectedColumns())
	})

	t.Run("bucket_expressions", func(t *testing.T) {
		g := NewGroup().ByDay("InvoiceDate").ByWeek("InvoiceDate").ByMonth("InvoiceDate")
		assert.Equal(t, []string{
			"COUNT(*) AS `$count`",
			"DATE_FORMAT(InvoiceDate, '%Y-%m-%d') AS `$yearDay`",
			"YEARWEEK(InvoiceDate) AS `$yearWeek`",
			"DATE_FORMAT(InvoiceDate, '%Y-%m') AS `$yearMonth`",
		}, g.ProjectedColumns())
	})
}

func TestGroupAliases(t *testing.T) {
	// The pseudo-column names are part of the output contract and
	// must not drift.
	assert.Equal(t, "$count", CountAlias)
	assert.Equal(t, "$yearDay", DayAlias)
	assert.Equal(t, "$yearWeek", WeekAlias)
	assert.Equal(t, "$yearMonth", MonthAlias)
	assert.Equal(t, "$year", YearAlias)
}

func TestGroupReset(t *testing.T) {
	g := NewGroup().By("Country")
	g.Reset()
	assert.True(t, g.Empty())
	assert.Equal(t, []string{"*"}, g.ProjectedColumns())
}
