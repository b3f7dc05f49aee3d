package aggregating

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/superstore-dashboard/internal/domain"
)

type order struct {
	region, state, city, category, subCategory, segment string
	date                                                time.Time
	sales, profit                                       float64
	quantity                                            int
}

var orderColumns = []domain.Column{
	{Name: "Row ID", Kind: domain.KindNumber},
	{Name: domain.ColumnOrderDate, Kind: domain.KindDate},
	{Name: domain.ColumnSegment, Kind: domain.KindText},
	{Name: domain.ColumnCity, Kind: domain.KindText},
	{Name: domain.ColumnState, Kind: domain.KindText},
	{Name: domain.ColumnRegion, Kind: domain.KindText},
	{Name: domain.ColumnCategory, Kind: domain.KindText},
	{Name: domain.ColumnSubCategory, Kind: domain.KindText},
	{Name: domain.ColumnSales, Kind: domain.KindNumber},
	{Name: domain.ColumnQuantity, Kind: domain.KindNumber},
	{Name: domain.ColumnProfit, Kind: domain.KindNumber},
}

func number(v float64) domain.Cell {
	return domain.Cell{Raw: strconv.FormatFloat(v, 'f', -1, 64), Number: v}
}

func text(v string) domain.Cell {
	return domain.Cell{Raw: v}
}

func orders(rows ...order) *domain.Dataset {
	records := make([]domain.Record, len(rows))
	for i, o := range rows {
		records[i] = domain.Record{
			number(float64(i + 1)),
			{Raw: o.date.Format(time.DateOnly), Date: o.date},
			text(o.segment),
			text(o.city),
			text(o.state),
			text(o.region),
			text(o.category),
			text(o.subCategory),
			number(o.sales),
			number(float64(o.quantity)),
			number(o.profit),
		}
	}
	return domain.NewDataset(orderColumns, records)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func superstore() *domain.Dataset {
	return orders(
		order{"South", "Kentucky", "Henderson", "Furniture", "Bookcases", "Consumer", day(2016, 11, 8), 261.96, 41.9136, 2},
		order{"South", "Kentucky", "Henderson", "Furniture", "Chairs", "Consumer", day(2016, 11, 8), 731.94, 219.582, 3},
		order{"West", "California", "Los Angeles", "Office Supplies", "Labels", "Corporate", day(2016, 6, 12), 14.62, 6.8714, 2},
		order{"South", "Florida", "Fort Lauderdale", "Furniture", "Tables", "Consumer", day(2015, 10, 11), 957.5775, -383.031, 5},
		order{"South", "Florida", "Fort Lauderdale", "Office Supplies", "Storage", "Consumer", day(2015, 10, 11), 22.368, 2.5164, 2},
		order{"West", "California", "Los Angeles", "Technology", "Phones", "Consumer", day(2014, 6, 9), 907.152, 90.7152, 6},
		order{"West", "California", "Los Angeles", "Office Supplies", "Labels", "Consumer", day(2017, 6, 9), 18.504, 5.7825, 3},
	)
}

func sumColumn(t *testing.T, table *domain.Table, column string) float64 {
	t.Helper()

	total := decimal.Zero
	for _, value := range table.ColumnValues(column) {
		require.IsType(t, float64(0), value)
		total = total.Add(decimal.NewFromFloat(value.(float64)))
	}
	return total.InexactFloat64()
}

func datasetSales(dataset *domain.Dataset) float64 {
	total := decimal.Zero
	for _, record := range dataset.Records {
		total = total.Add(decimal.NewFromFloat(dataset.Number(record, domain.ColumnSales)))
	}
	return total.InexactFloat64()
}

func TestCategoryTotals(t *testing.T) {
	table, err := CategoryTotals(superstore())
	require.NoError(t, err)

	assert.Equal(t, []string{domain.ColumnCategory, domain.ColumnSales}, table.Columns)
	assert.Equal(t, domain.ColumnSales, table.Metric)
	require.Equal(t, 3, table.Len())
	assert.Equal(t, []any{"Furniture", "Office Supplies", "Technology"}, table.ColumnValues(domain.ColumnCategory))
	assert.InDelta(t, 1951.4775, table.Rows[0][1], 1e-9)
	assert.InDelta(t, 55.492, table.Rows[1][1], 1e-9)
	assert.InDelta(t, 907.152, table.Rows[2][1], 1e-9)
}

func TestCategoryTotals_Conservacao(t *testing.T) {
	dataset := superstore()
	subsets := map[string]*domain.Dataset{
		"completo": dataset,
		"somente West": dataset.Where(func(r domain.Record) bool {
			return dataset.Text(r, domain.ColumnRegion) == "West"
		}),
		"somente Florida": dataset.Where(func(r domain.Record) bool {
			return dataset.Text(r, domain.ColumnState) == "Florida"
		}),
	}

	for name, subset := range subsets {
		t.Run(name, func(t *testing.T) {
			categories, err := CategoryTotals(subset)
			require.NoError(t, err)
			regions, err := RegionTotals(subset)
			require.NoError(t, err)

			assert.InDelta(t, datasetSales(subset), sumColumn(t, categories, domain.ColumnSales), 1e-9)
			assert.InDelta(t, datasetSales(subset), sumColumn(t, regions, domain.ColumnSales), 1e-9)
		})
	}
}

func TestTotals_CenarioWestEast(t *testing.T) {
	dataset := orders(
		order{region: "West", category: "Furniture", subCategory: "Chairs", date: day(2017, 1, 1), sales: 100},
		order{region: "East", category: "Furniture", subCategory: "Chairs", date: day(2017, 1, 2), sales: 50},
		order{region: "West", category: "Furniture", subCategory: "Chairs", date: day(2017, 1, 3), sales: 30},
	)
	west := dataset.Where(func(r domain.Record) bool { return dataset.Text(r, domain.ColumnRegion) == "West" })

	categories, err := CategoryTotals(west)
	require.NoError(t, err)
	assert.Equal(t, [][]any{{"Furniture", 130.0}}, categories.Rows)

	regions, err := RegionTotals(west)
	require.NoError(t, err)
	assert.Equal(t, [][]any{{"West", 130.0}}, regions.Rows)
}

func TestStages_DatasetFiltradoVazio(t *testing.T) {
	dataset := superstore()
	empty := dataset.Where(func(domain.Record) bool { return false })

	tables, errs := NewService(AggregateSum).Aggregate(Input{
		Filtered: empty,
		Full:     dataset,
		Metrics:  ResolveMetrics(empty, domain.MetricSelection{}),
	})

	assert.Empty(t, errs)
	for _, name := range []string{
		domain.TableCategory, domain.TableRegion, domain.TableTimeSeries, domain.TablePivot,
		domain.TableScatter, domain.TableSegment, domain.TableHierarchy, domain.TablePreview,
	} {
		require.Contains(t, tables, name)
		assert.Zero(t, tables[name].Len(), name)
		assert.NotNil(t, tables[name].Rows, name)
	}
	assert.Equal(t, domain.DefaultSampleLen, tables[domain.TableSample].Len())
}

func TestTimeSeries(t *testing.T) {
	dataset := orders(
		order{date: day(2017, 1, 15), sales: 10, profit: 1},
		order{date: day(2016, 12, 1), sales: 5, profit: 2},
		order{date: day(2017, 1, 2), sales: 2.5, profit: 3},
		order{date: day(2016, 2, 29), sales: 1, profit: 4},
	)

	table, err := TimeSeries(dataset, domain.ColumnSales)
	require.NoError(t, err)
	assert.Equal(t, []string{domain.ColumnMonthYear, domain.ColumnSales}, table.Columns)
	assert.Equal(t, [][]any{
		{"2016 : Feb", 1.0},
		{"2016 : Dec", 5.0},
		{"2017 : Jan", 12.5},
	}, table.Rows)

	table, err = TimeSeries(dataset, domain.ColumnProfit)
	require.NoError(t, err)
	assert.Equal(t, domain.ColumnProfit, table.Metric)
	assert.Equal(t, []any{4.0, 2.0, 4.0}, table.ColumnValues(domain.ColumnProfit))
}

func TestTimeSeries_ColunaInvalida(t *testing.T) {
	for _, metric := range []string{domain.ColumnRegion, "Discount", ""} {
		t.Run(metric, func(t *testing.T) {
			table, err := TimeSeries(superstore(), metric)
			assert.Nil(t, table)
			assert.ErrorIs(t, err, ErrInvalidColumn)

			var stageErr *StageError
			require.True(t, errors.As(err, &stageErr))
			assert.Equal(t, domain.TableTimeSeries, stageErr.Stage)
		})
	}
}

func TestSubCategoryPivot(t *testing.T) {
	dataset := orders(
		order{subCategory: "Phones", date: day(2016, 6, 1), sales: 10},
		order{subCategory: "Chairs", date: day(2017, 6, 3), sales: 20},
		order{subCategory: "Phones", date: day(2015, 6, 20), sales: 30},
		order{subCategory: "Chairs", date: day(2016, 1, 5), sales: 5},
		order{subCategory: "Binders", date: day(2016, 11, 5), sales: 7},
	)

	t.Run("soma", func(t *testing.T) {
		table, err := SubCategoryPivot(dataset, AggregateSum)
		require.NoError(t, err)

		assert.Equal(t, []string{domain.ColumnSubCategory, "January", "June", "November"}, table.Columns)
		assert.Equal(t, [][]any{
			{"Binders", nil, nil, 7.0},
			{"Chairs", 5.0, 20.0, nil},
			{"Phones", nil, 40.0, nil},
		}, table.Rows)
	})

	t.Run("média", func(t *testing.T) {
		table, err := SubCategoryPivot(dataset, AggregateMean)
		require.NoError(t, err)
		assert.Equal(t, []any{"Phones", nil, 20.0, nil}, table.Rows[2])
	})
}

func TestSample(t *testing.T) {
	dataset := superstore()

	table, err := Sample(dataset)
	require.NoError(t, err)

	assert.Equal(t, SampleColumns, table.Columns)
	require.Equal(t, domain.DefaultSampleLen, table.Len())
	assert.Equal(t, []any{"South", "Kentucky", "Henderson", "Furniture", "Bookcases", 261.96, 41.9136, 2.0}, table.Rows[0])

	_, err = Sample(domain.NewDataset(orderColumns[:3], nil))
	assert.ErrorIs(t, err, ErrSchema)
}

func TestScatter(t *testing.T) {
	dataset := superstore()

	table, err := Scatter(dataset, domain.ColumnSales, domain.ColumnProfit, domain.ColumnQuantity)
	require.NoError(t, err)
	assert.Equal(t, dataset.Len(), table.Len())
	assert.Equal(t, []any{14.62, 6.8714, 2.0}, table.Rows[2])

	_, err = Scatter(dataset, domain.ColumnSales, domain.ColumnCity, domain.ColumnQuantity)
	assert.ErrorIs(t, err, ErrInvalidColumn)
}

func TestSegmentAndHierarchy(t *testing.T) {
	dataset := superstore()

	segments, err := SegmentTotals(dataset)
	require.NoError(t, err)
	assert.Equal(t, []any{"Consumer", "Corporate"}, segments.ColumnValues(domain.ColumnSegment))
	assert.InDelta(t, datasetSales(dataset), sumColumn(t, segments, domain.ColumnSales), 1e-9)

	hierarchy, err := Hierarchy(dataset)
	require.NoError(t, err)
	assert.Equal(t, []string{domain.ColumnRegion, domain.ColumnCategory, domain.ColumnSubCategory, domain.ColumnSales}, hierarchy.Columns)
	require.Equal(t, 6, hierarchy.Len())
	assert.Equal(t, "West", hierarchy.Rows[2][0])
	assert.Equal(t, "Labels", hierarchy.Rows[2][2])
	assert.InDelta(t, 33.124, hierarchy.Rows[2][3], 1e-9)
}

func TestStages_ColunasAusentes(t *testing.T) {
	columns := []domain.Column{
		{Name: domain.ColumnOrderDate, Kind: domain.KindDate},
		{Name: domain.ColumnRegion, Kind: domain.KindText},
		{Name: domain.ColumnSales, Kind: domain.KindText},
	}
	dataset := domain.NewDataset(columns, []domain.Record{{{Date: day(2017, 1, 1)}, text("West"), text("n/a")}})

	_, err := CategoryTotals(dataset)
	assert.ErrorIs(t, err, ErrSchema)

	_, err = RegionTotals(dataset)
	assert.ErrorIs(t, err, ErrInvalidColumn)

	_, err = SubCategoryPivot(dataset, AggregateSum)
	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, domain.TablePivot, stageErr.Stage)
	assert.Contains(t, stageErr.Error(), domain.ColumnSubCategory)
}

func TestPreviewAndDataTable(t *testing.T) {
	dataset := superstore()

	preview := Preview(dataset)
	assert.Equal(t, []string{domain.ColumnOrderDate, domain.ColumnCity, domain.ColumnRegion, domain.ColumnSubCategory, domain.ColumnQuantity}, preview.Columns)
	assert.Equal(t, []any{"2016-11-08", "Henderson", "South", "Bookcases", 2.0}, preview.Rows[0])

	data := DataTable(dataset)
	assert.Equal(t, dataset.ColumnNames(), data.Columns)
	assert.Equal(t, dataset.Len(), data.Len())
	assert.Equal(t, 1.0, data.Rows[0][0])
}

func TestResolveMetrics(t *testing.T) {
	resolved := ResolveMetrics(superstore(), domain.MetricSelection{ScatterY: domain.ColumnQuantity})
	assert.Equal(t, domain.MetricSelection{
		TimeSeries:  domain.ColumnSales,
		ScatterX:    domain.ColumnSales,
		ScatterY:    domain.ColumnQuantity,
		ScatterSize: domain.ColumnQuantity,
	}, resolved)
	assert.NoError(t, ValidateMetrics(superstore(), resolved))

	columns := []domain.Column{
		{Name: domain.ColumnOrderDate, Kind: domain.KindDate},
		{Name: "Discount", Kind: domain.KindNumber},
	}
	resolved = ResolveMetrics(domain.NewDataset(columns, nil), domain.MetricSelection{})
	assert.Equal(t, "Discount", resolved.TimeSeries)
	assert.Equal(t, "Discount", resolved.ScatterSize)

	assert.ErrorIs(t, ValidateMetrics(superstore(), domain.MetricSelection{TimeSeries: "Region"}), ErrInvalidColumn)
}

func TestService_EstagiosIndependentes(t *testing.T) {
	columns := []domain.Column{
		{Name: domain.ColumnOrderDate, Kind: domain.KindDate},
		{Name: domain.ColumnRegion, Kind: domain.KindText},
		{Name: domain.ColumnSales, Kind: domain.KindNumber},
	}
	dataset := domain.NewDataset(columns, []domain.Record{{{Date: day(2017, 1, 1)}, text("West"), number(3)}})

	tables, errs := NewService("median").Aggregate(Input{
		Filtered: dataset,
		Full:     dataset,
		Metrics:  ResolveMetrics(dataset, domain.MetricSelection{}),
	})

	assert.Contains(t, tables, domain.TableRegion)
	assert.Contains(t, tables, domain.TableTimeSeries)
	assert.Contains(t, tables, domain.TableScatter)
	assert.Contains(t, tables, domain.TablePreview)
	assert.NotContains(t, tables, domain.TableCategory)

	stages := make([]string, 0, len(errs))
	for _, err := range errs {
		var stageErr *StageError
		require.True(t, errors.As(err, &stageErr))
		stages = append(stages, stageErr.Stage)
	}
	assert.Equal(t, []string{domain.TableCategory, domain.TablePivot, domain.TableSample, domain.TableSegment, domain.TableHierarchy}, stages)
}

func TestStages_DatasetSemEsquema(t *testing.T) {
	tables, errs := NewService(AggregateSum).Aggregate(Input{
		Filtered: domain.EmptyDataset(),
		Full:     domain.EmptyDataset(),
	})

	assert.Empty(t, errs)
	assert.Len(t, tables, 9)
}
