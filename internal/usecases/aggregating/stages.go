package aggregating

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vfg2006/superstore-dashboard/internal/domain"
)

// Limites da visualização dos dados filtrados
const (
	PreviewRows    = 500
	previewFirst   = 1
	previewLast    = 19
	previewStep    = 2
	monthYearStyle = "%d : %s"
)

// SampleColumns são as colunas da amostra estática
var SampleColumns = []string{
	domain.ColumnRegion,
	domain.ColumnState,
	domain.ColumnCity,
	domain.ColumnCategory,
	domain.ColumnSubCategory,
	domain.ColumnSales,
	domain.ColumnProfit,
	domain.ColumnQuantity,
}

// Aggregate é a função usada nas células da tabela dinâmica
type Aggregate string

const (
	AggregateSum  Aggregate = "sum"
	AggregateMean Aggregate = "mean"
)

func (a Aggregate) Valid() bool {
	return a == AggregateSum || a == AggregateMean
}

// CategoryTotals soma Sales por Category, na ordem em que as categorias aparecem
func CategoryTotals(dataset *domain.Dataset) (*domain.Table, error) {
	return groupSum(dataset, domain.TableCategory, domain.ColumnCategory, domain.ColumnSales)
}

// RegionTotals soma Sales por Region
func RegionTotals(dataset *domain.Dataset) (*domain.Table, error) {
	return groupSum(dataset, domain.TableRegion, domain.ColumnRegion, domain.ColumnSales)
}

// SegmentTotals soma Sales por Segment
func SegmentTotals(dataset *domain.Dataset) (*domain.Table, error) {
	return groupSum(dataset, domain.TableSegment, domain.ColumnSegment, domain.ColumnSales)
}

func groupSum(dataset *domain.Dataset, name, key, metric string) (*domain.Table, error) {
	table := domain.NewTable(name, metric, key, metric)
	if isBare(dataset) {
		return table, nil
	}

	if err := requireColumns(dataset, name, map[string]domain.ColumnKind{key: anyKind, metric: domain.KindNumber}); err != nil {
		return nil, err
	}

	k, _ := dataset.ColumnIndex(key)
	m, _ := dataset.ColumnIndex(metric)

	var sums orderedSums
	for _, record := range dataset.Records {
		sums.add(record[k].Raw, record[m].Number)
	}

	for _, group := range sums.keys {
		table.Append(group, sums.total(group))
	}
	return table, nil
}

// TimeSeries soma a métrica por mês, em ordem cronológica. A chave tem o formato "2016 : Nov".
func TimeSeries(dataset *domain.Dataset, metric string) (*domain.Table, error) {
	table := domain.NewTable(domain.TableTimeSeries, metric, domain.ColumnMonthYear, metric)
	if isBare(dataset) {
		return table, nil
	}

	if err := ValidateMetric(dataset, metric); err != nil {
		return nil, newStageError(ErrInvalidColumn, domain.TableTimeSeries, fmt.Sprintf("%q", metric))
	}
	if err := requireColumns(dataset, domain.TableTimeSeries, map[string]domain.ColumnKind{domain.ColumnOrderDate: domain.KindDate}); err != nil {
		return nil, err
	}

	d, _ := dataset.ColumnIndex(domain.ColumnOrderDate)
	m, _ := dataset.ColumnIndex(metric)

	sums := make(map[time.Time]decimal.Decimal)
	for _, record := range dataset.Records {
		period := monthOf(record[d].Date)
		sums[period] = sums[period].Add(decimal.NewFromFloat(record[m].Number))
	}

	periods := make([]time.Time, 0, len(sums))
	for period := range sums {
		periods = append(periods, period)
	}
	slices.SortFunc(periods, func(a, b time.Time) int { return a.Compare(b) })

	for _, period := range periods {
		table.Append(MonthYear(period), sums[period].InexactFloat64())
	}
	return table, nil
}

// MonthYear formata o período usado como chave da série temporal
func MonthYear(t time.Time) string {
	return fmt.Sprintf(monthYearStyle, t.Year(), t.Format("Jan"))
}

// SubCategoryPivot monta a matriz Sub-Category x mês com Sales agregado.
// Linhas em ordem alfabética, meses em ordem de calendário; combinações ausentes ficam nil.
func SubCategoryPivot(dataset *domain.Dataset, aggregate Aggregate) (*domain.Table, error) {
	table := domain.NewTable(domain.TablePivot, domain.ColumnSales, domain.ColumnSubCategory)
	if isBare(dataset) {
		return table, nil
	}

	err := requireColumns(dataset, domain.TablePivot, map[string]domain.ColumnKind{
		domain.ColumnSubCategory: anyKind,
		domain.ColumnOrderDate:   domain.KindDate,
		domain.ColumnSales:       domain.KindNumber,
	})
	if err != nil {
		return nil, err
	}

	s, _ := dataset.ColumnIndex(domain.ColumnSubCategory)
	d, _ := dataset.ColumnIndex(domain.ColumnOrderDate)
	m, _ := dataset.ColumnIndex(domain.ColumnSales)

	type cell struct {
		sum   decimal.Decimal
		count int64
	}
	cells := make(map[string]map[time.Month]*cell)
	months := make(map[time.Month]bool)

	for _, record := range dataset.Records {
		subCategory := record[s].Raw
		month := record[d].Date.Month()
		months[month] = true

		if cells[subCategory] == nil {
			cells[subCategory] = make(map[time.Month]*cell)
		}
		c := cells[subCategory][month]
		if c == nil {
			c = &cell{}
			cells[subCategory][month] = c
		}
		c.sum = c.sum.Add(decimal.NewFromFloat(record[m].Number))
		c.count++
	}

	columns := make([]time.Month, 0, len(months))
	for month := time.January; month <= time.December; month++ {
		if months[month] {
			columns = append(columns, month)
			table.Columns = append(table.Columns, month.String())
		}
	}

	rows := make([]string, 0, len(cells))
	for subCategory := range cells {
		rows = append(rows, subCategory)
	}
	slices.Sort(rows)

	for _, subCategory := range rows {
		row := make([]any, 0, len(columns)+1)
		row = append(row, subCategory)
		for _, month := range columns {
			c := cells[subCategory][month]
			switch {
			case c == nil:
				row = append(row, nil)
			case aggregate == AggregateMean:
				row = append(row, c.sum.Div(decimal.NewFromInt(c.count)).InexactFloat64())
			default:
				row = append(row, c.sum.InexactFloat64())
			}
		}
		table.Append(row...)
	}
	return table, nil
}

// Sample devolve as primeiras linhas do dataset sem filtros, restritas a SampleColumns
func Sample(dataset *domain.Dataset) (*domain.Table, error) {
	table := domain.NewTable(domain.TableSample, "", SampleColumns...)
	if isBare(dataset) {
		return table, nil
	}

	if missing := dataset.MissingColumns(SampleColumns...); len(missing) > 0 {
		return nil, newStageError(ErrSchema, domain.TableSample, fmt.Sprintf("colunas ausentes: %v", missing))
	}

	return project(dataset.Head(domain.DefaultSampleLen), table), nil
}

// Scatter gera um ponto por registro com as três métricas escolhidas
func Scatter(dataset *domain.Dataset, x, y, size string) (*domain.Table, error) {
	table := domain.NewTable(domain.TableScatter, "", x, y, size)
	if isBare(dataset) {
		return table, nil
	}

	for _, metric := range []string{x, y, size} {
		if err := ValidateMetric(dataset, metric); err != nil {
			return nil, newStageError(ErrInvalidColumn, domain.TableScatter, fmt.Sprintf("%q", metric))
		}
	}

	xi, _ := dataset.ColumnIndex(x)
	yi, _ := dataset.ColumnIndex(y)
	si, _ := dataset.ColumnIndex(size)
	for _, record := range dataset.Records {
		table.Append(record[xi].Number, record[yi].Number, record[si].Number)
	}
	return table, nil
}

// Hierarchy soma Sales por Region, Category e Sub-Category, na ordem de aparição
func Hierarchy(dataset *domain.Dataset) (*domain.Table, error) {
	levels := []string{domain.ColumnRegion, domain.ColumnCategory, domain.ColumnSubCategory}
	table := domain.NewTable(domain.TableHierarchy, domain.ColumnSales, append(slices.Clone(levels), domain.ColumnSales)...)
	if isBare(dataset) {
		return table, nil
	}

	err := requireColumns(dataset, domain.TableHierarchy, map[string]domain.ColumnKind{
		domain.ColumnRegion:      anyKind,
		domain.ColumnCategory:    anyKind,
		domain.ColumnSubCategory: anyKind,
		domain.ColumnSales:       domain.KindNumber,
	})
	if err != nil {
		return nil, err
	}

	indexes := make([]int, len(levels))
	for i, level := range levels {
		indexes[i], _ = dataset.ColumnIndex(level)
	}
	m, _ := dataset.ColumnIndex(domain.ColumnSales)

	type path [3]string
	var sums orderedSums
	paths := make(map[string]path)
	for _, record := range dataset.Records {
		p := path{record[indexes[0]].Raw, record[indexes[1]].Raw, record[indexes[2]].Raw}
		key := p[0] + "\x00" + p[1] + "\x00" + p[2]
		paths[key] = p
		sums.add(key, record[m].Number)
	}

	for _, key := range sums.keys {
		p := paths[key]
		table.Append(p[0], p[1], p[2], sums.total(key))
	}
	return table, nil
}

// Preview mostra as primeiras PreviewRows linhas filtradas com uma coluna a cada duas,
// da segunda até a vigésima
func Preview(dataset *domain.Dataset) *domain.Table {
	table := domain.NewTable(domain.TablePreview, "")
	if dataset == nil {
		return table
	}

	for i := previewFirst; i <= previewLast && i < len(dataset.Columns); i += previewStep {
		table.Columns = append(table.Columns, dataset.Columns[i].Name)
	}
	return project(dataset.Head(PreviewRows), table)
}

// DataTable converte o dataset inteiro em tabela, usada no download Data.csv
func DataTable(dataset *domain.Dataset) *domain.Table {
	table := domain.NewTable(domain.TableData, "", dataset.ColumnNames()...)
	return project(dataset, table)
}

// project copia para a tabela as colunas nomeadas em table.Columns
func project(dataset *domain.Dataset, table *domain.Table) *domain.Table {
	indexes := make([]int, len(table.Columns))
	for i, column := range table.Columns {
		indexes[i], _ = dataset.ColumnIndex(column)
	}

	for _, record := range dataset.Records {
		row := make([]any, len(indexes))
		for i, c := range indexes {
			row[i] = cellValue(dataset.Columns[c].Kind, record[c])
		}
		table.Append(row...)
	}
	return table
}

func cellValue(kind domain.ColumnKind, cell domain.Cell) any {
	switch kind {
	case domain.KindNumber:
		if cell.Raw == "" {
			return nil
		}
		return cell.Number
	case domain.KindDate:
		return cell.Date.Format(time.DateOnly)
	default:
		return cell.Raw
	}
}

// isBare indica um dataset sem esquema (carga que falhou): os estágios devolvem tabela vazia
func isBare(dataset *domain.Dataset) bool {
	return dataset == nil || len(dataset.Columns) == 0
}

func monthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// orderedSums acumula somas exatas por chave preservando a ordem de aparição
type orderedSums struct {
	keys []string
	sums map[string]decimal.Decimal
}

func (o *orderedSums) add(key string, value float64) {
	if o.sums == nil {
		o.sums = make(map[string]decimal.Decimal)
	}
	sum, exists := o.sums[key]
	if !exists {
		o.keys = append(o.keys, key)
	}
	o.sums[key] = sum.Add(decimal.NewFromFloat(value))
}

func (o *orderedSums) total(key string) float64 {
	return o.sums[key].InexactFloat64()
}
