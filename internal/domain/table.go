package domain

// Nomes das tabelas produzidas pelos estágios de agregação
const (
	TableCategory    = "Category"
	TableRegion      = "Region"
	TableTimeSeries  = "TimeSeries"
	TablePivot       = "SubCategoryByMonth"
	TableSample      = "Sample"
	TableScatter     = "Scatter"
	TableSegment     = "Segment"
	TableHierarchy   = "Hierarchy"
	TablePreview     = "Preview"
	TableData        = "Data"
	ColumnMonthYear  = "month_year"
	ColumnMonthName  = "month"
	DefaultSampleLen = 5
)

// Table é o resultado de um estágio de agregação. As células são string, float64
// ou nil (combinação ausente na tabela dinâmica).
type Table struct {
	Name    string   `json:"name"`
	Metric  string   `json:"metric,omitempty"`
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

func NewTable(name, metric string, columns ...string) *Table {
	return &Table{
		Name:    name,
		Metric:  metric,
		Columns: columns,
		Rows:    make([][]any, 0),
	}
}

func (t *Table) Append(row ...any) {
	t.Rows = append(t.Rows, row)
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// ColumnValues devolve as células de uma coluna, ou nil se ela não existir
func (t *Table) ColumnValues(name string) []any {
	for i, column := range t.Columns {
		if column != name {
			continue
		}
		values := make([]any, len(t.Rows))
		for j, row := range t.Rows {
			values[j] = row[i]
		}
		return values
	}
	return nil
}
