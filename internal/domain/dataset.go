// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import (
	"time"
)

// Nomes das colunas usadas pelo pipeline do dashboard
const (
	ColumnRegion      = "Region"
	ColumnState       = "State"
	ColumnCity        = "City"
	ColumnCategory    = "Category"
	ColumnSubCategory = "Sub-Category"
	ColumnSegment     = "Segment"
	ColumnOrderDate   = "Order Date"
	ColumnShipDate    = "Ship Date"
	ColumnSales       = "Sales"
	ColumnProfit      = "Profit"
	ColumnQuantity    = "Quantity"
)

// ColumnKind indica como as células de uma coluna devem ser interpretadas
type ColumnKind string

const (
	KindText   ColumnKind = "text"
	KindNumber ColumnKind = "number"
	KindDate   ColumnKind = "date"
)

type Column struct {
	Name string     `json:"name"`
	Kind ColumnKind `json:"kind"`
}

// Cell guarda o texto original e, conforme o tipo da coluna, o valor já convertido
type Cell struct {
	Raw    string
	Number float64
	Date   time.Time
}

// Record é uma linha do dataset, alinhada com Dataset.Columns
type Record []Cell

// Dataset é uma tabela em memória. Depois de carregado nunca é alterado:
// filtros devolvem novos datasets que compartilham o mesmo esquema.
type Dataset struct {
	Columns []Column
	Records []Record
	index   map[string]int
}

func NewDataset(columns []Column, records []Record) *Dataset {
	index := make(map[string]int, len(columns))
	for i, column := range columns {
		index[column.Name] = i
	}

	return &Dataset{
		Columns: columns,
		Records: records,
		index:   index,
	}
}

// EmptyDataset é o sentinela devolvido quando nenhum dado pôde ser carregado
func EmptyDataset() *Dataset {
	return NewDataset(nil, nil)
}

func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

func (d *Dataset) IsEmpty() bool {
	return d.Len() == 0
}

// ColumnIndex retorna a posição da coluna e se ela existe
func (d *Dataset) ColumnIndex(name string) (int, bool) {
	if d == nil {
		return 0, false
	}
	i, ok := d.index[name]
	return i, ok
}

func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.ColumnIndex(name)
	return ok
}

// HasColumnOfKind verifica se a coluna existe e tem o tipo esperado
func (d *Dataset) HasColumnOfKind(name string, kind ColumnKind) bool {
	i, ok := d.ColumnIndex(name)
	return ok && d.Columns[i].Kind == kind
}

// MissingColumns devolve, na ordem recebida, as colunas que não existem no dataset
func (d *Dataset) MissingColumns(names ...string) []string {
	var missing []string
	for _, name := range names {
		if !d.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// NumericColumns lista as colunas numéricas na ordem do esquema
func (d *Dataset) NumericColumns() []string {
	if d == nil {
		return nil
	}

	columns := make([]string, 0)
	for _, column := range d.Columns {
		if column.Kind == KindNumber {
			columns = append(columns, column.Name)
		}
	}
	return columns
}

func (d *Dataset) ColumnNames() []string {
	if d == nil {
		return nil
	}

	names := make([]string, len(d.Columns))
	for i, column := range d.Columns {
		names[i] = column.Name
	}
	return names
}

// Where devolve um novo dataset com os registros aceitos por keep, preservando a ordem
func (d *Dataset) Where(keep func(Record) bool) *Dataset {
	if d == nil {
		return EmptyDataset()
	}

	records := make([]Record, 0, len(d.Records))
	for _, record := range d.Records {
		if keep(record) {
			records = append(records, record)
		}
	}

	return &Dataset{
		Columns: d.Columns,
		Records: records,
		index:   d.index,
	}
}

// Head devolve os primeiros n registros
func (d *Dataset) Head(n int) *Dataset {
	if d == nil {
		return EmptyDataset()
	}
	if n > len(d.Records) {
		n = len(d.Records)
	}
	return &Dataset{
		Columns: d.Columns,
		Records: d.Records[:n],
		index:   d.index,
	}
}

// Text retorna o valor textual de uma coluna no registro
func (d *Dataset) Text(record Record, column string) string {
	i, ok := d.ColumnIndex(column)
	if !ok || i >= len(record) {
		return ""
	}
	return record[i].Raw
}

// Number retorna o valor numérico de uma coluna no registro
func (d *Dataset) Number(record Record, column string) float64 {
	i, ok := d.ColumnIndex(column)
	if !ok || i >= len(record) {
		return 0
	}
	return record[i].Number
}

// Date retorna a data de uma coluna no registro
func (d *Dataset) Date(record Record, column string) time.Time {
	i, ok := d.ColumnIndex(column)
	if !ok || i >= len(record) {
		return time.Time{}
	}
	return record[i].Date
}

// Distinct lista os valores distintos de uma coluna na ordem em que aparecem
func (d *Dataset) Distinct(column string) []string {
	values := make([]string, 0)
	i, ok := d.ColumnIndex(column)
	if !ok {
		return values
	}

	seen := make(map[string]struct{})
	for _, record := range d.Records {
		value := record[i].Raw
		if _, exists := seen[value]; exists {
			continue
		}
		seen[value] = struct{}{}
		values = append(values, value)
	}
	return values
}

// DateBounds retorna a menor e a maior data da coluna. ok é falso se o dataset estiver vazio.
func (d *Dataset) DateBounds(column string) (min, max time.Time, ok bool) {
	i, exists := d.ColumnIndex(column)
	if !exists {
		return min, max, false
	}

	for _, record := range d.Records {
		date := record[i].Date
		if date.IsZero() {
			continue
		}
		if !ok || date.Before(min) {
			min = date
		}
		if !ok || date.After(max) {
			max = date
		}
		ok = true
	}
	return min, max, ok
}
