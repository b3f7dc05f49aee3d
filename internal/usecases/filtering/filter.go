package filtering

import (
	"time"

	"github.com/vfg2006/superstore-dashboard/internal/domain"
)

// FilterResult é a saída do motor de filtros para uma execução do pipeline
type FilterResult struct {
	// Filtered alimenta todas as agregações
	Filtered *domain.Dataset
	// DateFiltered é o dataset completo restrito ao intervalo de datas, usado no download Data.csv
	DateFiltered *domain.Dataset
	// Selection é a seleção recebida com as datas ausentes preenchidas pelos limites do dataset
	Selection domain.FilterSelection
	Options   domain.FilterOptions
	Mode      domain.FilterMode
}

type Engine interface {
	Apply(dataset *domain.Dataset, selection domain.FilterSelection) FilterResult
	Mode() domain.FilterMode
}

type engine struct {
	mode domain.FilterMode
}

// NewEngine cria o motor no modo informado. Modos desconhecidos caem no modo parity.
func NewEngine(mode domain.FilterMode) Engine {
	if !mode.Valid() {
		mode = domain.FilterModeParity
	}
	return &engine{mode: mode}
}

func (e *engine) Mode() domain.FilterMode {
	return e.mode
}

func (e *engine) Apply(dataset *domain.Dataset, selection domain.FilterSelection) FilterResult {
	return ApplyFilters(dataset, selection, e.mode)
}

// ApplyFilters aplica Region, State e City em sequência, cada etapa sobre a saída da
// anterior, e o intervalo de datas sobre o dataset completo.
func ApplyFilters(dataset *domain.Dataset, selection domain.FilterSelection, mode domain.FilterMode) FilterResult {
	if dataset == nil {
		dataset = domain.EmptyDataset()
	}

	stage1 := whereIn(dataset, domain.ColumnRegion, selection.Regions)
	stage2 := whereIn(stage1, domain.ColumnState, selection.States)
	stage3 := whereIn(stage2, domain.ColumnCity, selection.Cities)

	options := domain.FilterOptions{
		Regions: dataset.Distinct(domain.ColumnRegion),
		States:  stage1.Distinct(domain.ColumnState),
		Cities:  stage2.Distinct(domain.ColumnCity),
	}

	if min, max, ok := dataset.DateBounds(domain.ColumnOrderDate); ok {
		options.Bounds = &domain.DateBounds{Min: day(min), Max: day(max)}
		if selection.Start.IsZero() {
			selection.Start = options.Bounds.Min
		}
		if selection.End.IsZero() {
			selection.End = options.Bounds.Max
		}
	}

	inRange := dateRange(dataset, selection.Start, selection.End)
	result := FilterResult{
		Filtered:     stage3,
		DateFiltered: dataset.Where(inRange),
		Selection:    selection,
		Options:      options,
		Mode:         mode,
	}

	if mode == domain.FilterModeIntersect {
		result.Filtered = stage3.Where(inRange)
	}

	return result
}

// whereIn mantém os registros cujo valor da coluna está em values. Conjunto vazio não filtra.
func whereIn(dataset *domain.Dataset, column string, values []string) *domain.Dataset {
	if len(values) == 0 {
		return dataset
	}

	accepted := make(map[string]struct{}, len(values))
	for _, value := range values {
		accepted[value] = struct{}{}
	}

	i, ok := dataset.ColumnIndex(column)
	if !ok {
		return dataset.Where(func(domain.Record) bool { return false })
	}

	return dataset.Where(func(record domain.Record) bool {
		_, keep := accepted[record[i].Raw]
		return keep
	})
}

// dateRange compara por dia, com as duas pontas inclusivas. start depois de end não aceita nada.
func dateRange(dataset *domain.Dataset, start, end time.Time) func(domain.Record) bool {
	i, ok := dataset.ColumnIndex(domain.ColumnOrderDate)
	if !ok || start.IsZero() || end.IsZero() {
		return func(domain.Record) bool { return false }
	}

	first, last := day(start), day(end)
	return func(record domain.Record) bool {
		date := day(record[i].Date)
		return !date.Before(first) && !date.After(last)
	}
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
