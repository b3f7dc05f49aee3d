package aggregating

import (
	"github.com/vfg2006/superstore-dashboard/internal/domain"
)

// Input reúne o que os estágios precisam em uma execução
type Input struct {
	Filtered *domain.Dataset
	// Full é o dataset sem filtros, usado apenas pela amostra
	Full    *domain.Dataset
	Metrics domain.MetricSelection
}

type Service interface {
	Aggregate(input Input) (map[string]*domain.Table, []error)
}

type service struct {
	pivotAggregate Aggregate
}

func NewService(pivotAggregate Aggregate) Service {
	if !pivotAggregate.Valid() {
		pivotAggregate = AggregateSum
	}
	return &service{pivotAggregate: pivotAggregate}
}

// Aggregate executa todos os estágios de forma independente. Um estágio que falha
// fica fora do mapa e seu *StageError é devolvido na lista de erros.
func (s *service) Aggregate(input Input) (map[string]*domain.Table, []error) {
	stages := []struct {
		name string
		run  func() (*domain.Table, error)
	}{
		{domain.TableCategory, func() (*domain.Table, error) { return CategoryTotals(input.Filtered) }},
		{domain.TableRegion, func() (*domain.Table, error) { return RegionTotals(input.Filtered) }},
		{domain.TableTimeSeries, func() (*domain.Table, error) { return TimeSeries(input.Filtered, input.Metrics.TimeSeries) }},
		{domain.TablePivot, func() (*domain.Table, error) { return SubCategoryPivot(input.Filtered, s.pivotAggregate) }},
		{domain.TableSample, func() (*domain.Table, error) { return Sample(input.Full) }},
		{domain.TableScatter, func() (*domain.Table, error) {
			return Scatter(input.Filtered, input.Metrics.ScatterX, input.Metrics.ScatterY, input.Metrics.ScatterSize)
		}},
		{domain.TableSegment, func() (*domain.Table, error) { return SegmentTotals(input.Filtered) }},
		{domain.TableHierarchy, func() (*domain.Table, error) { return Hierarchy(input.Filtered) }},
		{domain.TablePreview, func() (*domain.Table, error) { return Preview(input.Filtered), nil }},
	}

	tables := make(map[string]*domain.Table, len(stages))
	var errs []error
	for _, stage := range stages {
		table, err := stage.run()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		tables[stage.name] = table
	}
	return tables, errs
}
