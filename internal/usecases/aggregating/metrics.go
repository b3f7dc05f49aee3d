package aggregating

import (
	"fmt"
	"slices"

	"github.com/vfg2006/superstore-dashboard/internal/domain"
)

const anyKind domain.ColumnKind = ""

// ResolveMetrics preenche as métricas não escolhidas com os padrões do dashboard.
// Só deve ser chamado na inicialização da seleção: depois disso uma métrica inválida é erro.
func ResolveMetrics(dataset *domain.Dataset, metrics domain.MetricSelection) domain.MetricSelection {
	if metrics.TimeSeries == "" {
		metrics.TimeSeries = defaultMetric(dataset, domain.ColumnSales)
	}
	if metrics.ScatterX == "" {
		metrics.ScatterX = defaultMetric(dataset, domain.ColumnSales)
	}
	if metrics.ScatterY == "" {
		metrics.ScatterY = defaultMetric(dataset, domain.ColumnProfit)
	}
	if metrics.ScatterSize == "" {
		metrics.ScatterSize = defaultMetric(dataset, domain.ColumnQuantity)
	}
	return metrics
}

// defaultMetric devolve a coluna preferida se for numérica, senão a primeira numérica
func defaultMetric(dataset *domain.Dataset, preferred string) string {
	if dataset.HasColumnOfKind(preferred, domain.KindNumber) {
		return preferred
	}
	if numeric := dataset.NumericColumns(); len(numeric) > 0 {
		return numeric[0]
	}
	return ""
}

// ValidateMetric rejeita colunas que não são numéricas no dataset
func ValidateMetric(dataset *domain.Dataset, column string) error {
	if dataset.HasColumnOfKind(column, domain.KindNumber) {
		return nil
	}
	return fmt.Errorf("%w: %q não está entre %v", ErrInvalidColumn, column, dataset.NumericColumns())
}

// ValidateMetrics valida todas as métricas da seleção
func ValidateMetrics(dataset *domain.Dataset, metrics domain.MetricSelection) error {
	for _, column := range []string{metrics.TimeSeries, metrics.ScatterX, metrics.ScatterY, metrics.ScatterSize} {
		if err := ValidateMetric(dataset, column); err != nil {
			return err
		}
	}
	return nil
}

// requireColumns verifica existência e tipo das colunas usadas por um estágio.
// Tipo vazio aceita qualquer coluna (chaves de agrupamento usam o texto original).
func requireColumns(dataset *domain.Dataset, stage string, columns map[string]domain.ColumnKind) error {
	names := make([]string, 0, len(columns))
	for name := range columns {
		names = append(names, name)
	}
	slices.Sort(names)

	if missing := dataset.MissingColumns(names...); len(missing) > 0 {
		return newStageError(ErrSchema, stage, fmt.Sprintf("colunas ausentes: %v", missing))
	}

	for _, name := range names {
		kind := columns[name]
		if kind == anyKind || dataset.HasColumnOfKind(name, kind) {
			continue
		}
		if kind == domain.KindNumber {
			return newStageError(ErrInvalidColumn, stage, fmt.Sprintf("coluna %q não é numérica", name))
		}
		return newStageError(ErrSchema, stage, fmt.Sprintf("coluna %q deveria ser %s", name, kind))
	}
	return nil
}
