package domain

import "time"

// FilterMode define como o filtro de datas se combina com os filtros categóricos
type FilterMode string

const (
	// FilterModeParity aplica região/estado/cidade e o intervalo de datas em bases diferentes:
	// as agregações ignoram o intervalo de datas.
	FilterModeParity FilterMode = "parity"
	// FilterModeIntersect aplica os dois filtros antes de agregar
	FilterModeIntersect FilterMode = "intersect"
)

func (m FilterMode) Valid() bool {
	return m == FilterModeParity || m == FilterModeIntersect
}

// FilterSelection é a escolha atual do usuário. Conjunto vazio = sem filtro naquele nível.
type FilterSelection struct {
	Regions []string  `json:"regions"`
	States  []string  `json:"states"`
	Cities  []string  `json:"cities"`
	Start   time.Time `json:"start_date"`
	End     time.Time `json:"end_date"`
}

// MetricSelection guarda as colunas escolhidas para a série temporal e o gráfico de dispersão
type MetricSelection struct {
	TimeSeries  string `json:"time_series"`
	ScatterX    string `json:"scatter_x"`
	ScatterY    string `json:"scatter_y"`
	ScatterSize string `json:"scatter_size"`
}

// IsZero indica que nenhuma métrica foi escolhida ainda
func (m MetricSelection) IsZero() bool {
	return m == MetricSelection{}
}

// Or completa os campos vazios com os valores de fallback
func (m MetricSelection) Or(fallback MetricSelection) MetricSelection {
	if m.TimeSeries == "" {
		m.TimeSeries = fallback.TimeSeries
	}
	if m.ScatterX == "" {
		m.ScatterX = fallback.ScatterX
	}
	if m.ScatterY == "" {
		m.ScatterY = fallback.ScatterY
	}
	if m.ScatterSize == "" {
		m.ScatterSize = fallback.ScatterSize
	}
	return m
}

// DateBounds são os limites sugeridos para os seletores de data
type DateBounds struct {
	Min time.Time `json:"min"`
	Max time.Time `json:"max"`
}

// FilterOptions são as opções em cascata oferecidas para cada nível
type FilterOptions struct {
	Regions []string    `json:"regions"`
	States  []string    `json:"states"`
	Cities  []string    `json:"cities"`
	Bounds  *DateBounds `json:"date_bounds,omitempty"`
}
