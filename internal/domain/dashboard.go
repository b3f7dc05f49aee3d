package domain

// DatasetSummary descreve o dataset usado na execução
type DatasetSummary struct {
	Source  string   `json:"source"`
	Name    string   `json:"name,omitempty"`
	Rows    int      `json:"rows"`
	Columns []Column `json:"columns"`
	Numeric []string `json:"numeric_columns"`
}

// DashboardView é tudo o que a camada de apresentação precisa para desenhar a página
type DashboardView struct {
	Dataset       DatasetSummary    `json:"dataset"`
	FilterMode    FilterMode        `json:"filter_mode"`
	Selection     FilterSelection   `json:"selection"`
	Metrics       MetricSelection   `json:"metrics"`
	Options       FilterOptions     `json:"options"`
	FilteredRows  int               `json:"filtered_rows"`
	DateRangeRows int               `json:"date_range_rows"`
	Tables        map[string]*Table `json:"tables"`
	Diagnostics   []Diagnostic      `json:"diagnostics"`
}

// FiltersView alimenta os seletores em cascata
type FiltersView struct {
	FilterMode  FilterMode      `json:"filter_mode"`
	Selection   FilterSelection `json:"selection"`
	Options     FilterOptions   `json:"options"`
	Metrics     MetricSelection `json:"metrics"`
	Numeric     []string        `json:"numeric_columns"`
	Diagnostics []Diagnostic    `json:"diagnostics"`
}
