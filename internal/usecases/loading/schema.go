package loading

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/vfg2006/superstore-dashboard/internal/domain"
)

// Colunas convertidas para data. Order Date é obrigatória; as demais são opcionais
// e ficam como texto se não puderem ser convertidas.
var dateColumns = map[string]bool{
	domain.ColumnOrderDate: true,
	domain.ColumnShipDate:  true,
}

// Métricas do Superstore. Sem nenhuma linha não há valor para inferir o tipo, e
// elas continuam numéricas para que os estágios devolvam tabelas vazias.
var metricColumns = map[string]bool{
	domain.ColumnSales:    true,
	domain.ColumnProfit:   true,
	domain.ColumnQuantity: true,
}

// Formatos aceitos, na ordem de tentativa. Datas ambíguas são lidas como mês/dia.
var dateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"1/2/2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"1/2/06",
	"1-2-2006",
	"01-02-06",
	"02-Jan-2006",
	"2-Jan-06",
	"Jan 2, 2006",
	"2006/01/02",
}

// buildDataset normaliza cabeçalho e linhas brutas em um Dataset tipado
func buildDataset(header []string, rows [][]string) (*domain.Dataset, error) {
	names := normalizeHeader(header)
	width := len(names)

	raw := make([][]string, 0, len(rows))
	for _, row := range rows {
		if isBlank(row) {
			continue
		}
		cells := make([]string, width)
		for i := 0; i < width && i < len(row); i++ {
			cells[i] = strings.TrimSpace(row[i])
		}
		raw = append(raw, cells)
	}

	columns := make([]domain.Column, width)
	records := make([]domain.Record, len(raw))
	for i := range records {
		records[i] = make(domain.Record, width)
	}

	for c, name := range names {
		kind, err := fillColumn(name, c, raw, records)
		if err != nil {
			return nil, err
		}
		columns[c] = domain.Column{Name: name, Kind: kind}
	}

	dataset := domain.NewDataset(columns, records)
	if !dataset.HasColumnOfKind(domain.ColumnOrderDate, domain.KindDate) {
		return nil, fmt.Errorf("%w: coluna %q ausente", ErrSchema, domain.ColumnOrderDate)
	}

	return dataset, nil
}

// fillColumn converte a coluna c de todos os registros e devolve o tipo inferido
func fillColumn(name string, c int, raw [][]string, records []domain.Record) (domain.ColumnKind, error) {
	for r := range raw {
		records[r][c].Raw = raw[r][c]
	}

	if dateColumns[name] {
		dates := make([]time.Time, len(raw))
		for r := range raw {
			date, err := parseDate(raw[r][c])
			if err != nil {
				if name == domain.ColumnOrderDate {
					return "", fmt.Errorf("%w: %q na linha %d: %v", ErrSchema, name, r+2, err)
				}
				return domain.KindText, nil
			}
			dates[r] = date
		}
		for r := range raw {
			records[r][c].Date = dates[r]
		}
		return domain.KindDate, nil
	}

	numbers := make([]float64, len(raw))
	filled := 0
	for r := range raw {
		if raw[r][c] == "" {
			continue
		}
		number, ok := parseNumber(raw[r][c])
		if !ok {
			return domain.KindText, nil
		}
		numbers[r] = number
		filled++
	}
	if filled == 0 {
		if len(raw) == 0 && metricColumns[name] {
			return domain.KindNumber, nil
		}
		return domain.KindText, nil
	}

	for r := range raw {
		records[r][c].Number = numbers[r]
	}
	return domain.KindNumber, nil
}

// normalizeHeader remove espaços, nomeia colunas vazias e desambigua nomes repetidos
func normalizeHeader(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, exists := seen[name]; exists {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n+1)
		} else {
			seen[name] = 0
		}
		names[i] = name
	}
	return names
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func parseNumber(value string) (float64, bool) {
	number, err := strconv.ParseFloat(value, 64)
	if err == nil {
		return number, true
	}

	// 1,234.56
	if strings.Contains(value, ",") && strings.Count(value, ".") <= 1 {
		number, err = strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
		return number, err == nil
	}
	return 0, false
}

// parseDate aceita os formatos textuais conhecidos e números seriais do Excel
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("data vazia")
	}

	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, value); err == nil {
			return date, nil
		}
	}

	if serial, err := strconv.ParseFloat(value, 64); err == nil && serial > 0 {
		return excelize.ExcelDateToTime(serial, false)
	}

	return time.Time{}, fmt.Errorf("formato de data desconhecido: %q", value)
}
