package exporting

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/vfg2006/superstore-dashboard/internal/domain"
)

var ErrUnknownDownload = errors.New("download desconhecido")

// Download associa o nome usado na rota à tabela exportada e ao nome do arquivo
type Download struct {
	Name     string
	Table    string
	FileName string
}

var downloads = []Download{
	{Name: "category", Table: domain.TableCategory, FileName: "Category.csv"},
	{Name: "region", Table: domain.TableRegion, FileName: "Region.csv"},
	{Name: "timeseries", Table: domain.TableTimeSeries, FileName: "TimeSeries.csv"},
	{Name: "data", Table: domain.TableData, FileName: "Data.csv"},
}

// Downloads lista os downloads disponíveis, na ordem exibida no dashboard
func Downloads() []Download {
	return append([]Download(nil), downloads...)
}

func LookupDownload(name string) (Download, error) {
	for _, download := range downloads {
		if download.Name == name {
			return download, nil
		}
	}
	return Download{}, fmt.Errorf("%w: %q", ErrUnknownDownload, name)
}

// ToDelimitedText serializa a tabela em CSV com cabeçalho, sem índice e com quebras de linha "\n".
// A saída é estável: a mesma tabela gera sempre os mesmos bytes.
func ToDelimitedText(table *domain.Table) ([]byte, error) {
	if table == nil {
		return nil, errors.New("tabela nula")
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(table.Columns); err != nil {
		return nil, fmt.Errorf("erro ao escrever cabeçalho: %w", err)
	}

	record := make([]string, len(table.Columns))
	for i, row := range table.Rows {
		if len(row) != len(table.Columns) {
			return nil, fmt.Errorf("linha %d tem %d células, esperado %d", i, len(row), len(table.Columns))
		}
		for j, value := range row {
			record[j] = FormatCell(value)
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("erro ao escrever linha %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("erro ao finalizar CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// FormatCell converte uma célula para texto. Números usam a menor representação exata.
func FormatCell(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format(time.DateOnly)
	default:
		return fmt.Sprintf("%v", v)
	}
}
