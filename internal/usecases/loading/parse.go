package loading

import (
	"bytes"
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

// Extensões conhecidas pelo carregador
const (
	ExtCSV  = "csv"
	ExtXLS  = "xls"
	ExtXLSX = "xlsx"
	ExtTXT  = "txt"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Assinatura de arquivos OLE2 (Compound File), usada pelo .xls do Excel 97-2003
var ole2Signature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// Limite de colunas de uma planilha BIFF8
const legacyMaxColumns = 256

// Extension devolve a extensão do arquivo em minúsculas e sem o ponto
func Extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

func supportedExtension(ext string) bool {
	return ext == ExtCSV || ext == ExtXLS || ext == ExtXLSX
}

// parseContent lê o conteúdo conforme a extensão e devolve cabeçalho e linhas brutas
func parseContent(name string, content []byte) ([]string, [][]string, error) {
	switch Extension(name) {
	case ExtXLS, ExtXLSX:
		// a extensão nem sempre corresponde ao conteúdo: .xls salvos como OOXML são comuns
		if bytes.HasPrefix(content, ole2Signature) {
			return readLegacySpreadsheet(content)
		}
		return readSpreadsheet(content)
	case ExtCSV:
		return readCSV(content)
	default:
		return nil, nil, ErrUnsupportedFormat
	}
}

// readCSV decodifica o conteúdo como ISO-8859-1, tolerando exportações que não são UTF-8
func readCSV(content []byte) ([]string, [][]string, error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	decoder := charmap.ISO8859_1.NewDecoder().Reader(bytes.NewReader(content))

	reader := csv.NewReader(decoder)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, errors.Wrap(ErrLoad, "arquivo CSV vazio")
	}
	if err != nil {
		return nil, nil, errors.Wrapf(ErrLoad, "erro ao ler cabeçalho CSV: %v", err)
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, errors.Wrapf(ErrLoad, "erro ao ler linhas CSV: %v", err)
	}

	return header, rows, nil
}

// readSpreadsheet lê a primeira planilha da pasta de trabalho. Valores são lidos crus
// para que datas cheguem como número serial, independente da formatação da célula.
func readSpreadsheet(content []byte) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, nil, errors.Wrapf(ErrLoad, "erro ao abrir planilha: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, errors.Wrap(ErrLoad, "planilha sem abas")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, errors.Wrapf(ErrLoad, "erro ao ler aba %q: %v", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil, errors.Wrapf(ErrLoad, "aba %q vazia", sheets[0])
	}

	return rows[0], rows[1:], nil
}

// readLegacySpreadsheet lê a primeira aba de uma pasta de trabalho BIFF (Excel 97-2003).
// Os estilos são trocados por "Geral" antes da leitura, assim como em readSpreadsheet:
// datas chegam como número serial e números sem formatação.
func readLegacySpreadsheet(content []byte) (header []string, rows [][]string, err error) {
	// o leitor de xls entra em pânico com registros truncados ou índices inválidos
	defer func() {
		if r := recover(); r != nil {
			header, rows = nil, nil
			err = errors.Wrapf(ErrLoad, "planilha xls inválida: %v", r)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(content), "utf-8")
	if err != nil {
		return nil, nil, errors.Wrapf(ErrLoad, "erro ao abrir planilha xls: %v", err)
	}
	if wb == nil || wb.NumSheets() == 0 {
		return nil, nil, errors.Wrap(ErrLoad, "planilha xls sem abas")
	}

	for _, style := range wb.Xfs {
		switch xf := style.(type) {
		case *xls.Xf8:
			xf.Format = 0
		case *xls.Xf5:
			xf.Format = 0
		}
	}

	sheet := wb.GetSheet(0)

	// ReadAllCells ignora abas de uma linha só; nesse caso o cabeçalho é lido direto
	if sheet.MaxRow == 0 {
		header = legacyRow(sheet.Row(0))
		if isBlank(header) {
			return nil, nil, errors.Wrapf(ErrLoad, "aba %q vazia", sheet.Name)
		}
		return header, nil, nil
	}

	cells := wb.ReadAllCells(int(sheet.MaxRow) + 1)
	if len(cells) == 0 || isBlank(cells[0]) {
		return nil, nil, errors.Wrapf(ErrLoad, "aba %q sem cabeçalho", sheet.Name)
	}

	return cells[0], cells[1:], nil
}

func legacyRow(row *xls.Row) []string {
	last := row.LastCol()
	if last <= 0 || last > legacyMaxColumns {
		last = legacyMaxColumns
	}

	cells := make([]string, last)
	width := 0
	for c := range cells {
		cells[c] = row.Col(c)
		if cells[c] != "" {
			width = c + 1
		}
	}
	return cells[:width]
}
