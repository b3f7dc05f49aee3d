package loading

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/vfg2006/superstore-dashboard/internal/domain"
	"github.com/vfg2006/superstore-dashboard/pkg/log"
)

// Origens possíveis de um dataset
const (
	SourceUpload  = "upload"
	SourceDefault = "default"
)

// Loader obtém o dataset da sessão: o arquivo enviado ou, na falta dele, o recurso padrão
type Loader interface {
	Load(ctx context.Context, upload *domain.UploadedFile) (*domain.Dataset, error)
	DescribeDefault() string
}

// DefaultSource é o recurso usado quando nenhum arquivo foi enviado
type DefaultSource interface {
	Describe() string
	Read(ctx context.Context) (header []string, rows [][]string, err error)
}

// TableReader lê uma tabela inteira como texto. Implementado pelo repositório Postgres.
type TableReader interface {
	ReadTable(ctx context.Context, table string) (header []string, rows [][]string, err error)
}

type Service struct {
	defaultSource DefaultSource
}

func NewService(defaultSource DefaultSource) Loader {
	return &Service{defaultSource: defaultSource}
}

func (s *Service) DescribeDefault() string {
	if s.defaultSource == nil {
		return ""
	}
	return s.defaultSource.Describe()
}

// Load lê e normaliza o dataset. Em caso de erro o dataset devolvido é vazio (nunca nil)
// e o erro é um *LoadError com o código para a camada de apresentação.
func (s *Service) Load(ctx context.Context, upload *domain.UploadedFile) (*domain.Dataset, error) {
	logger := log.ForContext(ctx)

	if upload != nil {
		dataset, err := LoadUpload(upload)
		if err != nil {
			logger.WithError(err).WithField("source", upload.Name).Warn("loader: falha ao carregar arquivo enviado")
			return domain.EmptyDataset(), err
		}
		logger.WithFields(log.Fields{"source": upload.Name, "rows": dataset.Len()}).Debug("loader: arquivo enviado carregado")
		return dataset, nil
	}

	if s.defaultSource == nil {
		return domain.EmptyDataset(), newLoadError(ErrResourceNotFound, SourceDefault, "nenhum recurso padrão configurado")
	}

	source := s.defaultSource.Describe()
	header, rows, err := s.defaultSource.Read(ctx)
	if err != nil {
		loadErr := asLoadError(err, source)
		logger.WithError(loadErr).WithField("source", source).Error("loader: falha ao carregar recurso padrão")
		return domain.EmptyDataset(), loadErr
	}

	dataset, err := buildDataset(header, rows)
	if err != nil {
		return domain.EmptyDataset(), asLoadError(err, source)
	}

	logger.WithFields(log.Fields{"source": source, "rows": dataset.Len()}).Debug("loader: recurso padrão carregado")
	return dataset, nil
}

// LoadUpload interpreta um arquivo enviado pelo usuário
func LoadUpload(upload *domain.UploadedFile) (*domain.Dataset, error) {
	header, rows, err := parseContent(upload.Name, upload.Content)
	if err != nil {
		return domain.EmptyDataset(), asLoadError(err, upload.Name)
	}

	dataset, err := buildDataset(header, rows)
	if err != nil {
		return domain.EmptyDataset(), asLoadError(err, upload.Name)
	}
	return dataset, nil
}

func asLoadError(err error, source string) *LoadError {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr
	}

	for _, base := range []error{ErrUnsupportedFormat, ErrResourceNotFound, ErrSchema} {
		if errors.Is(err, base) {
			return newLoadError(base, source, detailsOf(err, base))
		}
	}
	return newLoadError(ErrLoad, source, detailsOf(err, ErrLoad))
}

// detailsOf evita repetir a mensagem do erro base nos detalhes
func detailsOf(err error, base error) string {
	if err == base {
		return ""
	}
	return err.Error()
}

// FileSource lê o arquivo padrão. O arquivo não faz parte do repositório: a implantação
// deve colocá-lo em DATASET_DEFAULT_PATH ou carregar a tabela DATASET_TABLE.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (f *FileSource) Describe() string {
	return filepath.Base(f.Path)
}

// Check confirma que o arquivo existe e pode ser lido, sem interpretar o conteúdo
func (f *FileSource) Check() error {
	info, err := os.Stat(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return newLoadError(ErrResourceNotFound, f.Describe(), "arquivo padrão não encontrado em: "+f.Path)
	}
	if err != nil {
		return newLoadError(ErrLoad, f.Describe(), err.Error())
	}
	if info.IsDir() {
		return newLoadError(ErrLoad, f.Describe(), f.Path+" é um diretório")
	}
	if !supportedExtension(Extension(f.Path)) {
		return newLoadError(ErrUnsupportedFormat, f.Describe(), "")
	}
	return nil
}

func (f *FileSource) Read(_ context.Context) ([]string, [][]string, error) {
	content, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, newLoadError(ErrResourceNotFound, f.Describe(), "arquivo padrão não encontrado em: "+f.Path)
	}
	if err != nil {
		return nil, nil, newLoadError(ErrLoad, f.Describe(), err.Error())
	}

	return parseContent(f.Path, content)
}

// TableSource lê o dataset padrão de uma tabela do banco
type TableSource struct {
	Table  string
	Reader TableReader
}

func NewTableSource(table string, reader TableReader) *TableSource {
	return &TableSource{Table: table, Reader: reader}
}

func (t *TableSource) Describe() string {
	return "table:" + t.Table
}

func (t *TableSource) Read(ctx context.Context) ([]string, [][]string, error) {
	header, rows, err := t.Reader.ReadTable(ctx, t.Table)
	if err != nil {
		return nil, nil, errors.Wrapf(ErrLoad, "erro ao ler tabela %s: %v", t.Table, err)
	}
	return header, rows, nil
}
