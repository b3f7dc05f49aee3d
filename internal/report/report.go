package report

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/vfg2006/superstore-dashboard/internal/domain"
	"github.com/vfg2006/superstore-dashboard/internal/usecases/dashboard"
	"github.com/vfg2006/superstore-dashboard/internal/usecases/exporting"
	"github.com/vfg2006/superstore-dashboard/internal/usecases/loading"
	"github.com/vfg2006/superstore-dashboard/pkg/log"
)

// Result lista o que foi escrito e o que ficou de fora por falha de estágio
type Result struct {
	Written []string
	Skipped map[string]error
}

// ReadUpload lê um arquivo local como se tivesse sido enviado pelo dashboard
func ReadUpload(path string) (*domain.UploadedFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler %s", path)
	}

	return &domain.UploadedFile{
		Name:    filepath.Base(path),
		Size:    len(content),
		Content: content,
	}, nil
}

// Generate escreve em outDir os quatro downloads do dashboard para a sessão informada.
// Uma falha na carga interrompe o relatório; um estágio indisponível só pula o arquivo.
func Generate(ctx context.Context, service dashboard.Service, session *domain.SessionState, outDir string) (*Result, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "erro ao criar diretório %s", outDir)
	}

	result := &Result{Skipped: make(map[string]error)}
	logger := log.ForContext(ctx)

	for _, download := range exporting.Downloads() {
		file, err := service.Download(ctx, session, download.Name)
		if err != nil {
			var loadErr *loading.LoadError
			if errors.As(err, &loadErr) {
				return nil, err
			}
			logger.WithError(err).WithField("stage", download.Name).Warn("report: arquivo não gerado")
			result.Skipped[download.FileName] = err
			continue
		}

		path := filepath.Join(outDir, file.Name)
		if err := os.WriteFile(path, file.Content, 0o644); err != nil {
			return nil, errors.Wrapf(err, "erro ao escrever %s", path)
		}
		result.Written = append(result.Written, path)
	}

	return result, nil
}
