package handler

import (
	"io"
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pkg/errors"

	"github.com/vfg2006/superstore-dashboard/internal/domain"
	"github.com/vfg2006/superstore-dashboard/internal/usecases/dashboard"
	"github.com/vfg2006/superstore-dashboard/pkg/apiErrors"
	"github.com/vfg2006/superstore-dashboard/pkg/log"
)

// Extensões aceitas no upload. txt passa por aqui e é recusado pelo loader com diagnóstico.
var uploadExtensions = []string{"csv", "xls", "xlsx", "txt"}

const uploadField = "file"

// multipartMemory é quanto do formulário fica em memória antes de ir para disco
const multipartMemory = 32 << 20

func UploadDataset(service dashboard.Service, maxUploadBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionOrUnauthorized(w, r)
		if !ok {
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				apiErrors.WriteError(w, apiErrors.ErrPayloadTooLarge, "Arquivo maior que o permitido", map[string]int64{"max_bytes": maxUploadBytes})
				return
			}
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formulário multipart inválido", nil)
			return
		}

		file, header, err := r.FormFile(uploadField)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Campo file é obrigatório", nil)
			return
		}
		defer file.Close()

		extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(header.Filename), "."))
		if !slices.Contains(uploadExtensions, extension) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Extensão não aceita", map[string]any{"accepted": uploadExtensions})
			return
		}

		content, err := io.ReadAll(file)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("upload: erro ao ler arquivo")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao ler arquivo enviado", nil)
			return
		}

		upload := &domain.UploadedFile{
			Name:    filepath.Base(header.Filename),
			Size:    len(content),
			Content: content,
		}

		view, err := service.SetUpload(r.Context(), session, upload)
		if err != nil {
			handleError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, view)
	}
}

// ClearDataset volta a usar o dataset padrão
func ClearDataset(service dashboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionOrUnauthorized(w, r)
		if !ok {
			return
		}

		view, err := service.ClearUpload(r.Context(), session)
		if err != nil {
			handleError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, view)
	}
}
