package loading

import (
	"errors"
	"fmt"

	"github.com/vfg2006/superstore-dashboard/pkg/apiErrors"
)

var (
	ErrUnsupportedFormat = errors.New("formato de arquivo não suportado")
	ErrResourceNotFound  = errors.New("arquivo padrão não encontrado")
	ErrLoad              = errors.New("erro ao ler o dataset")
	ErrSchema            = errors.New("esquema do dataset inválido")
)

// LoadError é um erro de carga com o código de API e a origem que falhou
type LoadError struct {
	Err     error
	Code    string
	Source  string
	Details string
}

func (e *LoadError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s (%s): %s", e.Err.Error(), e.Source, e.Details)
	}
	return fmt.Sprintf("%s (%s)", e.Err.Error(), e.Source)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func newLoadError(baseErr error, source string, details string) *LoadError {
	return &LoadError{
		Err:     baseErr,
		Code:    codeFor(baseErr),
		Source:  source,
		Details: details,
	}
}

func codeFor(err error) string {
	switch {
	case errors.Is(err, ErrUnsupportedFormat):
		return apiErrors.ErrUnsupportedFormat
	case errors.Is(err, ErrResourceNotFound):
		return apiErrors.ErrResourceNotFound
	case errors.Is(err, ErrSchema):
		return apiErrors.ErrSchema
	default:
		return apiErrors.ErrLoadFailed
	}
}
