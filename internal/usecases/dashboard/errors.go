package dashboard

import (
	"errors"
	"fmt"

	"github.com/vfg2006/superstore-dashboard/pkg/apiErrors"
)

var (
	ErrEmptyResult     = errors.New("não há dados para analisar com os filtros selecionados")
	ErrFilterAsymmetry = errors.New("o intervalo de datas não se aplica aos gráficos")
	ErrSessionStore    = errors.New("erro ao salvar a sessão")
	ErrStageSkipped    = errors.New("tabela indisponível")
)

// PipelineError é devolvido quando a operação pedida não pode ser atendida pelo pipeline
type PipelineError struct {
	Err     error
	Code    string
	Stage   string
	Details string
}

func (e *PipelineError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s: %s", e.Stage, e.Err.Error(), e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Stage, e.Err.Error())
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

func newPipelineError(err error, code string, stage string, details string) *PipelineError {
	if code == "" {
		code = apiErrors.ErrInternalServer
	}
	return &PipelineError{
		Err:     err,
		Code:    code,
		Stage:   stage,
		Details: details,
	}
}
