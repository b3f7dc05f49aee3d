package aggregating

import (
	"errors"
	"fmt"

	"github.com/vfg2006/superstore-dashboard/pkg/apiErrors"
)

var (
	ErrInvalidColumn = errors.New("coluna inválida para a métrica")
	ErrSchema        = errors.New("coluna obrigatória ausente")
)

// StageError indica que um estágio não pôde ser calculado e foi ignorado
type StageError struct {
	Err     error
	Code    string
	Stage   string
	Details string
}

func (e *StageError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s: %s", e.Stage, e.Err.Error(), e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Stage, e.Err.Error())
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func newStageError(baseErr error, stage string, details string) *StageError {
	code := apiErrors.ErrSchema
	if errors.Is(baseErr, ErrInvalidColumn) {
		code = apiErrors.ErrInvalidColumn
	}

	return &StageError{
		Err:     baseErr,
		Code:    code,
		Stage:   stage,
		Details: details,
	}
}
