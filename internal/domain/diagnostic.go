package domain

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Diagnostic é uma mensagem exibida ao usuário quando parte do pipeline não pôde ser executada
type Diagnostic struct {
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
	Stage    string   `json:"stage,omitempty"`
	Message  string   `json:"message"`
}
