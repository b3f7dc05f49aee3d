package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UploadedFile é o arquivo enviado pelo usuário. O conteúdo fica na sessão e é
// relido a cada execução do pipeline.
type UploadedFile struct {
	Name       string    `json:"name"`
	Size       int       `json:"size"`
	Content    []byte    `json:"-"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// SessionState é o estado de uma sessão autenticada. É o único estado que sobrevive
// entre execuções do pipeline.
type SessionState struct {
	ID            string          `json:"id"`
	User          string          `json:"user"`
	Authenticated bool            `json:"authenticated"`
	Upload        *UploadedFile   `json:"upload,omitempty"`
	Selection     FilterSelection `json:"selection"`
	Metrics       MetricSelection `json:"metrics"`
	CreatedAt     time.Time       `json:"created_at"`
	LastSeenAt    time.Time       `json:"last_seen_at"`
}

// Credentials é o par usuário/senha informado no login
type Credentials struct {
	User     string `json:"user" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse é devolvido ao cliente após o login
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Claims struct {
	SessionID string `json:"sid"`
	UserName  string `json:"user"`
	jwt.RegisteredClaims
}
