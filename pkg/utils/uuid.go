package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	idSize     = 21
)

// GenerateID gera os identificadores de sessão
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, idSize)
}
