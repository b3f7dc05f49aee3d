package authenticating

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/vfg2006/superstore-dashboard/infrastructure/repository"
	"github.com/vfg2006/superstore-dashboard/internal/config"
	"github.com/vfg2006/superstore-dashboard/internal/domain"
	"github.com/vfg2006/superstore-dashboard/pkg/apiErrors"
	"github.com/vfg2006/superstore-dashboard/pkg/log"
	"github.com/vfg2006/superstore-dashboard/pkg/utils"
)

type Authenticator interface {
	Login(ctx context.Context, credentials domain.Credentials) (*domain.LoginResponse, error)
	Logout(ctx context.Context, sessionID string) (domain.SessionState, error)
	Authenticate(ctx context.Context, token string) (*domain.SessionState, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	sessions     repository.SessionRepository
	user         string
	passwordHash []byte
	secretKey    string
	tokenTTL     time.Duration
	now          func() time.Time
}

// NewService guarda apenas o hash da senha configurada
func NewService(sessions repository.SessionRepository, cfg *config.Config) (Authenticator, error) {
	if cfg.Auth.User == "" || cfg.Auth.Password == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "DASHBOARD_USER e DASHBOARD_PASSWORD são obrigatórios")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Auth.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar hash da senha: %w", err)
	}

	ttl := cfg.Auth.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &Service{
		sessions:     sessions,
		user:         cfg.Auth.User,
		passwordHash: hash,
		secretKey:    cfg.SecretKey,
		tokenTTL:     ttl,
		now:          time.Now,
	}, nil
}

// OpenSession é a transição de login: devolve um estado autenticado novo
func OpenSession(id, user string, now time.Time) domain.SessionState {
	return domain.SessionState{
		ID:            id,
		User:          user,
		Authenticated: true,
		CreatedAt:     now,
		LastSeenAt:    now,
	}
}

// CloseSession é a transição de logout: descarta upload e seleção e exige novo login
func CloseSession(state domain.SessionState) domain.SessionState {
	return domain.SessionState{
		ID:         state.ID,
		User:       state.User,
		CreatedAt:  state.CreatedAt,
		LastSeenAt: state.LastSeenAt,
	}
}

func (s *Service) Login(ctx context.Context, credentials domain.Credentials) (*domain.LoginResponse, error) {
	if credentials.User == "" || credentials.Password == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Usuário e senha são obrigatórios")
	}

	validUser := subtle.ConstantTimeCompare([]byte(credentials.User), []byte(s.user)) == 1
	passwordErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(credentials.Password))
	if !validUser || passwordErr != nil {
		log.ForContext(ctx).WithField("user_name", credentials.User).Warn("login: credenciais inválidas")
		return nil, NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "Usuário ou senha incorretos")
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, NewAuthError(ErrGenerateID, apiErrors.ErrInternalServer, err.Error())
	}

	now := s.now()
	state := OpenSession(id, credentials.User, now)
	if err := s.sessions.Save(ctx, &state); err != nil {
		return nil, NewSessionAuthError(ErrSessionStore, apiErrors.ErrInternalServer, id, err.Error())
	}

	expiresAt := now.Add(s.tokenTTL)
	token, err := generateJWT(state, s.secretKey, expiresAt)
	if err != nil {
		return nil, NewSessionAuthError(ErrGenerateToken, apiErrors.ErrInternalServer, id, "Erro ao gerar token de autenticação")
	}

	log.ForContext(log.WithSessionID(ctx, id)).Info("login: sessão iniciada")

	return &domain.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Logout encerra a sessão e a remove do armazenamento. O token deixa de ser aceito.
func (s *Service) Logout(ctx context.Context, sessionID string) (domain.SessionState, error) {
	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.SessionState{}, NewSessionAuthError(ErrSessionStore, apiErrors.ErrInternalServer, sessionID, err.Error())
	}
	if state == nil {
		return domain.SessionState{}, NewSessionAuthError(ErrSessionNotFound, apiErrors.ErrSessionNotFound, sessionID, "Sessão já encerrada")
	}

	closed := CloseSession(*state)
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return domain.SessionState{}, NewSessionAuthError(ErrSessionStore, apiErrors.ErrInternalServer, sessionID, err.Error())
	}

	log.ForContext(ctx).Info("logout: sessão encerrada")
	return closed, nil
}

// Authenticate valida o token, carrega a sessão e registra a atividade
func (s *Service) Authenticate(ctx context.Context, token string) (*domain.SessionState, error) {
	claims, err := s.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	state, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, NewSessionAuthError(ErrSessionStore, apiErrors.ErrInternalServer, claims.SessionID, err.Error())
	}
	if state == nil || !state.Authenticated {
		return nil, NewSessionAuthError(ErrSessionNotFound, apiErrors.ErrSessionNotFound, claims.SessionID, "Faça login novamente")
	}

	state.LastSeenAt = s.now()
	if err := s.sessions.Save(ctx, state); err != nil {
		return nil, NewSessionAuthError(ErrSessionStore, apiErrors.ErrInternalServer, state.ID, err.Error())
	}

	return state, nil
}

func generateJWT(state domain.SessionState, secretKey string, expiresAt time.Time) (string, error) {
	claims := domain.Claims{
		SessionID: state.ID,
		UserName:  state.User,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(state.CreatedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	if tokenString == "" {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "Token ausente")
	}

	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	}, jwt.WithTimeFunc(s.now))
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "Token expirado")
	}
	if err != nil {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "Token sem sessão")
	}

	return claims, nil
}
