package repository

import (
	"context"
	"sync"
	"time"

	"github.com/vfg2006/superstore-dashboard/internal/domain"
)

// SessionRepository guarda o estado de cada sessão autenticada. Cada sessão só
// enxerga o próprio estado.
type SessionRepository interface {
	Save(ctx context.Context, session *domain.SessionState) error
	Get(ctx context.Context, id string) (*domain.SessionState, error)
	Delete(ctx context.Context, id string) error
	DeleteIdleSince(ctx context.Context, cutoff time.Time) (int, error)
	Count(ctx context.Context) (int, error)
}

type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]domain.SessionState
}

func NewSessionRepository() SessionRepository {
	return &sessionRepository{
		sessions: make(map[string]domain.SessionState),
	}
}

// Save grava uma cópia do estado. Alterações posteriores no valor recebido não
// afetam o que está guardado.
func (r *sessionRepository) Save(_ context.Context, session *domain.SessionState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.ID] = copySession(*session)
	return nil
}

// Get devolve nil, nil quando a sessão não existe
func (r *sessionRepository) Get(_ context.Context, id string) (*domain.SessionState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, exists := r.sessions[id]
	if !exists {
		return nil, nil
	}

	session = copySession(session)
	return &session, nil
}

func (r *sessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
	return nil
}

// DeleteIdleSince remove as sessões sem atividade desde cutoff e devolve quantas foram removidas
func (r *sessionRepository) DeleteIdleSince(_ context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, session := range r.sessions {
		if session.LastSeenAt.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed, nil
}

func (r *sessionRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions), nil
}

func copySession(session domain.SessionState) domain.SessionState {
	if session.Upload != nil {
		upload := *session.Upload
		session.Upload = &upload
	}
	session.Selection.Regions = append([]string(nil), session.Selection.Regions...)
	session.Selection.States = append([]string(nil), session.Selection.States...)
	session.Selection.Cities = append([]string(nil), session.Selection.Cities...)
	return session
}
