package conversation

import (
	"hash/fnv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// FlowKind identifica o fluxo multi-turno em andamento de uma sessão
type FlowKind string

const (
	FlowNone           FlowKind = "none"
	FlowCreatingBudget FlowKind = "creating_budget"
	FlowAddingExpense  FlowKind = "adding_expense"
)

// DefaultSessionTimeout é o TTL de inatividade de uma sessão
const DefaultSessionTimeout = 10 * time.Minute

// Context é o estado de conversa de um usuário: o fluxo corrente e os
// slots acumulados entre mensagens. Pertence exclusivamente ao Store e
// só é mutado pelo motor de fluxos sob o lock do usuário.
type Context struct {
	UserID        string                 `json:"user_id"`
	SessionID     string                 `json:"session_id"`
	CurrentFlow   FlowKind               `json:"current_flow"`
	FlowData      map[string]interface{} `json:"flow_data"`
	LastMessageAt time.Time              `json:"last_message_at"`
	MessageCount  int                    `json:"message_count"`
}

// Store guarda as sessões ativas por usuário com expiração por
// inatividade. Lock/Unlock serializam o read-modify-write completo de
// um usuário; usuários distintos progridem de forma independente.
type Store interface {
	// Lock adquire a exclusão mútua do usuário. Duas mensagens
	// concorrentes do mesmo usuário (ex: retry de webhook) nunca se
	// intercalam.
	Lock(userID string)

	// Unlock libera a exclusão mútua do usuário
	Unlock(userID string)

	// Get devolve a sessão do usuário ou nil quando ausente ou
	// expirada. Uma sessão expirada nunca é devolvida; é removida no
	// próprio acesso.
	Get(userID string) *Context

	// GetOrCreate devolve a sessão do usuário, criando uma nova quando
	// ausente ou expirada, e registra o toque (LastMessageAt,
	// MessageCount).
	GetOrCreate(userID string) *Context

	// Delete remove a sessão do usuário
	Delete(userID string)

	// Sweep remove todas as sessões expiradas e devolve quantas foram
	Sweep() int

	// Len devolve o número de sessões ativas
	Len() int
}

// lockShards é o número de stripes de lock por usuário
const lockShards = 64

// MemoryStore é a implementação em memória do Store. Um lock striped
// por hash do userID dá exclusão por usuário sem um lock global no
// caminho das mensagens; o mapa em si tem um mutex próprio e curto.
type MemoryStore struct {
	timeout time.Duration

	locks [lockShards]sync.Mutex

	mu       sync.Mutex
	sessions map[string]*Context

	// nowFn é injetável para testes de expiração
	nowFn func() time.Time
}

// NewMemoryStore cria um MemoryStore com o timeout informado; zero usa
// DefaultSessionTimeout.
func NewMemoryStore(timeout time.Duration) *MemoryStore {
	if timeout <= 0 {
		timeout = DefaultSessionTimeout
	}
	return &MemoryStore{
		timeout:  timeout,
		sessions: make(map[string]*Context),
		nowFn:    time.Now,
	}
}

func (s *MemoryStore) shard(userID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(userID))
	return &s.locks[h.Sum32()%lockShards]
}

// Lock adquire o stripe do usuário
func (s *MemoryStore) Lock(userID string) {
	s.shard(userID).Lock()
}

// Unlock libera o stripe do usuário
func (s *MemoryStore) Unlock(userID string) {
	s.shard(userID).Unlock()
}

// Get devolve a sessão viva do usuário ou nil. Entradas expiradas são
// removidas no acesso.
func (s *MemoryStore) Get(userID string) *Context {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, ok := s.sessions[userID]
	if !ok {
		return nil
	}
	if s.expired(ctx) {
		delete(s.sessions, userID)
		return nil
	}
	return ctx
}

// GetOrCreate devolve a sessão do usuário, criando (ou recriando, se a
// existente expirou) quando necessário, e registra o toque. A varredura
// oportunista roda antes da criação, garantindo que nada cresça sem
// limite.
func (s *MemoryStore) GetOrCreate(userID string) *Context {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowFn()
	s.sweepLocked(now)

	ctx, ok := s.sessions[userID]
	if !ok {
		ctx = &Context{
			UserID:      userID,
			SessionID:   uuid.New().String(),
			CurrentFlow: FlowNone,
			FlowData:    make(map[string]interface{}),
		}
		s.sessions[userID] = ctx
	}
	ctx.LastMessageAt = now
	ctx.MessageCount++
	return ctx
}

// Delete remove a sessão do usuário
func (s *MemoryStore) Delete(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// Sweep remove as sessões expiradas e devolve quantas foram removidas
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked(s.nowFn())
}

// Len devolve o número de sessões ativas
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *MemoryStore) expired(ctx *Context) bool {
	return s.nowFn().Sub(ctx.LastMessageAt) > s.timeout
}

func (s *MemoryStore) sweepLocked(now time.Time) int {
	removed := 0
	for userID, ctx := range s.sessions {
		if now.Sub(ctx.LastMessageAt) > s.timeout {
			delete(s.sessions, userID)
			removed++
		}
	}
	return removed
}
