// File: internal/store/memory.go
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"transcript-hub/internal/model"
)

// Memory 是記憶體內的 Store 實作，供測試與本機開發使用
type Memory struct {
	mu          sync.RWMutex
	users       map[int]model.User
	byUsername  map[string]int
	transcripts map[int][]model.Transcript
	nextUserID  int
	nextTransID int
	now         func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		users:       map[int]model.User{},
		byUsername:  map[string]int{},
		transcripts: map[int][]model.Transcript{},
		now:         time.Now,
	}
}

func (m *Memory) FindUserByUsername(_ context.Context, username string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byUsername[username]
	if !ok {
		return nil, fmt.Errorf("FindUserByUsername: %w", ErrNotFound)
	}
	u := m.users[id]
	return &u, nil
}

func (m *Memory) ListUsers(_ context.Context) ([]model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *Memory) CreateUser(_ context.Context, u *model.User) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byUsername[u.Username]; exists {
		return nil, fmt.Errorf("CreateUser: %w", ErrConflict)
	}
	m.nextUserID++
	u.ID = m.nextUserID
	u.CreatedAt = m.now()
	m.users[u.ID] = *u
	m.byUsername[u.Username] = u.ID
	return u, nil
}

func (m *Memory) DeleteUser(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return fmt.Errorf("DeleteUser: %w", ErrNotFound)
	}
	delete(m.transcripts, id)
	delete(m.byUsername, u.Username)
	delete(m.users, id)
	return nil
}

func (m *Memory) InsertTranscript(_ context.Context, userID int, content string) (*model.Transcript, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[userID]; !ok {
		return nil, fmt.Errorf("InsertTranscript: %w", ErrNotFound)
	}
	m.nextTransID++
	t := model.Transcript{
		ID:        m.nextTransID,
		UserID:    userID,
		Content:   content,
		CreatedAt: m.now(),
	}
	m.transcripts[userID] = append(m.transcripts[userID], t)
	return &t, nil
}

func (m *Memory) ListTranscriptsByUser(_ context.Context, userID int) ([]model.Transcript, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	src := m.transcripts[userID]
	out := make([]model.Transcript, len(src))
	copy(out, src)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *Memory) Ping(context.Context) error { return nil }
