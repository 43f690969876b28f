package profile

import (
	"context"
	"sync"
	"time"
)

// MockProfileService is an in-memory Service for unit tests.
type MockProfileService struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
	order    []string
	users    map[string]User

	// Err, when set, is returned by every method.
	Err error
	// Upserts counts Upsert calls that reached storage.
	Upserts int
}

func NewMockProfileService() *MockProfileService {
	return &MockProfileService{
		profiles: make(map[string]*Profile),
		users:    make(map[string]User),
	}
}

func (m *MockProfileService) Get(_ context.Context, userID string) (*Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	p, ok := m.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	out := m.joined(p)
	return &out, nil
}

func (m *MockProfileService) List(_ context.Context) ([]Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]Profile, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.joined(m.profiles[id]))
	}
	return out, nil
}

func (m *MockProfileService) Upsert(_ context.Context, u Update) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Upserts++
	if m.Err != nil {
		return nil, m.Err
	}
	userID := u.User.ID
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p, ok := m.profiles[userID]
	if !ok {
		p = &Profile{ID: userID, User: User{ID: userID}, Social: map[string]string{}, CreatedAt: now}
		m.profiles[userID] = p
		m.order = append(m.order, userID)
	}
	u.apply(p)
	p.UpdatedAt = now

	m.users[userID] = mergeOwner(m.users[userID], u.User)

	out := m.joined(p)
	return &out, nil
}

// Count returns the number of stored profiles.
func (m *MockProfileService) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.profiles)
}

// joined returns a deep copy of p with the owner's name and avatar.
func (m *MockProfileService) joined(p *Profile) Profile {
	out := *p
	out.User = m.users[p.User.ID]
	out.User.ID = p.User.ID
	out.Skills = append([]string(nil), p.Skills...)
	out.Social = make(map[string]string, len(p.Social))
	for k, v := range p.Social {
		out.Social[k] = v
	}
	return out
}

var _ Service = (*MockProfileService)(nil)
