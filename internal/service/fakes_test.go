package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/esterlin12/tvplus/internal/apperr"
	"github.com/esterlin12/tvplus/internal/models"
)

type memUsers struct {
	mu    sync.Mutex
	byID  map[string]*models.User
	order []string
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[string]*models.User{}}
}

func (m *memUsers) Create(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Username == u.Username || existing.Email == u.Email {
			return apperr.Conflict("username or email already registered")
		}
	}
	cp := *u
	m.byID[u.ID] = &cp
	m.order = append(m.order, u.ID)
	return nil
}

func (m *memUsers) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("user not found")
}

func (m *memUsers) byIDCopy(id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, apperr.NotFound("user not found")
}

func (m *memUsers) SetSuperUser(_ context.Context, id string, now models.Timestamp) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return apperr.NotFound("user not found")
	}
	u.IsSuperUser = true
	u.UpdatedAt = now
	return nil
}

func (m *memUsers) List(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.User{}
	for i := len(m.order) - 1; i >= 0; i-- {
		out = append(out, *m.byID[m.order[i]])
	}
	return out, nil
}

type memChannels struct {
	mu    sync.Mutex
	byID  map[string]*models.Channel
	order []string
}

func newMemChannels() *memChannels {
	return &memChannels{byID: map[string]*models.Channel{}}
}

func (m *memChannels) Create(_ context.Context, c *models.Channel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.byID[c.ID] = &cp
	m.order = append(m.order, c.ID)
	return nil
}

func (m *memChannels) GetActive(_ context.Context, id string) (*models.Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.byID[id]; ok && c.IsActive {
		cp := *c
		return &cp, nil
	}
	return nil, apperr.NotFound("channel not found")
}

func (m *memChannels) ListActive(_ context.Context, f models.ChannelFilter) ([]models.Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Channel{}
	search := strings.ToLower(f.Search)
	for i := len(m.order) - 1; i >= 0; i-- {
		c := m.byID[m.order[i]]
		if !c.IsActive {
			continue
		}
		if f.Owner != "" && c.CreatedBy != f.Owner {
			continue
		}
		if f.Category != "" && (c.Category == nil || *c.Category != f.Category) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.Name), search) &&
			!strings.Contains(strings.ToLower(c.Description), search) {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (m *memChannels) Replace(_ context.Context, id string, f models.ChannelFields, now models.Timestamp) (*models.Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok || !c.IsActive {
		return nil, apperr.NotFound("channel not found")
	}
	c.Name, c.Description, c.Logo, c.URLs, c.Category = f.Name, f.Description, f.Logo, f.URLs, f.Category
	c.UpdatedAt = now
	cp := *c
	return &cp, nil
}

func (m *memChannels) Deactivate(_ context.Context, id string, now models.Timestamp) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok || !c.IsActive {
		return apperr.NotFound("channel not found")
	}
	c.IsActive = false
	c.UpdatedAt = now
	return nil
}

func (m *memChannels) Categories(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[string]bool{}
	out := []string{}
	for _, c := range m.byID {
		if c.IsActive && c.Category != nil && !seen[*c.Category] {
			seen[*c.Category] = true
			out = append(out, *c.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

type auditCall struct {
	UserID, Action, ResourceType, ResourceID string
}

type memAudit struct {
	mu    sync.Mutex
	calls []auditCall
}

func (m *memAudit) Log(_ context.Context, userID, action, resourceType, resourceID, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, auditCall{userID, action, resourceType, resourceID})
	return nil
}
