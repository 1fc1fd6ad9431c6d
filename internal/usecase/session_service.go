package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/valuecompare/backend/internal/domain"
)

const (
	// MinCompareItems is the smallest list a session will compare
	MinCompareItems = 2
	// DefaultMaxItems caps a comparison when no limit is configured
	DefaultMaxItems = 50
)

// SessionServiceConfig holds configuration for the session service
type SessionServiceConfig struct {
	MaxItems int
}

// SessionService owns the item lists users build and the comparison held over each
type SessionService struct {
	repo     domain.SessionRepository
	maxItems int
	now      func() time.Time
	mu       sync.Mutex
}

// NewSessionService creates a new session service with dependencies
func NewSessionService(repo domain.SessionRepository, config SessionServiceConfig) *SessionService {
	maxItems := config.MaxItems
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}

	return &SessionService{
		repo:     repo,
		maxItems: maxItems,
		now:      time.Now,
	}
}

// MaxItems is the largest list a comparison accepts
func (s *SessionService) MaxItems() int {
	return s.maxItems
}

// DemoItems returns the example comparison shown to first-time users
func DemoItems() []domain.Item {
	return []domain.Item{
		{ID: "example-1", Name: "6-pack of 12oz beers", Price: 12.99, Quantity: 6, Size: 12, Unit: domain.UnitOunce},
		{ID: "example-2", Name: "4-pack of 16oz beers", Price: 10.99, Quantity: 4, Size: 16, Unit: domain.UnitOunce},
	}
}

// CreateSession starts an empty session
func (s *SessionService) CreateSession(ctx context.Context) (*domain.Session, error) {
	now := s.now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		Items:     []domain.Item{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	log.Printf("[SESSION] Created session %s", session.ID)
	return session, nil
}

// GetSession returns the session with its items and held result
func (s *SessionService) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	if id == "" {
		return nil, domain.ErrInvalidRequest
	}
	return s.repo.Get(ctx, id)
}

// DeleteSession discards a session
func (s *SessionService) DeleteSession(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidRequest
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// AddItem validates the input, appends it to the session and discards any held result
func (s *SessionService) AddItem(ctx context.Context, id string, input ItemInput) (*domain.Session, domain.Item, error) {
	item, err := NewItem(input)
	if err != nil {
		return nil, domain.Item{}, err
	}

	session, err := s.mutate(ctx, id, func(session *domain.Session) error {
		if len(session.Items) >= s.maxItems {
			return fmt.Errorf("%w: limit is %d", domain.ErrTooManyItems, s.maxItems)
		}
		session.Items = append(session.Items, item)
		session.Result = nil
		return nil
	})
	if err != nil {
		return nil, domain.Item{}, err
	}

	log.Printf("[SESSION] %s: added %q (%d items)", id, item.Name, len(session.Items))
	return session, item, nil
}

// ClearItems removes every item and the held result
func (s *SessionService) ClearItems(ctx context.Context, id string) (*domain.Session, error) {
	session, err := s.mutate(ctx, id, func(session *domain.Session) error {
		session.Items = []domain.Item{}
		session.Result = nil
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[SESSION] %s: cleared", id)
	return session, nil
}

// Compare ranks the session's items and holds the result until the list changes.
// The returned session is the state the result was computed from.
// Fewer than MinCompareItems items is refused without computing anything.
func (s *SessionService) Compare(ctx context.Context, id string) (*domain.Session, error) {
	session, err := s.mutate(ctx, id, func(session *domain.Session) error {
		if len(session.Items) < MinCompareItems {
			return domain.ErrNotEnoughItems
		}
		result := CompareItems(session.Items)
		session.Result = &result
		return nil
	})
	if err != nil {
		return nil, err
	}

	return session, nil
}

// LoadDemo replaces the session's items with the example beer packs and compares them
func (s *SessionService) LoadDemo(ctx context.Context, id string) (*domain.Session, error) {
	session, err := s.mutate(ctx, id, func(session *domain.Session) error {
		session.Items = DemoItems()
		result := CompareItems(session.Items)
		session.Result = &result
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[SESSION] %s: loaded demo items", id)
	return session, nil
}

// mutate applies fn to a fresh copy of the session and saves it when fn succeeds
func (s *SessionService) mutate(ctx context.Context, id string, fn func(*domain.Session) error) (*domain.Session, error) {
	if id == "" {
		return nil, domain.ErrInvalidRequest
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(session); err != nil {
		return nil, err
	}
	session.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}
