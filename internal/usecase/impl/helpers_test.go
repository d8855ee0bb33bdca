package impl

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"time"

	"clouddoctor/internal/domain/entity"
	"clouddoctor/internal/domain/repository"
	"clouddoctor/internal/domain/service"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- user repository fake ---

type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[string]*entity.User // keyed by username
	findErr   error
	updateErr error
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, user := range users {
		repo.users[user.Username] = user
	}

	return repo
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, user := range r.users {
		if user.ID == id {
			copied := *user

			return &copied, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	user, ok := r.users[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user

	return &copied, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	users := make([]*entity.User, 0, len(r.users))
	for _, user := range r.users {
		copied := *user
		users = append(users, &copied)
	}

	return users, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.users[user.Username]; !ok {
		return repository.ErrUserNotFound
	}
	copied := *user
	r.users[user.Username] = &copied

	return nil
}

// --- checklist repository fake ---

type fakeChecklistRepo struct {
	mu      sync.Mutex
	results map[int64]*entity.ChecklistResult
	nextID  int64
}

func newFakeChecklistRepo() *fakeChecklistRepo {
	return &fakeChecklistRepo{results: make(map[int64]*entity.ChecklistResult), nextID: 1}
}

func (r *fakeChecklistRepo) Create(_ context.Context, result *entity.ChecklistResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	result.ID = r.nextID
	r.nextID++
	copied := *result
	r.results[result.ID] = &copied

	return nil
}

func (r *fakeChecklistRepo) FindByID(_ context.Context, id int64) (*entity.ChecklistResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result, ok := r.results[id]
	if !ok {
		return nil, repository.ErrChecklistNotFound
	}
	copied := *result

	return &copied, nil
}

func (r *fakeChecklistRepo) FindByUserID(_ context.Context, userID int64) ([]*entity.ChecklistResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	results := make([]*entity.ChecklistResult, 0)
	for _, result := range r.results {
		if result.UserID == userID {
			copied := *result
			results = append(results, &copied)
		}
	}

	return results, nil
}

func (r *fakeChecklistRepo) Update(_ context.Context, result *entity.ChecklistResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.results[result.ID]; !ok {
		return repository.ErrChecklistNotFound
	}
	copied := *result
	r.results[result.ID] = &copied

	return nil
}

// --- transaction manager fake ---

// fakeTxManager runs the callback directly against the backing fakes; there is
// no transactionality to simulate in memory.
type fakeTxManager struct {
	userRepo      repository.UserRepository
	checklistRepo repository.ChecklistRepository
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(&fakeRepoFactory{userRepo: m.userRepo, checklistRepo: m.checklistRepo})
}

type fakeRepoFactory struct {
	userRepo      repository.UserRepository
	checklistRepo repository.ChecklistRepository
}

func (f *fakeRepoFactory) UserRepo() repository.UserRepository { return f.userRepo }

func (f *fakeRepoFactory) ChecklistRepo() repository.ChecklistRepository { return f.checklistRepo }

// --- token store fake ---

type memTokenStore struct {
	mu      sync.Mutex
	tokens  map[string]string
	saveErr error
	getErr  error
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{tokens: make(map[string]string)}
}

func (s *memTokenStore) Save(_ context.Context, username, token string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.tokens[username] = token

	return nil
}

func (s *memTokenStore) Get(_ context.Context, username string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return "", s.getErr
	}
	token, ok := s.tokens[username]
	if !ok {
		return "", service.ErrTokenNotCached
	}

	return token, nil
}

func (s *memTokenStore) Delete(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, username)

	return nil
}

// --- audit client fake ---

type fakeAuditClient struct {
	mu       sync.Mutex
	lastReq  *service.AuditStartRequest
	response json.RawMessage
	err      error
}

func (c *fakeAuditClient) StartAudit(_ context.Context, req *service.AuditStartRequest) (json.RawMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastReq = req
	if c.err != nil {
		return nil, c.err
	}

	return c.response, nil
}
