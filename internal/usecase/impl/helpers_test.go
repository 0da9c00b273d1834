package impl

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"focusflow/internal/domain/entity"
	"focusflow/internal/domain/repository"
	"focusflow/internal/domain/service"

	"github.com/google/uuid"
)

// In-memory fakes implementing the repository and service interfaces. They
// keep the use case tests free of database and crypto dependencies while
// preserving the contracts the real implementations honor.

type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func cloneUser(u *entity.User) *entity.User {
	copied := *u

	return &copied
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user, ok := r.users[id]; ok {
		return cloneUser(user), nil
	}

	return nil, repository.ErrUserNotFound
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Username == username {
			return cloneUser(user), nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
		if existing.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
	}

	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = cloneUser(user)

	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)

	return nil
}

type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*entity.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string]*entity.Session)}
}

func (r *memSessionRepo) Create(_ context.Context, session *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session.ID = uuid.New()
	session.CreatedAt = time.Now()
	copied := *session
	r.sessions[session.TokenHash] = &copied

	return nil
}

func (r *memSessionRepo) FindByTokenHash(_ context.Context, tokenHash string) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[tokenHash]
	if !ok || session.ExpiresAt.Before(time.Now()) {
		return nil, repository.ErrSessionNotFound
	}
	copied := *session

	return &copied, nil
}

func (r *memSessionRepo) DeleteByTokenHash(_ context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, tokenHash)

	return nil
}

func (r *memSessionRepo) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for hash, session := range r.sessions {
		if session.UserID == userID {
			delete(r.sessions, hash)
		}
	}

	return nil
}

func (r *memSessionRepo) DeleteExpired(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for hash, session := range r.sessions {
		if session.ExpiresAt.Before(time.Now()) {
			delete(r.sessions, hash)
		}
	}

	return nil
}

func (r *memSessionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}

type memTaskRepo struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*entity.Task
	seq   int
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: make(map[uuid.UUID]*entity.Task)}
}

func cloneTask(t *entity.Task) *entity.Task {
	copied := *t
	if t.Category != nil {
		category := *t.Category
		copied.Category = &category
	}
	if t.DueDate != nil {
		due := *t.DueDate
		copied.DueDate = &due
	}

	return &copied
}

func (r *memTaskRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if task, ok := r.tasks[id]; ok {
		return cloneTask(task), nil
	}

	return nil, repository.ErrTaskNotFound
}

func (r *memTaskRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var tasks []*entity.Task
	for _, task := range r.tasks {
		if task.OwnerID == ownerID {
			tasks = append(tasks, cloneTask(task))
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})

	return tasks, nil
}

func (r *memTaskRepo) Create(_ context.Context, task *entity.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task.ID = uuid.New()
	// Strictly increasing creation times keep list ordering deterministic.
	r.seq++
	task.CreatedAt = time.Unix(int64(r.seq), 0)
	task.UpdatedAt = task.CreatedAt
	r.tasks[task.ID] = cloneTask(task)

	return nil
}

func (r *memTaskRepo) Update(_ context.Context, task *entity.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[task.ID]; !ok {
		return repository.ErrTaskNotFound
	}
	r.tasks[task.ID] = cloneTask(task)

	return nil
}

func (r *memTaskRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return repository.ErrTaskNotFound
	}
	delete(r.tasks, id)

	return nil
}

func (r *memTaskRepo) ListDueReminders(_ context.Context, now time.Time) ([]*entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var tasks []*entity.Task
	for _, task := range r.tasks {
		if !task.Completed && task.ReminderDue(now) {
			tasks = append(tasks, cloneTask(task))
		}
	}

	return tasks, nil
}

func (r *memTaskRepo) get(id uuid.UUID) *entity.Task {
	r.mu.Lock()
	defer r.mu.Unlock()

	if task, ok := r.tasks[id]; ok {
		return cloneTask(task)
	}

	return nil
}

type memCategoryRepo struct {
	mu         sync.Mutex
	categories map[uuid.UUID]*entity.Category
}

func newMemCategoryRepo(names ...string) *memCategoryRepo {
	repo := &memCategoryRepo{categories: make(map[uuid.UUID]*entity.Category)}
	for _, name := range names {
		id := uuid.New()
		repo.categories[id] = &entity.Category{ID: id, Name: name}
	}

	return repo
}

func (r *memCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if category, ok := r.categories[id]; ok {
		copied := *category

		return &copied, nil
	}

	return nil, repository.ErrCategoryNotFound
}

func (r *memCategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	categories := make([]*entity.Category, 0, len(r.categories))
	for _, category := range r.categories {
		copied := *category
		categories = append(categories, &copied)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})

	return categories, nil
}

func (r *memCategoryRepo) Seed(_ context.Context, names []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

outer:
	for _, name := range names {
		for _, existing := range r.categories {
			if existing.Name == name {
				continue outer
			}
		}
		id := uuid.New()
		r.categories[id] = &entity.Category{ID: id, Name: name}
	}

	return nil
}

func (r *memCategoryRepo) anyID() uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id := range r.categories {
		return id
	}

	return uuid.Nil
}

// memTxManager satisfies TransactionManager without transactional semantics;
// the rollback behavior itself is covered by the repository-level tests.
type memTxManager struct {
	factory *memFactory
}

type memFactory struct {
	userRepo     *memUserRepo
	taskRepo     *memTaskRepo
	categoryRepo *memCategoryRepo
	sessionRepo  *memSessionRepo
}

func (f *memFactory) UserRepo() repository.UserRepository         { return f.userRepo }
func (f *memFactory) TaskRepo() repository.TaskRepository         { return f.taskRepo }
func (f *memFactory) CategoryRepo() repository.CategoryRepository { return f.categoryRepo }
func (f *memFactory) SessionRepo() repository.SessionRepository   { return f.sessionRepo }

func (tm *memTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(tm.factory)
}

// plainHasher marks hashes with a prefix instead of running bcrypt.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (plainHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

// stubSessionTokens derives predictable session tokens. Each call produces a
// distinct pair so token rotation is observable.
type stubSessionTokens struct {
	mu  sync.Mutex
	seq int
}

func (s *stubSessionTokens) GenerateTokens(userID uuid.UUID) (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	suffix := "#" + strconv.Itoa(s.seq)

	return "access-" + userID.String() + suffix, "refresh-" + userID.String() + suffix, nil
}

func (s *stubSessionTokens) ValidateAccessToken(token string) (*service.SessionClaims, error) {
	raw := strings.TrimPrefix(token, "access-")
	raw, _, _ = strings.Cut(raw, "#")
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, service.ErrTokenMalformed
	}

	return &service.SessionClaims{UserID: id, Type: "access"}, nil
}

func (s *stubSessionTokens) HashToken(token string) string {
	return "h:" + token
}

func (s *stubSessionTokens) RefreshTokenDuration() time.Duration {
	return time.Hour
}

// stubVerifyTokens encodes the subject in the token and tracks issuance time
// against an adjustable clock.
type stubVerifyTokens struct {
	mu     sync.Mutex
	now    func() time.Time
	issued map[string]time.Time
}

func newStubVerifyTokens(now func() time.Time) *stubVerifyTokens {
	return &stubVerifyTokens{now: now, issued: make(map[string]time.Time)}
}

func (s *stubVerifyTokens) Issue(email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := "vt:" + email
	s.issued[token] = s.now()

	return token, nil
}

func (s *stubVerifyTokens) Validate(token string, maxAge time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	issuedAt, ok := s.issued[token]
	if !ok || !strings.HasPrefix(token, "vt:") {
		return "", service.ErrTokenMalformed
	}
	if s.now().Sub(issuedAt) > maxAge {
		return "", service.ErrTokenExpired
	}

	return strings.TrimPrefix(token, "vt:"), nil
}

// recordingMailer captures dispatches and can be told to fail.
type recordingMailer struct {
	mu    sync.Mutex
	sent  []string
	fails bool
}

func (m *recordingMailer) SendVerificationEmail(_ context.Context, recipient, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fails {
		return errDispatch
	}
	m.sent = append(m.sent, recipient)

	return nil
}

func (m *recordingMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.sent)
}

var errDispatch = &dispatchError{}

type dispatchError struct{}

func (*dispatchError) Error() string { return "smtp unreachable" }

// stubCooldown is a fixed-window cooldown on an adjustable clock.
type stubCooldown struct {
	mu       sync.Mutex
	now      func() time.Time
	window   time.Duration
	lastSend map[string]time.Time
}

func newStubCooldown(window time.Duration, now func() time.Time) *stubCooldown {
	return &stubCooldown{now: now, window: window, lastSend: make(map[string]time.Time)}
}

func (c *stubCooldown) CanSend(key string) (bool, time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	last, ok := c.lastSend[key]
	if !ok {
		return true, 0
	}
	elapsed := c.now().Sub(last)
	if elapsed >= c.window {
		return true, 0
	}

	return false, c.window - elapsed
}

func (c *stubCooldown) RecordSend(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastSend[key] = c.now()
}

func (c *stubCooldown) recorded(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.lastSend[key]

	return ok
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
