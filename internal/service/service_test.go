package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/haierkeys/bitshared-cli/internal/api"
	"github.com/haierkeys/bitshared-cli/internal/api/apitest"
	"github.com/haierkeys/bitshared-cli/internal/domain"
	"github.com/haierkeys/bitshared-cli/pkg/storage"
	"github.com/haierkeys/bitshared-cli/pkg/validator"
	"github.com/haierkeys/bitshared-cli/pkg/workerpool"
	"github.com/stretchr/testify/require"
)

// memRepo 内存会话仓储
type memRepo struct {
	mu      sync.Mutex
	session *domain.Session
	saves   int
	err     error
}

func (r *memRepo) Load(ctx context.Context) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if r.session == nil {
		return domain.NewLoggedOutSession(), nil
	}
	s := *r.session
	return &s, nil
}

func (r *memRepo) Save(ctx context.Context, s *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	c := *s
	r.session = &c
	r.saves++
	return nil
}

func (r *memRepo) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session = nil
	return r.err
}

func (r *memRepo) Close() error { return nil }

func newClient(t *testing.T, b *apitest.Backend) *api.Client {
	t.Helper()
	c, err := api.NewClient(api.Config{BaseURL: b.URL(), Timeout: 5 * time.Second}, nil)
	require.NoError(t, err)
	return c
}

// loggedIn returns a session store already holding the given user
func loggedIn(t *testing.T, userID int64, role domain.Role) SessionStore {
	t.Helper()
	s := NewSessionStore(&memRepo{}, nil)
	require.NoError(t, s.Save(context.Background(), &domain.Session{UserID: userID, Role: role, Username: "u"}))
	return s
}

func newValidator(t *testing.T) *validator.Validator {
	t.Helper()
	v, err := validator.New("en")
	require.NoError(t, err)
	return v
}

func newSink(t *testing.T) storage.Storager {
	t.Helper()
	sink, err := storage.NewClient(&storage.Config{Type: storage.LOCAL, IsEnabled: true, SavePath: t.TempDir()})
	require.NoError(t, err)
	return sink
}

func newPool(t *testing.T) *workerpool.Pool {
	t.Helper()
	p := workerpool.New(&workerpool.Config{MaxWorkers: 2, QueueSize: 8}, nil)
	t.Cleanup(func() { _ = p.Shutdown(context.Background()) })
	return p
}
