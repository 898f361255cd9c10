package http_test

import (
	"bytes"
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/LauraSouzaCastro/projeto13-batepapo-uol-api/internal/domain"
	httpapi "github.com/LauraSouzaCastro/projeto13-batepapo-uol-api/internal/http"
	"github.com/LauraSouzaCastro/projeto13-batepapo-uol-api/internal/repo"
)

// fakeStore is an in-memory stand-in for *repo.Store with the same
// semantics the handlers rely on.
type fakeStore struct {
	mu           sync.Mutex
	participants []domain.Participant
	messages     []domain.Message

	insertParticipantErr error
	insertMessageErr     error
	listMessagesErr      error
}

func (f *fakeStore) Ping(ctx context.Context) error { return nil }

func (f *fakeStore) InsertParticipant(ctx context.Context, p *domain.Participant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertParticipantErr != nil {
		return f.insertParticipantErr
	}
	for _, q := range f.participants {
		if q.Name == p.Name {
			return repo.ErrNameTaken
		}
	}
	f.participants = append(f.participants, *p)
	return nil
}

func (f *fakeStore) ListParticipants(ctx context.Context) ([]domain.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Participant, len(f.participants))
	copy(out, f.participants)
	return out, nil
}

func (f *fakeStore) FindParticipantByName(ctx context.Context, name string) (*domain.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, q := range f.participants {
		if q.Name == name {
			p := q
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) TouchParticipant(ctx context.Context, name string, seen time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.participants {
		if f.participants[i].Name == name {
			f.participants[i].LastSeenAt = seen
			return nil
		}
	}
	return repo.ErrNotFound
}

func (f *fakeStore) InsertMessage(ctx context.Context, m *domain.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertMessageErr != nil {
		return f.insertMessageErr
	}
	f.messages = append(f.messages, *m)
	return nil
}

func (f *fakeStore) ListMessagesFor(ctx context.Context, user string, limit int64) ([]domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listMessagesErr != nil {
		return nil, f.listMessagesErr
	}
	var visible []domain.Message
	for _, m := range f.messages {
		if m.From == user || m.To == user || m.Type == domain.TypeChat || m.To == domain.Broadcast {
			visible = append(visible, m)
		}
	}
	if limit > 0 && int64(len(visible)) > limit {
		visible = visible[int64(len(visible))-limit:]
	}
	return visible, nil
}

func (f *fakeStore) participantNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, p := range f.participants {
		out = append(out, p.Name)
	}
	return out
}

func (f *fakeStore) storedMessages() []domain.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Message, len(f.messages))
	copy(out, f.messages)
	return out
}

// capturePub records published routing keys.
type capturePub struct {
	mu   sync.Mutex
	keys []string
}

func (p *capturePub) Publish(ctx context.Context, exchange, key string, event any, reqID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	return nil
}
func (p *capturePub) Close() error { return nil }

func (p *capturePub) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

type testEnv struct {
	Store  *fakeStore
	Pub    *capturePub
	Router *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvRate(t, 0)
}

func newTestEnvRate(t *testing.T, rlPerMin int) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := &fakeStore{}
	pub := &capturePub{}
	h := httpapi.NewHandler(store, pub, nil, rlPerMin)
	r := httpapi.NewRouter(h)

	return &testEnv{Store: store, Pub: pub, Router: r}
}

func (e *testEnv) do(method, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	e.Router.ServeHTTP(w, req)
	return w
}
