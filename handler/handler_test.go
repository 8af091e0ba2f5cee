package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/mstgnz/checkout/infra/config"
	"github.com/mstgnz/checkout/infra/response"
	"github.com/stretchr/testify/require"
)

type memoryProjectStore struct {
	mu       sync.Mutex
	projects map[string]config.Project
	err      error
}

func newMemoryProjectStore(projects ...config.Project) *memoryProjectStore {
	s := &memoryProjectStore{projects: make(map[string]config.Project)}
	for _, p := range projects {
		s.projects[p.Name] = p
	}
	return s
}

func (s *memoryProjectStore) GetProject(ctx context.Context, name string) (*config.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.projects[name]
	if !ok {
		return nil, config.ErrProjectNotFound
	}
	return &p, nil
}

func (s *memoryProjectStore) SaveProject(ctx context.Context, p config.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.projects[p.Name] = p
	return nil
}

func (s *memoryProjectStore) ListProjects(ctx context.Context) ([]config.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make([]config.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memoryProjectStore) DeleteProject(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[name]; !ok {
		return config.ErrProjectNotFound
	}
	delete(s.projects, name)
	return nil
}

var shopProject = config.Project{Name: "shop", ProjectID: 123, Password: "secret"}

func newRequest(method, target, body string, params map[string]string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}
