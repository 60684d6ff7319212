package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/zentheriun/bloglist/internal/authservice"
	"github.com/zentheriun/bloglist/internal/blogservice"
	"github.com/zentheriun/bloglist/internal/common"
	"github.com/zentheriun/bloglist/internal/userservice"
)

// stubProducer swallows events so handler tests do not need a live broker.
type stubProducer struct{}

func (stubProducer) Publish(ctx context.Context, msg []byte, key common.BindingKey, exchange common.Exchange) error {
	return nil
}

func newTestApplication(t *testing.T) *application {
	db := common.TestDB("file://../migrations", t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	cfg := &Config{
		Environment: "test",
		Version:     "1.0.0",
		JWTSecret:   "test-secret",
		JWTExpiry:   time.Hour,
	}

	userService := userservice.NewUserService(db, stubProducer{})

	return &application{
		config:      cfg,
		logger:      logger,
		userService: userService,
		authService: authservice.NewAuthService(userService, cfg.JWTSecret, cfg.JWTExpiry),
		blogService: blogservice.NewBlogService(db, cache),
	}
}

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func readResponse(t *testing.T, res *http.Response) (int, envelope) {
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	var env envelope
	if len(responseBody) > 0 {
		err = json.Unmarshal(responseBody, &env)
		if err != nil {
			t.Fatal(err)
		}
	}

	return res.StatusCode, env
}

func (ts *testServer) request(t *testing.T, method, path string, data any, token string) (int, envelope) {
	var body io.Reader
	if data != nil {
		jsonPayload, err := json.Marshal(data)
		if err != nil {
			t.Fatal(err)
		}
		body = bytes.NewReader(jsonPayload)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) get(t *testing.T, path string) (int, envelope) {
	return ts.request(t, http.MethodGet, path, nil, "")
}

func (ts *testServer) post(t *testing.T, path string, data any, token string) (int, envelope) {
	return ts.request(t, http.MethodPost, path, data, token)
}

func (ts *testServer) put(t *testing.T, path string, data any, token string) (int, envelope) {
	return ts.request(t, http.MethodPut, path, data, token)
}

func (ts *testServer) delete(t *testing.T, path string, token string) (int, envelope) {
	return ts.request(t, http.MethodDelete, path, nil, token)
}

// registerAndLogin creates a user through the API and returns a session token.
func registerAndLogin(t *testing.T, ts *testServer, username string) string {
	status, _ := ts.post(t, "/v1/users/register", map[string]string{
		"username": username,
		"name":     "Test User",
		"email":    username + "@example.com",
		"password": "Sekret!23",
	}, "")
	if status != http.StatusCreated {
		t.Fatalf("could not register user %s: status %d", username, status)
	}

	status, env := ts.post(t, "/v1/users/login", map[string]string{
		"username": username,
		"password": "Sekret!23",
	}, "")
	if status != http.StatusOK {
		t.Fatalf("could not log in user %s: status %d", username, status)
	}

	session := env["session"].(map[string]any)
	return session["token"].(string)
}
