package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/negatiview/negatiview/internal/client/api"
	"github.com/negatiview/negatiview/internal/client/storage"
	pkgapi "github.com/negatiview/negatiview/pkg/api"
)

// fakeIO implements iocli.IO with scripted inputs and captured output
type fakeIO struct {
	inputs    []string // очередь ответов на ReadInput
	passwords []string // очередь ответов на ReadPassword
	output    strings.Builder
}

func (f *fakeIO) Println(a ...any) {
	f.output.WriteString(fmt.Sprintln(a...))
}

func (f *fakeIO) Printf(format string, a ...any) {
	f.output.WriteString(fmt.Sprintf(format, a...))
}

func (f *fakeIO) ReadInput(prompt string) (string, error) {
	if len(f.inputs) == 0 {
		return "", fmt.Errorf("no scripted input for prompt %q", prompt)
	}
	input := f.inputs[0]
	f.inputs = f.inputs[1:]
	return input, nil
}

func (f *fakeIO) ReadPassword(prompt string) (string, error) {
	if len(f.passwords) == 0 {
		return "", fmt.Errorf("no scripted password for prompt %q", prompt)
	}
	password := f.passwords[0]
	f.passwords = f.passwords[1:]
	return password, nil
}

// fakeAuthStorage is an in-memory AuthStorage
type fakeAuthStorage struct {
	auth *storage.AuthData
}

func (f *fakeAuthStorage) SaveAuth(ctx context.Context, auth *storage.AuthData) error {
	f.auth = auth
	return nil
}

func (f *fakeAuthStorage) GetAuth(ctx context.Context) (*storage.AuthData, error) {
	if f.auth == nil {
		return nil, storage.ErrAuthNotFound
	}
	return f.auth, nil
}

func (f *fakeAuthStorage) DeleteAuth(ctx context.Context) error {
	if f.auth == nil {
		return storage.ErrAuthNotFound
	}
	f.auth = nil
	return nil
}

func (f *fakeAuthStorage) IsAuthenticated(ctx context.Context) (bool, error) {
	if f.auth == nil {
		return false, nil
	}
	return time.Now().Unix() < f.auth.ExpiresAt, nil
}

// newAuthServer поднимает заглушку сервера с login/logout/me маршрутами
func newAuthServer(t *testing.T) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.Method + " " + r.URL.Path {
		case "POST /api/login":
			var req pkgapi.Wrapper[pkgapi.LoginRequest]
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			if req.Data.Password != "secret123" {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(pkgapi.ErrorResponse{
					Status:  "fail",
					Message: "Login failed: Invalid credentials",
				})
				return
			}
			http.SetCookie(w, &http.Cookie{Name: "access_token", Value: "access-jwt", MaxAge: 900})
			http.SetCookie(w, &http.Cookie{Name: "refresh_token", Value: "refresh-jwt", MaxAge: 3600})
			_ = json.NewEncoder(w).Encode(pkgapi.AuthResponse{
				Status:  "success",
				Message: "Login successful",
				Data: pkgapi.UserResponse{
					Email:       req.Data.Email,
					DisplayName: "Ann",
					AccessToken: "access-jwt",
				},
			})
		case "POST /api/logout":
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "success"})
		case "GET /api/me":
			_ = json.NewEncoder(w).Encode(pkgapi.AuthResponse{
				Status: "success",
				Data:   pkgapi.UserResponse{Email: "a@b.com", DisplayName: "Ann", Biography: "writes things"},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestRunLogin_SavesSession(t *testing.T) {
	server := newAuthServer(t)
	defer server.Close()

	io := &fakeIO{inputs: []string{"a@b.com"}, passwords: []string{"secret123"}}
	store := &fakeAuthStorage{}
	cli := New(io, api.NewClient(server.URL), store)

	err := cli.runLogin(context.Background())
	require.NoError(t, err)

	require.NotNil(t, store.auth)
	assert.Equal(t, "a@b.com", store.auth.Email)
	assert.Equal(t, "access-jwt", store.auth.AccessToken)
	assert.Equal(t, "refresh-jwt", store.auth.RefreshToken)
	assert.Greater(t, store.auth.ExpiresAt, time.Now().Unix())
	assert.Contains(t, io.output.String(), "Login successful")
}

func TestRunLogin_InvalidCredentials(t *testing.T) {
	server := newAuthServer(t)
	defer server.Close()

	io := &fakeIO{inputs: []string{"a@b.com"}, passwords: []string{"wrong"}}
	store := &fakeAuthStorage{}
	cli := New(io, api.NewClient(server.URL), store)

	err := cli.runLogin(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid credentials")
	assert.Nil(t, store.auth)
}

func TestRunLogout_RevokesAndClears(t *testing.T) {
	server := newAuthServer(t)
	defer server.Close()

	io := &fakeIO{}
	store := &fakeAuthStorage{auth: &storage.AuthData{
		Email:        "a@b.com",
		AccessToken:  "access-jwt",
		RefreshToken: "refresh-jwt",
		ExpiresAt:    time.Now().Add(time.Hour).Unix(),
	}}
	cli := New(io, api.NewClient(server.URL), store)

	err := cli.runLogout(context.Background())
	require.NoError(t, err)
	assert.Nil(t, store.auth)
	assert.Contains(t, io.output.String(), "Logged out")
}

func TestRunLogout_WithoutSessionIsNoop(t *testing.T) {
	io := &fakeIO{}
	store := &fakeAuthStorage{}
	cli := New(io, api.NewClient("http://127.0.0.1:1"), store)

	// Сервер недоступен, но и обращаться к нему незачем
	err := cli.runLogout(context.Background())
	require.NoError(t, err)
	assert.Contains(t, io.output.String(), "nothing to do")
}

func TestRunStatus(t *testing.T) {
	io := &fakeIO{}
	store := &fakeAuthStorage{}
	cli := New(io, nil, store)

	require.NoError(t, cli.runStatus(context.Background()))
	assert.Contains(t, io.output.String(), "Not authenticated")

	store.auth = &storage.AuthData{
		Email:       "a@b.com",
		DisplayName: "Ann",
		AccessToken: "access-jwt",
		ExpiresAt:   time.Now().Add(15 * time.Minute).Unix(),
	}
	io.output.Reset()

	require.NoError(t, cli.runStatus(context.Background()))
	out := io.output.String()
	assert.Contains(t, out, "Status: Authenticated")
	assert.Contains(t, out, "a@b.com")
}

func TestRunMe(t *testing.T) {
	server := newAuthServer(t)
	defer server.Close()

	io := &fakeIO{}
	store := &fakeAuthStorage{auth: &storage.AuthData{
		Email:       "a@b.com",
		AccessToken: "access-jwt",
		ExpiresAt:   time.Now().Add(time.Hour).Unix(),
	}}
	cli := New(io, api.NewClient(server.URL), store)

	err := cli.runMe(context.Background())
	require.NoError(t, err)

	out := io.output.String()
	assert.Contains(t, out, "a@b.com")
	assert.Contains(t, out, "Ann")
	assert.Contains(t, out, "writes things")
}

func TestRunMe_NotAuthenticated(t *testing.T) {
	io := &fakeIO{}
	cli := New(io, nil, &fakeAuthStorage{})

	err := cli.runMe(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not authenticated")
}

func TestReadWithDefault(t *testing.T) {
	io := &fakeIO{inputs: []string{"", "new value"}}
	cli := New(io, nil, nil)

	// Пустой ввод оставляет текущее значение
	got, err := cli.readWithDefault("Email", "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", got)

	got, err = cli.readWithDefault("Display name", "Ann")
	require.NoError(t, err)
	assert.Equal(t, "new value", got)
}
