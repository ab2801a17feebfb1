package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/negatiview/negatiview/pkg/api"
)

// Cookie names issued by the server
const (
	accessTokenCookie  = "access_token"
	refreshTokenCookie = "refresh_token"
)

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовок Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// Session holds the result of a successful signup or login: the profile
// from the response body plus both session tokens extracted from the
// server's Set-Cookie headers.
type Session struct {
	User         api.UserResponse
	AccessToken  string
	RefreshToken string
	ExpiresAt    int64 // unix seconds, derived from the access cookie Max-Age
}

// SignUp регистрирует нового пользователя и открывает сессию
func (c *Client) SignUp(ctx context.Context, req api.SignUpRequest) (*Session, error) {
	var resp api.AuthResponse
	httpResp, err := c.doRequest(ctx, "POST", "/api/users", "", nil, api.Wrap(req), &resp)
	if err != nil {
		return nil, fmt.Errorf("signup request failed: %w", err)
	}
	return sessionFromResponse(httpResp, resp)
}

// Login выполняет аутентификацию пользователя
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*Session, error) {
	var resp api.AuthResponse
	httpResp, err := c.doRequest(ctx, "POST", "/api/login", "", nil, api.Wrap(req), &resp)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return sessionFromResponse(httpResp, resp)
}

// Me возвращает профиль текущего пользователя
func (c *Client) Me(ctx context.Context, accessToken string) (*api.UserResponse, error) {
	var resp api.AuthResponse
	_, err := c.doRequest(ctx, "GET", "/api/me", accessToken, nil, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("me request failed: %w", err)
	}
	return &resp.Data, nil
}

// UpdateMe обновляет профиль текущего пользователя
func (c *Client) UpdateMe(ctx context.Context, accessToken string, req api.UserUpdateRequest) (*api.UserResponse, error) {
	var resp api.AuthResponse
	_, err := c.doRequest(ctx, "PUT", "/api/me", accessToken, nil, api.Wrap(req), &resp)
	if err != nil {
		return nil, fmt.Errorf("update request failed: %w", err)
	}
	return &resp.Data, nil
}

// Logout отзывает сессию на сервере.
// Оба токена передаются в cookies, чтобы сервер отозвал и access,
// и refresh записи. Logout на сервере идемпотентен.
func (c *Client) Logout(ctx context.Context, accessToken, refreshToken string) error {
	cookies := []*http.Cookie{}
	if accessToken != "" {
		cookies = append(cookies, &http.Cookie{Name: accessTokenCookie, Value: accessToken})
	}
	if refreshToken != "" {
		cookies = append(cookies, &http.Cookie{Name: refreshTokenCookie, Value: refreshToken})
	}

	_, err := c.doRequest(ctx, "POST", "/api/logout", "", cookies, nil, nil)
	if err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	return nil
}

// sessionFromResponse собирает Session из тела ответа и Set-Cookie заголовков
func sessionFromResponse(httpResp *http.Response, resp api.AuthResponse) (*Session, error) {
	session := &Session{User: resp.Data}

	for _, cookie := range httpResp.Cookies() {
		switch cookie.Name {
		case accessTokenCookie:
			session.AccessToken = cookie.Value
			if cookie.MaxAge > 0 {
				session.ExpiresAt = time.Now().Unix() + int64(cookie.MaxAge)
			}
		case refreshTokenCookie:
			session.RefreshToken = cookie.Value
		}
	}

	if session.AccessToken == "" {
		// Страховка: тело ответа тоже несет access token
		session.AccessToken = resp.Data.AccessToken
	}
	if session.AccessToken == "" {
		return nil, fmt.Errorf("server response carried no access token")
	}

	return session, nil
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path, accessToken string, cookies []*http.Cookie, body, result any) (*http.Response, error) {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			return nil, fmt.Errorf("server error (%d): %s", resp.StatusCode, errResp.Message)
		}
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return resp, nil
}
