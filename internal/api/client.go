package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/magabrotheeeer/movie-stream-client/internal/models"
)

// TokenSource возвращает текущий bearer-токен сессии или пустую строку,
// если пользователь не аутентифицирован. Клиент добавляет токен в заголовок
// Authorization каждого запроса — аналог перехватчика запросов в SPA.
type TokenSource func() string

// Client — REST-клиент бэкенда стриминга.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	tokenSource TokenSource
}

// NewClient создаёт новый клиент с указанным адресом API и таймаутом запросов.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetTokenSource задаёт источник bearer-токена. Источником всегда выступает
// контроллер сессии: никакой другой компонент токеном не владеет.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.tokenSource = ts
}

// envelope — стандартный конверт JSON-ответа бэкенда.
type envelope struct {
	Status string          `json:"status"`
	Error  string          `json:"error,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokenSource != nil {
		if token := c.tokenSource(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

// do выполняет запрос, разбирает конверт ответа и декодирует data в out.
// Ошибки транспорта приводятся к ErrNetwork, ошибки статусов — к таксономии.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	const op = "api.do"
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrNetwork, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 400 {
			return fmt.Errorf("%s: %w", op, statusError(resp.StatusCode, ""))
		}
		return fmt.Errorf("%s: %w: %w", op, ErrNetwork, err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s: %w", op, statusError(resp.StatusCode, env.Error))
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%s: %w: %w", op, ErrNetwork, err)
		}
	}
	return nil
}

// loginResponse — тело успешного ответа на /login.
type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login обменивает учётные данные на bearer-токен.
//
// Ответ 401 здесь означает неверные учётные данные, а не протухший токен,
// поэтому ошибка переводится в ErrInvalidCredentials.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/login", body, &resp)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	return resp.AccessToken, nil
}

// Register создаёт новую учётную запись и возвращает профиль пользователя.
func (c *Client) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/register", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CurrentUser разрешает профиль пользователя по явно переданному токену.
//
// Токен передаётся параметром, а не берётся из tokenSource: метод вызывается
// контроллером сессии до того, как токен станет частью снимка сессии.
func (c *Client) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	const op = "api.CurrentUser"
	req, err := c.newRequest(ctx, http.MethodGet, "/users/me", nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrNetwork, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrNetwork, err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%s: %w", op, statusError(resp.StatusCode, env.Error))
	}
	var user models.User
	if err := json.Unmarshal(env.Data, &user); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrNetwork, err)
	}
	return &user, nil
}

// CheckAccess запрашивает свежий статус подписки текущего пользователя.
func (c *Client) CheckAccess(ctx context.Context) (*models.SubscriptionStatus, error) {
	var status models.SubscriptionStatus
	if err := c.do(ctx, http.MethodGet, "/subscriptions/check-access", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// ListPlans возвращает доступные тарифные планы.
func (c *Client) ListPlans(ctx context.Context) ([]models.Plan, error) {
	var plans []models.Plan
	if err := c.do(ctx, http.MethodGet, "/subscriptions/plans", nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// ListParams — параметры пагинации и фильтрации каталога фильмов.
type ListParams struct {
	Limit  int
	Offset int
	Search string
	Genre  string
}

func (p ListParams) query() string {
	q := url.Values{}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		q.Set("offset", strconv.Itoa(p.Offset))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Genre != "" {
		q.Set("genre", p.Genre)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// ListMovies возвращает страницу каталога фильмов.
func (c *Client) ListMovies(ctx context.Context, p ListParams) ([]models.Movie, error) {
	var movies []models.Movie
	if err := c.do(ctx, http.MethodGet, "/movies"+p.query(), nil, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// GetMovie возвращает фильм по идентификатору.
func (c *Client) GetMovie(ctx context.Context, id int) (*models.Movie, error) {
	var movie models.Movie
	if err := c.do(ctx, http.MethodGet, "/movies/"+strconv.Itoa(id), nil, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// GetTranscodingStatus возвращает статус фоновой обработки видео фильма.
func (c *Client) GetTranscodingStatus(ctx context.Context, movieID int) (*models.TranscodingStatus, error) {
	var status models.TranscodingStatus
	path := "/movies/" + strconv.Itoa(movieID) + "/transcoding-status"
	if err := c.do(ctx, http.MethodGet, path, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// CreatePayment создаёт платёж за указанный тарифный план.
func (c *Client) CreatePayment(ctx context.Context, planID int) (*models.Payment, error) {
	body := map[string]int{"plan_id": planID}
	var payment models.Payment
	if err := c.do(ctx, http.MethodPost, "/payments", body, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListPayments возвращает историю платежей текущего пользователя.
func (c *Client) ListPayments(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	if err := c.do(ctx, http.MethodGet, "/payments", nil, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// CreateMovie добавляет фильм в каталог. Требует прав администратора.
func (c *Client) CreateMovie(ctx context.Context, movie models.Movie) (*models.Movie, error) {
	var created models.Movie
	if err := c.do(ctx, http.MethodPost, "/movies", movie, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateMovie обновляет фильм каталога. Требует прав администратора.
func (c *Client) UpdateMovie(ctx context.Context, id int, movie models.Movie) (*models.Movie, error) {
	var updated models.Movie
	if err := c.do(ctx, http.MethodPut, "/movies/"+strconv.Itoa(id), movie, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteMovie удаляет фильм из каталога. Требует прав администратора.
func (c *Client) DeleteMovie(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/movies/"+strconv.Itoa(id), nil, nil)
}

// UserUpdate — частичное обновление учётной записи администратором.
type UserUpdate struct {
	IsActive    *bool `json:"is_active,omitempty"`
	IsSuperuser *bool `json:"is_superuser,omitempty"`
}

// ListUsers возвращает страницу списка пользователей. Требует прав администратора.
func (c *Client) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	path := "/users"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var users []models.User
	if err := c.do(ctx, http.MethodGet, path, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser изменяет флаги учётной записи. Требует прав администратора.
func (c *Client) UpdateUser(ctx context.Context, id int, upd UserUpdate) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPut, "/users/"+strconv.Itoa(id), upd, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser удаляет учётную запись. Требует прав администратора.
func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/users/"+strconv.Itoa(id), nil, nil)
}

// ListSubscriptions возвращает все подписки. Требует прав администратора.
func (c *Client) ListSubscriptions(ctx context.Context) ([]models.Subscription, error) {
	var subs []models.Subscription
	if err := c.do(ctx, http.MethodGet, "/subscriptions", nil, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}
