package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/forecastflow/forecastflow/internal/config"
	"github.com/forecastflow/forecastflow/internal/logger"
	"github.com/forecastflow/forecastflow/internal/utils"
	"github.com/forecastflow/forecastflow/models"
	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/singleflight"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu               sync.RWMutex
	accessToken      string
	refreshToken     string
	onSessionExpired func(context.Context)

	// refreshGroup collapses concurrent refresh attempts into one exchange.
	refreshGroup singleflight.Group

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and configures the underlying HTTP client with the
// resolved base URL and request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetTokens implements [ServerAdapter].
func (h *httpServerAdapter) SetTokens(accessToken, refreshToken string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.accessToken = strings.TrimSpace(accessToken)
	h.refreshToken = strings.TrimSpace(refreshToken)
}

// Tokens implements [ServerAdapter].
func (h *httpServerAdapter) Tokens() (string, string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.accessToken, h.refreshToken
}

// OnSessionExpired implements [SessionExpiryNotifier].
func (h *httpServerAdapter) OnSessionExpired(fn func(context.Context)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onSessionExpired = fn
}

func (h *httpServerAdapter) notifySessionExpired(ctx context.Context) {
	h.mu.RLock()
	fn := h.onSessionExpired
	h.mu.RUnlock()

	if fn != nil {
		fn(ctx)
	}
}

// Register implements [ServerAdapter]. It POSTs the credentials to
// POST /api/auth/register. Registration stores no tokens; the account must
// log in afterwards.
func (h *httpServerAdapter) Register(ctx context.Context, req models.RegisterRequest) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/auth/register")
	if err != nil {
		return fmt.Errorf("register request: %w", err)
	}

	return mapHTTPError(resp)
}

// Login implements [ServerAdapter]. It POSTs the credentials to
// POST /api/auth/login and on success stores the returned token pair.
func (h *httpServerAdapter) Login(ctx context.Context, req models.LoginRequest) (models.TokenResponse, error) {
	var tokens models.TokenResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&tokens).
		Post("/api/auth/login")
	if err != nil {
		return models.TokenResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TokenResponse{}, err
	}

	h.SetTokens(tokens.Token, tokens.RefreshToken)
	return tokens, nil
}

// Refresh implements [ServerAdapter]. Concurrent callers share a single
// in-flight exchange through the singleflight group; every caller observes
// the same result.
func (h *httpServerAdapter) Refresh(ctx context.Context) (models.TokenResponse, error) {
	result, err, _ := h.refreshGroup.Do("refresh", func() (any, error) {
		return h.doRefresh(ctx)
	})
	if err != nil {
		return models.TokenResponse{}, err
	}

	return result.(models.TokenResponse), nil
}

func (h *httpServerAdapter) doRefresh(ctx context.Context) (models.TokenResponse, error) {
	_, refreshToken := h.Tokens()
	if refreshToken == "" {
		return models.TokenResponse{}, ErrNoRefreshToken
	}

	var tokens models.TokenResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.RefreshRequest{RefreshToken: refreshToken}).
		SetResult(&tokens).
		Post("/api/auth/refresh")
	if err != nil {
		return models.TokenResponse{}, fmt.Errorf("refresh request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TokenResponse{}, err
	}

	h.SetTokens(tokens.Token, tokens.RefreshToken)
	h.logger.Debug().Msg("session tokens refreshed")
	return tokens, nil
}

// Logout implements [ServerAdapter]. The request is best-effort; a transport
// or server failure is returned but the caller is expected to discard the
// session either way.
func (h *httpServerAdapter) Logout(ctx context.Context) error {
	resp, err := h.doAuthed(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.Post("/api/auth/logout")
	})
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}

	return mapHTTPError(resp)
}

// CreateTask implements [ServerAdapter].
func (h *httpServerAdapter) CreateTask(ctx context.Context, taskReq models.TaskRequest) (models.Task, error) {
	resp, err := h.doAuthed(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.
			SetHeader("Content-Type", "application/json").
			SetBody(taskReq).
			Post("/api/tasks")
	})
	if err != nil {
		return models.Task{}, fmt.Errorf("create task request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Task{}, err
	}

	return decodeTask(resp.Body())
}

// GetTask implements [ServerAdapter].
func (h *httpServerAdapter) GetTask(ctx context.Context, taskID int64) (models.Task, error) {
	resp, err := h.doAuthed(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.Get("/api/tasks/" + strconv.FormatInt(taskID, 10))
	})
	if err != nil {
		return models.Task{}, fmt.Errorf("get task request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Task{}, err
	}

	return decodeTask(resp.Body())
}

// ListTasks implements [ServerAdapter].
func (h *httpServerAdapter) ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	params := map[string]string{}
	if filter.Completed != nil {
		params["completed"] = strconv.FormatBool(*filter.Completed)
	}
	if filter.Category != nil {
		params["category"] = *filter.Category
	}

	resp, err := h.doAuthed(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.SetQueryParams(params).Get("/api/tasks")
	})
	if err != nil {
		return nil, fmt.Errorf("list tasks request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var tasks []models.Task
	if err = json.Unmarshal(resp.Body(), &tasks); err != nil {
		return nil, fmt.Errorf("decode task list response: %w", err)
	}

	return tasks, nil
}

// UpdateTask implements [ServerAdapter].
func (h *httpServerAdapter) UpdateTask(ctx context.Context, taskID int64, taskReq models.TaskRequest) (models.Task, error) {
	resp, err := h.doAuthed(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.
			SetHeader("Content-Type", "application/json").
			SetBody(taskReq).
			Put("/api/tasks/" + strconv.FormatInt(taskID, 10))
	})
	if err != nil {
		return models.Task{}, fmt.Errorf("update task request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Task{}, err
	}

	return decodeTask(resp.Body())
}

// DeleteTask implements [ServerAdapter].
func (h *httpServerAdapter) DeleteTask(ctx context.Context, taskID int64) error {
	resp, err := h.doAuthed(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.Delete("/api/tasks/" + strconv.FormatInt(taskID, 10))
	})
	if err != nil {
		return fmt.Errorf("delete task request: %w", err)
	}

	return mapHTTPError(resp)
}

// UpdateUser implements [ServerAdapter].
func (h *httpServerAdapter) UpdateUser(ctx context.Context, userID int64, userReq models.UserUpdateRequest) error {
	resp, err := h.doAuthed(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.
			SetHeader("Content-Type", "application/json").
			SetBody(userReq).
			Put("/api/users/" + strconv.FormatInt(userID, 10))
	})
	if err != nil {
		return fmt.Errorf("update user request: %w", err)
	}

	return mapHTTPError(resp)
}

// doAuthed executes an authenticated request built by send. When the server
// answers 401 the adapter refreshes the session (at most one in-flight
// exchange across all goroutines) and replays the request once with the new
// access token. A second 401 is returned to the caller. A failed refresh is
// reported through the [SessionExpiryNotifier] callback before returning.
func (h *httpServerAdapter) doAuthed(ctx context.Context, send func(*resty.Request) (*resty.Response, error)) (*resty.Response, error) {
	resp, err := send(h.authedRequest(ctx))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusUnauthorized {
		return resp, nil
	}

	if _, err = h.Refresh(ctx); err != nil {
		// The stored refresh token buys no new session. Report the expiry so
		// the session owner clears its state, then surface the original 401
		// so the caller can distinguish it from a transport problem.
		h.logger.Err(err).Msg("session refresh after 401 failed")
		h.notifySessionExpired(ctx)
		return resp, nil
	}

	return send(h.authedRequest(ctx))
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if accessToken, _ := h.Tokens(); accessToken != "" {
		req.SetHeader("Authorization", "Bearer "+accessToken)
	}
	return req
}

func decodeTask(body []byte) (models.Task, error) {
	var task models.Task
	if err := json.Unmarshal(body, &task); err != nil {
		return models.Task{}, fmt.Errorf("decode task response: %w", err)
	}
	return task, nil
}
