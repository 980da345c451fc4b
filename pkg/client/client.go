// Package client — HTTP-клиент сервиса объявлений.
//
// Клиент инкапсулирует REST API сервиса (announcements/categories) и
// постраничную навигацию поверх continuation-токенов (см. Pager).
// Ошибки API транслируются в сентинельные ошибки пакета, детали
// доступны через errors.As(&APIError{}).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Сентинельные ошибки клиента.
var (
	// ErrInvalidArgument — сервер отклонил параметры запроса (HTTP 400).
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound — ресурс не найден (HTTP 404).
	ErrNotFound = errors.New("not found")
	// ErrConflict — конфликт идентификаторов (HTTP 409).
	ErrConflict = errors.New("conflict")
	// ErrUnavailable — сервис временно недоступен (HTTP 503).
	ErrUnavailable = errors.New("service unavailable")
	// ErrInternal — внутренняя ошибка сервера (HTTP 5xx).
	ErrInternal = errors.New("internal error")
)

// APIError — структурированная ошибка, возвращённая сервером.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	RequestID  string `json:"request_id,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (http %d, code %s): %s", e.StatusCode, e.Code, e.Message)
}

// Unwrap сопоставляет ошибку API с сентинелами пакета,
// чтобы вызывающий код мог использовать errors.Is.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusBadRequest:
		return ErrInvalidArgument
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusServiceUnavailable:
		return ErrUnavailable
	default:
		return ErrInternal
	}
}

// Announcement — объявление в представлении API.
type Announcement struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	Categories      []string  `json:"categories"`
	Status          string    `json:"status"`
	PublicationDate time.Time `json:"publication_date"`
	LastUpdate      time.Time `json:"last_update"`
}

// Category — категория в представлении API.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

// AnnouncementList — одна страница листинга.
type AnnouncementList struct {
	Items         []Announcement `json:"items"`
	NextPageToken string         `json:"next_page_token,omitempty"`
}

// ListParams — параметры запроса листинга.
type ListParams struct {
	Limit      int32
	PageToken  string
	Categories []string
	Status     string
}

// CreateAnnouncementParams — тело запроса на создание объявления.
type CreateAnnouncementParams struct {
	Title           string     `json:"title"`
	Content         string     `json:"content"`
	Categories      []string   `json:"categories"`
	Status          string     `json:"status,omitempty"`
	PublicationDate *time.Time `json:"publication_date,omitempty"`
}

// UpdateAnnouncementParams — частичное обновление: nil-поля не трогаются.
type UpdateAnnouncementParams struct {
	Title      *string  `json:"title,omitempty"`
	Content    *string  `json:"content,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Status     *string  `json:"status,omitempty"`
}

// CreateCategoryParams — тело запроса на создание категории.
type CreateCategoryParams struct {
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
}

// Client — клиент REST API сервиса объявлений.
// Безопасен для конкурентного использования.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option настраивает клиент при создании.
type Option func(*Client)

// WithHTTPClient подменяет транспорт (таймауты, прокси и т.п.).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New создаёт клиент для сервиса по базовому URL (например, "http://localhost:50095").
func New(baseURL string, opts ...Option) (*Client, error) {
	const op = "client/New"

	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		return nil, fmt.Errorf("%s: empty base url", op)
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("%s: parse base url: %w", op, err)
	}

	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// ListAnnouncements возвращает одну страницу листинга.
//
// Семантика страниц: limit ограничивает число просмотренных записей
// хранилища ДО фильтрации, поэтому страница может быть короче limit
// (вплоть до пустой) при непустом NextPageToken — навигацию следует
// продолжать, пока токен присутствует.
func (c *Client) ListAnnouncements(ctx context.Context, params ListParams) (*AnnouncementList, error) {
	const op = "client/ListAnnouncements"

	q := url.Values{}
	if params.Limit > 0 {
		q.Set("limit", strconv.FormatInt(int64(params.Limit), 10))
	}
	if params.PageToken != "" {
		q.Set("page_token", params.PageToken)
	}
	for _, cat := range params.Categories {
		q.Add("categories", cat)
	}
	if params.Status != "" {
		q.Set("status", params.Status)
	}

	var out AnnouncementList
	if err := c.do(ctx, http.MethodGet, "/announcements", q, nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// AnnouncementByID возвращает объявление по ID.
// Отсутствующее объявление — не ошибка: возвращается (nil, nil).
func (c *Client) AnnouncementByID(ctx context.Context, id string) (*Announcement, error) {
	const op = "client/AnnouncementByID"

	if id == "" {
		return nil, fmt.Errorf("%s: empty id: %w", op, ErrInvalidArgument)
	}

	var out *Announcement
	if err := c.do(ctx, http.MethodGet, "/announcements/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// CreateAnnouncement создаёт объявление и возвращает его серверное представление.
func (c *Client) CreateAnnouncement(ctx context.Context, params CreateAnnouncementParams) (*Announcement, error) {
	const op = "client/CreateAnnouncement"

	var out Announcement
	if err := c.do(ctx, http.MethodPost, "/announcements", nil, params, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// UpdateAnnouncement частично обновляет объявление по ID.
func (c *Client) UpdateAnnouncement(ctx context.Context, id string, params UpdateAnnouncementParams) (*Announcement, error) {
	const op = "client/UpdateAnnouncement"

	if id == "" {
		return nil, fmt.Errorf("%s: empty id: %w", op, ErrInvalidArgument)
	}

	var out Announcement
	if err := c.do(ctx, http.MethodPatch, "/announcements/"+url.PathEscape(id), nil, params, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// DeleteAnnouncement удаляет объявление и возвращает снимок удалённой записи.
// Если объявления не было — возвращается (nil, nil).
func (c *Client) DeleteAnnouncement(ctx context.Context, id string) (*Announcement, error) {
	const op = "client/DeleteAnnouncement"

	if id == "" {
		return nil, fmt.Errorf("%s: empty id: %w", op, ErrInvalidArgument)
	}

	var out *Announcement
	if err := c.do(ctx, http.MethodDelete, "/announcements/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// ListCategories возвращает все категории.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	const op = "client/ListCategories"

	var out []Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// CreateCategory создаёт категорию.
func (c *Client) CreateCategory(ctx context.Context, params CreateCategoryParams) (*Category, error) {
	const op = "client/CreateCategory"

	var out Category
	if err := c.do(ctx, http.MethodPost, "/categories", nil, params, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// do выполняет запрос и декодирует ответ в out (если out != nil).
// Не-2xx ответы транслируются в *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// decodeAPIError читает тело ошибки формата {"error": {...}}.
// Нечитаемое тело не скрывает сам факт ошибки.
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Code:       "internal",
		Message:    resp.Status,
	}

	var wire struct {
		Error APIError `json:"error"`
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err == nil && json.Unmarshal(raw, &wire) == nil && wire.Error.Code != "" {
		apiErr.Code = wire.Error.Code
		apiErr.Message = wire.Error.Message
		apiErr.RequestID = wire.Error.RequestID
	}

	return apiErr
}
