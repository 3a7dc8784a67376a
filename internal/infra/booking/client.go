package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/NastyaGoryachaya/termin-notifier/internal/config"
)

const (
	dateLayout     = "02.01.2006"
	datesField     = "availability-dates"
	nullToken      = "null"
	errBodyLimit   = 512
	defaultTimeout = 10 * time.Second
)

type Client struct {
	cfg        config.BookingConfig
	httpClient *http.Client
}

// AvailabilityQuery: параметры запроса свободных дат для одной локации
type AvailabilityQuery struct {
	From        time.Time
	Until       time.Time
	LocationID  int
	ServiceCode int
	CacheBuster int64 // unix ms
}

// AvailabilityPayload: сырые элементы availability-dates, разбор делает fetch
type AvailabilityPayload struct {
	Dates []json.RawMessage
}

type sessionRequest struct {
	Mandator string `json:"mandator"`
	Online   bool   `json:"online"`
}

type sessionResponse struct {
	ID string `json:"id"`
}

// NewClient - создаёт клиента сервиса записи.
func NewClient(cfg config.BookingConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	// cookies сервера общие для сессии и запросов дат; с nil-опциями ошибки нет
	jar, _ := cookiejar.New(nil)
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
	}
}

// CreateSession: POST {session_url}/{number}; возвращает id новой сессии.
// Пустой id без ошибки означает, что поле в ответе отсутствует.
func (c *Client) CreateSession(ctx context.Context, number int, prevToken string) (string, error) {
	u, err := url.JoinPath(c.cfg.SessionURL, strconv.Itoa(number))
	if err != nil {
		return "", fmt.Errorf("invalid session URL: %w", err)
	}

	body, err := json.Marshal(sessionRequest{Mandator: c.cfg.Mandator, Online: true})
	if err != nil {
		return "", fmt.Errorf("encoding session request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	if prevToken == "" {
		prevToken = nullToken
	}
	req.Header.Set("Authorization", prevToken)
	req.Header.Set("Content-Type", "application/json")
	c.setCommonHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("session request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", statusError(resp)
	}

	var data sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("%w: decoding session response: %v", ErrMalformedResponse, err)
	}
	return strings.TrimSpace(data.ID), nil
}

// FetchAvailability: GET свободных дат для одной локации с токеном в Authorization
func (c *Client) FetchAvailability(ctx context.Context, token string, q AvailabilityQuery) (AvailabilityPayload, error) {
	u, err := url.Parse(c.cfg.AvailabilityURL)
	if err != nil {
		return AvailabilityPayload{}, fmt.Errorf("invalid availability URL: %w", err)
	}

	params := u.Query()
	params.Set("from", q.From.Format(dateLayout))
	params.Set("until", q.Until.Format(dateLayout))
	params.Set("location", strconv.Itoa(q.LocationID))
	params.Set("services", strconv.Itoa(q.ServiceCode))
	params.Set("_", strconv.FormatInt(q.CacheBuster, 10))
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return AvailabilityPayload{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", token)
	c.setCommonHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return AvailabilityPayload{}, fmt.Errorf("availability request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, errBodyLimit))
		return AvailabilityPayload{}, ErrUnauthorized
	case resp.StatusCode != http.StatusOK:
		return AvailabilityPayload{}, statusError(resp)
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return AvailabilityPayload{}, fmt.Errorf("%w: decoding availability: %v", ErrMalformedResponse, err)
	}
	field, ok := raw[datesField]
	if !ok {
		return AvailabilityPayload{}, fmt.Errorf("%w: missing %q", ErrMalformedResponse, datesField)
	}

	var dates []json.RawMessage
	if err := json.Unmarshal(field, &dates); err != nil {
		return AvailabilityPayload{}, fmt.Errorf("%w: %q is not a list: %v", ErrMalformedResponse, datesField, err)
	}
	return AvailabilityPayload{Dates: dates}, nil
}

func (c *Client) setCommonHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	ua := c.cfg.UserAgent
	if ua == "" {
		ua = "Mozilla/5.0 (compatible; BuergerbueroMonitor/1.0)"
	}
	req.Header.Set("User-Agent", ua)
}

func statusError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, errBodyLimit))
	return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
}
