package llama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/HaPhanBaoMinh/feeschart/internal/domain"
)

const (
	DefaultBaseURL  = "https://api.llama.fi"
	DefaultProtocol = "lyra"
	DefaultDataType = "dailyFees"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrMissingSeries    = errors.New("response has no totalDataChart")
)

// StatusError is returned for any response that is not exactly 200 OK.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

type Config struct {
	BaseURL  string
	Protocol string
	DataType string
	Timeout  time.Duration // zero means no timeout
	// Debug dumps every request and response through Logger at debug level.
	Debug  bool
	Logger resty.Logger
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL:  DefaultBaseURL,
		Protocol: DefaultProtocol,
		DataType: DefaultDataType,
	}
}

// Repo reads a protocol fee summary from the DefiLlama API.
type Repo struct {
	client *resty.Client
	cfg    Config
}

func New(cfg *Config) *Repo {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	c := *cfg
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	// no retries: a failed fetch is final
	client := resty.New().
		SetBaseURL(c.BaseURL).
		SetTimeout(c.Timeout).
		SetRetryCount(0)
	if c.Logger != nil {
		client.SetLogger(c.Logger)
	}
	if c.Debug {
		client.SetDebug(true)
	}
	return &Repo{client: client, cfg: c}
}

func (r *Repo) path() string {
	return "/summary/fees/" + url.PathEscape(r.cfg.Protocol)
}

func (r *Repo) Endpoint() string {
	q := url.Values{}
	q.Set("dataType", r.cfg.DataType)
	return r.cfg.BaseURL + r.path() + "?" + q.Encode()
}

type summaryResponse struct {
	TotalDataChart *[]domain.RawSample `json:"totalDataChart"`
}

func (r *Repo) FetchSeries(ctx context.Context) ([]domain.RawSample, error) {
	resp, err := r.client.R().
		SetContext(ctx).
		SetQueryParam("dataType", r.cfg.DataType).
		Get(r.path())
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", r.Endpoint(), err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("get %s: %w", r.Endpoint(), &StatusError{Code: resp.StatusCode()})
	}

	var out summaryResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.Endpoint(), err)
	}
	if out.TotalDataChart == nil {
		return nil, fmt.Errorf("decode %s: %w", r.Endpoint(), ErrMissingSeries)
	}
	return *out.TotalDataChart, nil
}
