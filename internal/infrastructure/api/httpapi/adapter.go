package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"assignment-validator/internal/application/port/output"
	"assignment-validator/internal/domain/entity"
)

var (
	_ output.FactsAPIPort    = (*FactsAPIAdapter)(nil)
	_ output.FactsAPIFactory = (*Factory)(nil)
)

const (
	submitPath   = "/submit_question_and_documents"
	getFactsPath = "/get_question_and_facts"

	maxBodyBytes = 10 << 20
)

type Config struct {
	Timeout   time.Duration
	UserAgent string
	Logger    output.LoggerPort
	Transport http.RoundTripper
}

func DefaultConfig() Config {
	return Config{
		Timeout:   30 * time.Second,
		UserAgent: "assignment-validator/1.0",
	}
}

type loggingTransport struct {
	base   http.RoundTripper
	logger output.LoggerPort
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var requestData any
	if req.Body != nil && req.GetBody != nil {
		body, err := req.GetBody()
		if err == nil {
			bodyBytes, _ := io.ReadAll(body)
			body.Close()
			_ = json.Unmarshal(bodyBytes, &requestData)
		}
	}

	t.logger.Info("HTTP Request",
		"method", req.Method,
		"url", req.URL.String(),
		"requestID", req.Header.Get("X-Request-ID"),
		"body", requestData,
	)

	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.logger.Warn("HTTP Request failed",
			"method", req.Method,
			"url", req.URL.String(),
			"error", err,
			"durationMs", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	t.logger.Info("HTTP Response",
		"status", resp.Status,
		"statusCode", resp.StatusCode,
		"durationMs", time.Since(start).Milliseconds(),
	)

	return resp, nil
}

// Factory builds adapters that share one http.Client.
type Factory struct {
	client    *http.Client
	userAgent string
	logger    output.LoggerPort
}

func NewFactory(cfg Config) *Factory {
	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	var transport http.RoundTripper = base
	if cfg.Logger != nil {
		transport = &loggingTransport{base: base, logger: cfg.Logger}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultConfig().UserAgent
	}

	return &Factory{
		client:    &http.Client{Timeout: cfg.Timeout, Transport: transport},
		userAgent: userAgent,
		logger:    cfg.Logger,
	}
}

func (f *Factory) New(baseURL, runID string) (output.FactsAPIPort, error) {
	api, err := NewFactsAPIAdapter(f.client, baseURL, runID, f.userAgent, f.logger)
	if err != nil {
		return nil, err
	}
	return api, nil
}

type FactsAPIAdapter struct {
	client    *http.Client
	baseURL   string
	runID     string
	userAgent string
	logger    output.LoggerPort
}

func NewFactsAPIAdapter(client *http.Client, baseURL, runID, userAgent string, logger output.LoggerPort) (*FactsAPIAdapter, error) {
	normalized, err := NormalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	return &FactsAPIAdapter{
		client:    client,
		baseURL:   normalized,
		runID:     runID,
		userAgent: userAgent,
		logger:    logger,
	}, nil
}

// NormalizeBaseURL trims whitespace and trailing slashes and requires an
// absolute http(s) URL.
func NormalizeBaseURL(raw string) (string, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(raw), "/")
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty", entity.ErrInvalidBaseURL)
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %v", entity.ErrInvalidBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: %q must start with http:// or https://", entity.ErrInvalidBaseURL, raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: %q has no host", entity.ErrInvalidBaseURL, raw)
	}

	return trimmed, nil
}

func (a *FactsAPIAdapter) BaseURL() string {
	return a.baseURL
}

func (a *FactsAPIAdapter) SubmitQuestionAndDocuments(ctx context.Context, sub entity.Submission) (*entity.SubmitResponse, error) {
	payload, err := json.Marshal(sub)
	if err != nil {
		return nil, fmt.Errorf("marshal submission: %w", err)
	}

	body, err := a.do(ctx, http.MethodPost, submitPath, payload, entity.OperationSubmit)
	if err != nil {
		return nil, err
	}

	resp, err := decodeSubmitResponse(body)
	if err != nil {
		a.logSchemaError(entity.OperationSubmit, err, body)
		return nil, &entity.SchemaError{Operation: entity.OperationSubmit, Body: body, Err: err}
	}
	return resp, nil
}

func (a *FactsAPIAdapter) GetQuestionAndFacts(ctx context.Context) (*entity.QuestionAndFacts, error) {
	body, err := a.do(ctx, http.MethodGet, getFactsPath, nil, entity.OperationGetFacts)
	if err != nil {
		return nil, err
	}

	data, err := decodeQuestionAndFacts(body)
	if err != nil {
		a.logSchemaError(entity.OperationGetFacts, err, body)
		return nil, &entity.SchemaError{Operation: entity.OperationGetFacts, Body: body, Err: err}
	}
	return data, nil
}

func (a *FactsAPIAdapter) do(ctx context.Context, method, path string, payload []byte, operation string) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", a.userAgent)
	if a.runID != "" {
		req.Header.Set("X-Request-ID", a.runID)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &entity.UnexpectedStatusError{Operation: operation, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", operation, err)
	}
	return body, nil
}

func (a *FactsAPIAdapter) logSchemaError(operation string, err error, body []byte) {
	if a.logger == nil {
		return
	}
	a.logger.Warn("Response does not match schema",
		"operation", operation,
		"error", err,
		"bodyLen", len(body),
	)
}
