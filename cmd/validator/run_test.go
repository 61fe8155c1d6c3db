package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"assignment-validator/internal/di"
	"assignment-validator/internal/infrastructure/env"
	"assignment-validator/internal/infrastructure/mockapi"
	"assignment-validator/internal/infrastructure/userinteraction"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func disableColor(t *testing.T) {
	t.Helper()
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })
}

func newTestContainer(t *testing.T, input string) (*di.Container, *strings.Builder) {
	t.Helper()
	disableColor(t)

	out := &strings.Builder{}
	c, err := di.NewContainer(context.Background(), di.Config{
		LogDir:       t.TempDir(),
		HTTPTimeout:  2 * time.Second,
		PollInterval: 5 * time.Millisecond,
		Timeout:      time.Second,
		UI:           userinteraction.NewConsoleUserInteractionWithIO(strings.NewReader(input), out),
	})
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c, out
}

func TestRun_Success(t *testing.T) {
	srv := httptest.NewServer(mockapi.NewServer(mockapi.Config{ReadyAfter: 2}).Router())
	defer srv.Close()

	c, out := newTestContainer(t, srv.URL+"\nn\n")

	err := run(context.Background(), c, "")
	require.NoError(t, err)

	s := out.String()
	assert.Contains(t, s, "Assignment Validator")
	assert.Contains(t, s, "Enter the API URL of your assignment:")
	assert.Equal(t, 3, strings.Count(s, "Polling for facts..."))
	assert.Contains(t, s, "Facts retrieved successfully!")
	assert.Contains(t, s, "call_log_20240316_104111.txt")
}

func TestRun_UsesDefaultURL(t *testing.T) {
	srv := httptest.NewServer(mockapi.NewServer(mockapi.Config{}).Router())
	defer srv.Close()

	c, out := newTestContainer(t, "\n")

	require.NoError(t, run(context.Background(), c, srv.URL))
	assert.Contains(t, out.String(), "Facts retrieved successfully!")
}

func TestRun_DoneWithNullFacts(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /submit_question_and_documents", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	mux.HandleFunc("GET /get_question_and_facts", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"question":"What is our pricing model?","facts":null,"status":"done"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, out := newTestContainer(t, srv.URL+"\nn\n")

	require.NoError(t, run(context.Background(), c, ""))

	s := out.String()
	assert.Contains(t, s, "Facts retrieved successfully!")
	assert.Contains(t, s, "(no facts returned)")
}

func TestRun_UnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c, out := newTestContainer(t, srv.URL+"\n")

	err := run(context.Background(), c, "")
	assert.ErrorIs(t, err, errValidationFailed)
	assert.Contains(t, out.String(), "Unexpected status code when submitting question and documents: 503")
	assert.NotContains(t, out.String(), "Polling for facts...")
}

func TestRun_SchemaErrorShowsBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /submit_question_and_documents", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	mux.HandleFunc("GET /get_question_and_facts", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"question":"What is our pricing model?","facts":["a"]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, out := newTestContainer(t, srv.URL+"\n")

	err := run(context.Background(), c, "")
	assert.ErrorIs(t, err, errValidationFailed)

	s := out.String()
	assert.Contains(t, s, `The response data does not match the expected schema: field "status" is required`)
	assert.Contains(t, s, "Response data:")
	assert.Contains(t, s, `"facts": [`)
}

func TestRun_Timeout(t *testing.T) {
	srv := httptest.NewServer(mockapi.NewServer(mockapi.Config{ReadyAfter: 1 << 20}).Router())
	defer srv.Close()

	disableColor(t)
	out := &strings.Builder{}
	c, err := di.NewContainer(context.Background(), di.Config{
		LogDir:       t.TempDir(),
		PollInterval: 5 * time.Millisecond,
		Timeout:      30 * time.Millisecond,
		UI:           userinteraction.NewConsoleUserInteractionWithIO(strings.NewReader(srv.URL+"\n"), out),
	})
	require.NoError(t, err)
	defer c.Close()

	err = run(context.Background(), c, "")
	assert.ErrorIs(t, err, errValidationFailed)
	assert.Contains(t, out.String(), "Timeout: Facts not ready after 30ms")
}

func TestRun_InvalidURLThenRetry(t *testing.T) {
	srv := httptest.NewServer(mockapi.NewServer(mockapi.Config{}).Router())
	defer srv.Close()

	c, out := newTestContainer(t, "not-a-url\ny\n"+srv.URL+"\nn\n")

	require.NoError(t, run(context.Background(), c, ""))

	s := out.String()
	assert.Contains(t, s, "Please enter a valid API URL")
	assert.Contains(t, s, "Facts retrieved successfully!")
}

func TestRun_NoInput(t *testing.T) {
	c, _ := newTestContainer(t, "")

	assert.Error(t, run(context.Background(), c, ""))
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("VALIDATOR_TIMEOUT", "90s")
	t.Setenv("VALIDATOR_POLL_INTERVAL", "")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("VALIDATOR_NO_COLOR", "1")

	cfg := configFromEnv(&env.EnvService{})

	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.Equal(t, time.Second, cfg.PollInterval)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.NoColor)
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"VALIDATOR_TIMEOUT", "VALIDATOR_POLL_INTERVAL", "VALIDATOR_HTTP_TIMEOUT", "VALIDATOR_NO_COLOR", "LOG_LEVEL", "LOG_DIR"} {
		t.Setenv(key, "")
	}

	cfg := configFromEnv(&env.EnvService{})

	assert.Equal(t, 5*time.Minute, cfg.Timeout)
	assert.Equal(t, time.Second, cfg.PollInterval)
	assert.False(t, cfg.NoColor)
	assert.Equal(t, "log", cfg.LogDir)
}
