package genai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/cuisineai/pkg/genai"
	"github.com/shashiranjanraj/cuisineai/pkg/testkit"
)

func newClient(t *testing.T, baseURL string, rt http.RoundTripper) *genai.Client {
	t.Helper()
	c, err := genai.NewClient(context.Background(), genai.Options{
		APIKey:     "secret-key",
		Model:      "gemini-1.5-flash",
		BaseURL:    baseURL,
		APIVersion: "v1beta",
		HTTPClient: &http.Client{Transport: rt, Timeout: time.Second},
	})
	require.NoError(t, err)
	return c
}

func TestGenerate_SendsPromptAndJoinsParts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/v1beta/models/gemini-1.5-flash:generateContent"), r.URL.Path)
		assert.Equal(t, "secret-key", r.Header.Get("x-goog-api-key"))

		var body struct {
			Contents []struct {
				Role  string `json:"role"`
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Contents, 1)
		assert.Equal(t, "user", body.Contents[0].Role)
		assert.Equal(t, "make soup", body.Contents[0].Parts[0].Text)

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Soup\n"},{"text":"Boil."}]}}]}`))
	}))
	defer srv.Close()

	text, err := newClient(t, srv.URL, http.DefaultTransport).Generate(context.Background(), "make soup")
	require.NoError(t, err)
	assert.Equal(t, "Soup\nBoil.", text)
}

func TestGenerate_Failures(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"quota", http.StatusTooManyRequests, `{"error":{"message":"quota"}}`},
		{"malformed", http.StatusOK, `not json`},
		{"no candidates", http.StatusOK, `{"candidates":[]}`},
		{"blocked", http.StatusOK, `{"promptFeedback":{"blockReason":"SAFETY"}}`},
		{"empty text", http.StatusOK, `{"candidates":[{"content":{"parts":[]},"finishReason":"MAX_TOKENS"}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mt := testkit.NewMockTransport(testkit.MockStep{
				MatchURL:   ":generateContent",
				ReturnData: testkit.MockReturnData{StatusCode: tc.status, Body: tc.body},
			})
			c := newClient(t, "http://genai.test/", mt)

			_, err := c.Generate(context.Background(), "p")
			assert.ErrorIs(t, err, genai.ErrGeneration)
			assert.Equal(t, 1, mt.Calls())
		})
	}
}

func TestGenerate_ServerErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newClient(t, srv.URL, http.DefaultTransport).Generate(context.Background(), "p")
	assert.ErrorIs(t, err, genai.ErrGeneration)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGenerate_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newClient(t, srv.URL, http.DefaultTransport).Generate(ctx, "p")
	assert.ErrorIs(t, err, genai.ErrGeneration)
}
