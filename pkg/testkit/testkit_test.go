package testkit_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/cuisineai/app/models"
	"github.com/shashiranjanraj/cuisineai/app/repositories"
	"github.com/shashiranjanraj/cuisineai/pkg/testkit"
)

// echoHandler forwards the prompt to the model endpoint through rt and
// returns the first text part.
func echoHandler(_ *testing.T, rt http.RoundTripper) http.Handler {
	client := &http.Client{Transport: rt}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Prompt string `json:"prompt"`
		}
		_ = json.NewDecoder(r.Body).Decode(&in)

		resp, err := client.Post("http://genai.test/models/m:generateContent", "application/json",
			strings.NewReader(`{"contents":[{"parts":[{"text":"`+in.Prompt+`"}]}]}`))
		if err != nil || resp.StatusCode != http.StatusOK {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, "upstream failed")
			return
		}
		defer resp.Body.Close()

		var out struct {
			Candidates []struct {
				Content struct {
					Parts []struct {
						Text string `json:"text"`
					} `json:"parts"`
				} `json:"content"`
			} `json:"candidates"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&out)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"text": out.Candidates[0].Content.Parts[0].Text})
	})
}

func TestRunDir_Fixtures(t *testing.T) {
	testkit.RunDir(t, echoHandler, "fixtures")
}

func TestLoadAllFromDir_SkipsBodyFiles(t *testing.T) {
	scenarios, errs := testkit.LoadAllFromDir("fixtures")
	require.Empty(t, errs)
	require.Len(t, scenarios, 2)
	assert.Equal(t, "POST", scenarios[0].RequestMethod)
	assert.True(t, strings.HasSuffix(scenarios[1].RequestBodyPath(), "echo_request.json"))
}

func TestMockTransport_UnmatchedCallFails(t *testing.T) {
	mt := testkit.NewMockTransport(testkit.MockStep{MatchURL: "/models/"})
	client := &http.Client{Transport: mt}

	_, err := client.Get("http://elsewhere.test/other")
	require.Error(t, err)
	assert.Equal(t, 0, mt.Calls())
	assert.Equal(t, []string{"/models/"}, mt.Uncalled())
}

func TestGenerateContentBody(t *testing.T) {
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(testkit.GenerateContentBody("a\nb")), &out))

	cand := out["candidates"].([]interface{})[0].(map[string]interface{})
	parts := cand["content"].(map[string]interface{})["parts"].([]interface{})
	assert.Equal(t, "a\nb", parts[0].(map[string]interface{})["text"])
}

func TestMockGenerator_RecordsPrompt(t *testing.T) {
	gen := new(testkit.MockGenerator)
	gen.On("Generate", mock.Anything, "p").Return("out", nil)

	text, err := gen.Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "out", text)
	assert.Equal(t, "p", gen.LastPrompt())
	gen.AssertExpectations(t)
}

func TestMockGenerator_ConcurrentCalls(t *testing.T) {
	gen := new(testkit.MockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).Return("out", nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = gen.Generate(context.Background(), "same prompt")
			_ = gen.LastPrompt()
		}()
	}
	wg.Wait()

	assert.Equal(t, "same prompt", gen.LastPrompt())
	gen.AssertNumberOfCalls(t, "Generate", 8)
}

func TestMemoryUsers(t *testing.T) {
	ctx := context.Background()
	users := testkit.NewMemoryUsers()

	_, err := users.FindByEmail(ctx, "a@b.c")
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)

	u := &models.User{Name: "A", Email: "a@b.c", Password: "h"}
	require.NoError(t, users.Create(ctx, u))
	assert.False(t, u.ID.IsZero())
	assert.False(t, u.CreatedAt.IsZero())

	got, err := users.FindByEmail(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	users.Err = errors.New("down")
	_, err = users.FindByEmail(ctx, "a@b.c")
	assert.EqualError(t, err, "down")
}
