package server_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/cognicore/wnsim/internal/server"
	"github.com/cognicore/wnsim/pkg/wnsim/similarity"
	"github.com/cognicore/wnsim/pkg/wnsim/wordnet/memdict"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newHandler(t *testing.T) http.Handler {
	t.Helper()
	dict, err := memdict.LoadYAML("../../testdata/wordnet.yaml")
	require.NoError(t, err)

	measure, err := similarity.NewFromFile(context.Background(), dict, "../../testdata/sim.conf")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return server.NewHandler(measure, logger).Router(nil)
}

func get(t *testing.T, h http.Handler, target string, out interface{}) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec.Code
}

func TestHealth(t *testing.T) {
	var body map[string]string
	assert.Equal(t, http.StatusOK, get(t, newHandler(t), "/health", &body))
	assert.Equal(t, "ok", body["status"])
}

func TestSimilarity(t *testing.T) {
	h := newHandler(t)

	var body struct {
		ID     string  `json:"id"`
		Sense1 string  `json:"sense1"`
		Sense2 string  `json:"sense2"`
		Score  float64 `json:"score"`
	}
	require.Equal(t, http.StatusOK, get(t, h, "/similarity?w1=dog&w2=cat", &body))
	assert.Equal(t, "dog#n#1", body.Sense1)
	assert.Equal(t, "cat#n#1", body.Sense2)
	assert.Greater(t, body.Score, 0.0)
	assert.NotEmpty(t, body.ID)
}

func TestSimilarityErrors(t *testing.T) {
	h := newHandler(t)

	var errBody struct {
		Error       string              `json:"error"`
		Suggestions map[string][]string `json:"suggestions"`
	}
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/similarity?w1=dog", &errBody))
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/similarity?w1=dog%23x&w2=cat", &errBody))

	assert.Equal(t, http.StatusNotFound, get(t, h, "/similarity?w1=dog&w2=carnivor", &errBody))
	assert.Contains(t, errBody.Suggestions["carnivor"], "carnivore")
}

func TestSynsets(t *testing.T) {
	h := newHandler(t)

	var body struct {
		Word    string `json:"word"`
		Synsets []struct {
			ID    string   `json:"id"`
			Words []string `json:"words"`
		} `json:"synsets"`
	}
	require.Equal(t, http.StatusOK, get(t, h, "/synsets?word=cat%23n", &body))
	require.Len(t, body.Synsets, 2)
	assert.Equal(t, "2121620n", body.Synsets[0].ID)

	require.Equal(t, http.StatusOK, get(t, h, "/synsets?word=namperson", &body))
	require.Len(t, body.Synsets, 1)
	assert.Equal(t, "7890n", body.Synsets[0].ID)

	assert.Equal(t, http.StatusBadRequest, get(t, h, "/synsets", nil))
}

func TestStatsTracksCache(t *testing.T) {
	h := newHandler(t)
	get(t, h, "/similarity?w1=dog%23n%231&w2=cat%23n%231", nil)
	get(t, h, "/similarity?w1=dog%23n%231&w2=cat%23n%231", nil)

	var body struct {
		Measure  string `json:"measure"`
		Version  string `json:"version"`
		Mappings int    `json:"mappings"`
		Cache    struct {
			Hits   uint64 `json:"hits"`
			Misses uint64 `json:"misses"`
			Len    int    `json:"len"`
		} `json:"cache"`
	}
	require.Equal(t, http.StatusOK, get(t, h, "/stats", &body))
	assert.Equal(t, "jcn", body.Measure)
	assert.Equal(t, "3.0", body.Version)
	assert.Equal(t, 2, body.Mappings)
	assert.Equal(t, uint64(1), body.Cache.Hits)
	assert.Equal(t, uint64(1), body.Cache.Misses)
	assert.Equal(t, 1, body.Cache.Len)
}

func TestServerOverNetwork(t *testing.T) {
	srv := httptest.NewServer(newHandler(t))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
