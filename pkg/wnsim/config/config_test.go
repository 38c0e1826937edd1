package config_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/wnsim/pkg/wnsim/config"
	"github.com/cognicore/wnsim/pkg/wnsim/internalerr"
	"github.com/cognicore/wnsim/pkg/wnsim/simcache"
)

func TestLoadParams(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	data := "simType : jcn\n\n  cache:100  \nbroken line\ninfocontent: http://example.com/ic.dat\n"
	params, err := config.LoadParams(strings.NewReader(data), logger)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"simType":     "jcn",
		"cache":       "100",
		"infocontent": "http://example.com/ic.dat",
	}, params)
	assert.Contains(t, buf.String(), "config line is malformed")
	assert.Contains(t, buf.String(), "line=4")
}

func TestLoadParamsFileFixture(t *testing.T) {
	params, err := config.LoadParamsFile("../../../testdata/sim.conf", nil)
	require.NoError(t, err)

	assert.Equal(t, "jcn", params["simType"])
	assert.Equal(t, "1000", params["cache"])
	assert.Equal(t, "true", params["root"])
	assert.Equal(t, "ic-sample.dat", params["infocontent"])
	assert.Equal(t, "domain.txt", params["mapping"])
}

func TestLoadParamsFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")
	content := "simType: lin\ncache: -1\nroot: false\ninfocontent: ic.dat\nextra:\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	params, err := config.LoadParamsFile(path, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"simType":     "lin",
		"cache":       "-1",
		"root":        "false",
		"infocontent": "ic.dat",
		"extra":       "",
	}, params)
}

func TestParseOptions(t *testing.T) {
	params := map[string]string{
		"simType":     "lin",
		"cache":       "-1",
		"mapping":     "map.txt",
		"root":        "TRUE",
		"infocontent": "ic.dat",
		"other":       "kept",
	}

	opts, rest, err := config.ParseOptions(params)
	require.NoError(t, err)

	assert.Equal(t, config.Options{
		SimType:        "lin",
		CacheSize:      -1,
		MappingURI:     "map.txt",
		SingleRoot:     true,
		InfoContentURI: "ic.dat",
	}, opts)
	assert.Equal(t, map[string]string{"other": "kept"}, rest)
	assert.Len(t, params, 6, "input must not be modified")
}

func TestParseOptionsDefaults(t *testing.T) {
	opts, rest, err := config.ParseOptions(map[string]string{"simType": "jcn"})
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, simcache.DefaultCapacity, opts.CacheSize)
	assert.True(t, opts.SingleRoot)
	assert.Empty(t, opts.MappingURI)
	assert.Empty(t, opts.InfoContentURI)
}

func TestParseOptionsRoot(t *testing.T) {
	for value, want := range map[string]bool{
		"true":  true,
		"True":  true,
		"false": false,
		"yes":   false,
		"1":     false,
		"":      false,
	} {
		opts, _, err := config.ParseOptions(map[string]string{"simType": "jcn", "root": value})
		require.NoError(t, err)
		assert.Equal(t, want, opts.SingleRoot, "root=%q", value)
	}
}

func TestParseOptionsErrors(t *testing.T) {
	_, _, err := config.ParseOptions(map[string]string{"cache": "10"})
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)
	assert.ErrorIs(t, err, internalerr.ErrMissingParam)

	_, _, err = config.ParseOptions(map[string]string{"simType": "jcn", "cache": "lots"})
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)
}

func TestOptionsParamsRoundTrip(t *testing.T) {
	opts := config.Options{SimType: "jcn", CacheSize: 10, SingleRoot: false, InfoContentURI: "ic.dat"}
	got, rest, err := config.ParseOptions(opts.Params())
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, opts, got)
}

func readAll(t *testing.T, rc io.ReadCloser) string {
	t.Helper()
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(data)
}

func TestDefaultOpenerFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "map.txt"), []byte("contents"), 0644))

	ctx := context.Background()
	opener := config.DefaultOpener{Base: dir}

	for _, uri := range []string{"map.txt", "file:map.txt", "file://" + filepath.Join(dir, "map.txt"), filepath.Join(dir, "map.txt")} {
		rc, err := opener.Open(ctx, uri)
		require.NoError(t, err, uri)
		assert.Equal(t, "contents", readAll(t, rc), uri)
	}

	_, err := opener.Open(ctx, "missing.txt")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDefaultOpenerHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ic.dat" {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, "wnver::3.0\n")
	}))
	defer srv.Close()

	ctx := context.Background()
	opener := config.DefaultOpener{Client: srv.Client()}

	rc, err := opener.Open(ctx, srv.URL+"/ic.dat")
	require.NoError(t, err)
	assert.Equal(t, "wnver::3.0\n", readAll(t, rc))

	_, err = opener.Open(ctx, srv.URL+"/missing")
	assert.ErrorIs(t, err, internalerr.ErrStoreUnavailable)
}
