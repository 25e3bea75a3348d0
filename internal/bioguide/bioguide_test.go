package bioguide

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"sunlight/senate-csv/internal/httpclient"
	"sunlight/senate-csv/internal/logging"
	"sunlight/senate-csv/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMatcher(t *testing.T) *Matcher {
	t.Helper()
	current, err := ParseLegislators([]byte(currentYAML))
	require.NoError(t, err)
	historical, err := ParseLegislators([]byte(historicalYAML))
	require.NoError(t, err)
	m := NewMatcher(append(current, historical...), logging.NewMockLogger())
	m.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	return m
}

func TestParseLegislators_KeepsSenateTermsOnly(t *testing.T) {
	senators, err := ParseLegislators([]byte(historicalYAML))
	require.NoError(t, err)
	require.Len(t, senators, 4)

	mccain := senators[1]
	assert.Equal(t, "M000303", mccain.BioguideID)
	require.Len(t, mccain.Terms, 1)
	assert.Equal(t, "sen", mccain.Terms[0].Type)

	current, err := ParseLegislators([]byte(currentYAML))
	require.NoError(t, err)
	assert.Len(t, current, 1, "house-only legislators are dropped")
}

func TestParseLegislators_Invalid(t *testing.T) {
	_, err := ParseLegislators([]byte("{not: [valid"))
	assert.Error(t, err)
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  lamar   alexander ", "LAMAR ALEXANDER"},
		{"John S. McCain III", "JOHN S MCCAIN"},
		{"Robert Casey, Jr.", "ROBERT CASEY"},
		{"ROBERT CASEY JR", "ROBERT CASEY"},
		{"Ben Ray Luján", "BEN RAY LUJÁN"},
		{"O'Brien", "OBRIEN"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.in))
		})
	}
}

func TestNameVariants(t *testing.T) {
	s := Senator{Name: Name{First: "John", Middle: "Sidney", Last: "McCain", Nickname: "Johnny"}}
	assert.Equal(t, []string{
		"JOHN MCCAIN",
		"JOHNNY MCCAIN",
		"JOHN SIDNEY MCCAIN",
		"JOHN S MCCAIN",
	}, s.NameVariants())

	assert.Empty(t, Senator{Name: Name{Last: "Solo"}}.NameVariants())
}

func TestActiveIn(t *testing.T) {
	s := Senator{Terms: []Term{
		{Start: "2013-01-03", End: "2019-01-03"},
		{Start: "2019-01-03"},
		{Start: "bogus"},
	}}
	assert.True(t, s.ActiveIn(0, 2024))
	assert.True(t, s.ActiveIn(2013, 2024))
	assert.True(t, s.ActiveIn(2024, 2024))
	assert.False(t, s.ActiveIn(2012, 2024))
	assert.False(t, s.ActiveIn(2025, 2024))
}

func TestMatcher_Lookup(t *testing.T) {
	m := testMatcher(t)

	tests := []struct {
		name string
		year int
		want string
	}{
		{"LAMAR ALEXANDER", 2014, "A000360"},
		{"ELIZABETH WARREN", 2015, "W000817"},
		{"ELIZABETH WARREN", 2023, "W000817"},
		{"JOHN MCCAIN", 2014, "M000303"},
		{"JOHNNY MCCAIN", 2014, "M000303"},
		{"JOHN S. MCCAIN", 2014, "M000303"},
		{"JOHN MCCAIN", 1985, ""},
		{"LAMAR ALEXANDER", 2022, ""},
		{"NANCY PELOSI", 1988, ""},
		{"", 2014, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Lookup(tt.name, tt.year)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatcher_LookupAmbiguous(t *testing.T) {
	m := testMatcher(t)

	id, err := m.Lookup("JOHN SMITH", 2006)
	assert.Equal(t, "S000001", id)

	var ambiguous *parsererror.AmbiguousMatchError
	require.True(t, errors.As(err, &ambiguous))
	assert.Equal(t, []string{"S000001", "S000002"}, ambiguous.Candidates)

	id, err = m.Lookup("JOHN SMITH", 2009)
	require.NoError(t, err)
	assert.Equal(t, "S000002", id)
}

func TestMatcher_LookupInState(t *testing.T) {
	m := testMatcher(t)

	id, err := m.LookupInState("JOHN SMITH", 2006, "va")
	require.NoError(t, err)
	assert.Equal(t, "S000002", id)

	id, err = m.LookupInState("JOHN SMITH", 2006, "TX")
	require.NoError(t, err)
	assert.Empty(t, id)
}

func legislatorServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		switch r.URL.Path {
		case "/current.yaml":
			_, _ = w.Write([]byte(currentYAML))
		case "/historical.yaml":
			_, _ = w.Write([]byte(historicalYAML))
		default:
			http.NotFound(w, r)
		}
	}))
}

func testLoader(srvURL, cacheDir string, maxAge time.Duration) *Loader {
	client := httpclient.New(httpclient.Options{Attempts: 1, Timeout: 5 * time.Second}, nil)
	return NewLoader(LoaderOptions{
		CurrentURL:    srvURL + "/current.yaml",
		HistoricalURL: srvURL + "/historical.yaml",
		CacheDir:      cacheDir,
		MaxAge:        maxAge,
	}, client, logging.NewMockLogger())
}

func TestLoader_DownloadsThenUsesCache(t *testing.T) {
	var hits int32
	srv := legislatorServer(t, &hits)
	defer srv.Close()

	cacheDir := filepath.Join(t.TempDir(), ".bioguide_cache")
	loader := testLoader(srv.URL, cacheDir, 7*24*time.Hour)

	m, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, m.Len())
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
	assert.FileExists(t, filepath.Join(cacheDir, CurrentFile))

	_, err = loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits), "fresh cache is reused")
}

func TestLoader_RefreshesStaleCache(t *testing.T) {
	var hits int32
	srv := legislatorServer(t, &hits)
	defer srv.Close()

	cacheDir := t.TempDir()
	loader := testLoader(srv.URL, cacheDir, 7*24*time.Hour)
	_, err := loader.Load(context.Background())
	require.NoError(t, err)

	loader.now = func() time.Time { return time.Now().Add(8 * 24 * time.Hour) }
	_, err = loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(4), atomic.LoadInt32(&hits))
}

func TestLoader_FallsBackToStaleCache(t *testing.T) {
	cacheDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(cacheDir, CurrentFile), []byte(currentYAML), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(cacheDir, HistoricalFile), []byte(historicalYAML), 0600))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	loader := testLoader(srv.URL, cacheDir, 0)
	m, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, m.Len())
}

func TestLoader_FailsWithoutCache(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := testLoader(srv.URL, t.TempDir(), time.Hour).Load(context.Background())
	assert.ErrorIs(t, err, httpclient.ErrNotFound)
}
