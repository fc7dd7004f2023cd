package maven

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSearchURL = "https://search.test/solrsearch/select"
	testRepoURL   = "https://repo.test/maven2"
)

func newTestClient(t *testing.T, cacheTTL time.Duration) *Client {
	t.Helper()
	c := NewClient(Config{
		SearchURL: testSearchURL,
		RepoURL:   testRepoURL + "/",
		Timeout:   2 * time.Second,
		CacheTTL:  cacheTTL,
	})
	httpmock.ActivateNonDefault(c.HTTPClient())
	t.Cleanup(httpmock.DeactivateAndReset)
	return c
}

func searchBody(version string) string {
	if version == "" {
		return `{"response":{"numFound":0,"docs":[]}}`
	}
	return `{"response":{"numFound":1,"docs":[{"g":"com.example","a":"lib","v":"` + version + `"}]}}`
}

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		in      string
		want    Coordinate
		wantErr bool
	}{
		{"com.example:lib", Coordinate{"com.example", "lib"}, false},
		{" log4j:log4j ", Coordinate{"log4j", "log4j"}, false},
		{"com.example", Coordinate{}, true},
		{"com.example:lib:1.0", Coordinate{}, true},
		{":lib", Coordinate{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCoordinate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoordinate_Layout(t *testing.T) {
	c := Coordinate{Group: "net.sf.json-lib", Artifact: "json-lib"}
	assert.Equal(t, "net/sf/json-lib", c.Path())
	assert.Equal(t, "json-lib-2.4-jdk15.jar", c.FileName("2.4", "jdk15"))
	assert.Equal(t, "json-lib-2.4.jar", c.FileName("2.4", ""))
	assert.Equal(t, "net.sf.json-lib:json-lib", c.String())
}

func TestLatestVersion_Success(t *testing.T) {
	c := newTestClient(t, 0)

	httpmock.RegisterResponder("GET", testSearchURL, func(req *http.Request) (*http.Response, error) {
		q := req.URL.Query()
		assert.Equal(t, `g:"com.example" AND a:"lib"`, q.Get("q"))
		assert.Equal(t, "gav", q.Get("core"))
		assert.Equal(t, "1", q.Get("rows"))
		assert.Equal(t, "json", q.Get("wt"))
		return httpmock.NewStringResponse(http.StatusOK, searchBody("1.1.0")), nil
	})

	v, err := c.LatestVersion(context.Background(), Coordinate{"com.example", "lib"})
	require.NoError(t, err)
	assert.Equal(t, "1.1.0", v)
}

func TestLatestVersion_Failures(t *testing.T) {
	tests := []struct {
		name      string
		responder httpmock.Responder
		wantErr   error
	}{
		{
			name:      "No Docs",
			responder: httpmock.NewStringResponder(http.StatusOK, searchBody("")),
			wantErr:   ErrNotFound,
		},
		{
			name:      "Server Error",
			responder: httpmock.NewStringResponder(http.StatusBadGateway, "bad gateway"),
			wantErr:   ErrNetwork,
		},
		{
			name:      "Transport Error",
			responder: httpmock.NewErrorResponder(assert.AnError),
			wantErr:   ErrNetwork,
		},
		{
			name:      "Malformed JSON",
			responder: httpmock.NewStringResponder(http.StatusOK, `{"response":`),
			wantErr:   ErrParse,
		},
		{
			name:      "Empty Version",
			responder: httpmock.NewStringResponder(http.StatusOK, searchBody(" ")),
			wantErr:   ErrParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, 0)
			httpmock.RegisterResponder("GET", testSearchURL, tt.responder)

			v, err := c.LatestVersion(context.Background(), Coordinate{"com.example", "lib"})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, v)
		})
	}
}

func TestLatestVersion_Cache(t *testing.T) {
	c := newTestClient(t, time.Minute)
	httpmock.RegisterResponder("GET", testSearchURL, httpmock.NewStringResponder(http.StatusOK, searchBody("2.0")))

	coord := Coordinate{"com.example", "lib"}
	for i := 0; i < 3; i++ {
		v, err := c.LatestVersion(context.Background(), coord)
		require.NoError(t, err)
		assert.Equal(t, "2.0", v)
	}
	assert.Equal(t, 1, httpmock.GetTotalCallCount())

	c.InvalidateCache()
	_, err := c.LatestVersion(context.Background(), coord)
	require.NoError(t, err)
	assert.Equal(t, 2, httpmock.GetTotalCallCount())
}

func TestLatestVersion_FailuresAreNotCached(t *testing.T) {
	c := newTestClient(t, time.Minute)
	httpmock.RegisterResponder("GET", testSearchURL, httpmock.NewStringResponder(http.StatusOK, searchBody("")))

	coord := Coordinate{"com.example", "lib"}
	_, err := c.LatestVersion(context.Background(), coord)
	require.ErrorIs(t, err, ErrNotFound)

	httpmock.RegisterResponder("GET", testSearchURL, httpmock.NewStringResponder(http.StatusOK, searchBody("1.0")))
	v, err := c.LatestVersion(context.Background(), coord)
	require.NoError(t, err)
	assert.Equal(t, "1.0", v)
}

func TestArtifactURL(t *testing.T) {
	c := NewClient(Config{RepoURL: testRepoURL})
	assert.Equal(t,
		testRepoURL+"/net/sf/json-lib/json-lib/2.4/json-lib-2.4-jdk15.jar",
		c.ArtifactURL(Coordinate{"net.sf.json-lib", "json-lib"}, "2.4", "jdk15"))
	assert.Equal(t,
		testRepoURL+"/log4j/log4j/1.2.17/log4j-1.2.17.jar",
		c.ArtifactURL(Coordinate{"log4j", "log4j"}, "1.2.17", ""))
}

func TestDownload(t *testing.T) {
	c := newTestClient(t, 0)
	coord := Coordinate{"com.example", "lib"}
	payload := strings.Repeat("x", 4096)
	httpmock.RegisterResponder("GET", c.ArtifactURL(coord, "1.1.0", ""),
		httpmock.NewStringResponder(http.StatusOK, payload))

	dest := filepath.Join(t.TempDir(), "temp_lib-1.1.0.jar")
	var last int64
	n, err := c.Download(context.Background(), coord, "1.1.0", "", dest, func(written, total int64) {
		assert.GreaterOrEqual(t, written, last)
		last = written
	})
	require.NoError(t, err)
	assert.Equal(t, int64(len(payload)), n)
	assert.Equal(t, int64(len(payload)), last)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, payload, string(data))
}

func TestDownload_NotFound(t *testing.T) {
	c := newTestClient(t, 0)
	coord := Coordinate{"com.example", "lib"}
	httpmock.RegisterResponder("GET", c.ArtifactURL(coord, "9.9", ""),
		httpmock.NewStringResponder(http.StatusNotFound, ""))

	dest := filepath.Join(t.TempDir(), "temp_lib-9.9.jar")
	_, err := c.Download(context.Background(), coord, "9.9", "", dest, nil)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoFileExists(t, dest)
}

func TestCoordinateText(t *testing.T) {
	data, err := json.Marshal(map[Coordinate]string{{Group: "log4j", Artifact: "log4j"}: "1.2.17"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"log4j:log4j":"1.2.17"}`, string(data))

	var c Coordinate
	require.NoError(t, json.Unmarshal([]byte(`"commons-lang:commons-lang"`), &c))
	assert.Equal(t, Coordinate{Group: "commons-lang", Artifact: "commons-lang"}, c)
	assert.Error(t, json.Unmarshal([]byte(`"broken"`), &c))
}
