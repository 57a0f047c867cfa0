package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cassiohm/mediafeed/aggregator"
	"github.com/cassiohm/mediafeed/metadata"
	"github.com/cassiohm/mediafeed/monitoring"
	"github.com/cassiohm/mediafeed/schema"
	"github.com/cassiohm/mediafeed/search"
)

type fixture struct {
	handler    *Handler
	feedCalls  *int
	feedServer *httptest.Server
	metaServer *httptest.Server
}

func newFixture(t *testing.T, metaBody string, feedItems ...string) *fixture {
	t.Helper()

	feedCalls := 0
	feedServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		feedCalls++
		body := `<rss><channel>`
		for _, item := range feedItems {
			body += "<item>" + item + "</item>"
		}
		fmt.Fprint(w, body+`</channel></rss>`)
	}))
	t.Cleanup(feedServer.Close)

	metaServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, metaBody)
	}))
	t.Cleanup(metaServer.Close)

	searcher, err := search.NewClient(search.Config{
		BaseURL:    feedServer.URL,
		Username:   "user",
		Password:   "pass",
		RetryDelay: 10 * time.Millisecond,
	}, nil)
	require.NoError(t, err)

	meta := metadata.NewClient(metaServer.URL, "key")
	cache := aggregator.NewCache(30 * time.Minute)
	metrics := monitoring.NewMetrics()

	return &fixture{
		handler:    NewHandler(searcher, meta, cache, metrics),
		feedCalls:  &feedCalls,
		feedServer: feedServer,
		metaServer: metaServer,
	}
}

func link(filename string) string {
	return fmt.Sprintf(`<link>https://files.example.org/dl/%s</link><description>2 GB</description>`, filename)
}

func doStreams(t *testing.T, h *Handler, target string) (*httptest.ResponseRecorder, StreamsResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.HandlerStreams(rec, req)

	var resp StreamsResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestHandlerStreamsMovie(t *testing.T) {
	f := newFixture(t,
		`{"movie_results":[{"title":"Movie Name","release_date":"2020-02-01"}],"tv_results":[]}`,
		link("Movie.Name.2020.720p.BluRay.mkv"),
		link("Movie.Name.2020.1080p.BluRay.mkv"),
	)

	rec, resp := doStreams(t, f.handler, "/streams?id=tt0000001&type=movie")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 2, resp.Count)
	// quality-rank descending regardless of feed order
	assert.Equal(t, schema.Quality1080p, resp.Streams[0].Quality)
	assert.Equal(t, schema.Quality720p, resp.Streams[1].Quality)
}

func TestHandlerStreamsServesFromCache(t *testing.T) {
	f := newFixture(t,
		`{"movie_results":[{"title":"Movie Name","release_date":"2020-02-01"}],"tv_results":[]}`,
		link("Movie.Name.2020.1080p.BluRay.mkv"),
	)

	_, first := doStreams(t, f.handler, "/streams?id=tt0000001&type=movie")
	require.Equal(t, 1, first.Count)
	_, second := doStreams(t, f.handler, "/streams?id=tt0000001&type=movie")
	require.Equal(t, 1, second.Count)

	assert.Equal(t, 1, *f.feedCalls, "second request must be served from cache")
}

func TestHandlerStreamsSeries(t *testing.T) {
	f := newFixture(t,
		`{"movie_results":[],"tv_results":[{"name":"Show Name","first_air_date":"2019-01-01"}]}`,
		link("Show.Name.S01E02.1080p.WEB-DL.mkv"),
		link("Show.Name.S01E02.720p.WEB-DL.mkv"),
		link("Show.Name.S02E05.1080p.WEB-DL.mkv"),
	)

	rec, resp := doStreams(t, f.handler, "/streams?id=tt0000002&type=series&season=1&episode=2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, resp.Count, "only the requested episode's results are served")
}

func TestHandlerStreamsMetadataFailureFallsBack(t *testing.T) {
	f := newFixture(t, `{"movie_results":[],"tv_results":[]}`)
	f.metaServer.Close()

	rec, resp := doStreams(t, f.handler, "/streams?id=tt0000003&type=movie")
	require.Equal(t, http.StatusOK, rec.Code, "metadata failure must not abort resolution")
	assert.Equal(t, 0, resp.Count)
	assert.Equal(t, 1, *f.feedCalls, "search still runs on the identifier-derived term")
}

func TestHandlerStreamsNilMetrics(t *testing.T) {
	f := newFixture(t,
		`{"movie_results":[{"title":"Movie Name","release_date":"2020-02-01"}],"tv_results":[]}`,
		link("Movie.Name.2020.1080p.BluRay.mkv"),
	)
	f.handler.metrics = nil

	rec, resp := doStreams(t, f.handler, "/streams?id=tt0000001&type=movie")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, resp.Count)

	// second request takes the cache-hit path
	rec, _ = doStreams(t, f.handler, "/streams?id=tt0000001&type=movie")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlerStreamsValidation(t *testing.T) {
	f := newFixture(t, `{"movie_results":[],"tv_results":[]}`)

	rec, _ := doStreams(t, f.handler, "/streams")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doStreams(t, f.handler, "/streams?id=tt1&type=series")
	assert.Equal(t, http.StatusBadRequest, rec.Code, "series without season/episode is invalid")
}
