package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(srv *httptest.Server) *Client {
	c := NewClient("test-key")
	c.BaseURL = srv.URL
	c.ImageBaseURL = "https://img.example/t"
	c.HTTPClient = srv.Client()
	return c
}

func TestNowPlaying(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/movie/now_playing":
			w.Write([]byte(`{"results":[
				{"id":603,"poster_path":"/matrix.jpg","backdrop_path":"/matrix-bd.jpg"},
				{"id":680,"poster_path":"/pf.jpg","backdrop_path":"/pf-bd.jpg"}
			]}`))
		case "/movie/603":
			w.Write([]byte(`{"id":603,"original_title":"The Matrix","runtime":136,"vote_average":8.2,"overview":"A hacker.","release_date":"1999-03-31"}`))
		case "/movie/680":
			w.Write([]byte(`{"id":680,"original_title":"Pulp Fiction","runtime":154,"vote_average":8.5,"overview":"Stories.","release_date":"1994-10-14"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	records, err := newTestClient(srv).NowPlaying(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "The Matrix", records[0].Title)
	assert.Equal(t, uint32(136), records[0].RuntimeMin)
	assert.Equal(t, 8.2, records[0].Rating)
	assert.Equal(t, "https://img.example/t/matrix.jpg", records[0].Poster)
	assert.Equal(t, "https://img.example/t/matrix-bd.jpg", records[0].Backdrop)
	assert.Equal(t, int64(603), records[0].ExternalID)
	assert.Equal(t, time.Date(1999, time.March, 31, 0, 0, 0, 0, time.UTC), records[0].ReleaseDate)
	assert.Equal(t, "Pulp Fiction", records[1].Title)
}

func TestNowPlayingAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status_message":"Invalid API key"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).NowPlaying(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid API key")
}

func TestNowPlayingHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).NowPlaying(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}

func TestNowPlayingMalformedReleaseDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/movie/now_playing":
			w.Write([]byte(`{"results":[{"id":1,"poster_path":"/a.jpg","backdrop_path":"/b.jpg"}]}`))
		default:
			w.Write([]byte(`{"id":1,"original_title":"X","runtime":100,"vote_average":5,"overview":"","release_date":"soon"}`))
		}
	}))
	defer srv.Close()

	_, err := newTestClient(srv).NowPlaying(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed release date")
}
