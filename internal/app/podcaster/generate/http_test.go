package generate

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"podcaster/internal/app/podcaster/upload"
)

func stage(t *testing.T, name, data string) upload.StagedFile {
	s := &upload.Selector{}
	f, err := s.Select(upload.FromBytes(name, []byte(data)))
	require.NoError(t, err)
	return f
}

func TestHTTPClientSuccessWithAudio(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer tkn", r.Header.Get("Authorization"))

		file, header, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer file.Close()
		assert.Equal(t, "report.pdf", header.Filename)
		data, err := io.ReadAll(file)
		assert.NoError(t, err)
		assert.Equal(t, "pdf-bytes", string(data))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"summary":"ok","audio_url":"http://x/a.mp3"}`))
	}))
	defer ts.Close()

	c := NewHTTPClient(ts.URL, WithToken("tkn"))
	out := c.Generate(context.Background(), stage(t, "report.pdf", "pdf-bytes"))
	require.True(t, out.OK(), out.Err)
	assert.Equal(t, "ok", out.Summary)
	assert.Equal(t, "http://x/a.mp3", out.AudioURL)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestHTTPClientSuccessDefaults(t *testing.T) {
	tbl := []struct {
		name    string
		body    string
		summary string
		audio   string
	}{
		{"summary only", `{"summary":"s1"}`, "s1", ""},
		{"null audio", `{"summary":"s1","audio_url":null}`, "s1", ""},
		{"empty audio", `{"summary":"s1","audio_url":""}`, "s1", ""},
		{"no summary", `{"audio_url":"http://x/a.mp3"}`, NoSummary, "http://x/a.mp3"},
		{"empty summary", `{"summary":""}`, NoSummary, ""},
		{"empty object", `{}`, NoSummary, ""},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			out := NewHTTPClient(ts.URL).Generate(context.Background(), stage(t, "notes.txt", "text"))
			require.True(t, out.OK(), out.Err)
			assert.Equal(t, tt.summary, out.Summary)
			assert.Equal(t, tt.audio, out.AudioURL)
		})
	}
}

func TestHTTPClientRejected(t *testing.T) {
	tbl := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"structured error", http.StatusInternalServerError, `{"error":"bad file"}`, "bad file"},
		{"plain body", http.StatusBadGateway, `upstream broke`, "Upload failed: 502"},
		{"empty error", http.StatusBadRequest, `{"error":""}`, "Upload failed: 400"},
		{"no body", http.StatusTooManyRequests, ``, "Upload failed: 429"},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			out := NewHTTPClient(ts.URL).Generate(context.Background(), stage(t, "notes.txt", "text"))
			require.False(t, out.OK())
			assert.Equal(t, tt.message, out.Message())

			var rejected *RejectedError
			require.True(t, errors.As(out.Err, &rejected))
			assert.Equal(t, tt.status, rejected.Status)
		})
	}
}

func TestHTTPClientMalformedSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	}))
	defer ts.Close()

	out := NewHTTPClient(ts.URL).Generate(context.Background(), stage(t, "notes.txt", "text"))
	require.False(t, out.OK())
	assert.Equal(t, ReasonMalformed, out.Message())
	var transport *TransportError
	assert.True(t, errors.As(out.Err, &transport))
}

func TestHTTPClientUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	out := NewHTTPClient(url).Generate(context.Background(), stage(t, "notes.txt", "text"))
	require.False(t, out.OK())
	assert.Equal(t, ReasonUnavailable, out.Message())
}

func TestHTTPClientTimeout(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer ts.Close()
	defer close(release)

	out := NewHTTPClient(ts.URL, WithTimeout(50*time.Millisecond)).Generate(context.Background(), stage(t, "notes.txt", "text"))
	require.False(t, out.OK())
	assert.Equal(t, ReasonUnavailable, out.Message())
}

func TestHTTPClientUnreadableFile(t *testing.T) {
	s := &upload.Selector{}
	f, err := s.Select(upload.Candidate{Name: "gone.txt", Open: func() (io.ReadCloser, error) {
		return nil, errors.New("file vanished")
	}})
	require.NoError(t, err)

	out := NewHTTPClient("http://127.0.0.1:1").Generate(context.Background(), f)
	require.False(t, out.OK())
	assert.Equal(t, ReasonUnreadable, out.Message())
}

func TestNewHTTPClientDefaultEndpoint(t *testing.T) {
	c := NewHTTPClient(" ")
	assert.Equal(t, DefaultEndpoint, c.endpoint)
	assert.Equal(t, defaultTimeout, c.http.Timeout)
}

func TestWithTimeoutKeepsSharedClient(t *testing.T) {
	shared := &http.Client{Timeout: 10 * time.Second}

	before := NewHTTPClient("http://example.com", WithTimeout(time.Second), WithHTTPClient(shared))
	after := NewHTTPClient("http://example.com", WithHTTPClient(shared), WithTimeout(3*time.Second))

	assert.Equal(t, 10*time.Second, shared.Timeout, "shared client untouched")
	assert.Equal(t, time.Second, before.http.Timeout)
	assert.Equal(t, 3*time.Second, after.http.Timeout)
	assert.NotSame(t, shared, before.http)
	assert.NotSame(t, shared, after.http)

	plain := NewHTTPClient("http://example.com", WithHTTPClient(shared))
	assert.Same(t, shared, plain.http, "no timeout option uses client as is")

	zero := NewHTTPClient("http://example.com", WithHTTPClient(shared), WithTimeout(0))
	assert.Same(t, shared, zero.http)
}
