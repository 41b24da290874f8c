package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"

	"podcaster/internal/app/podcaster/upload"
)

const (
	// DefaultEndpoint of locally running generation service
	DefaultEndpoint  = "http://127.0.0.1:5000/api/generate-podcast"
	defaultTimeout   = 2 * time.Minute
	fileField        = "file"
	maxResponseBytes = 8 << 20
)

// HTTPClient posts staged file to generation service, single attempt per call
type HTTPClient struct {
	endpoint string
	token    string
	timeout  time.Duration
	http     *http.Client
}

// HTTPOption customizes a client
type HTTPOption func(*HTTPClient)

// WithHTTPClient overrides the HTTP client used for requests
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(c *HTTPClient) {
		if client != nil {
			c.http = client
		}
	}
}

// WithToken sets bearer token sent in Authorization header
func WithToken(token string) HTTPOption {
	return func(c *HTTPClient) {
		c.token = strings.TrimSpace(token)
	}
}

// WithTimeout sets the overall request timeout. A client passed with
// WithHTTPClient is copied, never changed.
func WithTimeout(timeout time.Duration) HTTPOption {
	return func(c *HTTPClient) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// NewHTTPClient makes client for endpoint, DefaultEndpoint if empty
func NewHTTPClient(endpoint string, opts ...HTTPOption) *HTTPClient {
	if strings.TrimSpace(endpoint) == "" {
		endpoint = DefaultEndpoint
	}
	c := &HTTPClient{
		endpoint: endpoint,
		http:     &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 && c.http.Timeout != c.timeout {
		clone := *c.http
		clone.Timeout = c.timeout
		c.http = &clone
	}
	return c
}

type generateResponse struct {
	Summary  string `json:"summary"`
	AudioURL string `json:"audio_url"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Generate uploads file as multipart form and interprets response
func (c *HTTPClient) Generate(ctx context.Context, file upload.StagedFile) Outcome {
	body, contentType, err := packFile(file)
	if err != nil {
		log.Printf("[WARN] can't pack %s, %v", file.Name, err)
		return Failure(&TransportError{Reason: ReasonUnreadable, Cause: err})
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return Failure(&TransportError{Reason: ReasonUnavailable, Cause: err})
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	log.Printf("[DEBUG] post %s (%d bytes) to %s", file.Name, body.Len(), c.endpoint)
	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("[WARN] generation request for %s failed, %v", file.Name, err)
		return Failure(&TransportError{Reason: ReasonUnavailable, Cause: err})
	}
	defer resp.Body.Close() // nolint

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		log.Printf("[WARN] can't read generation response for %s, %v", file.Name, err)
		return Failure(&TransportError{Reason: ReasonUnavailable, Cause: err})
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Failure(&RejectedError{Status: resp.StatusCode, Message: rejectionMessage(resp.StatusCode, payload)})
	}

	var parsed generateResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		log.Printf("[WARN] malformed generation response for %s, %v", file.Name, err)
		return Failure(&TransportError{Reason: ReasonMalformed, Cause: err})
	}
	return Success(parsed.Summary, parsed.AudioURL)
}

func rejectionMessage(status int, payload []byte) string {
	var parsed errorResponse
	if err := json.Unmarshal(payload, &parsed); err == nil && parsed.Error != "" {
		return parsed.Error
	}
	return fmt.Sprintf("Upload failed: %d", status)
}

func packFile(file upload.StagedFile) (*bytes.Buffer, string, error) {
	src, err := file.Open()
	if err != nil {
		return nil, "", fmt.Errorf("open staged file: %w", err)
	}
	defer src.Close() // nolint

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	field, err := writer.CreateFormFile(fileField, file.Name)
	if err != nil {
		return nil, "", fmt.Errorf("create file field: %w", err)
	}
	if _, err := io.Copy(field, src); err != nil {
		return nil, "", fmt.Errorf("copy file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return body, writer.FormDataContentType(), nil
}
