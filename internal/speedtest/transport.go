package speedtest

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/sourcli/sour/internal/errors"
)

// Default measurement endpoints. Download endpoints serve large static
// payloads; the upload endpoint accepts arbitrary POST bodies.
var DefaultEndpoints = []string{
	"https://fsn1-speed.hetzner.com/100MB.bin",
	"https://speed.cloudflare.com/__down?bytes=104857600",
}

const DefaultUploadURL = "https://speed.cloudflare.com/__up"

// HTTPTransport measures bandwidth with plain HTTP transfers.
type HTTPTransport struct {
	Endpoints []string
	UploadURL string
	Client    *http.Client
}

// NewHTTPTransport creates a transport with the given endpoints, falling
// back to the defaults when none are configured.
func NewHTTPTransport(endpoints []string, uploadURL string) *HTTPTransport {
	if len(endpoints) == 0 {
		endpoints = DefaultEndpoints
	}
	if uploadURL == "" {
		uploadURL = DefaultUploadURL
	}
	return &HTTPTransport{
		Endpoints: endpoints,
		UploadURL: uploadURL,
		Client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// PickEndpoint probes the configured endpoints in order and returns the
// first reachable one.
func (t *HTTPTransport) PickEndpoint(ctx context.Context) (string, error) {
	var lastErr error
	for _, endpoint := range t.Endpoints {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, endpoint, nil)
		if err != nil {
			lastErr = err
			continue
		}
		resp, err := t.Client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		resp.Body.Close()
		if resp.StatusCode < 400 {
			return endpoint, nil
		}
		lastErr = errors.New(errors.ErrSpeedtest,
			"Endpoint returned "+resp.Status, "")
	}
	if lastErr == nil {
		lastErr = errors.New(errors.ErrSpeedtest, "No endpoints configured", "")
	}
	return "", lastErr
}

// DownloadChunk fetches up to size bytes from the endpoint and discards
// them, returning the number of bytes read.
func (t *HTTPTransport) DownloadChunk(ctx context.Context, endpoint string, size int64) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}
	resp, err := t.Client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return 0, errors.New(errors.ErrSpeedtest, "Download returned "+resp.Status, "")
	}

	n, err := io.CopyN(io.Discard, resp.Body, size)
	if err == io.EOF {
		// Payload shorter than the chunk; the bytes read still count.
		err = nil
	}
	return n, err
}

// UploadChunk posts size bytes of zeros to the upload endpoint.
func (t *HTTPTransport) UploadChunk(ctx context.Context, size int64) (int64, error) {
	payload := make([]byte, size)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.UploadURL, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := t.Client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return 0, errors.New(errors.ErrSpeedtest, "Upload returned "+resp.Status, "")
	}
	return size, nil
}
