package client

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/soulblade33/filerobot-uploader/tool"
)

// ProgressFunc receives the number of body bytes written so far and the total
// body size. It is called repeatedly while the request body is transferred.
type ProgressFunc func(loaded, total int64)

// RequestError is returned when the server answers with a non-2xx status. The
// response body is preserved so callers can extract the error payload.
type RequestError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed: %s", e.Status)
}

// progressReader counts bytes handed to the HTTP transport and reports them.
type progressReader struct {
	r          io.Reader
	loaded     int64
	total      int64
	onProgress ProgressFunc
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	if n > 0 {
		p.loaded += int64(n)
		p.onProgress(p.loaded, p.total)
	}
	return n, err
}

// Send issues a single HTTP request and returns the raw response body.
// A network failure or a non-2xx status is returned as an error; interpreting
// the error payload is the caller's job. No retry is performed.
func Send(ctx context.Context, urlStr, method string, body io.Reader, bodySize int64, headers map[string]string, onProgress ProgressFunc) ([]byte, error) {
	reqBody := body
	if body != nil && onProgress != nil {
		reqBody = &progressReader{r: body, total: bodySize, onProgress: onProgress}
	}

	req, err := http.NewRequestWithContext(ctx, method, urlStr, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %v", method, err)
	}
	for name, value := range headers {
		req.Header.Set(name, value)
	}

	client := tool.GetHttpClient()
	if method == http.MethodPost && body != nil {
		// uploads can outlive the API client timeout
		client = tool.GetUploadHttpClient()
	}
	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return nil, fmt.Errorf("failed to send %s request to %s: %v", method, urlStr, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			tool.DefaultLogger.Errorf("Failed to close response body: %v", err)
		}
	}()

	respBody, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return nil, fmt.Errorf("failed to read response body: %v", readErr)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &RequestError{StatusCode: resp.StatusCode, Status: resp.Status, Body: respBody}
	}
	return respBody, nil
}
