package rest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tradingiq/pacifica-client/types"

	"github.com/cenkalti/backoff/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// response is the envelope every endpoint answers with.
type response struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    *int            `json:"code"`
}

func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body []byte) (json.RawMessage, error) {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var env response
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode >= 400 {
		if decodeErr == nil && env.Error != "" {
			return nil, newAPIError(resp.StatusCode, env.Error, env.Code, raw)
		}
		return nil, newAPIError(resp.StatusCode, "", nil, raw)
	}

	if decodeErr != nil || env.Success == nil {
		return nil, fmt.Errorf("%w: %s %s", ErrInvalidResponse, method, path)
	}
	if !*env.Success {
		return nil, newAPIError(resp.StatusCode, env.Error, env.Code, raw)
	}
	return env.Data, nil
}

// doWithRetry retries 429 and 5xx responses with exponential backoff.
func (c *Client) doWithRetry(ctx context.Context, method, path string, query url.Values) (json.RawMessage, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryBackoff

	operation := func() (json.RawMessage, error) {
		data, err := c.doRequest(ctx, method, path, query, nil)
		if err == nil {
			return data, nil
		}

		var apiErr *APIError
		if !errors.As(err, &apiErr) || !apiErr.IsRetryable() {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	notify := func(err error, delay time.Duration) {
		c.logger.Debug("Retrying request", zap.String("path", path), zap.Duration("backoff", delay), zap.Error(err))
	}

	data, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(c.maxTries),
		backoff.WithNotify(notify),
	)
	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		return nil, permanent.Err
	}
	return data, err
}

// get performs a GET with retries and decodes data into result. When
// channel has an abbreviated-key table the data is expanded first.
func (c *Client) get(ctx context.Context, path string, query url.Values, channel types.Channel, result any) error {
	data, err := c.doWithRetry(ctx, http.MethodGet, path, query)
	if err != nil {
		return err
	}
	return decode(channel, data, result)
}

// post signs data for operationType and sends it once.
func (c *Client) post(ctx context.Context, path, operationType string, request any, result any) error {
	if c.signer == nil {
		return ErrSignerNotConfigured
	}

	data, err := types.ToPayload(request)
	if err != nil {
		return err
	}
	signed, err := c.signer.SignRequest(operationType, data)
	if err != nil {
		return fmt.Errorf("failed to sign %s: %w", operationType, err)
	}

	body, err := json.Marshal(signed)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	raw, err := c.doRequest(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return err
	}
	c.logger.Debug("Sent signed request", zap.String("path", path), zap.String("type", operationType))

	if result == nil {
		return nil
	}
	return decode("", raw, result)
}

func decode(channel types.Channel, data json.RawMessage, result any) error {
	if channel != "" {
		expanded, err := types.ExpandPayload(channel, data)
		if err != nil {
			return err
		}
		data = expanded
	}
	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
