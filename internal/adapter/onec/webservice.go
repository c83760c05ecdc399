package onec

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/dibekkz/dibek/internal/core/domain"
	"github.com/dibekkz/dibek/internal/core/port"
	"go.uber.org/zap"
)

const maxResponseBytes = 1 << 20

type webServiceClient struct {
	client        *http.Client
	logger        *zap.Logger
	retryAttempts uint64
	retryDelay    time.Duration
}

type webServiceResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	ExternalID string `json:"external_id"`
}

// export posts the envelope to the 1C endpoint, retrying transient
// failures with a constant delay and honoring Retry-After on 429.
func (c *webServiceClient) export(ctx context.Context, env *envelope, integration *domain.Integration) (*port.ExportResult, error) {
	body, err := json.Marshal(env)
	if err != nil {
		return nil, err
	}

	var result *port.ExportResult

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			integration.EndpointURL, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		if integration.Username != "" {
			req.SetBasicAuth(integration.Username, integration.Password)
		}

		c.logger.Debug("Fire 1C export request",
			zap.String("number", env.DocumentNumber),
			zap.String("endpoint", integration.EndpointURL))

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("request %s: %w", integration.EndpointURL, err)
		}
		defer func() { _ = resp.Body.Close() }()

		respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			result = c.parseResponse(env, integration, respBody)
			return nil
		case resp.StatusCode == http.StatusTooManyRequests:
			wait := c.retryDelay
			if sec, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
				wait = time.Duration(sec) * time.Second
			}
			c.logger.Debug("1C rate limited, waiting",
				zap.String("number", env.DocumentNumber),
				zap.Duration("wait", wait))
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return backoff.Permanent(ctx.Err())
			}
			return fmt.Errorf("1c rate limited: %s", resp.Status)
		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			return backoff.Permanent(fmt.Errorf("1c rejected document: %s", resp.Status))
		default:
			return fmt.Errorf("1c server error: %s", resp.Status)
		}
	}

	err = backoff.Retry(operation, backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.retryDelay), c.retryAttempts), ctx))
	if err != nil {
		return nil, err
	}

	return result, nil
}

// parseResponse keeps the response body in a form the jsonb sync log
// column accepts, wrapping anything that is not JSON.
func (c *webServiceClient) parseResponse(env *envelope, integration *domain.Integration, body []byte) *port.ExportResult {
	wsResp := webServiceResponse{}
	response := body

	if len(body) == 0 {
		response = nil
	} else if err := json.Unmarshal(body, &wsResp); err != nil {
		c.logger.Debug("Unparsable 1C response",
			zap.String("number", env.DocumentNumber), zap.Error(err))
		response, _ = json.Marshal(map[string]string{"raw": string(body)})
	}

	externalID := wsResp.ExternalID
	if externalID == "" {
		externalID = "1C_" + env.DocumentNumber
	}

	return &port.ExportResult{
		ExternalID: externalID,
		Target:     integration.EndpointURL,
		Response:   response,
	}
}
