// Package llm provides a resilient OpenAI compatible chat completions client
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	perr "chatguard/internal/platform/errors"
	"chatguard/internal/platform/logger"
)

const (
	baseURLDefault   = "http://localhost:1234/v1"
	modelDefault     = "gpt-4o-mini"
	defaultTimeout   = 30 * time.Second
	defaultMaxRetry  = 2
	defaultRetryBase = 500 * time.Millisecond
	defaultMaxTokens = 1000
	maxErrBody       = 2048
	maxRespBody      = 1 << 20
)

// Options configures the Client
type Options struct {
	BaseURL   string
	Model     string
	APIKey    string
	Timeout   time.Duration
	MaxTokens int

	// Retry config for transient and rate limited responses
	MaxRetries int
	RetryBase  time.Duration
}

// Client talks to a /chat/completions endpoint
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	now   func() time.Time
	sleep func(time.Duration)
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.Model == "" {
		o.Model = modelDefault
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = defaultMaxTokens
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	} else if o.MaxRetries == 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   *logger.Named("llm"),
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// Model returns the configured model name
func (c *Client) Model() string { return c.opts.Model }

// Chat sends msgs and returns the content of the first choice
func (c *Client) Chat(ctx context.Context, msgs []Message, temperature float64) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model:       c.opts.Model,
		Messages:    msgs,
		Temperature: temperature,
		MaxTokens:   c.opts.MaxTokens,
	})
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnknown, "llm marshal request failed")
	}

	resp, err := c.do(ctx, payload)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Msg("llm close body failed")
		}
	}()

	var out chatResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxRespBody)).Decode(&out); err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnavailable, "llm decode response failed")
	}
	if len(out.Choices) == 0 {
		return "", perr.Unavailablef("llm returned no choices")
	}
	return out.Choices[0].Message.Content, nil
}

// do posts payload with retries on transport errors, 429 and 5xx gateways
func (c *Client) do(ctx context.Context, payload []byte) (*http.Response, error) {
	url := c.opts.BaseURL + "/chat/completions"
	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "llm new request failed")
		}
		req.Header.Set("Content-Type", "application/json")
		if c.opts.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
		}

		start := c.now()
		resp, err := c.http.Do(req)
		lat := c.now().Sub(start)

		if err != nil {
			if ctx.Err() != nil || !c.shouldRetry(attempts) {
				return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "llm request failed")
			}
			back := c.backoff(attempts)
			c.log.Warn().Err(err).Dur("retry_in", back).Int("attempt", attempts).Msg("llm transport error retrying")
			c.sleep(back)
			attempts++
			continue
		}

		c.log.Debug().
			Str("model", c.opts.Model).
			Int("status", resp.StatusCode).
			Int("attempt", attempts).
			Dur("latency", lat).
			Msg("llm http response")

		switch resp.StatusCode {
		case http.StatusOK:
			return resp, nil
		case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			_ = drainAndClose(resp.Body)
			if !c.shouldRetry(attempts) {
				return nil, &StatusError{
					Status: resp.StatusCode,
					Err:    perr.Unavailablef("llm unavailable status %d", resp.StatusCode),
				}
			}
			back := c.backoff(attempts)
			c.log.Warn().Int("status", resp.StatusCode).Dur("retry_in", back).Msg("llm transient error retrying")
			c.sleep(back)
			attempts++
			continue
		default:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBody))
			_ = resp.Body.Close()
			return nil, &StatusError{
				Status: resp.StatusCode,
				Body:   string(body),
				Err:    perr.Unavailablef("llm unexpected status %d body %s", resp.StatusCode, string(body)),
			}
		}
	}
}

func (c *Client) backoff(attempt int) time.Duration {
	ms := int64(c.opts.RetryBase/time.Millisecond) << uint(attempt)
	capMs := int64(10 * time.Second / time.Millisecond)
	if ms > capMs {
		ms = capMs
	}
	return time.Duration(ms) * time.Millisecond
}

func (c *Client) shouldRetry(attempt int) bool {
	return attempt < c.opts.MaxRetries
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	return rc.Close()
}
