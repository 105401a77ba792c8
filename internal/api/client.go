// Package api is the REST client for the Astra Cinemas backend. Every
// call is a single attempt: no retry, no timeout beyond the transport
// default, errors reported as *Error (backend answered) or a wrapped
// transport error (request never completed).
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func NewClient(baseURL string, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		// Browser-default request lifecycle: no client-side timeout.
		http: &http.Client{},
		log:  log.With(zap.String("service", "api")),
	}
}

// errorBody is the wire shape of backend error payloads. Either field
// may carry the message.
type errorBody struct {
	Mensagem string `json:"mensagem"`
	Erro     string `json:"erro"`
}

// do issues one request and decodes a 2xx JSON body into out (out may
// be nil). Non-2xx responses become *Error with the backend's message
// extracted verbatim when parsable.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("Request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(resp, method, path)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response of %s %s: %w", method, path, err)
	}

	return nil
}

func (c *Client) decodeError(resp *http.Response, method, path string) error {
	apiErr := &Error{Status: resp.StatusCode}

	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		switch {
		case body.Mensagem != "":
			apiErr.Mensagem = body.Mensagem
		case body.Erro != "":
			apiErr.Mensagem = body.Erro
		}
	}

	if apiErr.Mensagem == "" {
		apiErr.Mensagem = GenericFailure
		apiErr.Generic = true
	}

	c.log.Warn("Backend error",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("mensagem", apiErr.Mensagem),
	)

	return apiErr
}
