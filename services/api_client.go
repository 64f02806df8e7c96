package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nomad-coffee/client/internal/types"
)

var ErrUnauthorized = errors.New("unauthorized")

// GraphQLError is returned when the server answers with a non-empty "errors" array.
type GraphQLError struct {
	Errors []types.GraphQLError
}

func (e *GraphQLError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, ge := range e.Errors {
		msgs = append(msgs, ge.Message)
	}
	return "graphql: " + strings.Join(msgs, "; ")
}

// TokenSource hands out the current session token, or "" when logged out.
// *core.Session satisfies it.
type TokenSource interface {
	Token() string
}

// ApiClient posts GraphQL operations to a single endpoint.
type ApiClient struct {
	Endpoint   string
	HTTPClient *http.Client
	tokens     TokenSource
	log        *logrus.Entry
}

// NewApiClient returns a client for endpoint. tokens may be nil, in which case
// requests carry no Authorization header.
func NewApiClient(endpoint string, httpClient *http.Client, tokens TokenSource, log *logrus.Entry) *ApiClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &ApiClient{
		Endpoint:   endpoint,
		HTTPClient: httpClient,
		tokens:     tokens,
		log:        log.WithField("component", "api"),
	}
}

// prepareRequest creates a new HTTP request with proper headers for a GraphQL body
func (c *ApiClient) prepareRequest(ctx context.Context, body types.GraphQLRequest) (*http.Request, string, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal request data: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	return req, requestID, nil
}

func (c *ApiClient) token() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

// Mutate runs a GraphQL operation and decodes its "data" member into out.
func (c *ApiClient) Mutate(ctx context.Context, operationName, query string, variables map[string]interface{}, out interface{}) error {
	req, requestID, err := c.prepareRequest(ctx, types.GraphQLRequest{
		OperationName: operationName,
		Query:         query,
		Variables:     variables,
	})
	if err != nil {
		return err
	}
	log := c.log.WithFields(logrus.Fields{
		"operation":  operationName,
		"request_id": requestID,
	})
	log.Debug("Sending GraphQL request")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		log.Warn("Unauthorized response")
		return ErrUnauthorized
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("API call failed with status: %s, body: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}

	var envelope struct {
		Data   json.RawMessage      `json:"data"`
		Errors []types.GraphQLError `json:"errors"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return fmt.Errorf("failed to parse response JSON: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return &GraphQLError{Errors: envelope.Errors}
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return errors.New("graphql: response has no data")
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to parse response data: %w", err)
	}
	log.Debug("GraphQL request completed")
	return nil
}
