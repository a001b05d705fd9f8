package recognizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// ErrUnavailable means the face service could not be reached or answered
// with something we cannot parse. This is a dependency failure, not the
// same thing as "face not recognized" (which is a normal result).
var ErrUnavailable = errors.New("face recognition service unavailable")

// Match is a successful identification: the stable employee number the face
// service was enrolled with, plus its confidence score.
type Match struct {
	EmployeeNumber string
	Confidence     float64
}

// Client is the boundary to the face recognition service. Identify returns
// (nil, nil) on no-match. Implementations make at most one outbound call
// per invocation; retrying is the caller's decision.
type Client interface {
	Identify(ctx context.Context, image []byte, filename string) (*Match, error)
	Enroll(ctx context.Context, employeeNumber string, name string, image []byte, filename string) error
}

type identifyResponse struct {
	Success        bool    `json:"success"`
	EmployeeNumber string  `json:"employee_number"`
	Confidence     float64 `json:"confidence"`
	Message        string  `json:"message"`
}

type enrollResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HTTPClient talks to the face service over HTTP with multipart uploads.
// Every call is bounded by the client timeout; a timeout is reported as
// ErrUnavailable like any other transport failure.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Identify(ctx context.Context, image []byte, filename string) (*Match, error) {
	var result identifyResponse
	if err := c.post(ctx, "/identify", nil, image, filename, &result); err != nil {
		return nil, err
	}
	if !result.Success {
		// Not recognized. The service answered fine, it just found nobody.
		return nil, nil
	}
	return &Match{EmployeeNumber: result.EmployeeNumber, Confidence: result.Confidence}, nil
}

func (c *HTTPClient) Enroll(ctx context.Context, employeeNumber string, name string, image []byte, filename string) error {
	fields := map[string]string{
		"employee_number": employeeNumber,
		"name":            name,
	}
	var result enrollResponse
	if err := c.post(ctx, "/enroll", fields, image, filename, &result); err != nil {
		return err
	}
	if !result.Success {
		if result.Message == "" {
			result.Message = "enrollment rejected"
		}
		return errors.New(result.Message)
	}
	return nil
}

func (c *HTTPClient) post(ctx context.Context, path string, fields map[string]string, image []byte, filename string, out interface{}) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}
	if filename == "" {
		filename = "capture.jpg"
	}
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if _, err := part.Write(image); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
