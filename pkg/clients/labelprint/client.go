package labelprint

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/warewise/slotkeeper/internal/config"
)

// Client exposes the external label-print service operations used by the
// application. The service renders QR labels from the tokens the core encodes.
type Client interface {
	SubmitJob(ctx context.Context, req PrintJobRequest) (*PrintJobResponse, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a label-print API client using the provided configuration values.
func NewClient(cfg config.LabelPrintConfig) *APIClient {
	base := strings.TrimSuffix(cfg.BaseURL, "/")

	restyClient := resty.New()
	restyClient.
		SetBaseURL(base).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey)).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{httpClient: restyClient}
}

// Label is one printable label: the encoded token plus its caption.
type Label struct {
	Token   string `json:"token"`
	Caption string `json:"caption"`
}

// PrintJobRequest batches labels into one render job.
type PrintJobRequest struct {
	Labels []Label `json:"labels"`
}

// PrintJobResponse mirrors the successful response from the print service.
type PrintJobResponse struct {
	JobID string `json:"job_id"`
	Count int    `json:"count"`
}

// apiError represents the print service error payload.
type apiError struct {
	Error struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// SubmitJob sends the labels to the render service and returns the job handle.
func (c *APIClient) SubmitJob(ctx context.Context, req PrintJobRequest) (*PrintJobResponse, error) {
	if len(req.Labels) == 0 {
		return nil, fmt.Errorf("print job must contain at least one label")
	}

	result := new(PrintJobResponse)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(result).
		SetError(apiErr).
		Post("/v1/print-jobs")
	if err != nil {
		return nil, fmt.Errorf("submit print job: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := ""
		code := resp.StatusCode()
		if apiErr != nil {
			message = apiErr.Error.Message
			if apiErr.Error.Code != 0 {
				code = apiErr.Error.Code
			}
		}
		return nil, fmt.Errorf("label print api error: code=%d, message=%s", code, message)
	}

	return result, nil
}
