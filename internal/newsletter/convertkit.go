package newsletter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/datawithdylan/site/internal/domain/signups"
)

const defaultConvertKitTimeout = 10 * time.Second

// ConvertKitOptions configures a ConvertKitClient.
type ConvertKitOptions struct {
	BaseURL    string
	APIKey     string
	FormID     string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// ConvertKitClient subscribes addresses to a ConvertKit form through the v3 API.
type ConvertKitClient struct {
	path   string
	apiKey string
	rest   *resty.Client
}

// NewConvertKitClient validates opts and builds a client.
func NewConvertKitClient(opts ConvertKitOptions) (*ConvertKitClient, error) {
	if opts.APIKey == "" {
		return nil, errors.New("convertkit: api key is required")
	}
	if opts.FormID == "" {
		return nil, errors.New("convertkit: form id is required")
	}
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = "https://api.convertkit.com"
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("convertkit: invalid base url: %w", err)
	}

	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultConvertKitTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	rest := resty.NewWithClient(client).
		SetBaseURL(base).
		SetHeader("Accept", "application/json")

	return &ConvertKitClient{
		path:   "/v3/forms/" + url.PathEscape(opts.FormID) + "/subscribe",
		apiKey: opts.APIKey,
		rest:   rest,
	}, nil
}

func (c *ConvertKitClient) Name() string { return "convertkit" }

type convertKitRequest struct {
	APIKey    string  `json:"api_key"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name,omitempty"`
	Tags      []int64 `json:"tags,omitempty"`
}

type convertKitResponse struct {
	Subscription *struct {
		ID    int64  `json:"id"`
		State string `json:"state"`
	} `json:"subscription"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Subscribe posts the subscriber to the configured form. No retries are attempted.
func (c *ConvertKitClient) Subscribe(ctx context.Context, sub signups.Subscriber) (signups.Receipt, error) {
	tags := make([]int64, 0, len(sub.Tags))
	for _, t := range sub.Tags {
		id, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return signups.Receipt{}, fmt.Errorf("convertkit: tag %q is not numeric", t)
		}
		tags = append(tags, id)
	}

	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(convertKitRequest{
			APIKey:    c.apiKey,
			Email:     sub.Email,
			FirstName: sub.FirstName,
			Tags:      tags,
		}).
		Post(c.path)
	if err != nil {
		return signups.Receipt{}, fmt.Errorf("convertkit: request: %w", err)
	}

	var decoded convertKitResponse
	decodeErr := json.Unmarshal(resp.Body(), &decoded)

	if !resp.IsSuccess() {
		return signups.Receipt{}, &ProviderError{
			Provider:   c.Name(),
			StatusCode: resp.StatusCode(),
			Code:       decoded.Error,
			Message:    decoded.Message,
		}
	}
	if decodeErr != nil {
		return signups.Receipt{}, fmt.Errorf("convertkit: decode response: %w", decodeErr)
	}
	if decoded.Subscription == nil {
		return signups.Receipt{}, &ProviderError{
			Provider:   c.Name(),
			StatusCode: resp.StatusCode(),
			Message:    "response has no subscription",
		}
	}

	return signups.Receipt{
		Reference: strconv.FormatInt(decoded.Subscription.ID, 10),
		State:     decoded.Subscription.State,
	}, nil
}
