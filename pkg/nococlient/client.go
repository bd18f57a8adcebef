package nococlient

import (
	"strings"

	"github.com/fivetwenty-io/nocodb-client/internal/client"
	internalhttp "github.com/fivetwenty-io/nocodb-client/internal/http"
	"github.com/fivetwenty-io/nocodb-client/pkg/nocodb"
)

// New creates a table client for the endpoint named by config.BaseURL.
// Instantiate with nocodb.Record for untyped rows, or with a struct type to
// bind every returned row to it.
func New[T any](config *nocodb.Config) (nocodb.TableClient[T], error) {
	if config == nil {
		return nil, nocodb.ErrNilConfig
	}

	if config.BaseURL == "" {
		return nil, nocodb.ErrBaseURLRequired
	}

	// Normalize the endpoint
	baseURL := strings.TrimSuffix(config.BaseURL, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	httpClient := internalhttp.NewClient(baseURL, config.AuthToken, httpOptions(config)...)

	return client.NewTable[T](httpClient), nil
}

// httpOptions builds transport options from the config.
func httpOptions(config *nocodb.Config) []internalhttp.Option {
	var opts []internalhttp.Option

	if config.Logger != nil {
		opts = append(opts, internalhttp.WithLogger(config.Logger))
	}

	if config.Debug {
		opts = append(opts, internalhttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, internalhttp.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		opts = append(opts, internalhttp.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		opts = append(opts, internalhttp.WithRetryConfig(config.RetryMax, config.RetryWaitMin, config.RetryWaitMax))
	}

	return opts
}
