package nocodb

import (
	"context"
	"time"
)

// IDField is the reserved, server-assigned identifier field of a record.
const IDField = "id"

// Record represents one row of a table as a field-name-to-value mapping.
// It is the untyped record representation; rows pass through without any
// validation.
type Record map[string]any

// ID returns the record's id field as an integer. The second return value
// reports whether a usable id was present. JSON numbers arrive as float64,
// so both numeric and integral forms are accepted.
func (r Record) ID() (int, bool) {
	value, ok := r[IDField]
	if !ok {
		return 0, false
	}

	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// TableClient is a generic client for a single NocoDB table. Instantiate it
// with Record for untyped rows or with a struct type to bind every returned
// JSON object to that struct. Every operation is a stateless, synchronous
// round trip; the client holds no mutable state besides its configuration.
type TableClient[T any] interface {
	// List returns the rows matching params. When params.Limit is nil the
	// row count is determined first and exactly that many rows are fetched.
	List(ctx context.Context, params *QueryParams) ([]T, error)
	// Count returns the number of rows, optionally filtered by where.
	Count(ctx context.Context, where string) (int, error)
	// FindFirst returns the first row matching params.
	FindFirst(ctx context.Context, params *QueryParams) (T, error)
	// ByID returns the row with the given id. A response without an id
	// field fails with ErrNotFound.
	ByID(ctx context.Context, id int) (T, error)
	// Exists reports whether a row with the given id exists.
	Exists(ctx context.Context, id int) (bool, error)
	// Create inserts a single row. The id field is excluded from the
	// payload for struct types; untyped records are sent verbatim.
	Create(ctx context.Context, item T) error
	// CreateBulk inserts multiple rows in one round trip via the bulk
	// endpoint. The id field is excluded from every payload.
	CreateBulk(ctx context.Context, items []T) error
	// Update modifies the row with the given id.
	Update(ctx context.Context, id int, item T) error
	// BulkUpdate modifies multiple rows in one round trip. Each record
	// keeps its id field, which identifies the row to modify.
	BulkUpdate(ctx context.Context, items []T) error
	// Delete removes the row with the given id.
	Delete(ctx context.Context, id int) error
	// BulkDelete removes multiple rows in one round trip.
	BulkDelete(ctx context.Context, ids []int) error
	// GroupBy groups rows by params.ColumnName and returns the raw
	// server-shaped result without schema binding.
	GroupBy(ctx context.Context, params *QueryParams) ([]Record, error)
	// Aggregate applies aggregate functions and returns the raw
	// server-shaped result without schema binding.
	Aggregate(ctx context.Context, params *QueryParams) ([]Record, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a TableClient.
//
// BaseURL is the full table endpoint URL, typically produced with
// BuildURL(apiBase, table). A client is constructed once per table URL and
// the configuration is immutable for its lifetime.
//
// Retries are disabled by default; no request is retried automatically.
// Create and bulk operations are not idempotent, so opting into retries via
// RetryMax is the caller's responsibility.
type Config struct {
	// BaseURL: full URL of the table endpoint.
	BaseURL string
	// AuthToken: JWT authentication token sent in the xc-auth header.
	AuthToken string

	// HTTPTimeout: optional HTTP client timeout. Zero uses the transport
	// default; per-request deadlines should come from the context.
	HTTPTimeout time.Duration
	// RetryMax: maximum number of retries for transient failures. Zero
	// disables retries entirely.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMax time.Duration
	// Debug: enables verbose HTTP request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent: overrides the default User-Agent header sent by the client.
	UserAgent string
}
