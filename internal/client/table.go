// Package client contains the concrete implementation of the generic
// nocodb.TableClient interface.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	internalhttp "github.com/fivetwenty-io/nocodb-client/internal/http"
	"github.com/fivetwenty-io/nocodb-client/pkg/nocodb"
)

// Endpoint path suffixes of the table API.
const (
	pathCount   = "count"
	pathExists  = "exists"
	pathFindOne = "findOne"
	pathGroupBy = "groupby"
	pathBulk    = "bulk"
)

// Table implements nocodb.TableClient for a single table endpoint.
type Table[T any] struct {
	httpClient *internalhttp.Client
}

// NewTable creates a table client on top of the given transport.
func NewTable[T any](httpClient *internalhttp.Client) *Table[T] {
	return &Table[T]{httpClient: httpClient}
}

// List implements nocodb.TableClient.List. A nil params or unset Limit
// resolves the limit with a single Count call first, so all rows are
// fetched in one request.
func (t *Table[T]) List(ctx context.Context, params *nocodb.QueryParams) ([]T, error) {
	if params == nil {
		params = nocodb.NewQueryParams()
	}

	resolved, err := t.resolveLimit(ctx, params)
	if err != nil {
		return nil, err
	}

	resp, err := t.httpClient.Get(ctx, "", resolved.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}

	return decodeRecords[T](resp.Body)
}

// Count implements nocodb.TableClient.Count.
func (t *Table[T]) Count(ctx context.Context, where string) (int, error) {
	query := url.Values{}
	if where != "" {
		query.Set("where", where)
	}

	resp, err := t.httpClient.Get(ctx, pathCount, query)
	if err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}

	var result struct {
		Count int `json:"count"`
	}

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return 0, fmt.Errorf("parsing count: %w", err)
	}

	return result.Count, nil
}

// FindFirst implements nocodb.TableClient.FindFirst. Only the where,
// offset, sort, and fields parameters apply to the findOne endpoint.
func (t *Table[T]) FindFirst(ctx context.Context, params *nocodb.QueryParams) (T, error) {
	var zero T

	if params == nil {
		params = nocodb.NewQueryParams()
	}

	query := url.Values{}
	query.Set("offset", strconv.Itoa(params.Offset))

	for key, values := range params.ToValues() {
		switch key {
		case "where", "sort", "fields":
			query[key] = values
		}
	}

	resp, err := t.httpClient.Get(ctx, pathFindOne, query)
	if err != nil {
		return zero, fmt.Errorf("finding first record: %w", err)
	}

	var item T

	err = json.Unmarshal(resp.Body, &item)
	if err != nil {
		return zero, fmt.Errorf("parsing record: %w", err)
	}

	return item, nil
}

// ByID implements nocodb.TableClient.ByID. The API answers a miss with an
// empty object rather than a 404, so absence of the id field signals not
// found.
func (t *Table[T]) ByID(ctx context.Context, id int) (T, error) {
	var zero T

	resp, err := t.httpClient.Get(ctx, strconv.Itoa(id), nil)
	if err != nil {
		return zero, fmt.Errorf("getting record: %w", err)
	}

	var raw nocodb.Record

	err = json.Unmarshal(resp.Body, &raw)
	if err != nil {
		return zero, fmt.Errorf("parsing record: %w", err)
	}

	if _, ok := raw[nocodb.IDField]; !ok {
		return zero, fmt.Errorf("no record for id %d: %w", id, nocodb.ErrNotFound)
	}

	var item T

	err = json.Unmarshal(resp.Body, &item)
	if err != nil {
		return zero, fmt.Errorf("binding record: %w", err)
	}

	return item, nil
}

// Exists implements nocodb.TableClient.Exists.
func (t *Table[T]) Exists(ctx context.Context, id int) (bool, error) {
	path := nocodb.BuildURL(strconv.Itoa(id), pathExists)

	resp, err := t.httpClient.Get(ctx, path, nil)
	if err != nil {
		return false, fmt.Errorf("checking record existence: %w", err)
	}

	var exists bool

	err = json.Unmarshal(resp.Body, &exists)
	if err != nil {
		return false, fmt.Errorf("parsing existence response: %w", err)
	}

	return exists, nil
}

// Create implements nocodb.TableClient.Create.
func (t *Table[T]) Create(ctx context.Context, item T) error {
	payload, err := nocodb.EncodeRecord(item, false)
	if err != nil {
		return err
	}

	_, err = t.httpClient.Post(ctx, "", payload)
	if err != nil {
		return fmt.Errorf("creating record: %w", err)
	}

	return nil
}

// CreateBulk implements nocodb.TableClient.CreateBulk.
func (t *Table[T]) CreateBulk(ctx context.Context, items []T) error {
	payload, err := nocodb.EncodeRecords(items, false)
	if err != nil {
		return err
	}

	_, err = t.httpClient.Post(ctx, pathBulk, payload)
	if err != nil {
		return fmt.Errorf("creating records: %w", err)
	}

	return nil
}

// Update implements nocodb.TableClient.Update.
func (t *Table[T]) Update(ctx context.Context, id int, item T) error {
	payload, err := nocodb.EncodeRecord(item, false)
	if err != nil {
		return err
	}

	_, err = t.httpClient.Put(ctx, strconv.Itoa(id), payload)
	if err != nil {
		return fmt.Errorf("updating record: %w", err)
	}

	return nil
}

// BulkUpdate implements nocodb.TableClient.BulkUpdate. The id stays in
// every payload since it identifies the row to modify.
func (t *Table[T]) BulkUpdate(ctx context.Context, items []T) error {
	payload, err := nocodb.EncodeRecords(items, true)
	if err != nil {
		return err
	}

	_, err = t.httpClient.Put(ctx, pathBulk, payload)
	if err != nil {
		return fmt.Errorf("updating records: %w", err)
	}

	return nil
}

// Delete implements nocodb.TableClient.Delete.
func (t *Table[T]) Delete(ctx context.Context, id int) error {
	_, err := t.httpClient.Delete(ctx, strconv.Itoa(id), nil)
	if err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}

	return nil
}

// BulkDelete implements nocodb.TableClient.BulkDelete.
func (t *Table[T]) BulkDelete(ctx context.Context, ids []int) error {
	records := make([]nocodb.Record, 0, len(ids))
	for _, id := range ids {
		records = append(records, nocodb.Record{nocodb.IDField: id})
	}

	payload, err := nocodb.EncodeRecords(records, true)
	if err != nil {
		return err
	}

	_, err = t.httpClient.Delete(ctx, pathBulk, payload)
	if err != nil {
		return fmt.Errorf("deleting records: %w", err)
	}

	return nil
}

// GroupBy implements nocodb.TableClient.GroupBy. Results keep the raw
// server shape; no schema binding applies.
func (t *Table[T]) GroupBy(ctx context.Context, params *nocodb.QueryParams) ([]nocodb.Record, error) {
	if params == nil {
		params = nocodb.NewQueryParams()
	}

	resolved, err := t.resolveLimit(ctx, params)
	if err != nil {
		return nil, err
	}

	resp, err := t.httpClient.Get(ctx, pathGroupBy, resolved.ToValues())
	if err != nil {
		return nil, fmt.Errorf("grouping records: %w", err)
	}

	return decodeRecords[nocodb.Record](resp.Body)
}

// Aggregate implements nocodb.TableClient.Aggregate. Results keep the raw
// server shape; no schema binding applies.
func (t *Table[T]) Aggregate(ctx context.Context, params *nocodb.QueryParams) ([]nocodb.Record, error) {
	if params == nil {
		params = nocodb.NewQueryParams()
	}

	resolved, err := t.resolveLimit(ctx, params)
	if err != nil {
		return nil, err
	}

	resp, err := t.httpClient.Get(ctx, "", resolved.ToValues())
	if err != nil {
		return nil, fmt.Errorf("aggregating records: %w", err)
	}

	return decodeRecords[nocodb.Record](resp.Body)
}

// resolveLimit fills in the limit with the row count when it is unset, so
// one count request followed by one fetch covers the whole table. A copy is
// returned; the caller's params stay untouched.
func (t *Table[T]) resolveLimit(ctx context.Context, params *nocodb.QueryParams) (*nocodb.QueryParams, error) {
	if params.Limit != nil {
		return params, nil
	}

	count, err := t.Count(ctx, params.Where)
	if err != nil {
		return nil, err
	}

	resolved := *params
	resolved.Limit = &count

	return &resolved, nil
}

// decodeRecords parses a JSON array of records, binding each element to T.
func decodeRecords[T any](body []byte) ([]T, error) {
	var items []T

	err := json.Unmarshal(body, &items)
	if err != nil {
		return nil, fmt.Errorf("parsing record list: %w", err)
	}

	return items, nil
}
