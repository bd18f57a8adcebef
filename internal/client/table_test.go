package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/nocodb-client/internal/client"
	internalhttp "github.com/fivetwenty-io/nocodb-client/internal/http"
	"github.com/fivetwenty-io/nocodb-client/pkg/nocodb"
)

type invoice struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

func newTestTable[T any](t *testing.T, handler http.HandlerFunc) (*client.Table[T], *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	httpClient := internalhttp.NewClient(server.URL+"/api/v1/invoices", "token")

	return client.NewTable[T](httpClient), server
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestTable_List(t *testing.T) {
	t.Parallel()
	t.Run("explicit limit issues a single request", func(t *testing.T) {
		t.Parallel()

		var requests []string

		table, _ := newTestTable[nocodb.Record](t, func(writer http.ResponseWriter, request *http.Request) {
			requests = append(requests, request.URL.Path)
			assert.Equal(t, "10", request.URL.Query().Get("limit"))
			assert.Equal(t, "0", request.URL.Query().Get("offset"))
			_ = json.NewEncoder(writer).Encode([]map[string]any{{"id": 1, "name": "acme"}})
		})

		records, err := table.List(context.Background(), nocodb.NewQueryParams().WithLimit(10))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "acme", records[0]["name"])
		assert.Equal(t, []string{"/api/v1/invoices"}, requests)
	})

	t.Run("unset limit counts first then fetches everything", func(t *testing.T) {
		t.Parallel()

		var requests []string

		table, _ := newTestTable[nocodb.Record](t, func(writer http.ResponseWriter, request *http.Request) {
			requests = append(requests, request.URL.Path)

			if request.URL.Path == "/api/v1/invoices/count" {
				_ = json.NewEncoder(writer).Encode(map[string]int{"count": 3})

				return
			}

			assert.Equal(t, "3", request.URL.Query().Get("limit"))
			_ = json.NewEncoder(writer).Encode([]map[string]any{
				{"id": 1}, {"id": 2}, {"id": 3},
			})
		})

		records, err := table.List(context.Background(), nil)
		require.NoError(t, err)
		assert.Len(t, records, 3)
		assert.Equal(t, []string{"/api/v1/invoices/count", "/api/v1/invoices"}, requests)
	})

	t.Run("count reuses the where filter", func(t *testing.T) {
		t.Parallel()

		table, _ := newTestTable[nocodb.Record](t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "(status,eq,open)", request.URL.Query().Get("where"))

			if request.URL.Path == "/api/v1/invoices/count" {
				_ = json.NewEncoder(writer).Encode(map[string]int{"count": 1})

				return
			}

			_ = json.NewEncoder(writer).Encode([]map[string]any{{"id": 1}})
		})

		records, err := table.List(context.Background(), nocodb.NewQueryParams().WithWhere("(status,eq,open)"))
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("caller params stay untouched", func(t *testing.T) {
		t.Parallel()

		table, _ := newTestTable[nocodb.Record](t, func(writer http.ResponseWriter, request *http.Request) {
			if request.URL.Path == "/api/v1/invoices/count" {
				_ = json.NewEncoder(writer).Encode(map[string]int{"count": 2})

				return
			}

			_ = json.NewEncoder(writer).Encode([]map[string]any{})
		})

		params := nocodb.NewQueryParams()

		_, err := table.List(context.Background(), params)
		require.NoError(t, err)
		assert.Nil(t, params.Limit)
	})

	t.Run("binds to a typed schema", func(t *testing.T) {
		t.Parallel()

		table, _ := newTestTable[invoice](t, func(writer http.ResponseWriter, request *http.Request) {
			_ = json.NewEncoder(writer).Encode([]map[string]any{
				{"id": 1, "name": "acme", "amount": 12.5},
			})
		})

		records, err := table.List(context.Background(), nocodb.NewQueryParams().WithLimit(5))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, invoice{ID: 1, Name: "acme", Amount: 12.5}, records[0])
	})
}

func TestTable_Count(t *testing.T) {
	t.Parallel()
	t.Run("parses the count field", func(t *testing.T) {
		t.Parallel()

		table, _ := newTestTable[nocodb.Record](t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/v1/invoices/count", request.URL.Path)
			assert.Empty(t, request.URL.Query().Get("where"))
			_ = json.NewEncoder(writer).Encode(map[string]int{"count": 42})
		})

		count, err := table.Count(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, 42, count)
	})

	t.Run("passes the where filter", func(t *testing.T) {
		t.Parallel()

		table, _ := newTestTable[nocodb.Record](t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "(amount,gt,100)", request.URL.Query().Get("where"))
			_ = json.NewEncoder(writer).Encode(map[string]int{"count": 7})
		})

		count, err := table.Count(context.Background(), "(amount,gt,100)")
		require.NoError(t, err)
		assert.Equal(t, 7, count)
	})
}

func TestTable_FindFirst(t *testing.T) {
	t.Parallel()

	table, _ := newTestTable[nocodb.Record](t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/invoices/findOne", request.URL.Path)
		assert.Equal(t, "(status,eq,open)", request.URL.Query().Get("where"))
		assert.Equal(t, "-created_at", request.URL.Query().Get("sort"))
		assert.Equal(t, "5", request.URL.Query().Get("offset"))
		assert.False(t, request.URL.Query().Has("limit"))
		_ = json.NewEncoder(writer).Encode(map[string]any{"id": 9, "name": "acme"})
	})

	params := nocodb.NewQueryParams().
		WithWhere("(status,eq,open)").
		WithSort("-created_at").
		WithOffset(5).
		WithLimit(99)

	record, err := table.FindFirst(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, "acme", record["name"])
}

func TestTable_ByID(t *testing.T) {
	t.Parallel()
	t.Run("found", func(t *testing.T) {
		t.Parallel()

		table, _ := newTestTable[invoice](t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/v1/invoices/7", request.URL.Path)
			_ = json.NewEncoder(writer).Encode(map[string]any{"id": 7, "name": "acme"})
		})

		record, err := table.ByID(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, 7, record.ID)
		assert.Equal(t, "acme", record.Name)
	})

	t.Run("empty object means not found", func(t *testing.T) {
		t.Parallel()

		table, _ := newTestTable[invoice](t, func(writer http.ResponseWriter, request *http.Request) {
			_, _ = writer.Write([]byte(`{}`))
		})

		_, err := table.ByID(context.Background(), 7)
		require.Error(t, err)
		assert.True(t, nocodb.IsNotFound(err))
		assert.Contains(t, err.Error(), "no record for id 7")
	})
}

func TestTable_Exists(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		expected bool
	}{
		{name: "exists", body: "true", expected: true},
		{name: "does not exist", body: "false", expected: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			table, _ := newTestTable[nocodb.Record](t, func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, "/api/v1/invoices/3/exists", request.URL.Path)
				_, _ = writer.Write([]byte(tt.body))
			})

			exists, err := table.Exists(context.Background(), 3)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, exists)
		})
	}
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestTable_Mutations(t *testing.T) {
	t.Parallel()
	t.Run("Create strips the id", func(t *testing.T) {
		t.Parallel()

		table, _ := newTestTable[invoice](t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "/api/v1/invoices", request.URL.Path)

			var body map[string]any

			_ = json.NewDecoder(request.Body).Decode(&body)
			assert.NotContains(t, body, "id")
			assert.Equal(t, "acme", body["name"])

			writer.WriteHeader(http.StatusCreated)
		})

		err := table.Create(context.Background(), invoice{ID: 5, Name: "acme"})
		require.NoError(t, err)
	})

	t.Run("CreateBulk posts to the bulk endpoint", func(t *testing.T) {
		t.Parallel()

		table, _ := newTestTable[invoice](t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "/api/v1/invoices/bulk", request.URL.Path)

			var body []map[string]any

			_ = json.NewDecoder(request.Body).Decode(&body)
			require.Len(t, body, 2)
			assert.NotContains(t, body[0], "id")

			writer.WriteHeader(http.StatusOK)
		})

		err := table.CreateBulk(context.Background(), []invoice{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}})
		require.NoError(t, err)
	})

	t.Run("Update puts to the record path", func(t *testing.T) {
		t.Parallel()

		table, _ := newTestTable[invoice](t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "PUT", request.Method)
			assert.Equal(t, "/api/v1/invoices/5", request.URL.Path)
			writer.WriteHeader(http.StatusOK)
		})

		err := table.Update(context.Background(), 5, invoice{Name: "renamed"})
		require.NoError(t, err)
	})

	t.Run("BulkUpdate keeps ids in the payload", func(t *testing.T) {
		t.Parallel()

		table, _ := newTestTable[invoice](t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "PUT", request.Method)
			assert.Equal(t, "/api/v1/invoices/bulk", request.URL.Path)

			var body []map[string]any

			_ = json.NewDecoder(request.Body).Decode(&body)
			require.Len(t, body, 2)
			assert.InEpsilon(t, float64(1), body[0]["id"], 1e-9)
			assert.InEpsilon(t, float64(2), body[1]["id"], 1e-9)

			writer.WriteHeader(http.StatusOK)
		})

		err := table.BulkUpdate(context.Background(), []invoice{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}})
		require.NoError(t, err)
	})

	t.Run("Delete targets the record path", func(t *testing.T) {
		t.Parallel()

		table, _ := newTestTable[nocodb.Record](t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "DELETE", request.Method)
			assert.Equal(t, "/api/v1/invoices/9", request.URL.Path)
			writer.WriteHeader(http.StatusOK)
		})

		err := table.Delete(context.Background(), 9)
		require.NoError(t, err)
	})

	t.Run("BulkDelete sends id-only records", func(t *testing.T) {
		t.Parallel()

		table, _ := newTestTable[nocodb.Record](t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "DELETE", request.Method)
			assert.Equal(t, "/api/v1/invoices/bulk", request.URL.Path)

			var body []map[string]any

			_ = json.NewDecoder(request.Body).Decode(&body)
			require.Len(t, body, 3)

			for index, expected := range []float64{4, 5, 6} {
				assert.InEpsilon(t, expected, body[index]["id"], 1e-9)
				assert.Len(t, body[index], 1)
			}

			writer.WriteHeader(http.StatusOK)
		})

		err := table.BulkDelete(context.Background(), []int{4, 5, 6})
		require.NoError(t, err)
	})
}

func TestTable_GroupBy(t *testing.T) {
	t.Parallel()

	table, _ := newTestTable[invoice](t, func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path == "/api/v1/invoices/count" {
			_ = json.NewEncoder(writer).Encode(map[string]int{"count": 2})

			return
		}

		assert.Equal(t, "/api/v1/invoices/groupby", request.URL.Path)
		assert.Equal(t, "status", request.URL.Query().Get("column_name"))
		_ = json.NewEncoder(writer).Encode([]map[string]any{
			{"status": "open", "count": 1},
			{"status": "paid", "count": 1},
		})
	})

	groups, err := table.GroupBy(context.Background(), nocodb.NewQueryParams().WithColumnName("status"))
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "open", groups[0]["status"])
}

func TestTable_Aggregate(t *testing.T) {
	t.Parallel()

	table, _ := newTestTable[invoice](t, func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path == "/api/v1/invoices/count" {
			_ = json.NewEncoder(writer).Encode(map[string]int{"count": 1})

			return
		}

		assert.Equal(t, "/api/v1/invoices", request.URL.Path)
		assert.Equal(t, "amount", request.URL.Query().Get("column_name"))
		assert.Equal(t, "min,max", request.URL.Query().Get("func"))
		_ = json.NewEncoder(writer).Encode([]map[string]any{{"min": 1, "max": 99}})
	})

	params := nocodb.NewQueryParams().WithColumnName("amount").WithFunc("min", "max")

	results, err := table.Aggregate(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.InEpsilon(t, float64(99), results[0]["max"], 1e-9)
}

func TestTable_ErrorPropagation(t *testing.T) {
	t.Parallel()

	table, _ := newTestTable[nocodb.Record](t, func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(writer).Encode(map[string]string{"msg": "Table not found"})
	})

	_, err := table.List(context.Background(), nocodb.NewQueryParams().WithLimit(1))
	require.Error(t, err)
	assert.True(t, nocodb.IsClientError(err))
	assert.Contains(t, err.Error(), "Client Error")
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "Table not found")
}
