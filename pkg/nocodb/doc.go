// Package nocodb provides types, interfaces, and helpers for working with
// the NocoDB REST API.
//
// # Overview
//
// The nocodb package defines the domain types (Record, QueryParams, Config)
// and the generic TableClient interface for interacting with a single NocoDB
// table. A concrete implementation is provided by the nococlient package,
// which wires configuration and transport. Most consumers should import
// nococlient to construct a client and then work with the TableClient
// interface exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/nocodb-client/pkg/nocodb"
//	  "github.com/fivetwenty-io/nocodb-client/pkg/nococlient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := nococlient.New[nocodb.Record](&nocodb.Config{
//	    BaseURL:   nocodb.BuildURL("https://noco.example.com/nc/project/api/v1", "invoices"),
//	    AuthToken: "xc-token",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  rows, err := cli.List(ctx, nocodb.NewQueryParams().WithWhere("(status,eq,open)"))
//	  if err != nil { log.Fatal(err) }
//	  _ = rows
//	}
//
// # Typed and untyped records
//
// TableClient is generic over the record representation. Instantiating it
// with nocodb.Record handles rows as plain field-to-value maps with no
// validation. Instantiating it with a struct type binds every returned JSON
// object to that struct, giving a statically shaped view of the table. The
// reserved "id" field is server-assigned and stripped from create and update
// payloads; bulk updates keep it since it identifies the row to modify.
//
// # Queries
//
// Use QueryParams to express list options (where, limit, offset, sort,
// fields). Leaving Limit unset makes List fetch the table's row count first
// and then request exactly that many rows.
//
// # Errors
//
// API errors are represented by APIError, which carries the status code,
// kind ("Client Error" or "Server Error"), reason phrase, request URL, and
// the server-provided message body. Helpers such as IsNotFound,
// IsClientError, and IsServerError make it easy to branch on common cases.
package nocodb
