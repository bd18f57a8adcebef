// Package nococlient provides the primary entry point for constructing a
// NocoDB table client that implements the nocodb.TableClient interface.
//
// It layers configuration and HTTP transport on top of the types defined in
// the nocodb package. Most applications should import nococlient to build a
// client, then use the returned nocodb.TableClient to work with the table.
//
// Quick start
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
//
//	  // Untyped rows as plain maps:
//	  cli, err := nococlient.New[nocodb.Record](&nocodb.Config{
//	    BaseURL:   nocodb.BuildURL("https://noco.example.com/nc/project/api/v1", "invoices"),
//	    AuthToken: "xc-token",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  count, err := cli.Count(ctx, "")
//	  if err != nil { log.Fatal(err) }
//	  _ = count
//	}
//
// For a statically shaped view, instantiate New with a struct type whose
// fields carry json tags matching the table's columns. The reserved "id"
// field is stripped from create and update payloads automatically.
package nococlient
