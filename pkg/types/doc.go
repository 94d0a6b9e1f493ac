// Package types defines the catalog record shared by the store, the query
// functions and the HTTP API. LegoSet mirrors one object of the bundled
// brickset.json array; Optional marks fields whose absence is meaningful.
package types
