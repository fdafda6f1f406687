// Package zksync defines interfaces shared across the rollup client SDK.
package zksync

import "errors"

// NotFound is returned by API methods if the requested item does not exist.
var NotFound = errors.New("not found")
