// Package delivery defines the transport-agnostic entry point contract.
package delivery

import "context"

// Delivery is a serving surface (HTTP today). Serve blocks until the server
// stops or the context is cancelled.
type Delivery interface {
	Serve(ctx context.Context) error
}
