// Package delivery defines the contract every transport server implements.
package delivery

import "context"

// Delivery is a serving surface (HTTP today) started by the application.
type Delivery interface {
	// Serve blocks, accepting requests until the server is shut down.
	Serve(ctx context.Context) error
}
