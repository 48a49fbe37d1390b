//go:build !swagger

package httpapi

import "github.com/go-chi/chi/v5"

// MountSwagger mounts nothing in default builds. Building with -tags=swagger
// swaps in the UI handler from swagger.go.
func MountSwagger(r chi.Router) {}
