package apihandlers

import "github.com/nerlens/nerlens/pkg/server/handlertools"

// APIError represents an error response. Used for swagger documentation.
type APIError = handlertools.ErrorResponse
