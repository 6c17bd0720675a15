package api

import (
	"github.com/inkwellapp/inkwell-server/internal/service"
)

// Services groups the business logic services used by the API server.
// This keeps the NewServer signature small and makes test wiring easier.
type Services struct {
	Auth   *service.AuthService
	Book   *service.BookService
	Review *service.ReviewService
}
