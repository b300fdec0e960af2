package api

import (
	"github.com/gofiber/fiber/v2"
)

// APIServer wraps the fiber engine and the address it listens on
type APIServer struct {
	app           *fiber.App
	listenAddress string
}

func NewAPIServer(listenAddress string) *APIServer {
	app := fiber.New(fiber.Config{
		AppName: "creoleap-api",
	})

	return &APIServer{
		app:           app,
		listenAddress: listenAddress,
	}
}

// GetEngine exposes the underlying fiber app for middleware and routes
func (s *APIServer) GetEngine() *fiber.App {
	return s.app
}

// Run starts the HTTP server and blocks until it stops
func (s *APIServer) Run() error {
	return s.app.Listen(s.listenAddress)
}
