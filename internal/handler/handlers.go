package handler

import (
	"github.com/Abhinav-2002/Salaried/internal/server"
	"github.com/Abhinav-2002/Salaried/internal/service"
)

// Handlers groups all HTTP handlers so router setup takes one object.
type Handlers struct {
	Health   *HealthHandler   // GET /status
	OpenAPI  *OpenAPIHandler  // GET /docs
	Waitlist *WaitlistHandler // POST /api/waitlist
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s, services.Waitlist),
		OpenAPI:  NewOpenAPIHandler(s),
		Waitlist: NewWaitlistHandler(s, services.Waitlist),
	}
}
