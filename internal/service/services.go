package service

import (
	"github.com/Abhinav-2002/Salaried/internal/repository"
	"github.com/Abhinav-2002/Salaried/internal/server"
)

// Services groups the business layer so handlers receive one object.
type Services struct {
	Waitlist *WaitlistService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Waitlist: NewWaitlistService(s, repos.Waitlist),
	}, nil
}
