package repository

import (
	"fmt"

	"github.com/Abhinav-2002/Salaried/internal/config"
	"github.com/Abhinav-2002/Salaried/internal/server"
)

// Repositories groups every data store the services use.
type Repositories struct {
	Waitlist WaitlistStore
}

// NewRepositories picks the waitlist backend from config.
//
//   - supabase (default): REST calls with credentials resolved per call
//   - postgres: the pool opened by server.New
func NewRepositories(s *server.Server) (*Repositories, error) {
	cfg := s.Config

	var waitlist WaitlistStore
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		if s.DB == nil {
			return nil, fmt.Errorf("store backend %q requires a database connection", cfg.Store.Backend)
		}
		waitlist = NewPostgresStore(s.DB.Pool, cfg.Store.Table)

	case config.BackendSupabase, "":
		waitlist = NewSupabaseStore(cfg.Supabase, cfg.Store.Table, NewSupabaseHTTPClient(cfg.Supabase.Timeout))

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	return &Repositories{
		Waitlist: waitlist,
	}, nil
}
