// Package repository is the data access layer.
//
// It hides where signups are kept. Services talk to the WaitlistStore
// capability and never see whether the record went to the hosted
// PostgREST API or straight into Postgres.
package repository

import (
	"context"

	"github.com/Abhinav-2002/Salaried/internal/model"
)

// WaitlistStore persists waitlist signups.
//
// Insert errors that come from the store itself are *sqlerr.Error so the
// caller can classify them. Missing configuration is reported as
// config.ErrMissingStoreCredentials.
type WaitlistStore interface {
	// Insert writes one record in a single atomic call.
	Insert(ctx context.Context, signup *model.Signup) error

	// Check reports whether the store is configured well enough to be
	// called at all. It does no I/O.
	Check() error

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error

	// Backend names the implementation, e.g. "supabase".
	Backend() string
}
