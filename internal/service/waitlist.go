package service

import (
	"context"
	"errors"

	"github.com/Abhinav-2002/Salaried/internal/config"
	"github.com/Abhinav-2002/Salaried/internal/errs"
	"github.com/Abhinav-2002/Salaried/internal/model"
	"github.com/Abhinav-2002/Salaried/internal/repository"
	"github.com/Abhinav-2002/Salaried/internal/server"
	"github.com/Abhinav-2002/Salaried/internal/sqlerr"
	"github.com/rs/zerolog"
)

// Public messages for store outcomes.
const (
	MsgAlreadyOnWaitlist = "This email is already on the waitlist."
	MsgFailedToSave      = "Failed to save signup"
)

const codeSaveFailed = "SIGNUP_SAVE_FAILED"

// signupEvent is the New Relic custom event recorded per stored signup.
// It carries no personal data.
const signupEvent = "WaitlistSignup"

// WaitlistService turns a validated signup into one store write and maps
// the outcome onto the HTTP error taxonomy.
type WaitlistService struct {
	server *server.Server
	store  repository.WaitlistStore
}

func NewWaitlistService(s *server.Server, store repository.WaitlistStore) *WaitlistService {
	return &WaitlistService{
		server: s,
		store:  store,
	}
}

// Backend names the store in use.
func (ws *WaitlistService) Backend() string {
	return ws.store.Backend()
}

// Check fails with 500 "Server misconfigured" when the store cannot be
// called at all, e.g. missing credentials.
func (ws *WaitlistService) Check() error {
	if err := ws.store.Check(); err != nil {
		return errs.NewMisconfiguredError()
	}
	return nil
}

// Ping reports store reachability for the health endpoint.
func (ws *WaitlistService) Ping(ctx context.Context) error {
	if err := ws.store.Check(); err != nil {
		return err
	}
	return ws.store.Ping(ctx)
}

// Join stores signup.
//
//   - success: nil
//   - store unusable (credentials, pool): 500 "Server misconfigured"
//   - uniqueness violation: 409 "This email is already on the waitlist."
//   - anything else from the insert: 500 "Failed to save signup"
func (ws *WaitlistService) Join(ctx context.Context, signup *model.Signup) error {
	logger := zerolog.Ctx(ctx).With().
		Str("operation", "waitlist_join").
		Str("backend", ws.store.Backend()).
		Logger()

	err := ws.store.Insert(ctx, signup)

	switch {
	case err == nil:
		logger.Info().Msg("signup stored")
		ws.recordSignup(signup)
		return nil

	case errors.Is(err, config.ErrMissingStoreCredentials), errors.Is(err, repository.ErrDatabaseUnavailable):
		logger.Error().Err(err).Msg("store is not configured")
		return errs.NewMisconfiguredError()

	case sqlerr.IsDuplicate(err):
		code := sqlerr.ErrorCode(err)
		logger.Info().
			Str("error_code", code).
			Str("constraint", sqlerr.Constraint(err)).
			Msg("email already on the waitlist")
		return errs.NewConflictError(MsgAlreadyOnWaitlist, &code)

	default:
		logger.Error().
			Err(err).
			Bool("store_error", sqlerr.IsStoreError(err)).
			Str("sql_code", string(sqlerr.ErrCode(err))).
			Str("store_error_code", sqlerr.ErrorCode(err)).
			Msg("failed to save signup")

		code := codeSaveFailed
		return errs.NewServerError(MsgFailedToSave, &code)
	}
}

func (ws *WaitlistService) recordSignup(signup *model.Signup) {
	app := ws.server.LoggerService.GetApplication()
	if app == nil {
		return
	}

	app.RecordCustomEvent(signupEvent, map[string]interface{}{
		"backend":        ws.store.Backend(),
		"has_salary_min": signup.SalaryMin != nil,
		"has_city":       signup.City != nil,
		"has_ip":         signup.IP != nil,
	})
}
