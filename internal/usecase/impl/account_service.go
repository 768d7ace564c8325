// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "innkeeper/internal/delivery/context"
	"innkeeper/internal/domain/entity"
	domainerrors "innkeeper/internal/domain/errors"
	"innkeeper/internal/domain/repository"
	"innkeeper/internal/domain/service"
	"innkeeper/internal/usecase"
	"innkeeper/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	accountRepo  repository.AccountRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	validator    *inputValidator
	logger       *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	AccountRepo  repository.AccountRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		accountRepo:  params.AccountRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		validator:    newInputValidator(),
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete account registration process:
// shape validation, duplicate check, hashing, persistence, token issuance.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.SessionOutput, error) {
	// A nil input validates as an empty one, so callers get the accumulated
	// required-field errors instead of a validator panic value.
	if input == nil {
		input = &usecase.RegisterInput{}
	}

	if err := srv.validator.Validate(input); err != nil {
		srv.log(ctx).Warn("Registration input validation failed", slog.Any("error", err))

		return nil, err
	}

	email := util.NormalizeEmail(input.Email)
	srv.log(ctx).Info("Starting registration", slog.String("email", email))

	// Pre-check for an existing account. This keeps the common duplicate case
	// cheap, but the authoritative uniqueness check is the storage layer's
	// unique index, enforced again at Create below.
	_, err := srv.accountRepo.FindByEmail(ctx, email)
	if err == nil {
		srv.log(ctx).Warn("Registration rejected, account exists", slog.String("email", email))

		return nil, domainerrors.ErrAccountExists.WrapMessage("account registration failed")
	}
	if !errors.Is(err, repository.ErrAccountNotFound) {
		srv.log(ctx).Error("Failed to check existing account", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to check existing account")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	newAccount := &entity.Account{
		Email:        email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: hashedPassword,
	}

	// Two concurrent registrations with the same email race the pre-check
	// above; the repository translates the unique-constraint violation into
	// ErrAccountExists so the loser still gets a duplicate-account answer,
	// not a storage error.
	if err := srv.accountRepo.Create(ctx, newAccount); err != nil {
		srv.log(ctx).Error("Failed to create account", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create account during registration")
	}

	token, err := srv.tokenService.Issue(newAccount.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to issue session token", slog.Any("accountID", newAccount.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue session token during registration")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("accountID", newAccount.ID))

	return &usecase.SessionOutput{
		Token:   token,
		Account: newAccount,
	}, nil
}

// Login orchestrates the account login process.
// An unknown email and a wrong password both yield ErrInvalidCredentials so
// the response never discloses whether the email exists.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.SessionOutput, error) {
	if input == nil {
		input = &usecase.LoginInput{}
	}

	if err := srv.validator.Validate(input); err != nil {
		srv.log(ctx).Warn("Login input validation failed", slog.Any("error", err))

		return nil, err
	}

	email := util.NormalizeEmail(input.Email)
	srv.log(ctx).Debug("Starting login", slog.String("email", email))

	account, err := srv.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("email", email))

			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}
		srv.log(ctx).Error("Failed to load account for login", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to load account for login")
	}

	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", email))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	token, err := srv.tokenService.Issue(account.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to issue session token", slog.Any("accountID", account.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue session token during login")
	}

	srv.log(ctx).Debug("Login completed", slog.Any("accountID", account.ID))

	return &usecase.SessionOutput{
		Token:   token,
		Account: account,
	}, nil
}

// GetAccount resolves an authenticated account id back to its account.
func (srv *accountService) GetAccount(ctx context.Context, accountID uuid.UUID) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			srv.log(ctx).Warn("Session refers to a missing account", slog.Any("accountID", accountID))

			return nil, domainerrors.ErrUnauthorized.WrapMessage("account no longer exists")
		}
		srv.log(ctx).Error("Failed to load account", slog.Any("accountID", accountID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to load account")
	}

	return account, nil
}
