package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"innkeeper/internal/domain/entity"
	domainerrors "innkeeper/internal/domain/errors"
	"innkeeper/internal/domain/repository"
	mockRepo "innkeeper/internal/mocks/repository"
	mockSvc "innkeeper/internal/mocks/service"
	"innkeeper/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// accountServiceFixtures holds all test dependencies for account service tests.
type accountServiceFixtures struct {
	service      usecase.AccountUsecase
	accountRepo  *mockRepo.MockAccountRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
}

func createTestAccountService(t *testing.T) accountServiceFixtures {
	accountRepo := mockRepo.NewMockAccountRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewAccountService(AccountServiceParams{
		AccountRepo:  accountRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Logger:       logger,
	})

	return accountServiceFixtures{
		service:      service,
		accountRepo:  accountRepo,
		hasher:       hasher,
		tokenService: tokenService,
	}
}

func validRegisterInput() *usecase.RegisterInput {
	return &usecase.RegisterInput{
		FirstName:       "Test",
		LastName:        "User",
		Email:           "test@example.com",
		Password:        "Password123",
		ConfirmPassword: "Password123",
	}
}

func TestAccountService_Register_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := validRegisterInput()

	fx.accountRepo.EXPECT().
		FindByEmail(ctx, input.Email).
		Return(nil, repository.ErrAccountNotFound)

	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)

	fx.accountRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Account")).
		Run(func(ctx context.Context, account *entity.Account) {
			account.ID = uuid.New()
		}).
		Return(nil)

	fx.tokenService.EXPECT().
		Issue(mock.AnythingOfType("uuid.UUID")).
		Return("signed_token", nil)

	output, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	assert.NotNil(t, output)
	assert.Equal(t, "signed_token", output.Token)
	assert.Equal(t, input.Email, output.Account.Email)
	assert.Equal(t, "hashed_password", output.Account.PasswordHash)
	assert.NotEqual(t, uuid.Nil, output.Account.ID)
}

func TestAccountService_Register_NormalizesEmail(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := validRegisterInput()
	input.Email = "  Test@Example.COM "

	fx.accountRepo.EXPECT().
		FindByEmail(ctx, "test@example.com").
		Return(nil, repository.ErrAccountNotFound)

	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)

	fx.accountRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Account")).
		Run(func(ctx context.Context, account *entity.Account) {
			assert.Equal(t, "test@example.com", account.Email)
			account.ID = uuid.New()
		}).
		Return(nil)

	fx.tokenService.EXPECT().
		Issue(mock.AnythingOfType("uuid.UUID")).
		Return("signed_token", nil)

	_, err := fx.service.Register(ctx, input)
	require.NoError(t, err)
}

func TestAccountService_Register_DuplicateEmail(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := validRegisterInput()

	existing := &entity.Account{
		ID:    uuid.New(),
		Email: input.Email,
	}

	fx.accountRepo.EXPECT().
		FindByEmail(ctx, input.Email).
		Return(existing, nil)

	output, err := fx.service.Register(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountExists))
}

func TestAccountService_Register_DuplicateRaceOnCreate(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := validRegisterInput()

	// Pre-check sees no account, but a concurrent registration wins the
	// insert. The unique-constraint translation must still surface as a
	// duplicate account, not as a storage failure.
	fx.accountRepo.EXPECT().
		FindByEmail(ctx, input.Email).
		Return(nil, repository.ErrAccountNotFound)

	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)

	fx.accountRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Account")).
		Return(domainerrors.ErrAccountExists.WrapMessage("email already registered"))

	output, err := fx.service.Register(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountExists))
}

func TestAccountService_Register_ValidationAccumulatesAllFailures(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		FirstName:       "",
		LastName:        "",
		Email:           "not-an-email",
		Password:        "abc",
		ConfirmPassword: "different",
	}

	output, err := fx.service.Register(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)

	var validationErr *domainerrors.ValidationError
	require.True(t, errors.As(err, &validationErr))

	failedFields := make(map[string]string, len(validationErr.Fields))
	for _, f := range validationErr.Fields {
		failedFields[f.Field] = f.Message
	}

	assert.Contains(t, failedFields, "firstName")
	assert.Contains(t, failedFields, "lastName")
	assert.Contains(t, failedFields, "email")
	assert.Contains(t, failedFields, "password")
	assert.Contains(t, failedFields, "confirmPassword")
	assert.Equal(t, "must match the password", failedFields["confirmPassword"])
}

func TestAccountService_Register_NilInput(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()

	// An empty request body binds to no input at all; that must surface as
	// the same accumulated required-field errors an empty payload gets.
	output, err := fx.service.Register(ctx, nil)

	require.Error(t, err)
	assert.Nil(t, output)

	var validationErr *domainerrors.ValidationError
	require.True(t, errors.As(err, &validationErr))

	failedFields := make(map[string]string, len(validationErr.Fields))
	for _, f := range validationErr.Fields {
		failedFields[f.Field] = f.Message
	}

	assert.Contains(t, failedFields, "firstName")
	assert.Contains(t, failedFields, "lastName")
	assert.Contains(t, failedFields, "email")
	assert.Contains(t, failedFields, "password")
	assert.Contains(t, failedFields, "confirmPassword")

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 400, appErr.HTTPCode())
}

func TestAccountService_Login_NilInput(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()

	output, err := fx.service.Login(ctx, nil)

	require.Error(t, err)
	assert.Nil(t, output)

	var validationErr *domainerrors.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Len(t, validationErr.Fields, 2)
}

func TestAccountService_Register_ConfirmPasswordMismatch(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := validRegisterInput()
	input.ConfirmPassword = "Different123"

	output, err := fx.service.Register(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)

	var validationErr *domainerrors.ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Len(t, validationErr.Fields, 1)
	assert.Equal(t, "confirmPassword", validationErr.Fields[0].Field)
}

func TestAccountService_Register_StorageErrorOnPrecheck(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := validRegisterInput()

	storageErr := domainerrors.NewDatabaseExecuteError(errors.New("connection reset"), "find account by email")

	fx.accountRepo.EXPECT().
		FindByEmail(ctx, input.Email).
		Return(nil, storageErr)

	output, err := fx.service.Register(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", appErr.ErrorCode())
	assert.Equal(t, "something went wrong", appErr.Message())
}

func TestAccountService_Register_HashFailure(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := validRegisterInput()

	fx.accountRepo.EXPECT().
		FindByEmail(ctx, input.Email).
		Return(nil, repository.ErrAccountNotFound)

	fx.hasher.EXPECT().Hash(input.Password).Return("", errors.New("bcrypt failure"))

	output, err := fx.service.Register(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.Contains(t, err.Error(), "failed to hash password")
}

func TestAccountService_Login_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.LoginInput{
		Email:    "test@example.com",
		Password: "Password123",
	}

	account := &entity.Account{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: "hashed_password",
	}

	fx.accountRepo.EXPECT().
		FindByEmail(ctx, input.Email).
		Return(account, nil)

	fx.hasher.EXPECT().Check(input.Password, account.PasswordHash).Return(true)

	fx.tokenService.EXPECT().Issue(account.ID).Return("signed_token", nil)

	output, err := fx.service.Login(ctx, input)

	require.NoError(t, err)
	assert.NotNil(t, output)
	assert.Equal(t, "signed_token", output.Token)
	assert.Equal(t, account.ID, output.Account.ID)
}

func TestAccountService_Login_UnknownEmail(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.LoginInput{
		Email:    "missing@example.com",
		Password: "Password123",
	}

	fx.accountRepo.EXPECT().
		FindByEmail(ctx, input.Email).
		Return(nil, repository.ErrAccountNotFound)

	output, err := fx.service.Login(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAccountService_Login_WrongPassword(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.LoginInput{
		Email:    "test@example.com",
		Password: "WrongPassword1",
	}

	account := &entity.Account{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: "hashed_password",
	}

	fx.accountRepo.EXPECT().
		FindByEmail(ctx, input.Email).
		Return(account, nil)

	fx.hasher.EXPECT().Check(input.Password, account.PasswordHash).Return(false)

	output, err := fx.service.Login(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAccountService_Login_CredentialFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()

	// Unknown email path.
	fxUnknown := createTestAccountService(t)
	fxUnknown.accountRepo.EXPECT().
		FindByEmail(ctx, "missing@example.com").
		Return(nil, repository.ErrAccountNotFound)

	_, errUnknown := fxUnknown.service.Login(ctx, &usecase.LoginInput{
		Email:    "missing@example.com",
		Password: "Password123",
	})

	// Wrong password path.
	fxWrong := createTestAccountService(t)
	account := &entity.Account{
		ID:           uuid.New(),
		Email:        "known@example.com",
		PasswordHash: "hashed_password",
	}
	fxWrong.accountRepo.EXPECT().
		FindByEmail(ctx, account.Email).
		Return(account, nil)
	fxWrong.hasher.EXPECT().Check("WrongPassword1", account.PasswordHash).Return(false)

	_, errWrong := fxWrong.service.Login(ctx, &usecase.LoginInput{
		Email:    account.Email,
		Password: "WrongPassword1",
	})

	// Both failures must carry the identical client-facing error.
	require.Error(t, errUnknown)
	require.Error(t, errWrong)
	assert.True(t, errors.Is(errUnknown, domainerrors.ErrInvalidCredentials))
	assert.True(t, errors.Is(errWrong, domainerrors.ErrInvalidCredentials))

	var appErrUnknown, appErrWrong domainerrors.AppError
	require.True(t, errors.As(errUnknown, &appErrUnknown))
	require.True(t, errors.As(errWrong, &appErrWrong))
	assert.Equal(t, appErrUnknown.ErrorCode(), appErrWrong.ErrorCode())
	assert.Equal(t, appErrUnknown.Message(), appErrWrong.Message())
	assert.Equal(t, appErrUnknown.HTTPCode(), appErrWrong.HTTPCode())
}

func TestAccountService_Login_ValidationFailure(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.LoginInput{
		Email:    "not-an-email",
		Password: "",
	}

	output, err := fx.service.Login(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)

	var validationErr *domainerrors.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Len(t, validationErr.Fields, 2)
}

func TestAccountService_GetAccount_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	account := &entity.Account{
		ID:    uuid.New(),
		Email: "test@example.com",
	}

	fx.accountRepo.EXPECT().FindByID(ctx, account.ID).Return(account, nil)

	got, err := fx.service.GetAccount(ctx, account.ID)

	require.NoError(t, err)
	assert.Equal(t, account, got)
}

func TestAccountService_GetAccount_MissingAccount(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	accountID := uuid.New()

	// A valid token can outlive its account; the holder is unauthorized, not
	// served a storage error.
	fx.accountRepo.EXPECT().FindByID(ctx, accountID).Return(nil, repository.ErrAccountNotFound)

	got, err := fx.service.GetAccount(ctx, accountID)

	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
}

func TestAccountService_GetAccount_StorageError(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	accountID := uuid.New()

	fx.accountRepo.EXPECT().
		FindByID(ctx, accountID).
		Return(nil, domainerrors.NewDatabaseExecuteError(errors.New("connection reset"), "find account by id"))

	got, err := fx.service.GetAccount(ctx, accountID)

	require.Error(t, err)
	assert.Nil(t, got)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", appErr.ErrorCode())
}

func TestAccountService_Login_TokenIssueFailure(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.LoginInput{
		Email:    "test@example.com",
		Password: "Password123",
	}

	account := &entity.Account{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: "hashed_password",
	}

	fx.accountRepo.EXPECT().
		FindByEmail(ctx, input.Email).
		Return(account, nil)

	fx.hasher.EXPECT().Check(input.Password, account.PasswordHash).Return(true)

	fx.tokenService.EXPECT().Issue(account.ID).Return("", errors.New("signing failed"))

	output, err := fx.service.Login(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.Contains(t, err.Error(), "failed to issue session token")
}
