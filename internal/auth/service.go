package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/2beens/liftly/internal/apperr"
	"github.com/2beens/liftly/internal/telemetry/tracing"
	"github.com/2beens/liftly/pkg"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=auth

const (
	minPasswordLength = 6
	trainerCodeLength = 6
	// ambiguous characters (0/O, 1/I) left out
	trainerCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	maxCodeAttempts     = 5

	msgFillAllFields    = "Please fill in all fields"
	msgPasswordMismatch = "Passwords do not match"
	msgPasswordTooShort = "Password must be at least 6 characters"
	msgEmailRegistered  = "This email is already registered. Please log in instead."
	msgInvalidEmail     = "Please enter a valid email address"
	msgInvalidCode      = "Invalid trainer code. Please check and try again."
	msgInvalidLogin     = "Invalid email or password"
)

type accountsRepo interface {
	CreateTrainer(ctx context.Context, t newTrainer) (*Account, *Trainer, error)
	CreateClientAccount(ctx context.Context, c newClient) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id int) (*Account, error)
	TrainerByCode(ctx context.Context, code string) (*Trainer, error)
}

type sessionStore interface {
	Create(ctx context.Context, accountID int, createdAt time.Time) (string, error)
	Get(ctx context.Context, id string) (*LoginSession, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type Service struct {
	repo     accountsRepo
	sessions sessionStore
	tokens   *TokenIssuer
	now      func() time.Time

	// injectable for tests, bcrypt is slow on purpose
	HashPasswordFunc  func(password string) (string, error)
	CheckPasswordFunc func(password, hash string) bool
	TrainerCodeFunc   func() (string, error)
}

func NewService(repo accountsRepo, sessions sessionStore, tokens *TokenIssuer) *Service {
	return &Service{
		repo:              repo,
		sessions:          sessions,
		tokens:            tokens,
		now:               time.Now,
		HashPasswordFunc:  pkg.HashPassword,
		CheckPasswordFunc: pkg.CheckPasswordHash,
		TrainerCodeFunc:   GenerateTrainerCode,
	}
}

// GenerateTrainerCode returns a random code clients use to join a trainer.
func GenerateTrainerCode() (string, error) {
	b, err := pkg.GenerateRandomBytes(trainerCodeLength)
	if err != nil {
		return "", err
	}
	code := make([]byte, trainerCodeLength)
	for i := range b {
		code[i] = trainerCodeAlphabet[int(b[i])%len(trainerCodeAlphabet)]
	}
	return string(code), nil
}

func validatePassword(op, password string) error {
	if len(password) < minPasswordLength {
		return apperr.Validation(op, "password", msgPasswordTooShort)
	}
	return nil
}

func validateEmail(op, email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return apperr.Validation(op, "email", msgInvalidEmail)
	}
	return nil
}

func (s *Service) SignUpTrainer(ctx context.Context, req SignUpTrainerRequest) (_ *SignInResponse, err error) {
	const op = "auth.signup.trainer"
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.signup.trainer")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" || req.Password == "" || req.ConfirmPassword == "" {
		return nil, apperr.Validation(op, "", msgFillAllFields)
	}
	if req.Password != req.ConfirmPassword {
		return nil, apperr.Validation(op, "confirmPassword", msgPasswordMismatch)
	}
	if err := validatePassword(op, req.Password); err != nil {
		return nil, err
	}
	if err := validateEmail(op, email); err != nil {
		return nil, err
	}

	hash, err := s.HashPasswordFunc(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var (
		account *Account
		trainer *Trainer
	)
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := s.TrainerCodeFunc()
		if err != nil {
			return nil, fmt.Errorf("trainer code: %w", err)
		}
		account, trainer, err = s.repo.CreateTrainer(ctx, newTrainer{
			Name:         name,
			Email:        email,
			PasswordHash: hash,
			TrainerCode:  code,
		})
		if errors.Is(err, ErrCodeTaken) {
			continue
		}
		if errors.Is(err, ErrEmailTaken) {
			return nil, apperr.Validation(op, "email", msgEmailRegistered)
		}
		if err != nil {
			return nil, apperr.Remote(op, err)
		}
		break
	}
	if trainer == nil {
		return nil, apperr.Remote(op, errors.New("could not allocate a unique trainer code"))
	}

	resp, err := s.startSession(ctx, account)
	if err != nil {
		return nil, apperr.Remote(op, err)
	}
	resp.TrainerCode = trainer.TrainerCode
	return resp, nil
}

func (s *Service) SignUpClient(ctx context.Context, req SignUpClientRequest) (_ *SignInResponse, err error) {
	const op = "auth.signup.client"
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.signup.client")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	phone := strings.TrimSpace(req.Phone)
	email := strings.TrimSpace(req.Email)
	code := strings.ToUpper(strings.TrimSpace(req.TrainerCode))
	if firstName == "" || lastName == "" || phone == "" || email == "" || req.Password == "" || code == "" {
		return nil, apperr.Validation(op, "", msgFillAllFields)
	}
	if err := validatePassword(op, req.Password); err != nil {
		return nil, err
	}
	if err := validateEmail(op, email); err != nil {
		return nil, err
	}

	trainer, err := s.repo.TrainerByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrTrainerNotFound) {
			return nil, apperr.Validation(op, "trainerCode", msgInvalidCode)
		}
		return nil, apperr.Remote(op, err)
	}
	span.SetAttributes(attribute.Int("trainer.id", trainer.ID))

	hash, err := s.HashPasswordFunc(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account, err := s.repo.CreateClientAccount(ctx, newClient{
		TrainerID:    trainer.ID,
		Name:         firstName + " " + lastName,
		Phone:        phone,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			return nil, apperr.Validation(op, "email", msgEmailRegistered)
		case errors.Is(err, ErrTrainerNotFound):
			return nil, apperr.Validation(op, "trainerCode", msgInvalidCode)
		default:
			return nil, apperr.Remote(op, err)
		}
	}

	resp, err := s.startSession(ctx, account)
	if err != nil {
		return nil, apperr.Remote(op, err)
	}
	return resp, nil
}

func (s *Service) SignIn(ctx context.Context, req SignInRequest) (_ *SignInResponse, err error) {
	const op = "auth.signin"
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.signin")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, apperr.Validation(op, "", msgFillAllFields)
	}

	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, apperr.Validation(op, "", msgInvalidLogin)
		}
		return nil, apperr.Remote(op, err)
	}
	if !s.CheckPasswordFunc(req.Password, account.PasswordHash) {
		return nil, apperr.Validation(op, "", msgInvalidLogin)
	}

	resp, err := s.startSession(ctx, account)
	if err != nil {
		return nil, apperr.Remote(op, err)
	}
	return resp, nil
}

func (s *Service) startSession(ctx context.Context, account *Account) (*SignInResponse, error) {
	sessionID, err := s.sessions.Create(ctx, account.ID, s.now())
	if err != nil {
		return nil, fmt.Errorf("create login session: %w", err)
	}
	token, err := s.tokens.Issue(account, sessionID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &SignInResponse{
		Token:   token,
		Account: account,
	}, nil
}

// SignOut ends the login session behind token. Returns false if the
// session was already gone.
func (s *Service) SignOut(ctx context.Context, token string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.signout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	claims, err := s.tokens.Parse(token)
	if err != nil {
		return false, err
	}
	return s.sessions.Delete(ctx, claims.SessionID())
}

// Session resolves token to its claims, provided the login session is
// still alive.
func (s *Service) Session(ctx context.Context, token string) (_ *Claims, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.session")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	session, err := s.sessions.Get(ctx, claims.SessionID())
	if err != nil {
		return nil, err
	}
	if session.AccountID != claims.AccountID {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *Service) Account(ctx context.Context, id int) (*Account, error) {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, apperr.NotFoundErr("auth.account", "account")
		}
		return nil, apperr.Remote("auth.account", err)
	}
	return account, nil
}
