package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Goofygiraffe06/authpanel/internal/form"
	"github.com/Goofygiraffe06/authpanel/internal/logging"
	"github.com/Goofygiraffe06/authpanel/internal/manager"
	"github.com/Goofygiraffe06/authpanel/internal/models"
	"github.com/Goofygiraffe06/authpanel/internal/utils"
	"github.com/Goofygiraffe06/authpanel/store"
	"golang.org/x/crypto/bcrypt"
)

const (
	reasonBadCredentials = "Invalid email or password"
	reasonAccountExists  = "An account with this email already exists"
	reasonPasswordLong   = "Password is too long"
)

// Accounts is the persistence the service needs.
type Accounts interface {
	AddUser(ctx context.Context, user models.User) error
	GetUser(ctx context.Context, email string) (models.User, bool, error)
	Exists(ctx context.Context, email string) (bool, error)
}

// Service authenticates form submissions against stored accounts. Storage
// and hashing run on the WorkManager pools.
type Service struct {
	accounts Accounts
	issuer   *Issuer
	mgr      *manager.WorkManager
	cost     int

	dummyOnce sync.Once
	dummyHash string
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithBcryptCost overrides bcrypt.DefaultCost.
func WithBcryptCost(cost int) ServiceOption {
	return func(s *Service) { s.cost = cost }
}

func NewService(accounts Accounts, issuer *Issuer, mgr *manager.WorkManager, opts ...ServiceOption) *Service {
	s := &Service{accounts: accounts, issuer: issuer, mgr: mgr, cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ form.Authenticator = (*Service)(nil)

// Authenticate logs in or registers depending on creds.Kind.
func (s *Service) Authenticate(ctx context.Context, creds form.Credentials) (form.Grant, error) {
	if creds.Kind == form.KindSignup {
		return s.register(ctx, creds)
	}
	return s.login(ctx, creds)
}

func (s *Service) register(ctx context.Context, creds form.Credentials) (form.Grant, error) {
	start := time.Now()
	emailHash := utils.HashEmail(creds.Email)
	nameHash := utils.HashName(creds.Name)

	var exists bool
	err := s.mgr.DB(ctx, func(ctx context.Context) error {
		found, err := s.accounts.Exists(ctx, creds.Email)
		exists = found
		return err
	})
	if err != nil {
		logging.ErrorLog("Registration failed: lookup error [%s]: %v", emailHash, err)
		return form.Grant{}, err
	}
	if exists {
		logging.WarnLog("Registration failed: user exists [%s]", emailHash)
		return form.Grant{}, form.NewFailure(reasonAccountExists)
	}

	var hash string
	err = s.mgr.Crypto(ctx, func(ctx context.Context) error {
		h, err := HashPassword(creds.Password, s.cost)
		hash = h
		return err
	})
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return form.Grant{}, form.NewFailure(reasonPasswordLong)
	}
	if err != nil {
		logging.ErrorLog("Registration failed: hashing error [%s]: %v", emailHash, err)
		return form.Grant{}, err
	}

	err = s.mgr.DB(ctx, func(ctx context.Context) error {
		return s.accounts.AddUser(ctx, models.User{
			Email:        creds.Email,
			Name:         creds.Name,
			PasswordHash: hash,
		})
	})
	if errors.Is(err, store.ErrUserExists) {
		// Lost a race with a concurrent signup for the same email.
		logging.WarnLog("Registration failed: user exists [%s]", emailHash)
		return form.Grant{}, form.NewFailure(reasonAccountExists)
	}
	if err != nil {
		logging.ErrorLog("Registration failed: database error [%s][%s]: %v", emailHash, nameHash, err)
		return form.Grant{}, err
	}

	token, err := s.issuer.Issue(creds.Email, form.KindSignup.String())
	if err != nil {
		return form.Grant{}, err
	}

	logging.InfoLog("Registration completed [%s][%s] %v", emailHash, nameHash, time.Since(start))
	return form.Grant{Subject: creds.Email, Token: token}, nil
}

func (s *Service) login(ctx context.Context, creds form.Credentials) (form.Grant, error) {
	start := time.Now()
	emailHash := utils.HashEmail(creds.Email)

	var (
		user  models.User
		found bool
	)
	err := s.mgr.DB(ctx, func(ctx context.Context) error {
		var err error
		user, found, err = s.accounts.GetUser(ctx, creds.Email)
		return err
	})
	if err != nil {
		logging.ErrorLog("Login failed: lookup error [%s]: %v", emailHash, err)
		return form.Grant{}, err
	}

	// Unknown users still pay for a comparison so timing does not reveal
	// which emails are registered.
	hash := user.PasswordHash
	if !found {
		hash = s.dummy()
	}

	var ok bool
	err = s.mgr.Crypto(ctx, func(ctx context.Context) error {
		var err error
		ok, err = CheckPassword(hash, creds.Password)
		return err
	})
	if err != nil {
		logging.ErrorLog("Login failed: compare error [%s]: %v", emailHash, err)
		return form.Grant{}, err
	}
	if !found || !ok {
		logging.WarnLog("Login failed: bad credentials [%s]", emailHash)
		return form.Grant{}, form.NewFailure(reasonBadCredentials)
	}

	token, err := s.issuer.Issue(user.Email, form.KindLogin.String())
	if err != nil {
		return form.Grant{}, err
	}

	logging.InfoLog("Login completed [%s] %v", emailHash, time.Since(start))
	return form.Grant{Subject: user.Email, Token: token}, nil
}

func (s *Service) dummy() string {
	s.dummyOnce.Do(func() {
		h, err := HashPassword("authpanel-dummy-password", s.cost)
		if err != nil {
			logging.ErrorLog("Dummy hash generation failed: %v", err)
		}
		s.dummyHash = h
	})
	return s.dummyHash
}
