package commands

import (
	"context"

	"evcharge-booking/internal/domain/user"
	"evcharge-booking/internal/infra"
	"evcharge-booking/internal/pkg/errs"
	"evcharge-booking/internal/pkg/jwt"
	"evcharge-booking/internal/pkg/password"
	"evcharge-booking/internal/usecase/queries"
	"evcharge-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type RegisterInput struct {
	Email    string
	Username string
	Password string
}

type LoginResult struct {
	Token string            `json:"token"`
	User  *queries.UserView `json:"user"`
}

type AuthCommands interface {
	Register(ctx context.Context, input RegisterInput) (*queries.UserView, error)
	Login(ctx context.Context, email, rawPassword string) (*LoginResult, error)
	// SetUserActive flips the account flag; deactivated users keep their
	// bookings but cannot authenticate.
	SetUserActive(ctx context.Context, actor shared.Actor, userID uuid.UUID, active bool) (*queries.UserView, error)
}

type authCommandsImpl struct {
	uow         shared.UnitOfWork
	userQueries queries.UserQueries
	jwtService  *jwt.Service
}

func NewAuthCommands(uow shared.UnitOfWork, userQueries queries.UserQueries, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{uow: uow, userQueries: userQueries, jwtService: jwtService}
}

func (c *authCommandsImpl) Register(ctx context.Context, input RegisterInput) (*queries.UserView, error) {
	email, err := user.NewEmail(input.Email)
	if err != nil {
		return nil, err
	}
	username, err := user.NewUsername(input.Username)
	if err != nil {
		return nil, err
	}
	pw, err := user.NewPassword(input.Password)
	if err != nil {
		return nil, err
	}

	hash, err := password.HashPassword(pw.Value())
	if err != nil {
		return nil, errs.Wrap(err, "failed to hash password")
	}

	// Self-registration always yields the lowest role; elevated accounts
	// are provisioned out of band.
	u := user.NewUser(email, username, hash, user.RoleUser)

	if err := c.uow.Repos().Users().Create(ctx, u); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return c.userQueries.GetByID(ctx, u.ID())
}

func (c *authCommandsImpl) Login(ctx context.Context, email, rawPassword string) (*LoginResult, error) {
	// Malformed credentials are indistinguishable from wrong ones.
	parsedEmail, err := user.NewEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	pw, err := user.NewPassword(rawPassword)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	creds := user.NewCredentials(parsedEmail, pw)

	repos := c.uow.Repos()
	u, err := repos.Users().FindByEmail(ctx, creds.Email())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := password.ComparePassword(u.PasswordHash(), creds.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive() {
		return nil, ErrUserInactive
	}

	token, err := c.jwtService.GenerateToken(u.ID(), u.Username().Value(), u.Role())
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate token")
	}

	if err := repos.Users().UpdateLastLogin(ctx, u.ID()); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	view, err := c.userQueries.GetByID(ctx, u.ID())
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: view}, nil
}

func (c *authCommandsImpl) SetUserActive(ctx context.Context, actor shared.Actor, userID uuid.UUID, active bool) (*queries.UserView, error) {
	if !actor.CanManageUsers() {
		return nil, ErrForbidden
	}

	repos := c.uow.Repos()
	if _, err := repos.Users().FindByID(ctx, userID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := repos.Users().SetActive(ctx, userID, active); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return c.userQueries.GetByID(ctx, userID)
}
