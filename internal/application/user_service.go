package application

import (
	"context"

	"github.com/revuehub/api/internal/apperr"
	"github.com/revuehub/api/internal/domain/authz"
	"github.com/revuehub/api/internal/domain/entity"
	repo "github.com/revuehub/api/internal/domain/repository"
)

// UserService covers user administration (admin only) and the /users/me
// self-profile alias.
type UserService struct {
	Users repo.UserRepository
}

func NewUserService(users repo.UserRepository) *UserService {
	return &UserService{Users: users}
}

type CreateUserInput struct {
	Username    string
	Email       string
	FirstName   string
	LastName    string
	Bio         string
	Role        string
	IsSuperuser bool
}

func (s *UserService) Create(ctx context.Context, actor authz.Actor, in CreateUserInput) (*entity.User, error) {
	if err := requireAllowed(actor, authz.CanAdministerUsers(actor)); err != nil {
		return nil, err
	}
	if in.Username == entity.ReservedUsername {
		return nil, apperr.FieldErrors(map[string]string{"username": "this username is reserved"})
	}
	role := entity.Role(in.Role)
	if in.Role == "" {
		role = entity.RoleUser
	}
	if !role.Valid() {
		return nil, apperr.FieldErrors(map[string]string{"role": "must be one of: user, moderator, admin"})
	}
	u := &entity.User{
		Username:    in.Username,
		Email:       in.Email,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Bio:         in.Bio,
		Role:        role,
		IsSuperuser: in.IsSuperuser,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context, actor authz.Actor, search string) ([]entity.User, error) {
	if err := requireAllowed(actor, authz.CanAdministerUsers(actor)); err != nil {
		return nil, err
	}
	return s.Users.List(ctx, search)
}

func (s *UserService) Get(ctx context.Context, actor authz.Actor, username string) (*entity.User, error) {
	if err := requireAllowed(actor, authz.CanAdministerUsers(actor)); err != nil {
		return nil, err
	}
	return s.Users.GetByUsername(ctx, username)
}

// UpdateUserInput is a partial update; nil fields stay untouched.
type UpdateUserInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *string
}

func (s *UserService) Update(ctx context.Context, actor authz.Actor, username string, in UpdateUserInput) (*entity.User, error) {
	if err := requireAllowed(actor, authz.CanAdministerUsers(actor)); err != nil {
		return nil, err
	}
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if in.Role != nil {
		role := entity.Role(*in.Role)
		if !role.Valid() {
			return nil, apperr.FieldErrors(map[string]string{"role": "must be one of: user, moderator, admin"})
		}
		u.Role = role
	}
	applyProfile(u, in.Email, in.FirstName, in.LastName, in.Bio)
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, actor authz.Actor, username string) error {
	// Self-deletion via the alias is refused before any permission check; the
	// caller's account must survive.
	if username == entity.ReservedUsername {
		return apperr.MethodNotAllowed("method not allowed")
	}
	if err := requireAllowed(actor, authz.CanAdministerUsers(actor)); err != nil {
		return err
	}
	return s.Users.Delete(ctx, username)
}

// GetSelf resolves the /users/me alias to the caller's own record.
func (s *UserService) GetSelf(ctx context.Context, actor authz.Actor) (*entity.User, error) {
	if err := requireAllowed(actor, authz.CanUseSelfAlias(actor)); err != nil {
		return nil, err
	}
	return s.Users.GetByID(ctx, actor.User.ID)
}

// UpdateSelfInput carries the fields a user may change on their own profile.
// Role is captured only so a submitted value can be rejected.
type UpdateSelfInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *string
}

func (s *UserService) UpdateSelf(ctx context.Context, actor authz.Actor, in UpdateSelfInput) (*entity.User, error) {
	if err := requireAllowed(actor, authz.CanUseSelfAlias(actor)); err != nil {
		return nil, err
	}
	if in.Role != nil {
		return nil, apperr.FieldErrors(map[string]string{"role": "cannot be changed through this endpoint"})
	}
	u, err := s.Users.GetByID(ctx, actor.User.ID)
	if err != nil {
		return nil, err
	}
	applyProfile(u, in.Email, in.FirstName, in.LastName, in.Bio)
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func applyProfile(u *entity.User, email, firstName, lastName, bio *string) {
	if email != nil {
		u.Email = *email
	}
	if firstName != nil {
		u.FirstName = *firstName
	}
	if lastName != nil {
		u.LastName = *lastName
	}
	if bio != nil {
		u.Bio = *bio
	}
}
