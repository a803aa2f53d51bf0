package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"prelaunch/internal/auth"
	"prelaunch/internal/model"
	"prelaunch/internal/repository"
)

const MinPasswordLength = 8

var checkPassword = auth.CheckPassword

type SignupInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// UserPatch is the admin-editable part of a user. Nil fields are left untouched.
type UserPatch struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Role      *string `json:"role"`
}

// TokenIssuer signs session tokens for site users.
type TokenIssuer interface {
	IssueUser(userID, email string) (string, error)
}

// UserService defines account use cases.
type UserService interface {
	Signup(ctx context.Context, in SignupInput) (*model.User, error)
	// Login returns ErrInvalidCredentials for both unknown emails and wrong passwords.
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	List(ctx context.Context, limit, skip int) (*ListResult[model.User], error)
	Get(ctx context.Context, id string) (*model.User, error)
	Update(ctx context.Context, id string, p UserPatch) (*model.User, error)
	Delete(ctx context.Context, id string) error
}

type userService struct {
	repo   repository.UserRepository
	tokens TokenIssuer
}

func NewUserService(repo repository.UserRepository, tokens TokenIssuer) UserService {
	return &userService{repo: repo, tokens: tokens}
}

func (s *userService) Signup(ctx context.Context, in SignupInput) (*model.User, error) {
	first, last := strings.TrimSpace(in.FirstName), strings.TrimSpace(in.LastName)
	switch {
	case first == "":
		return nil, invalid("firstName", "is required")
	case last == "":
		return nil, invalid("lastName", "is required")
	case !ValidEmail(in.Email):
		return nil, ErrInvalidEmail
	case len(in.Password) < MinPasswordLength:
		return nil, invalid("password", fmt.Sprintf("must be at least %d characters", MinPasswordLength))
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := timeNow().UTC()
	u, err := s.repo.Create(ctx, &model.User{
		FirstName:    first,
		LastName:     last,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         model.RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrEmailTaken
	}
	return u, err
}

func (s *userService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	if in.Email == "" || in.Password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.FindByEmail(ctx, in.Email)
	if errors.Is(err, repository.ErrNotFound) {
		checkPassword(auth.UnusableHash(), in.Password)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !checkPassword(u.PasswordHash, in.Password) {
		return nil, ErrInvalidCredentials
	}

	now := timeNow().UTC()
	if err := s.repo.TouchLogin(ctx, u.ID.Hex(), now); err != nil {
		return nil, fmt.Errorf("touch login: %w", err)
	}
	u.LastLoginAt = &now

	token, err := s.tokens.IssueUser(u.ID.Hex(), u.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &LoginResult{User: u, Token: token}, nil
}

func (s *userService) List(ctx context.Context, limit, skip int) (*ListResult[model.User], error) {
	pq := pageQuery(limit, skip)
	res, err := s.repo.List(ctx, pq)
	if err != nil {
		return nil, err
	}
	return listResult(res, pq), nil
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

func (s *userService) Update(ctx context.Context, id string, p UserPatch) (*model.User, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}

	upd := model.UserUpdate{FirstName: trimmed(p.FirstName), LastName: trimmed(p.LastName)}
	if upd.FirstName != nil && *upd.FirstName == "" {
		return nil, invalid("firstName", "must not be empty")
	}
	if upd.LastName != nil && *upd.LastName == "" {
		return nil, invalid("lastName", "must not be empty")
	}
	if p.Role != nil {
		if *p.Role != model.RoleCustomer && *p.Role != model.RoleStaff {
			return nil, invalid("role", "must be customer or staff")
		}
		upd.Role = p.Role
	}

	u, err := s.repo.Update(ctx, id, upd, timeNow().UTC())
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	return notFound(s.repo.Delete(ctx, id))
}
