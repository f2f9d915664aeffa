package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"anoa.com/careerhub/internal/entity"
	"anoa.com/careerhub/internal/modules/user/dto"
	"anoa.com/careerhub/internal/modules/user/repository"
	"anoa.com/careerhub/pkg/apperror"
	"anoa.com/careerhub/pkg/password"
	"anoa.com/careerhub/pkg/session"
	"anoa.com/careerhub/pkg/validator"
	"gorm.io/gorm"
)

const (
	MsgAllFieldsRequired = "All fields are required."
	MsgInvalidEmail      = "Please enter a valid email address."
	MsgInvalidUsername   = "Username must be at least 3 characters long and contain only letters and numbers."
	MsgPasswordTooShort  = "Password must be at least 8 characters long."
	MsgPasswordMismatch  = "Passwords do not match."
	MsgEmailTaken        = "This email is already registered."
	MsgUsernameTaken     = "This username is already taken."
	MsgSignupFailed      = "An error occurred while creating your account. Please try again."
	MsgSignupSuccess     = "Account created successfully! Please sign in."
	MsgInvalidLogin      = "Invalid email or password."
)

var ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, MsgInvalidLogin, apperror.ErrUnauthorized)

type AuthService interface {
	Signup(ctx context.Context, input dto.SignupInput) (*entity.User, error)
	Signin(ctx context.Context, input dto.SigninInput) (*dto.AuthResponse, error)
	Logout(ctx context.Context, sessionID string) error
}

type authService struct {
	repo     repository.UserRepository
	sessions *session.Manager
	hasher   password.Hasher
}

func NewAuthService(repo repository.UserRepository, sessions *session.Manager, hasher password.Hasher) AuthService {
	return &authService{
		repo:     repo,
		sessions: sessions,
		hasher:   hasher,
	}
}

func (s *authService) Signup(ctx context.Context, input dto.SignupInput) (*entity.User, error) {
	email := strings.TrimSpace(input.Email)
	username := strings.TrimSpace(input.Username)
	pass := strings.TrimSpace(input.Password)
	confirm := strings.TrimSpace(input.ConfirmPassword)

	form := map[string]string{"email": email, "username": username}

	if email == "" || username == "" || pass == "" || confirm == "" {
		return nil, apperror.Invalid(MsgAllFieldsRequired, form)
	}
	if !validator.Var(email, "email") {
		return nil, apperror.Invalid(MsgInvalidEmail, form)
	}
	if utf8.RuneCountInString(username) < 3 || !validator.Var(username, "alphanum") {
		return nil, apperror.Invalid(MsgInvalidUsername, form)
	}
	if utf8.RuneCountInString(pass) < 8 {
		return nil, apperror.Invalid(MsgPasswordTooShort, form)
	}
	if pass != confirm {
		return nil, apperror.Invalid(MsgPasswordMismatch, form)
	}

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, apperror.Invalid(MsgEmailTaken, map[string]string{"username": username})
	}

	exists, err = s.repo.UsernameExists(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, apperror.Invalid(MsgUsernameTaken, map[string]string{"email": email})
	}

	hash, err := s.hasher.Hash(pass)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Email:        strings.ToLower(email),
		Username:     username,
		PasswordHash: hash,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &apperror.ValidationError{Message: MsgSignupFailed, Fields: form, Err: apperror.ErrConflict}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *authService) Signin(ctx context.Context, input dto.SigninInput) (*dto.AuthResponse, error) {
	user, err := s.repo.FindByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	return &dto.AuthResponse{
		AccessToken: token.Value,
		TokenType:   "Bearer",
		ExpiresIn:   token.ExpiresAt.Unix(),
		SessionID:   token.SessionID,
		User:        user,
		HasProfile:  user.Profile != nil,
	}, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Revoke(ctx, sessionID)
}
