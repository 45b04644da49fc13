package service

import (
	"errors"
	"strings"
	"time"

	"go-3pl-warehouse/internal/model"
	"go-3pl-warehouse/internal/repository"
	"go-3pl-warehouse/pkg/jwt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = &Error{Kind: ErrUnauthorized, Message: "invalid email or password"}
	ErrUserInactive       = &Error{Kind: ErrUnauthorized, Message: "user account is inactive"}
)

type AuthService interface {
	Login(email, password string) (*LoginResponse, error)
	ValidateToken(tokenString string) (*model.UserResponse, error)
	SeedAdmin(email, password string) error
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
	signer   *jwt.Signer
}

func NewAuthService(userRepo repository.UserRepository, signer *jwt.Signer) AuthService {
	return &authService{
		userRepo: userRepo,
		signer:   signer,
	}
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, validationError("Email and password are required")
	}

	user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.signer.GenerateToken(user.ID, user.Email, user.FullName)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(user.ID, now); err != nil {
		logrus.Warnf("auth: failed to record login for %s: %v", user.Email, err)
	}
	user.LastLoginAt = &now

	return &LoginResponse{Token: token, User: user.ToResponse()}, nil
}

func (s *authService) ValidateToken(tokenString string) (*model.UserResponse, error) {
	claims, err := s.signer.ValidateToken(tokenString)
	if err != nil {
		return nil, &Error{Kind: ErrUnauthorized, Message: err.Error()}
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, &Error{Kind: ErrUnauthorized, Message: "user not found"}
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	resp := user.ToResponse()
	return &resp, nil
}

// SeedAdmin creates the first operator account, or resets its password when it already exists
func (s *authService) SeedAdmin(email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.userRepo.FindByEmail(email)
	if err == nil {
		if existing.CheckPassword(password) {
			return nil
		}
		if err := existing.SetPassword(password); err != nil {
			return err
		}
		return s.userRepo.UpdatePassword(existing.ID, existing.Password)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	admin := &model.User{
		Email:    email,
		FullName: "Warehouse Administrator",
		IsActive: true,
	}
	if err := admin.SetPassword(password); err != nil {
		return err
	}
	if err := s.userRepo.Create(admin); err != nil {
		return err
	}
	logrus.Infof("auth: admin user %s created", email)
	return nil
}
