package service

import (
	"go-storefront-api/internal/model"
	"go-storefront-api/internal/repository"
	"go-storefront-api/pkg/jwt"
	"go-storefront-api/pkg/validator"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required,min=6"`
	FullName string     `json:"full_name" validate:"required"`
	Role     model.Role `json:"role" validate:"required,oneof=seller customer"`
}

type AuthService interface {
	Login(req *LoginRequest) (string, *model.UserResponse, error)
	Register(req *RegisterRequest) (*model.UserResponse, error)
	RoleByEmail(email string) (model.Role, error)
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Login(req *LoginRequest) (string, *model.UserResponse, error) {
	if err := validator.FirstError(req); err != nil {
		return "", nil, err
	}

	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", nil, ErrAccountDisabled
	}
	if !user.CheckPassword(req.Password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, user.FullName, string(user.Role))
	if err != nil {
		return "", nil, err
	}

	resp := user.ToResponse()
	return token, &resp, nil
}

// Register creates a seller or customer account. Admin accounts are
// seeded, never self-registered.
func (s *authService) Register(req *RegisterRequest) (*model.UserResponse, error) {
	if err := validator.FirstError(req); err != nil {
		return nil, err
	}

	if existing, err := s.userRepo.FindByEmail(req.Email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	user := &model.User{
		Email:    req.Email,
		FullName: req.FullName,
		Role:     req.Role,
		IsActive: true,
	}
	user.CreatedBy = req.Email
	user.UpdatedBy = req.Email
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	resp := user.ToResponse()
	return &resp, nil
}

// RoleByEmail resolves the role attached to an account, the lookup the
// dashboard performs when it builds an actor from an email.
func (s *authService) RoleByEmail(email string) (model.Role, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}
