package service

import (
	"errors"

	"go-farm-ledger/internal/model"
	"go-farm-ledger/internal/repository"
	"go-farm-ledger/pkg/jwt"

	"gorm.io/gorm"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Age      *int   `json:"age"`
	Gender   string `json:"gender"`
	Address  string `json:"address"`
	Mobile   string `json:"mobile" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Mobile   string `json:"mobile" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type AuthService interface {
	Register(req *RegisterRequest) (*AuthResponse, error)
	Login(req *LoginRequest) (*AuthResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Register(req *RegisterRequest) (*AuthResponse, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	// Mobile is the login identity, one account per number
	existing, err := s.userRepo.FindByMobile(req.Mobile)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeError(err)
	}
	if existing != nil {
		return nil, ErrMobileTaken
	}

	user := &model.User{
		Name:    req.Name,
		Age:     req.Age,
		Gender:  req.Gender,
		Address: req.Address,
		Mobile:  req.Mobile,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, storeError(err)
	}

	return s.issueToken(user)
}

func (s *authService) Login(req *LoginRequest) (*AuthResponse, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	// Unknown mobile and wrong password are indistinguishable to the caller
	user, err := s.userRepo.FindByMobile(req.Mobile)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, storeError(err)
	}

	if !user.CheckPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(user)
}

func (s *authService) issueToken(user *model.User) (*AuthResponse, error) {
	token, err := jwt.GenerateToken(user.ID, user.Mobile, user.Name)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &AuthResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}
