package user

import (
	"context"
	"errors"
	"fmt"

	"laundrilo-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, name, email, password, phone, address string) (string, *Account, error)
	Login(ctx context.Context, email, password string) (string, *Account, error)
	GetProfile(ctx context.Context, userID int) (*Account, error)
	UpdateProfile(ctx context.Context, params UpdateProfileParams) (*Account, error)
	ListUsers(ctx context.Context, filter ListFilter, limit, page int) ([]Account, int, error)
	SetMembershipTier(ctx context.Context, userID int, tier string) error
	SetActive(ctx context.Context, userID int, active bool) error
	RecordOrderPlacement(ctx context.Context, userID int, amount float64) (*Account, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, name, email, password, phone, address string) (string, *Account, error) {
	log := logger.FromCtx(ctx)

	hashed, err := HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", nil, err
	}

	a, err := s.repo.Create(ctx, CreateAccountParams{
		Name:     name,
		Email:    email,
		Password: hashed,
		Phone:    phone,
		Address:  address,
		Role:     RoleCustomer,
	})
	if err != nil {
		if !errors.Is(err, ErrEmailExists) {
			log.Error("failed to create user", zap.String("email", email), zap.Error(err))
		}
		return "", nil, err
	}

	token, err := GenerateJWT(a.ID, string(a.Role), a.Email)
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", fmt.Sprint(a.ID)), zap.Error(err))
		return "", nil, err
	}

	log.Info("register completed",
		zap.String("user_id", fmt.Sprint(a.ID)),
		zap.String("email", email),
	)

	return token, a, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, *Account, error) {
	log := logger.FromCtx(ctx)

	a, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		log.Debug("email not found", zap.String("email", email))
		return "", nil, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, a.Password) {
		log.Debug("password mismatch", zap.String("email", email))
		return "", nil, ErrInvalidCredentials
	}

	if !a.IsActive {
		return "", nil, ErrAccountDisabled
	}

	if err := s.repo.TouchLastLogin(ctx, a.ID); err != nil {
		// Non-fatal, the login itself succeeded.
		log.Warn("failed to stamp last login", zap.Int("user_id", a.ID), zap.Error(err))
	}

	token, err := GenerateJWT(a.ID, string(a.Role), a.Email)
	if err != nil {
		return "", nil, err
	}

	return token, a, nil
}

func (s *service) GetProfile(ctx context.Context, userID int) (*Account, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *service) UpdateProfile(ctx context.Context, params UpdateProfileParams) (*Account, error) {
	return s.repo.UpdateProfile(ctx, params)
}

func (s *service) ListUsers(ctx context.Context, filter ListFilter, limit, page int) ([]Account, int, error) {
	return s.repo.List(ctx, filter, limit, page)
}

func (s *service) SetMembershipTier(ctx context.Context, userID int, tier string) error {
	if !ValidTier(tier) {
		return ErrInvalidTier
	}
	return s.repo.SetMembershipTier(ctx, userID, MembershipTier(tier))
}

func (s *service) SetActive(ctx context.Context, userID int, active bool) error {
	return s.repo.SetActive(ctx, userID, active)
}

func (s *service) RecordOrderPlacement(ctx context.Context, userID int, amount float64) (*Account, error) {
	return s.repo.RecordOrderPlacement(ctx, userID, amount)
}
