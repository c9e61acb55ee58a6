package service

import (
	"context"

	"aubri-backend/internal/domain"
	"aubri-backend/internal/identity"
	"aubri-backend/internal/policy"
	"aubri-backend/internal/repository"
	"aubri-backend/internal/validator"
)

type authService struct {
	authority   *identity.LocalAuthority
	profileRepo repository.ProfileRepository
	validate    *validator.Validator
}

func NewAuthService(authority *identity.LocalAuthority, profileRepo repository.ProfileRepository, validate *validator.Validator) AuthService {
	return &authService{
		authority:   authority,
		profileRepo: profileRepo,
		validate:    validate,
	}
}

func (s *authService) adapter(token string) *identity.Adapter {
	return identity.NewAdapter(s.authority.NewClient(token), s.profileRepo)
}

func (s *authService) Signup(ctx context.Context, req domain.SignUpRequest) (*AuthResult, error) {
	if err := s.validate.Validate("auth.signup", req); err != nil {
		return nil, err
	}
	a := s.adapter("")
	a.Start(ctx)
	defer a.Close()

	u, err := a.Signup(ctx, req)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: u, Session: a.Session(), View: policy.ResolveView(u.Role)}, nil
}

func (s *authService) Login(ctx context.Context, creds domain.Credentials) (*AuthResult, error) {
	if err := s.validate.Validate("auth.login", creds); err != nil {
		return nil, err
	}
	a := s.adapter("")
	a.Start(ctx)
	defer a.Close()

	u, err := a.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: u, Session: a.Session(), View: policy.ResolveView(u.Role)}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	a := s.adapter(token)
	a.Start(ctx)
	defer a.Close()
	return a.Logout(ctx)
}

func (s *authService) Resolve(ctx context.Context, token string) *domain.User {
	if token == "" {
		return nil
	}
	a := s.adapter(token)
	a.Start(ctx)
	defer a.Close()
	return a.CurrentUser()
}
