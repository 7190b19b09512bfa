package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"rgpt-backend/internal/config"
	"rgpt-backend/internal/dto"
	"rgpt-backend/internal/entity"
	"rgpt-backend/internal/pkg/apperror"
	"rgpt-backend/internal/repository/memory"
	"rgpt-backend/internal/repository/specification"
	"rgpt-backend/internal/repository/unitofwork"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

type IAuthService interface {
	// LoginWithGoogle verifies a Google id_token and returns a backend token.
	LoginWithGoogle(ctx context.Context, idToken string) (*dto.LoginResponse, error)
	// GetLoginURL starts the redirect code flow.
	GetLoginURL(provider string) (string, error)
	// HandleCallback finishes the redirect code flow.
	HandleCallback(ctx context.Context, provider string, code string) (*dto.LoginResponse, error)
	Me(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error)
}

// googleIdentity is the profile shape both verification paths produce.
type googleIdentity struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Aud     string `json:"aud"`
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	cfg        *config.Config
	googleConf *oauth2.Config
	http       *resty.Client
	tokens     *memory.TokenCache
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, cfg *config.Config) IAuthService {
	conf := &oauth2.Config{
		ClientID:     cfg.Auth.GoogleClientID,
		ClientSecret: cfg.Auth.GoogleClientSecret,
		RedirectURL:  cfg.Auth.GoogleRedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	return &authService{
		uowFactory: uowFactory,
		cfg:        cfg,
		googleConf: conf,
		http:       resty.New().SetTimeout(10 * time.Second),
		tokens:     memory.NewTokenCache(),
	}
}

func (s *authService) LoginWithGoogle(ctx context.Context, idToken string) (*dto.LoginResponse, error) {
	// Repeat logins with the same token skip the remote verification.
	if userId, ok := s.tokens.Get(idToken); ok {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
		if err != nil {
			return nil, err
		}
		if user != nil {
			return s.issueToken(user)
		}
		s.tokens.Delete(idToken)
	}

	identity, err := s.verifyIdToken(ctx, idToken)
	if err != nil {
		return nil, apperror.Unauthorized(fmt.Sprintf("Google token verification failed: %v", err))
	}

	user, err := s.upsertUser(ctx, identity)
	if err != nil {
		return nil, err
	}

	s.tokens.Save(idToken, user.Id)
	return s.issueToken(user)
}

func (s *authService) verifyIdToken(ctx context.Context, idToken string) (*googleIdentity, error) {
	var identity googleIdentity
	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParam("id_token", idToken).
		SetResult(&identity).
		Get(googleTokenInfoURL)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("tokeninfo status %d", resp.StatusCode())
	}
	if identity.Email == "" {
		return nil, errors.New("token carries no email")
	}
	if s.cfg.Auth.GoogleClientID != "" && identity.Aud != s.cfg.Auth.GoogleClientID {
		return nil, errors.New("token audience mismatch")
	}
	return &identity, nil
}

// upsertUser maps a verified Google identity to the local user record,
// idempotently refreshing profile fields on repeat login.
func (s *authService) upsertUser(ctx context.Context, identity *googleIdentity) (*entity.User, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.UserRepository()

	user, err := repo.FindOne(ctx, specification.ByEmail{Email: identity.Email})
	if err != nil {
		return nil, err
	}

	if user == nil {
		user = &entity.User{
			Id:       uuid.New(),
			Email:    identity.Email,
			FullName: identity.Name,
		}
		if identity.Picture != "" {
			user.AvatarURL = &identity.Picture
		}
		if err := repo.Create(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}

	if identity.Picture != "" {
		user.AvatarURL = &identity.Picture
	}
	if identity.Name != "" {
		user.FullName = identity.Name
	}
	if err := repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) issueToken(user *entity.User) (*dto.LoginResponse, error) {
	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"email":   user.Email,
		"exp":     time.Now().Add(7 * 24 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Auth.JwtSecret))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: signed,
		User:        userToResponse(user),
	}, nil
}

func (s *authService) GetLoginURL(provider string) (string, error) {
	if provider != "google" {
		return "", apperror.Validation("unsupported provider")
	}

	b := make([]byte, 16)
	rand.Read(b)
	state := base64.URLEncoding.EncodeToString(b)

	return s.googleConf.AuthCodeURL(state), nil
}

func (s *authService) HandleCallback(ctx context.Context, provider string, code string) (*dto.LoginResponse, error) {
	if provider != "google" {
		return nil, apperror.Validation("unsupported provider")
	}

	token, err := s.googleConf.Exchange(ctx, code)
	if err != nil {
		return nil, apperror.Unauthorized(fmt.Sprintf("code exchange failed: %v", err))
	}

	var identity googleIdentity
	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParam("access_token", token.AccessToken).
		SetResult(&identity).
		Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, err
	}
	if resp.IsError() || identity.Email == "" {
		return nil, apperror.Unauthorized("failed getting user info")
	}

	user, err := s.upsertUser(ctx, &identity)
	if err != nil {
		return nil, err
	}
	return s.issueToken(user)
}

func (s *authService) Me(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}
	return userToResponse(user), nil
}

func userToResponse(user *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		Id:        user.Id,
		Email:     user.Email,
		FullName:  user.FullName,
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt,
	}
}
