package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Harshana2/lims/internal/config"
	"github.com/Harshana2/lims/internal/lims/entity"
	"github.com/Harshana2/lims/internal/lims/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService password login and JWT issuance
type AuthService struct {
	repos  *repository.Repositories
	tokens TokenStore
	cfg    config.JWTConfig
}

func NewAuthService(repos *repository.Repositories, tokens TokenStore, cfg config.JWTConfig) *AuthService {
	if tokens == nil {
		tokens = NewMemoryTokenStore()
	}
	return &AuthService{repos: repos, tokens: tokens, cfg: cfg}
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterReq struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
	Email    string `json:"email" binding:"omitempty,email"`
	Role     string `json:"role" binding:"omitempty,oneof=ADMIN MANAGER CHEMIST USER"`
}

// Login verifies the password and returns the user with a fresh token pair
func (s *AuthService) Login(ctx context.Context, req LoginReq) (*entity.User, *TokenPair, error) {
	user, err := s.repos.User.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("load user: %w", err)
	}
	if !user.Active {
		return nil, nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.generateTokenPair(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *AuthService) Register(ctx context.Context, req RegisterReq) (*entity.User, error) {
	taken, err := s.repos.User.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("user %s: %w", req.Username, ErrDuplicateIdentifier)
	}
	if req.Email != "" {
		taken, err := s.repos.User.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if taken {
			return nil, fmt.Errorf("email %s: %w", req.Email, ErrDuplicateIdentifier)
		}
	}

	user, err := NewUser(req)
	if err != nil {
		return nil, err
	}
	if err := s.repos.User.Create(ctx, user); err != nil {
		return nil, saveErr(err, "user", req.Username)
	}
	return user, nil
}

// NewUser builds an active account with a bcrypt password hash
func NewUser(req RegisterReq) (*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return &entity.User{
		ID:       generateID(),
		Username: req.Username,
		Password: string(hash),
		Name:     orDefault(req.Name, req.Username),
		Email:    req.Email,
		Role:     orDefault(req.Role, entity.RoleUser),
		Active:   true,
	}, nil
}

func (s *AuthService) generateTokenPair(ctx context.Context, user *entity.User) (*TokenPair, error) {
	now := time.Now()

	accessClaims := jwt.MapClaims{
		"sub":  user.ID,
		"uid":  user.ID,
		"name": user.Username,
		"role": user.Role,
		"iss":  s.cfg.Issuer,
		"iat":  now.Unix(),
		"exp":  now.Add(s.cfg.AccessTokenExpire).Unix(),
		"jti":  uuid.New().String(),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshJti := uuid.New().String()
	refreshClaims := jwt.MapClaims{
		"sub":  user.ID,
		"type": "refresh",
		"iss":  s.cfg.Issuer,
		"iat":  now.Unix(),
		"exp":  now.Add(s.cfg.RefreshTokenExpire).Unix(),
		"jti":  refreshJti,
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	if err := s.tokens.Save(ctx, refreshJti, user.ID, s.cfg.RefreshTokenExpire); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.cfg.AccessTokenExpire.Seconds()),
	}, nil
}

// RefreshToken exchanges a refresh token for a new pair; each refresh token works once
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidToken)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims["type"] != "refresh" {
		return nil, fmt.Errorf("wrong token type: %w", ErrInvalidToken)
	}
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return nil, ErrInvalidToken
	}

	userID, err := s.tokens.Take(ctx, jti)
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return nil, fmt.Errorf("refresh token revoked: %w", ErrInvalidToken)
		}
		return nil, fmt.Errorf("redeem refresh token: %w", err)
	}

	user, err := s.repos.User.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user", userID)
	}
	if !user.Active {
		return nil, ErrInvalidToken
	}

	return s.generateTokenPair(ctx, user)
}

func (s *AuthService) GetCurrentUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := s.repos.User.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user", userID)
	}
	return user, nil
}
