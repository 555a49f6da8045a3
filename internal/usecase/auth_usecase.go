package usecase

import (
	"context"
	"errors"
	"fmt"

	"vetadmin/internal/delivery/dto"
	"vetadmin/internal/domain/entity"
	"vetadmin/internal/domain/gateway"
	"vetadmin/internal/service"
	"vetadmin/pkg/jwt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidCredentials = errors.New("invalid login name or secret")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
)

type AuthUsecase interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, accountID int64, accessTokenID string) error
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	CurrentSession(ctx context.Context, accountID int64) (*dto.SessionResponse, error)
}

type authUsecase struct {
	log         *logrus.Logger
	accounts    gateway.AccountGateway
	jwtService  *jwt.JWTService
	redisClient *redis.Client
	audit       service.AuditService
}

func NewAuthUsecase(
	log *logrus.Logger,
	accounts gateway.AccountGateway,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
	audit service.AuditService,
) AuthUsecase {
	return &authUsecase{
		log:         log,
		accounts:    accounts,
		jwtService:  jwtService,
		redisClient: redisClient,
		audit:       audit,
	}
}

// Login verifies credentials against the clinic API, then issues a local
// access/refresh token pair whose IDs are tracked in Redis for revocation.
func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	req.Normalize()

	account, err := u.accounts.Login(ctx, req.LoginName, req.Secret)
	if err != nil {
		u.log.Warnf("Login failed for %q: %+v", req.LoginName, err)
		return nil, ErrInvalidCredentials
	}
	if account.Status != entity.AccountStatusActive {
		return nil, ErrAccountInactive
	}

	tokens, err := u.issueTokens(ctx, account)
	if err != nil {
		return nil, err
	}

	u.audit.Record(ctx, &account.ID, entity.AuditActionLogin, entity.JSON{
		"login_name": account.LoginName,
		"role":       string(account.Role),
	})

	return tokens, nil
}

func (u *authUsecase) Logout(ctx context.Context, accountID int64, accessTokenID string) error {
	accessKey := fmt.Sprintf("access_token:%d:%s", accountID, accessTokenID)
	if err := u.redisClient.Del(ctx, accessKey).Err(); err != nil {
		u.log.Warnf("Failed to revoke access token: %+v", err)
		return err
	}

	// Revoke any outstanding refresh tokens for the session owner.
	refreshPattern := fmt.Sprintf("refresh_token:%d:*", accountID)
	refreshKeys, err := u.redisClient.Keys(ctx, refreshPattern).Result()
	if err != nil {
		u.log.Warnf("Failed to list refresh tokens: %+v", err)
		return err
	}
	if len(refreshKeys) > 0 {
		if err := u.redisClient.Del(ctx, refreshKeys...).Err(); err != nil {
			u.log.Warnf("Failed to revoke refresh tokens: %+v", err)
			return err
		}
	}

	u.audit.Record(ctx, &accountID, entity.AuditActionLogout, nil)
	return nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(refreshToken)
	if err != nil || claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	refreshKey := fmt.Sprintf("refresh_token:%d:%s", claims.AccountID, claims.TokenID)
	exists, err := u.redisClient.Exists(ctx, refreshKey).Result()
	if err != nil {
		u.log.Warnf("Failed to check refresh token in Redis: %+v", err)
		return nil, err
	}
	if exists == 0 {
		return nil, ErrTokenRevoked
	}

	if err := u.redisClient.Del(ctx, refreshKey).Err(); err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}

	return u.issueTokens(ctx, &entity.Account{
		ID:        claims.AccountID,
		LoginName: claims.LoginName,
		Role:      claims.Role,
	})
}

func (u *authUsecase) CurrentSession(ctx context.Context, accountID int64) (*dto.SessionResponse, error) {
	account, err := u.accounts.FindByID(ctx, accountID)
	if err != nil {
		u.log.Warnf("Failed to load account %d: %+v", accountID, err)
		return nil, err
	}

	return &dto.SessionResponse{
		AccountID: account.ID,
		LoginName: account.LoginName,
		Role:      string(account.Role),
		Status:    account.Status,
	}, nil
}

func (u *authUsecase) issueTokens(ctx context.Context, account *entity.Account) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(account.ID, account.LoginName, account.Role)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(account.ID, account.LoginName, account.Role)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	accessKey := fmt.Sprintf("access_token:%d:%s", account.ID, accessTokenID)
	refreshKey := fmt.Sprintf("refresh_token:%d:%s", account.ID, refreshTokenID)

	if err := u.redisClient.Set(ctx, accessKey, "valid", u.jwtService.GetAccessExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store access token in Redis: %+v", err)
		return nil, err
	}
	if err := u.redisClient.Set(ctx, refreshKey, "valid", u.jwtService.GetRefreshExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store refresh token in Redis: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}
