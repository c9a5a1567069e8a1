// Package user 提供用户注册、登录与令牌管理
package user

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"aethorias_chronicle_server/internal/dao/mysql/repository"
	myredis "aethorias_chronicle_server/internal/dao/redis"
	"aethorias_chronicle_server/internal/dto/request"
	"aethorias_chronicle_server/internal/dto/respond"
	"aethorias_chronicle_server/internal/model"
	"aethorias_chronicle_server/pkg/constants"
	"aethorias_chronicle_server/pkg/enum/user_info/user_status_enum"
	"aethorias_chronicle_server/pkg/errorx"
	"aethorias_chronicle_server/pkg/util/jwt"
	"aethorias_chronicle_server/pkg/util/random"
)

// userService 用户业务逻辑实现
type userService struct {
	repos *repository.Repositories
	cache myredis.CacheService
}

// NewUserService 构造函数
// cache 可为 nil，此时刷新令牌的单点互踢校验被跳过
func NewUserService(repos *repository.Repositories, cache myredis.CacheService) *userService {
	return &userService{repos: repos, cache: cache}
}

// tokenKey 刷新令牌在 Redis 中的键
func tokenKey(userId string) string {
	return "user_token:" + userId
}

// storeTokenID 记录刷新令牌 ID，实现单点互踢
func (u *userService) storeTokenID(userId, tokenID string) {
	if u.cache == nil {
		return
	}
	err := u.cache.Set(context.Background(), tokenKey(userId), tokenID,
		time.Duration(constants.REFRESH_TOKEN_EXPIRY_HOURS)*time.Hour)
	if err != nil {
		// 不阻塞登录流程，仅记录日志
		zap.L().Error("存储 Token ID 到 Redis 失败", zap.Error(err))
	}
}

// Register 用户注册
func (u *userService) Register(req request.RegisterRequest) (*respond.UserInfoRespond, error) {
	_, err := u.repos.User.FindByUsername(req.Username)
	if err == nil {
		return nil, errorx.New(errorx.CodeUserExist, "用户名已被占用")
	}
	if errorx.GetCode(err) != errorx.CodeNotFound {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	newUser := &model.UserInfo{
		Uuid:        fmt.Sprintf("U%s", random.GetNowAndLenRandomString(11)),
		Username:    req.Username,
		Nickname:    req.Nickname,
		Email:       req.Email,
		RawPassword: req.Password,
		Status:      user_status_enum.NORMAL,
	}
	if err := u.repos.User.Create(newUser); err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	return buildUserInfoRespond(newUser), nil
}

// Login 密码登录
func (u *userService) Login(req request.LoginRequest) (*respond.LoginRespond, error) {
	user, err := u.repos.User.FindByUsername(req.Username)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在，请注册")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if !user.CheckPassword(req.Password) {
		return nil, errorx.New(errorx.CodeInvalidPassword, "密码不正确，请重试")
	}
	if user.Status == user_status_enum.DISABLE {
		return nil, errorx.New(errorx.CodeForbidden, "账号已被禁用")
	}

	accessToken, err := jwt.GenerateAccessToken(user.Uuid)
	if err != nil {
		zap.L().Error("生成 Access Token 失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	refreshToken, tokenID, err := jwt.GenerateRefreshToken(user.Uuid)
	if err != nil {
		zap.L().Error("生成 Refresh Token 失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	u.storeTokenID(user.Uuid, tokenID)

	user.LastOnlineAt = sql.NullTime{Time: time.Now(), Valid: true}
	if err := u.repos.User.Update(user); err != nil {
		zap.L().Error("更新登录时间失败", zap.Error(err))
	}

	info := buildUserInfoRespond(user)
	return &respond.LoginRespond{
		Uuid:         info.Uuid,
		Username:     info.Username,
		Nickname:     info.Nickname,
		Email:        info.Email,
		CreatedAt:    info.CreatedAt,
		IsAdmin:      info.IsAdmin,
		Status:       info.Status,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshToken 刷新双令牌
// 校验刷新令牌有效且为该用户当前有效的那一枚，然后轮换出新的一对
func (u *userService) RefreshToken(req request.RefreshTokenRequest) (*respond.TokenRespond, error) {
	claims, err := jwt.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, errorx.New(errorx.CodeUnauthorized, "刷新令牌无效或已过期")
	}
	if claims.TokenID == "" {
		return nil, errorx.New(errorx.CodeUnauthorized, "令牌类型错误")
	}

	if u.cache != nil {
		validTokenID, err := u.cache.Get(context.Background(), tokenKey(claims.UserID))
		if err != nil {
			zap.L().Error(err.Error())
			return nil, errorx.ErrServerBusy
		}
		if validTokenID == "" || validTokenID != claims.TokenID {
			return nil, errorx.New(errorx.CodeUnauthorized, "刷新令牌已失效，请重新登录")
		}
	}

	accessToken, err := jwt.GenerateAccessToken(claims.UserID)
	if err != nil {
		zap.L().Error("生成 Access Token 失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	refreshToken, tokenID, err := jwt.GenerateRefreshToken(claims.UserID)
	if err != nil {
		zap.L().Error("生成 Refresh Token 失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	u.storeTokenID(claims.UserID, tokenID)

	return &respond.TokenRespond{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout 登出，作废当前刷新令牌
func (u *userService) Logout(userId string) error {
	if u.cache == nil {
		return nil
	}
	if err := u.cache.Delete(context.Background(), tokenKey(userId)); err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	return nil
}

// GetUserInfo 获取单个用户信息
func (u *userService) GetUserInfo(uuid string) (*respond.UserInfoRespond, error) {
	user, err := u.repos.User.FindByUuid(uuid)
	if err != nil {
		return nil, err
	}
	return buildUserInfoRespond(user), nil
}

// buildUserInfoRespond 拼装用户信息响应
func buildUserInfoRespond(user *model.UserInfo) *respond.UserInfoRespond {
	return &respond.UserInfoRespond{
		Uuid:      user.Uuid,
		Username:  user.Username,
		Nickname:  user.Nickname,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format("2006-01-02 15:04:05"),
		IsAdmin:   user.IsAdmin,
		Status:    user.Status,
	}
}
