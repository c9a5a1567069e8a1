package user

import (
	"testing"

	"aethorias_chronicle_server/internal/dao/mysql/repository"
	"aethorias_chronicle_server/internal/dto/request"
	"aethorias_chronicle_server/pkg/errorx"
	"aethorias_chronicle_server/pkg/util/jwt"
)

func newTestService(t *testing.T) *userService {
	t.Helper()
	jwt.Init("test-secret", 30, 168)
	return NewUserService(repository.NewMemoryRepositories(), nil)
}

func wantCode(t *testing.T, err error, code int) {
	t.Helper()
	if err == nil {
		t.Fatalf("期望错误码 %d，实际无错误", code)
	}
	if got := errorx.GetCode(err); got != code {
		t.Fatalf("期望错误码 %d，实际 %d (%v)", code, got, err)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(t)

	info, err := svc.Register(request.RegisterRequest{
		Username: "dustin", Password: "secret123", Nickname: "老谢",
	})
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if info.Uuid == "" || info.Uuid[0] != 'U' {
		t.Fatalf("用户 uuid 应以 U 开头: %s", info.Uuid)
	}

	// 用户名占用
	_, err = svc.Register(request.RegisterRequest{
		Username: "dustin", Password: "another123", Nickname: "另一个",
	})
	wantCode(t, err, errorx.CodeUserExist)

	// 密码错误
	_, err = svc.Login(request.LoginRequest{Username: "dustin", Password: "wrong"})
	wantCode(t, err, errorx.CodeInvalidPassword)

	// 未注册用户
	_, err = svc.Login(request.LoginRequest{Username: "nobody", Password: "secret123"})
	wantCode(t, err, errorx.CodeUserNotExist)

	login, err := svc.Login(request.LoginRequest{Username: "dustin", Password: "secret123"})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if login.AccessToken == "" || login.RefreshToken == "" {
		t.Fatal("登录应签发双令牌")
	}

	// 访问令牌可解析回用户
	claims, err := jwt.ParseToken(login.AccessToken)
	if err != nil {
		t.Fatalf("访问令牌解析失败: %v", err)
	}
	if claims.UserID != info.Uuid {
		t.Fatalf("令牌载荷用户不符: %s", claims.UserID)
	}
}

func TestRefreshToken(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Register(request.RegisterRequest{
		Username: "dustin", Password: "secret123", Nickname: "老谢",
	}); err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	login, err := svc.Login(request.LoginRequest{Username: "dustin", Password: "secret123"})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}

	// 访问令牌不能当刷新令牌用
	_, err = svc.RefreshToken(request.RefreshTokenRequest{RefreshToken: login.AccessToken})
	wantCode(t, err, errorx.CodeUnauthorized)

	// 伪造令牌
	_, err = svc.RefreshToken(request.RefreshTokenRequest{RefreshToken: "not-a-token"})
	wantCode(t, err, errorx.CodeUnauthorized)

	tokens, err := svc.RefreshToken(request.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	if err != nil {
		t.Fatalf("刷新令牌失败: %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatal("刷新应轮换出新的双令牌")
	}
}

func TestGetUserInfo(t *testing.T) {
	svc := newTestService(t)
	info, err := svc.Register(request.RegisterRequest{
		Username: "dustin", Password: "secret123", Nickname: "老谢", Email: "d@example.com",
	})
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	got, err := svc.GetUserInfo(info.Uuid)
	if err != nil {
		t.Fatalf("查询用户失败: %v", err)
	}
	if got.Username != "dustin" || got.Nickname != "老谢" || got.Email != "d@example.com" {
		t.Fatalf("用户信息不符: %+v", got)
	}

	_, err = svc.GetUserInfo("U_missing001")
	wantCode(t, err, errorx.CodeNotFound)
}
