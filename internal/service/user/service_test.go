package user

import (
	"context"
	"sync"
	"testing"
	"time"

	"zhixiao_school_server/internal/dao/mysql/repository"
	"zhixiao_school_server/internal/dto/request"
	"zhixiao_school_server/internal/model"
	"zhixiao_school_server/pkg/constants"
	"zhixiao_school_server/pkg/errorx"
	"zhixiao_school_server/pkg/util/jwt"
)

func init() {
	jwt.Init("unit-test-secret-key-0123456789abcdef", 30, 168)
}

// memUserRepo 内存版用户 Repository
// Create 时手动触发模型钩子，模拟 GORM 的密码加密流程
type memUserRepo struct {
	users map[string]*model.UserInfo
}

func (r *memUserRepo) FindByUuid(uuid string) (*model.UserInfo, error) {
	if u, ok := r.users[uuid]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, errorx.New(errorx.CodeNotFound, "record not found")
}
func (r *memUserRepo) FindByEmail(email string) (*model.UserInfo, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "record not found")
}
func (r *memUserRepo) FindByUuids(uuids []string) ([]model.UserInfo, error) { return nil, nil }
func (r *memUserRepo) Create(user *model.UserInfo) error {
	if err := user.BeforeSave(nil); err != nil {
		return err
	}
	r.users[user.Uuid] = user
	return nil
}
func (r *memUserRepo) UpdateLastOnlineAt(uuid string, at time.Time) error { return nil }

// memCache 内存缓存，存储刷新令牌 ID
type memCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemCache() *memCache {
	return &memCache{data: map[string]string{}}
}

func (c *memCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}
func (c *memCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data[key], nil
}
func (c *memCache) GetOrError(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.data[key]; ok {
		return v, nil
	}
	return "", errorx.New(errorx.CodeCacheError, "key not found")
}
func (c *memCache) AddToSet(ctx context.Context, key string, members ...interface{}) error {
	return nil
}
func (c *memCache) GetSetMembers(ctx context.Context, key string) ([]string, error) { return nil, nil }
func (c *memCache) RemoveFromSet(ctx context.Context, key string, members ...interface{}) error {
	return nil
}
func (c *memCache) Delete(ctx context.Context, key string) error              { return nil }
func (c *memCache) DeleteByPattern(ctx context.Context, pattern string) error { return nil }
func (c *memCache) DeleteByPatterns(ctx context.Context, patterns []string) error {
	return nil
}
func (c *memCache) SubmitTask(action func()) { action() }

func newTestService() (*userInfoService, *memUserRepo, *memCache) {
	users := &memUserRepo{users: map[string]*model.UserInfo{}}
	cache := newMemCache()
	repos := &repository.Repositories{User: users}
	return NewUserService(repos, cache), users, cache
}

func registerTeacher(t *testing.T, svc *userInfoService) string {
	t.Helper()
	rsp, err := svc.Register(request.RegisterRequest{
		Name: "李老师", Email: "teacher@test.com",
		Password: "secret123", Role: constants.RoleTeacher,
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	return rsp.Uuid
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, users, _ := newTestService()
	uuid := registerTeacher(t, svc)

	stored := users.users[uuid]
	if stored.Password == "" || stored.Password == "secret123" {
		t.Error("password should be stored hashed")
	}
	if stored.RawPassword != "" {
		t.Error("raw password should be cleared after hashing")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()
	registerTeacher(t, svc)

	_, err := svc.Register(request.RegisterRequest{
		Name: "另一个人", Email: "teacher@test.com",
		Password: "other", Role: constants.RoleParent,
	})
	if errorx.GetCode(err) != errorx.CodeUserExist {
		t.Errorf("expect CodeUserExist, got %v", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	svc, _, cache := newTestService()
	uuid := registerTeacher(t, svc)

	rsp, err := svc.Login(request.LoginRequest{Email: "teacher@test.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if rsp.Uuid != uuid || rsp.Role != constants.RoleTeacher {
		t.Errorf("login respond = %+v", rsp)
	}
	if rsp.AccessToken == "" || rsp.RefreshToken == "" {
		t.Error("login should return both tokens")
	}

	claims, err := jwt.ParseToken(rsp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token failed: %v", err)
	}
	if claims.UserID != uuid || claims.Role != constants.RoleTeacher {
		t.Errorf("claims = %+v", claims)
	}

	// 刷新令牌 ID 已入缓存
	if stored, _ := cache.Get(context.Background(), "user_token:"+uuid); stored == "" {
		t.Error("refresh token id should be cached")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestService()
	registerTeacher(t, svc)

	_, err := svc.Login(request.LoginRequest{Email: "teacher@test.com", Password: "wrong"})
	if errorx.GetCode(err) != errorx.CodeInvalidPassword {
		t.Errorf("expect CodeInvalidPassword, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Login(request.LoginRequest{Email: "nobody@test.com", Password: "x"})
	if errorx.GetCode(err) != errorx.CodeUserNotExist {
		t.Errorf("expect CodeUserNotExist, got %v", err)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc, _, _ := newTestService()
	uuid := registerTeacher(t, svc)
	login, err := svc.Login(request.LoginRequest{Email: "teacher@test.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	accessToken, err := svc.RefreshToken(login.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken failed: %v", err)
	}
	claims, err := jwt.ParseToken(accessToken)
	if err != nil {
		t.Fatalf("parse refreshed token failed: %v", err)
	}
	if claims.UserID != uuid {
		t.Errorf("refreshed token user = %s, want %s", claims.UserID, uuid)
	}
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	svc, _, _ := newTestService()
	registerTeacher(t, svc)
	login, _ := svc.Login(request.LoginRequest{Email: "teacher@test.com", Password: "secret123"})

	// Access Token 不能当刷新令牌用
	_, err := svc.RefreshToken(login.AccessToken)
	if errorx.GetCode(err) != errorx.CodeUnauthorized {
		t.Errorf("expect CodeUnauthorized, got %v", err)
	}
}

func TestRefreshTokenInvalidatedByNewLogin(t *testing.T) {
	svc, _, _ := newTestService()
	registerTeacher(t, svc)
	first, _ := svc.Login(request.LoginRequest{Email: "teacher@test.com", Password: "secret123"})
	// 第二次登录顶掉第一次的刷新令牌
	if _, err := svc.Login(request.LoginRequest{Email: "teacher@test.com", Password: "secret123"}); err != nil {
		t.Fatalf("second login failed: %v", err)
	}

	_, err := svc.RefreshToken(first.RefreshToken)
	if errorx.GetCode(err) != errorx.CodeUnauthorized {
		t.Errorf("old refresh token should be invalidated, got %v", err)
	}
}
