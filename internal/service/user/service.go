package user

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"zhixiao_school_server/internal/dao/mysql/repository"
	myredis "zhixiao_school_server/internal/dao/redis"
	"zhixiao_school_server/internal/dto/request"
	"zhixiao_school_server/internal/dto/respond"
	"zhixiao_school_server/internal/model"
	"zhixiao_school_server/pkg/constants"
	"zhixiao_school_server/pkg/errorx"
	"zhixiao_school_server/pkg/util/jwt"
	"zhixiao_school_server/pkg/util/random"
)

// userInfoService 用户业务逻辑实现
// 通过构造函数注入 Repository 和 Cache 依赖
type userInfoService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
}

// NewUserService 构造函数，注入所有依赖
func NewUserService(repos *repository.Repositories, cacheService myredis.AsyncCacheService) *userInfoService {
	return &userInfoService{
		repos: repos,
		cache: cacheService,
	}
}

// Login 密码登录
func (u *userInfoService) Login(loginReq request.LoginRequest) (*respond.LoginRespond, error) {
	user, err := u.repos.User.FindByEmail(loginReq.Email)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeUserNotExist, "账号不存在，请联系管理员开通")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if !user.CheckPassword(loginReq.Password) {
		return nil, errorx.New(errorx.CodeInvalidPassword, "密码不正确，请重试")
	}

	// 生成双 Token
	accessToken, err := jwt.GenerateAccessToken(user.Uuid, user.Role)
	if err != nil {
		zap.L().Error("生成 Access Token 失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	refreshToken, tokenID, err := jwt.GenerateRefreshToken(user.Uuid, user.Role)
	if err != nil {
		zap.L().Error("生成 Refresh Token 失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	// 将 Refresh Token ID 存入 Redis，实现单点互踢
	redisKey := "user_token:" + user.Uuid
	if err := u.cache.Set(context.Background(), redisKey, tokenID,
		time.Duration(constants.REFRESH_TOKEN_EXPIRY_HOURS)*time.Hour); err != nil {
		// 不阻塞登录流程，仅记录日志
		zap.L().Error("存储 Token ID 到 Redis 失败", zap.Error(err))
	}

	// 异步记录登录时间
	u.cache.SubmitTask(func() {
		if err := u.repos.User.UpdateLastOnlineAt(user.Uuid, time.Now()); err != nil {
			zap.L().Error("更新登录时间失败", zap.Error(err))
		}
	})

	loginRsp := &respond.LoginRespond{
		Uuid:         user.Uuid,
		Name:         user.Name,
		Email:        user.Email,
		Telephone:    user.Telephone,
		Role:         user.Role,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}
	year, month, day := user.CreatedAt.Date()
	loginRsp.CreatedAt = fmt.Sprintf("%d.%d.%d", year, month, day)

	return loginRsp, nil
}

// checkEmailExist 检查邮箱是否已被占用
func (u *userInfoService) checkEmailExist(email string) error {
	_, err := u.repos.User.FindByEmail(email)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	return errorx.New(errorx.CodeUserExist, "该邮箱已经存在账号")
}

// Register 创建账号
// 由管理员调用，为教师/家长开通账号；密码入库前由模型钩子做 bcrypt 加密
func (u *userInfoService) Register(registerReq request.RegisterRequest) (*respond.RegisterRespond, error) {
	if err := u.checkEmailExist(registerReq.Email); err != nil {
		return nil, err
	}

	var newUser model.UserInfo
	newUser.Uuid = "U" + random.GetNowAndLenRandomString(11)
	newUser.Email = registerReq.Email
	newUser.RawPassword = registerReq.Password
	newUser.Name = registerReq.Name
	newUser.Telephone = registerReq.Telephone
	newUser.Role = registerReq.Role
	newUser.CreatedAt = time.Now()

	if err := u.repos.User.Create(&newUser); err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	zap.L().Info("账号创建成功",
		zap.String("uuid", newUser.Uuid),
		zap.String("role", newUser.Role),
	)
	return &respond.RegisterRespond{
		Uuid:  newUser.Uuid,
		Name:  newUser.Name,
		Email: newUser.Email,
		Role:  newUser.Role,
	}, nil
}

// RefreshToken 用刷新令牌换取新的访问令牌
// 校验 Redis 中的 Token ID，旧设备的 Refresh Token 在新登录后立即失效
func (u *userInfoService) RefreshToken(refreshToken string) (string, error) {
	claims, err := jwt.ParseToken(refreshToken)
	if err != nil {
		return "", errorx.New(errorx.CodeUnauthorized, "刷新令牌无效或已过期")
	}
	if claims.Subject != "refresh_token" || claims.TokenID == "" {
		return "", errorx.New(errorx.CodeUnauthorized, "令牌类型错误")
	}

	storedID, err := u.cache.GetOrError(context.Background(), "user_token:"+claims.UserID)
	if err != nil {
		zap.L().Warn("刷新令牌校验失败：Redis 中无记录",
			zap.String("user_id", claims.UserID), zap.Error(err))
		return "", errorx.New(errorx.CodeUnauthorized, "登录状态已失效，请重新登录")
	}
	if storedID != claims.TokenID {
		return "", errorx.New(errorx.CodeUnauthorized, "账号已在其他设备登录")
	}

	accessToken, err := jwt.GenerateAccessToken(claims.UserID, claims.Role)
	if err != nil {
		zap.L().Error("生成 Access Token 失败", zap.Error(err))
		return "", errorx.ErrServerBusy
	}
	return accessToken, nil
}

// GetUserInfo 获取单个用户信息
func (u *userInfoService) GetUserInfo(uuid string) (*respond.RegisterRespond, error) {
	user, err := u.repos.User.FindByUuid(uuid)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	return &respond.RegisterRespond{
		Uuid:  user.Uuid,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}, nil
}
