package service

import (
	"context"
	"strings"

	"github.com/haierkeys/bitshared-cli/internal/api"
	"github.com/haierkeys/bitshared-cli/internal/domain"
	"github.com/haierkeys/bitshared-cli/internal/dto"
	"github.com/haierkeys/bitshared-cli/pkg/code"
	"github.com/haierkeys/bitshared-cli/pkg/logger"
	"github.com/haierkeys/bitshared-cli/pkg/validator"
	"github.com/jinzhu/copier"
	"go.uber.org/zap"
)

// UserService account controller: login, registration, profile.
// UserService 账户控制器
type UserService interface {
	// Login 登录成功后写入会话
	Login(ctx context.Context, params *dto.LoginRequest) (*domain.User, error)
	// Register 注册成功后自动登录
	Register(ctx context.Context, params *dto.RegisterRequest) (*domain.User, error)
	Logout(ctx context.Context) error
	FetchProfile(ctx context.Context) (*domain.Profile, error)
	// SaveProfile creates the profile when none exists yet, updates it otherwise
	SaveProfile(ctx context.Context, params *dto.ProfileRequest) (*domain.Profile, error)
}

type userAPI interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*domain.User, error)
	GetProfile(ctx context.Context, userID int64) (*domain.Profile, error)
	CreateProfile(ctx context.Context, req *dto.ProfileRequest) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.ProfileRequest) (*domain.Profile, error)
}

type userService struct {
	api       userAPI
	session   SessionStore
	validator *validator.Validator
	logger    *zap.Logger
}

func NewUserService(api userAPI, session SessionStore, v *validator.Validator, lg *zap.Logger) UserService {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &userService{api: api, session: session, validator: v, logger: lg}
}

func (s *userService) Login(ctx context.Context, params *dto.LoginRequest) (*domain.User, error) {
	if err := validate(s.validator, params); err != nil {
		return nil, err
	}
	user, err := s.api.Login(ctx, params)
	if err != nil {
		s.logger.Info("login failed", zap.String("username", params.Username), zap.Error(err))
		return nil, err
	}
	if err := s.remember(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Register(ctx context.Context, params *dto.RegisterRequest) (*domain.User, error) {
	if strings.TrimSpace(params.Username) == "" || strings.TrimSpace(params.Password) == "" || strings.TrimSpace(params.Email) == "" {
		return nil, code.ErrorRegisterIncomplete
	}
	if err := validate(s.validator, params); err != nil {
		return nil, err
	}
	user, err := s.api.Register(ctx, params)
	if err != nil {
		s.logger.Info("register failed", zap.String("username", params.Username), zap.Error(err))
		return nil, err
	}
	if err := s.remember(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) remember(ctx context.Context, user *domain.User) error {
	return s.session.Save(ctx, &domain.Session{
		UserID:   user.ID,
		Role:     user.Role,
		Username: user.Username,
	})
}

func (s *userService) Logout(ctx context.Context) error {
	return s.session.Clear(ctx)
}

func (s *userService) FetchProfile(ctx context.Context) (*domain.Profile, error) {
	sess, err := s.session.RequireLogin()
	if err != nil {
		return nil, err
	}
	p, err := s.api.GetProfile(ctx, sess.UserID)
	if err != nil {
		s.logger.Warn("fetch profile failed", zap.Int64(logger.FieldUID, sess.UserID), zap.Error(err))
		return nil, err
	}
	return p, nil
}

// SaveProfile 资料不存在（404）时创建，否则更新；其他错误直接返回
func (s *userService) SaveProfile(ctx context.Context, params *dto.ProfileRequest) (*domain.Profile, error) {
	sess, err := s.session.RequireLogin()
	if err != nil {
		return nil, err
	}
	if err := validate(s.validator, params); err != nil {
		return nil, err
	}

	req := &dto.ProfileRequest{}
	if err := copier.Copy(req, params); err != nil {
		return nil, code.ErrorInvalidParams.WithDetails(err.Error())
	}

	existing, getErr := s.api.GetProfile(ctx, sess.UserID)
	if getErr != nil && !api.IsNotFound(getErr) {
		s.logger.Warn("load profile failed", zap.Int64(logger.FieldUID, sess.UserID), zap.Error(getErr))
		return nil, getErr
	}
	if getErr != nil {
		s.logger.Debug("profile missing, creating", zap.Int64(logger.FieldUID, sess.UserID), zap.Error(getErr))
		uid := sess.UserID
		req.UserID = &uid
		return s.api.CreateProfile(ctx, req)
	}

	req.UserID = nil
	return s.api.UpdateProfile(ctx, existing.UserID, req)
}

// ProfileToRequest prefills an edit request from the current profile
// ProfileToRequest 用当前资料预填编辑请求
func ProfileToRequest(p *domain.Profile) *dto.ProfileRequest {
	req := &dto.ProfileRequest{}
	if p == nil {
		return req
	}
	if p.Nickname != nil {
		req.Nickname = *p.Nickname
	}
	if p.Bio != nil {
		req.Bio = *p.Bio
	}
	if p.Major != nil {
		req.Major = *p.Major
	}
	return req
}
