package service

import (
	"context"

	"github.com/haierkeys/bitshared-cli/internal/domain"
	"github.com/haierkeys/bitshared-cli/internal/dto"
	"github.com/haierkeys/bitshared-cli/pkg/code"
	"github.com/haierkeys/bitshared-cli/pkg/logger"
	"github.com/haierkeys/bitshared-cli/pkg/validator"
	"go.uber.org/zap"
)

// AdminService grants and revokes admin roles as the session user
// AdminService 管理员授权控制器
type AdminService interface {
	Grant(ctx context.Context, targetUsername string, targetRole domain.Role, majorNo *int64) (string, error)
	Revoke(ctx context.Context, targetUsername string) (string, error)
}

type adminAPI interface {
	GrantPermission(ctx context.Context, req *dto.GrantRequest) (string, error)
	RevokePermission(ctx context.Context, req *dto.RevokeRequest) (string, error)
}

type adminService struct {
	api       adminAPI
	session   SessionStore
	validator *validator.Validator
	config    *ServiceConfig
	logger    *zap.Logger
}

func NewAdminService(api adminAPI, session SessionStore, v *validator.Validator, config *ServiceConfig, lg *zap.Logger) AdminService {
	if lg == nil {
		lg = zap.NewNop()
	}
	if config == nil {
		config = &ServiceConfig{}
	}
	return &adminService{api: api, session: session, validator: v, config: config, logger: lg}
}

func (s *adminService) Grant(ctx context.Context, targetUsername string, targetRole domain.Role, majorNo *int64) (string, error) {
	sess, err := s.session.RequireLogin()
	if err != nil {
		return "", err
	}
	if !targetRole.Valid() {
		return "", code.ErrorInvalidParams.WithDetails("role must be 1..4")
	}
	req := &dto.GrantRequest{
		GrantorID:      sess.UserID,
		TargetUsername: targetUsername,
		TargetRole:     int(targetRole),
		MajorNo:        majorNo,
	}
	if err := validate(s.validator, req); err != nil {
		return "", err
	}

	msg, err := s.api.GrantPermission(ctx, req)
	if err != nil {
		s.logger.Warn("grant failed",
			zap.Int64(logger.FieldUID, sess.UserID),
			zap.String("target", targetUsername),
			zap.Error(err))
		return "", err
	}
	return s.message(msg), nil
}

func (s *adminService) Revoke(ctx context.Context, targetUsername string) (string, error) {
	sess, err := s.session.RequireLogin()
	if err != nil {
		return "", err
	}
	req := &dto.RevokeRequest{RevokerID: sess.UserID, TargetUsername: targetUsername}
	if err := validate(s.validator, req); err != nil {
		return "", err
	}

	msg, err := s.api.RevokePermission(ctx, req)
	if err != nil {
		s.logger.Warn("revoke failed",
			zap.Int64(logger.FieldUID, sess.UserID),
			zap.String("target", targetUsername),
			zap.Error(err))
		return "", err
	}
	return s.message(msg), nil
}

func (s *adminService) message(msg string) string {
	if msg != "" {
		return msg
	}
	if s.config.Lang == "" {
		return code.MsgOperationDone.Msg()
	}
	return code.MsgOperationDone.Lang.In(s.config.Lang)
}
