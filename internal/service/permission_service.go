package service

import (
	"context"

	"github.com/haierkeys/bitshared-cli/internal/domain"
	"github.com/haierkeys/bitshared-cli/pkg/logger"
	"go.uber.org/zap"
)

// PermissionGate derives the edit capability for a course from the
// session role and, for major admins only, the server-side check.
// PermissionGate 课程编辑权限判断
type PermissionGate interface {
	// CanEdit 每次调用都重新计算，不缓存
	CanEdit(ctx context.Context, courseNo int64) bool
}

type permissionAPI interface {
	CheckPermission(ctx context.Context, userID, courseNo int64) (*domain.PermissionResult, error)
}

type permissionGate struct {
	api     permissionAPI
	session SessionStore
	logger  *zap.Logger
}

func NewPermissionGate(api permissionAPI, session SessionStore, lg *zap.Logger) PermissionGate {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &permissionGate{api: api, session: session, logger: lg}
}

// CanEdit: role >= 3 allows and role 1 denies without a request; role 2
// asks the server and any failure denies. Other roles deny.
func (g *permissionGate) CanEdit(ctx context.Context, courseNo int64) bool {
	s := g.session.Current()

	switch {
	case s.Role.HasGlobalPermission():
		return true
	case s.Role == domain.RoleMajorAdmin:
		res, err := g.api.CheckPermission(ctx, s.UserID, courseNo)
		if err != nil {
			g.logger.Warn("permission check failed, denying",
				zap.Int64(logger.FieldUID, s.UserID),
				zap.Int64(logger.FieldCourseNo, courseNo),
				zap.Error(err))
			return false
		}
		return res.HasPermission
	default:
		return false
	}
}
