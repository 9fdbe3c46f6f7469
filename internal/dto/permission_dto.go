package dto

// GrantRequest Admin role grant request
// 授予管理员角色请求
type GrantRequest struct {
	GrantorID      int64  `json:"grantorId" validate:"required"`              // Acting admin // 授权人
	TargetUsername string `json:"targetUsername" validate:"required"`         // Target user // 目标用户名
	TargetRole     int    `json:"targetRole" validate:"required,min=1,max=4"` // Role tier 1..4 // 目标角色
	MajorNo        *int64 `json:"majorNo"`                                    // Scope for major admins // 专业编号
}

// RevokeRequest Admin role revoke request
// 撤销管理员角色请求
type RevokeRequest struct {
	RevokerID      int64  `json:"revokerId" validate:"required"`      // Acting admin // 撤销人
	TargetUsername string `json:"targetUsername" validate:"required"` // Target user // 目标用户名
}
