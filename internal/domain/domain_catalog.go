package domain

// Major 专业
type Major struct {
	MajorNo   int64  `json:"majorNo"`
	MajorName string `json:"majorName"`
}

// Course 课程，服务端额外字段忽略
type Course struct {
	CourseNo   int64  `json:"courseNo"`
	CourseName string `json:"courseName"`
}

// PermissionResult 用户对某课程的编辑权限
type PermissionResult struct {
	HasPermission bool `json:"hasPermission"`
}
