package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldTraceID 追踪 ID 字段
	FieldTraceID = "traceId"

	// FieldUID 用户 ID 字段
	FieldUID = "uid"

	// FieldRole 用户角色字段
	FieldRole = "role"

	// FieldAction 操作类型字段
	FieldAction = "action"

	// FieldPath 文件树路径字段
	FieldPath = "path"

	// FieldCourseNo 课程号字段
	FieldCourseNo = "courseNo"

	// FieldMajorNo 专业号字段
	FieldMajorNo = "majorNo"

	// FieldForumNo 论坛号字段
	FieldForumNo = "forumNo"

	// FieldTopicID 话题 ID 字段
	FieldTopicID = "topicId"

	// FieldCommentID 评论 ID 字段
	FieldCommentID = "commentId"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldMethod HTTP 方法字段
	FieldMethod = "method"

	// FieldURL 请求地址字段
	FieldURL = "url"

	// FieldStatus HTTP 状态码字段
	FieldStatus = "status"

	// FieldError 错误信息字段
	FieldError = "error"

	// FieldSize 文件大小字段
	FieldSize = "size"

	// FieldFileKey 文件键字段
	FieldFileKey = "fileKey"
)
