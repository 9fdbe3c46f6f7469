package code

var (
	Success = NewSuss(200, lang{en: "Success", zh_cn: "成功"})

	// 传输与服务端错误
	ErrorNetwork = NewError(500001, lang{en: "Network request failed", zh_cn: "网络请求失败"})
	ErrorServer  = NewError(500002, lang{en: "Server rejected the request", zh_cn: "服务器拒绝了请求"})
	ErrorDecode  = NewError(500003, lang{en: "Failed to parse server response", zh_cn: "解析服务器响应失败"})

	// 本地错误
	ErrorInvalidParams      = NewError(400001, lang{en: "Invalid parameters", zh_cn: "参数错误"})
	ErrorNotLoggedIn        = NewError(400002, lang{en: "Not logged in", zh_cn: "尚未登录"})
	ErrorPermissionDenied   = NewError(400003, lang{en: "Permission denied", zh_cn: "没有权限"})
	ErrorInvalidStorageType = NewError(400004, lang{en: "Invalid storage type", zh_cn: "无效的存储类型"})
	ErrorStorageNotEnabled  = NewError(400005, lang{en: "Download storage is not enabled", zh_cn: "下载存储未启用"})
	ErrorDownloadFailed     = NewError(400006, lang{en: "Download failed", zh_cn: "下载失败"})
	ErrorUploadFailed       = NewError(400007, lang{en: "Upload failed", zh_cn: "上传失败"})
	ErrorSessionStore       = NewError(400008, lang{en: "Session storage error", zh_cn: "会话存储错误"})
	ErrorNodeNotFound       = NewError(400009, lang{en: "File tree node not found", zh_cn: "文件树节点不存在"})
	ErrorProfileNotFound    = NewError(400010, lang{en: "Profile not found", zh_cn: "个人资料不存在"})
	ErrorRegisterIncomplete = NewError(400011, lang{en: "Please fill in all fields", zh_cn: "请填写完整信息"})

	// 提示信息
	MsgOperationDone = NewSuss(200001, lang{en: "Operation completed", zh_cn: "操作完成"})
	MsgLoginSuccess  = NewSuss(200002, lang{en: "Login successful", zh_cn: "登录成功"})
	MsgLoginFailed   = NewError(400012, lang{en: "Login failed", zh_cn: "登录失败"})
	MsgRegisterDone  = NewSuss(200003, lang{en: "Registered and logged in", zh_cn: "注册成功并已登录"})
	MsgRegisterFail  = NewError(400013, lang{en: "Registration failed", zh_cn: "注册失败"})
	MsgPublishFailed = NewError(400014, lang{en: "Publish failed", zh_cn: "发布失败"})
)
