package constants

const (
	CHANNEL_SIZE               = 100 // 通道大小
	REDIS_TIMEOUT              = 1   // redis timeout (分钟)
	REFRESH_TOKEN_EXPIRY_HOURS = 168 // Refresh Token 有效期（小时），168小时 = 7天

	// 会话状态
	ConversationOpen   = "open"   // 开启中
	ConversationClosed = "closed" // 已关闭

	// 发送者角色
	RoleAdmin   = "admin"   // 管理员
	RoleTeacher = "teacher" // 教师
	RoleParent  = "parent"  // 家长

	// 入学申请状态
	ApplicationPending  = "pending"  // 待处理
	ApplicationApproved = "approved" // 已录取
	ApplicationRejected = "rejected" // 已拒绝
)
