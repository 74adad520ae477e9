package conversation

import "zhixiao_school_server/internal/model"

// 已读状态是纯投影：不落额外的表，全部从会话与消息自带的
// 已读集合即时推导，调用方传入查询者视角

// ConversationUnread 判断会话对查询者是否未读
// 从未有消息的会话视为已读
func ConversationUnread(c *model.Conversation, viewerId string) bool {
	if !c.LastMessageAt.Valid {
		return false
	}
	return !c.LastMessageReadBy.Contains(viewerId)
}

// MessageSeenBy 判断消息对查询者是否已读
// 查询者是发送者时为送达回执：对方读过才算已读；
// 其余消息看查询者本人是否读过
func MessageSeenBy(m *model.Message, c *model.Conversation, viewerId string) bool {
	if m.SenderId == viewerId {
		return m.ReadBy.Contains(counterpartOf(c, viewerId))
	}
	return m.ReadBy.Contains(viewerId)
}

// counterpartOf 返回会话中相对 userId 的另一方参与者
func counterpartOf(c *model.Conversation, userId string) string {
	if userId == c.ParentId {
		return c.TeacherId
	}
	return c.ParentId
}
