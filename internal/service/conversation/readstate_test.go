package conversation

import (
	"database/sql"
	"testing"
	"time"

	"zhixiao_school_server/internal/model"
)

func convWithReadBy(readBy model.IDSet, hasMessage bool) model.Conversation {
	c := model.Conversation{LastMessageReadBy: readBy}
	if hasMessage {
		c.LastMessageAt = sql.NullTime{Time: time.Now(), Valid: true}
	}
	return c
}

func TestConversationUnread(t *testing.T) {
	// 从未有消息的会话对任何人都视为已读
	empty := convWithReadBy(model.IDSet{}, false)
	if ConversationUnread(&empty, "P1") {
		t.Error("conversation without messages should not be unread")
	}

	c := convWithReadBy(model.IDSet{"T1"}, true)
	if ConversationUnread(&c, "T1") {
		t.Error("reader in set should not see unread")
	}
	if !ConversationUnread(&c, "P1") {
		t.Error("user outside set should see unread")
	}
}

func TestMessageSeenBy(t *testing.T) {
	c := model.Conversation{ParentId: "P1", TeacherId: "T1"}

	// 家长刚发出的消息：双方都看不到"已读"
	m := model.Message{SenderId: "P1", ReadBy: model.IDSet{"P1"}}
	if MessageSeenBy(&m, &c, "P1") {
		t.Error("sender should not get a receipt before the counterpart reads")
	}
	if MessageSeenBy(&m, &c, "T1") {
		t.Error("recipient has not read the message yet")
	}

	// 教师读过之后：发送者拿到回执，教师本人已读
	m.ReadBy = m.ReadBy.Add("T1")
	if !MessageSeenBy(&m, &c, "P1") {
		t.Error("sender should get a receipt once the counterpart reads")
	}
	if !MessageSeenBy(&m, &c, "T1") {
		t.Error("recipient should see own read state")
	}
}

func TestCounterpartOf(t *testing.T) {
	c := model.Conversation{ParentId: "P1", TeacherId: "T1"}
	if got := counterpartOf(&c, "P1"); got != "T1" {
		t.Errorf("counterpart of parent = %s, want T1", got)
	}
	if got := counterpartOf(&c, "T1"); got != "P1" {
		t.Errorf("counterpart of teacher = %s, want P1", got)
	}
}
