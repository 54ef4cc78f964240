package model

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message 会话中的一条消息
// Pending 标记尾部的助手占位消息，构建结束时被一次性替换
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Pending   bool      `json:"pending"`
	Timestamp time.Time `json:"timestamp"`
}
