package conversation

import (
	"errors"
	"sync"
	"time"

	"pocbuilder/internal/model"

	"github.com/google/uuid"
)

var ErrEmptyLog = errors.New("conversation log is empty")

// Log 只追加的会话记录
// 唯一允许的原地修改是替换末尾那条未定稿的助手消息
type Log struct {
	messages []model.Message
	onChange func()
	mu       sync.RWMutex
}

func NewLog() *Log {
	return &Log{
		messages: make([]model.Message, 0),
	}
}

// SetOnChange 注册变更回调，宿主环境用它触发重绘
func (l *Log) SetOnChange(fn func()) {
	l.mu.Lock()
	l.onChange = fn
	l.mu.Unlock()
}

func (l *Log) Append(msg model.Message) {
	l.mu.Lock()
	l.messages = append(l.messages, msg)
	l.mu.Unlock()

	l.notify()
}

// ReplaceLast 替换最后一条消息，空日志属于编程错误
func (l *Log) ReplaceLast(msg model.Message) error {
	l.mu.Lock()
	if len(l.messages) == 0 {
		l.mu.Unlock()
		return ErrEmptyLog
	}
	l.messages[len(l.messages)-1] = msg
	l.mu.Unlock()

	l.notify()
	return nil
}

// Snapshot 返回全部消息的副本，供渲染只读使用
func (l *Log) Snapshot() []model.Message {
	l.mu.RLock()
	defer l.mu.RUnlock()

	messages := make([]model.Message, len(l.messages))
	copy(messages, l.messages)
	return messages
}

func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.messages)
}

func (l *Log) notify() {
	l.mu.RLock()
	fn := l.onChange
	l.mu.RUnlock()

	if fn != nil {
		fn()
	}
}

// NewUserMessage 构造一条用户消息
func NewUserMessage(content string) model.Message {
	return model.Message{
		ID:        uuid.New().String(),
		Role:      model.RoleUser,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewPendingAssistant 构造构建期间占位的助手消息
func NewPendingAssistant(content string) model.Message {
	return model.Message{
		ID:        uuid.New().String(),
		Role:      model.RoleAssistant,
		Content:   content,
		Pending:   true,
		Timestamp: time.Now(),
	}
}

// NewAssistantMessage 构造定稿的助手消息
func NewAssistantMessage(content string) model.Message {
	return model.Message{
		ID:        uuid.New().String(),
		Role:      model.RoleAssistant,
		Content:   content,
		Timestamp: time.Now(),
	}
}
