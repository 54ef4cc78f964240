package pipeline

import (
	"sync"
	"time"
)

type StageStatus string

const (
	StatusIdle      StageStatus = "idle"
	StatusRunning   StageStatus = "running"
	StatusCompleted StageStatus = "completed"
)

// Stage 流水线中的一个 Agent 阶段
type Stage struct {
	Name   string      `json:"name"`
	Icon   string      `json:"icon"`
	Status StageStatus `json:"status"`
}

// 六个阶段的固定顺序，启动后不再变化
var defaultStages = []Stage{
	{Name: "Query Refiner", Icon: "🔍"},
	{Name: "Orchestrator", Icon: "🧭"},
	{Name: "Code Generator", Icon: "⚙️"},
	{Name: "UI Enrichment", Icon: "🎨"},
	{Name: "Code Reviewer", Icon: "🧐"},
	{Name: "Deployment", Icon: "🚀"},
}

const DefaultStepDelay = 400 * time.Millisecond

// Tracker 按固定节奏回放一次已经完成的流水线运行
// 后端只在事后返回各阶段结果的列表，真实的分阶段耗时客户端观察不到，
// 所以这里的推进只是可信的近似，不承载任何正确性语义
type Tracker struct {
	stages    []Stage
	stepDelay time.Duration
	cancel    chan struct{}
	onChange  func()
	mu        sync.Mutex
}

func NewTracker(stepDelay time.Duration) *Tracker {
	if stepDelay <= 0 {
		stepDelay = DefaultStepDelay
	}

	stages := make([]Stage, len(defaultStages))
	copy(stages, defaultStages)
	for i := range stages {
		stages[i].Status = StatusIdle
	}

	return &Tracker{
		stages:    stages,
		stepDelay: stepDelay,
	}
}

// SetOnChange 注册变更回调，宿主环境用它触发重绘
func (t *Tracker) SetOnChange(fn func()) {
	t.mu.Lock()
	t.onChange = fn
	t.mu.Unlock()
}

// Reset 取消进行中的回放并把所有阶段置回 idle，可重复调用
func (t *Tracker) Reset() {
	t.mu.Lock()
	if t.cancel != nil {
		close(t.cancel)
		t.cancel = nil
	}
	for i := range t.stages {
		t.stages[i].Status = StatusIdle
	}
	t.mu.Unlock()

	t.notify()
}

// Replay 启动一次不阻塞调用方的定时回放
// stageCount 为 0 时什么都不标记，超出流水线长度的下标被忽略
func (t *Tracker) Replay(stageCount int) {
	if stageCount <= 0 {
		return
	}

	t.mu.Lock()
	if t.cancel != nil {
		close(t.cancel)
	}
	cancel := make(chan struct{})
	t.cancel = cancel
	if stageCount > len(t.stages) {
		stageCount = len(t.stages)
	}
	t.mu.Unlock()

	go t.replay(stageCount, cancel)
}

func (t *Tracker) replay(stageCount int, cancel chan struct{}) {
	timer := time.NewTimer(t.stepDelay)
	defer timer.Stop()

	for i := 0; i < stageCount; i++ {
		if !t.markStep(i, cancel) {
			return
		}

		if i == stageCount-1 {
			return
		}

		timer.Reset(t.stepDelay)
		select {
		case <-cancel:
			return
		case <-timer.C:
		}
	}
}

// markStep 标记第 i 阶段完成、第 i+1 阶段运行中
// 必须在持锁状态下确认回放没有被 Reset 抢占，否则会污染新一轮的状态
func (t *Tracker) markStep(i int, cancel chan struct{}) bool {
	t.mu.Lock()
	select {
	case <-cancel:
		t.mu.Unlock()
		return false
	default:
	}

	t.stages[i].Status = StatusCompleted
	if i+1 < len(t.stages) {
		t.stages[i+1].Status = StatusRunning
	}
	t.mu.Unlock()

	t.notify()
	return true
}

// Snapshot 返回全部阶段的副本，供渲染只读使用
func (t *Tracker) Snapshot() []Stage {
	t.mu.Lock()
	defer t.mu.Unlock()

	stages := make([]Stage, len(t.stages))
	copy(stages, t.stages)
	return stages
}

// Len 流水线阶段数
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.stages)
}

func (t *Tracker) notify() {
	t.mu.Lock()
	fn := t.onChange
	t.mu.Unlock()

	if fn != nil {
		fn()
	}
}
