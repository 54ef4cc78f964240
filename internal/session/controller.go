package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"pocbuilder/internal/config"
	"pocbuilder/internal/conversation"
	"pocbuilder/internal/model"
	"pocbuilder/internal/pipeline"
	"pocbuilder/pkg/logger"
)

// BuildService 远端构建服务的边界，internal/client 实现它
type BuildService interface {
	BuildPOC(ctx context.Context, req *model.BuildRequest) (*model.BuildResponse, error)
}

// ArtifactSaver 产物导出的外部协作方
type ArtifactSaver interface {
	Save(filename string, data []byte) error
}

type ViewMode string

const (
	ViewConversation       ViewMode = "conversation"
	ViewArtifactInspection ViewMode = "artifact_inspection"
)

const (
	// PendingContent 构建期间占位的助手消息内容
	PendingContent = "🤖 Agents are building your POC, hang tight..."
	// FailurePrefix 失败消息的固定前缀，后面直接拼接错误描述
	FailurePrefix = "❌ POC build failed: "
)

var ErrNoResult = errors.New("no build result available")

// Controller 构建会话控制器
// 持有会话日志、流水线跟踪器、视图模式和最近一次的构建结果，
// 同一时刻最多允许一次构建在途，building 标志是唯一的闸门。
// 构建结束后流水线回放在结算（跟踪器复位、闸门打开）之后才启动，
// 回放结束的画面会保留在界面上，由下一次派发时的复位清除
type Controller struct {
	log     *conversation.Log
	tracker *pipeline.Tracker
	service BuildService
	saver   ArtifactSaver

	modelConfig      model.ModelConfig
	result           *model.BuildResult
	building         bool
	view             ViewMode
	backendFilename  string
	frontendFilename string
	onChange         func()
	mu               sync.RWMutex
}

func NewController(service BuildService, saver ArtifactSaver, cfg *config.Config) *Controller {
	defaults := model.ModelConfig(cfg.Models.Defaults).Clone()
	if defaults == nil {
		defaults = make(model.ModelConfig)
	}
	// 没有配置默认模型的角色统一落到可用列表的第一个
	if len(cfg.Models.Available) > 0 {
		for _, role := range model.ConfigurableRoles {
			if defaults[role] == "" {
				defaults[role] = cfg.Models.Available[0]
			}
		}
	}

	return &Controller{
		log:              conversation.NewLog(),
		tracker:          pipeline.NewTracker(cfg.Pipeline.StepDelay),
		service:          service,
		saver:            saver,
		modelConfig:      defaults,
		view:             ViewConversation,
		backendFilename:  cfg.Export.BackendFilename,
		frontendFilename: cfg.Export.FrontendFilename,
	}
}

// SetOnChange 注册变更回调，日志、跟踪器和控制器自身的每次状态变化都会触发
func (c *Controller) SetOnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()

	c.log.SetOnChange(fn)
	c.tracker.SetOnChange(fn)
}

// Submit 提交一条构建需求，返回是否被接受
// 空白输入和在途构建都直接拒绝：不追加消息、不发请求、不改任何状态。
// 接受后阻塞到构建结算为止，宿主应在自己的异步机制里调用
func (c *Controller) Submit(ctx context.Context, input string) bool {
	input = strings.TrimSpace(input)
	if input == "" {
		return false
	}

	c.mu.Lock()
	if c.building {
		c.mu.Unlock()
		logger.Debug("已有构建在途，丢弃本次提交")
		return false
	}
	c.building = true
	snapshot := c.modelConfig.Clone()
	c.mu.Unlock()

	// 派发副作用按固定顺序执行：用户消息、占位助手消息、流水线归零
	// 上一次的构建结果保留在原位，只有新的成功才会替换它
	c.log.Append(conversation.NewUserMessage(input))
	c.log.Append(conversation.NewPendingAssistant(PendingContent))
	c.tracker.Reset()

	logger.Infof("派发构建请求: %q", input)
	c.execute(ctx, &model.BuildRequest{
		Requirement: input,
		ModelConfig: snapshot,
	})
	return true
}

func (c *Controller) execute(ctx context.Context, req *model.BuildRequest) {
	var replayCount int

	// 结算在所有退出路径上执行，成功处理自身 panic 也不能跳过。
	// panic 时先把占位消息落成失败通知，再做结算，
	// 避免界面上永远留着一条 pending 的占位
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("构建结果处理 panic: %v", r)
			c.finalizeFailure(fmt.Errorf("internal error: %v", r))
		}
		c.tracker.Reset()
		c.mu.Lock()
		c.building = false
		c.mu.Unlock()
		c.notify()
		// 回放是纯装饰动画，刻意放在结算的 Reset 之后启动：
		// 先回放再重置会在动画开始的瞬间把它杀掉。
		// 代价是回放的最终画面会一直留在界面上，
		// 直到下一次构建派发时的 Reset 把它清掉
		c.tracker.Replay(replayCount)
	}()

	resp, err := c.service.BuildPOC(ctx, req)
	if err != nil {
		c.finalizeFailure(err)
		return
	}

	replayCount = len(resp.AgentResponses)
	c.finalizeSuccess(resp)
}

func (c *Controller) finalizeSuccess(resp *model.BuildResponse) {
	if err := c.log.ReplaceLast(conversation.NewAssistantMessage(successContent(resp))); err != nil {
		logger.Errorf("定稿助手消息失败: %v", err)
	}

	c.mu.Lock()
	c.result = model.ResultFromResponse(resp)
	c.mu.Unlock()

	logger.Infof("构建成功: project_id=%s", resp.ProjectID)
}

func (c *Controller) finalizeFailure(err error) {
	// 上一次的构建结果保持不变，失败只降级成一条可见的聊天消息
	if rerr := c.log.ReplaceLast(conversation.NewAssistantMessage(FailurePrefix + err.Error())); rerr != nil {
		logger.Errorf("定稿失败消息失败: %v", rerr)
	}

	logger.Warnf("构建失败: %v", err)
}

// IsBuilding 当前是否有构建在途
func (c *Controller) IsBuilding() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.building
}

// Messages 会话日志快照
func (c *Controller) Messages() []model.Message {
	return c.log.Snapshot()
}

// Stages 流水线阶段快照
func (c *Controller) Stages() []pipeline.Stage {
	return c.tracker.Snapshot()
}

// ModelConfig 当前模型配置的副本
func (c *Controller) ModelConfig() model.ModelConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.modelConfig.Clone()
}

// SetModel 更新某个角色的模型选择
// 在途请求已经带着派发时的快照，这里的修改只影响下一次构建
func (c *Controller) SetModel(role, modelID string) {
	c.mu.Lock()
	c.modelConfig[role] = modelID
	c.mu.Unlock()

	c.notify()
}

func (c *Controller) notify() {
	c.mu.RLock()
	fn := c.onChange
	c.mu.RUnlock()

	if fn != nil {
		fn()
	}
}
