package tui

import (
	"context"
	"fmt"
	"strings"

	"pocbuilder/internal/config"
	"pocbuilder/internal/model"
	"pocbuilder/internal/pipeline"
	"pocbuilder/internal/session"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const appTitle = "🤖 Multi-Agent POC Builder"

// RefreshMsg 控制器状态变化后由变更回调注入，驱动重绘
type RefreshMsg struct{}

type buildDoneMsg struct {
	accepted bool
}

// Model 宿主界面，所有会话不变量都问控制器，自己不持有
type Model struct {
	ctrl  *session.Controller
	cfg   *config.Config
	input textinput.Model
	spin  spinner.Model

	roleIndex  int
	modelIndex map[string]int
	status     string
	width      int
	height     int
}

func New(ctrl *session.Controller, cfg *config.Config) Model {
	input := textinput.New()
	input.Placeholder = "Describe the application you want to build, press Enter to submit"
	input.Prompt = "› "
	input.CharLimit = 0
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = runningStyle

	indexes := make(map[string]int)
	current := ctrl.ModelConfig()
	for _, role := range model.ConfigurableRoles {
		for i, id := range cfg.Models.Available {
			if id == current[role] {
				indexes[role] = i
				break
			}
		}
	}

	return Model{
		ctrl:       ctrl,
		cfg:        cfg,
		input:      input,
		spin:       sp,
		modelIndex: indexes,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case RefreshMsg:
		return m, nil

	case buildDoneMsg:
		if msg.accepted {
			m.status = "Build settled."
		} else {
			m.status = "Submission rejected."
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "tab":
		if m.ctrl.View() == session.ViewConversation {
			if !m.ctrl.ShowArtifacts() {
				m.status = "No build result to inspect yet."
			} else {
				m.status = ""
			}
		} else {
			m.ctrl.ShowConversation()
			m.status = ""
		}
		return m, nil
	}

	if m.ctrl.View() == session.ViewArtifactInspection {
		return m.handleInspectionKey(msg)
	}
	return m.handleConversationKey(msg)
}

func (m Model) handleConversationKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit

	case "ctrl+r":
		// 循环选择要改模型的角色
		m.roleIndex = (m.roleIndex + 1) % len(model.ConfigurableRoles)
		return m, nil

	case "ctrl+s":
		// 给选中角色循环切换模型，只影响下一次构建
		if len(m.cfg.Models.Available) == 0 {
			return m, nil
		}
		role := model.ConfigurableRoles[m.roleIndex]
		next := (m.modelIndex[role] + 1) % len(m.cfg.Models.Available)
		m.modelIndex[role] = next
		m.ctrl.SetModel(role, m.cfg.Models.Available[next])
		return m, nil

	case "enter":
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}
		if m.ctrl.IsBuilding() {
			m.status = "A build is already in flight, input is locked."
			return m, nil
		}
		// 提交被接受就立刻清空输入框，失败的构建不会恢复已输入的文本
		m.input.Reset()
		m.status = ""
		return m, m.submit(text)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleInspectionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.ctrl.ShowConversation()
		return m, nil
	case "b":
		if err := m.ctrl.ExportBackend(); err != nil {
			m.status = "Export failed: " + err.Error()
		} else {
			m.status = "Backend artifact exported as " + m.cfg.Export.BackendFilename
		}
		return m, nil
	case "f":
		if err := m.ctrl.ExportFrontend(); err != nil {
			m.status = "Export failed: " + err.Error()
		} else {
			m.status = "Frontend artifact exported as " + m.cfg.Export.FrontendFilename
		}
		return m, nil
	}
	return m, nil
}

func (m Model) submit(text string) tea.Cmd {
	return func() tea.Msg {
		accepted := m.ctrl.Submit(context.Background(), text)
		return buildDoneMsg{accepted: accepted}
	}
}

func (m Model) View() string {
	header := titleStyle.Render(appTitle)
	if m.ctrl.IsBuilding() {
		header += "  " + m.spin.View() + runningStyle.Render("building…")
	}

	var body string
	if m.ctrl.View() == session.ViewArtifactInspection {
		body = m.inspectionView()
	} else {
		body = m.conversationView()
	}

	status := ""
	if m.status != "" {
		status = dimStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, status)
}

func (m Model) conversationView() string {
	chat := m.renderMessages()
	stages := m.renderStages()
	modelLine := m.renderModelConfig()

	chatWidth := 72
	if m.width > 40 {
		chatWidth = m.width - 34
	}

	left := paneStyle.Width(chatWidth).Render(chat)
	right := paneStyle.Width(28).Render(stages)
	panes := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	help := dimStyle.Render("Enter = build • Tab = inspect artifacts • Ctrl+R/Ctrl+S = model config • Esc = quit")

	return lipgloss.JoinVertical(lipgloss.Left, panes, modelLine, m.input.View(), help)
}

func (m Model) renderMessages() string {
	messages := m.ctrl.Messages()
	if len(messages) == 0 {
		return dimStyle.Render("Describe an application below and the agent pipeline will build a POC for it.")
	}

	var b strings.Builder
	for i, msg := range messages {
		if i > 0 {
			b.WriteString("\n")
		}
		switch msg.Role {
		case model.RoleUser:
			b.WriteString(userStyle.Render("You: "))
		default:
			b.WriteString(builderStyle.Render("Builder: "))
		}
		switch {
		case msg.Pending:
			b.WriteString(m.spin.View() + " " + msg.Content)
		case strings.HasPrefix(msg.Content, "❌"):
			b.WriteString(errorStyle.Render(msg.Content))
		default:
			b.WriteString(msg.Content)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderStages() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Agent Pipeline"))
	b.WriteString("\n\n")

	for _, stage := range m.ctrl.Stages() {
		var line string
		switch stage.Status {
		case pipeline.StatusCompleted:
			line = doneStyle.Render("✅ " + stage.Name)
		case pipeline.StatusRunning:
			line = runningStyle.Render("⚡ " + stage.Name)
		default:
			line = dimStyle.Render("○ " + stage.Icon + " " + stage.Name)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderModelConfig() string {
	current := m.ctrl.ModelConfig()

	parts := make([]string, 0, len(model.ConfigurableRoles))
	for i, role := range model.ConfigurableRoles {
		label := strings.TrimSuffix(role, "_model")
		entry := fmt.Sprintf("%s=%s", label, current[role])
		if i == m.roleIndex {
			entry = selectedStyle.Render("[" + entry + "]")
		} else {
			entry = dimStyle.Render(entry)
		}
		parts = append(parts, entry)
	}
	return strings.Join(parts, "  ")
}

func (m Model) inspectionView() string {
	result := m.ctrl.CurrentResult()
	if result == nil {
		return dimStyle.Render("No build result yet.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Project " + result.ProjectID))
	b.WriteString("\n\n")

	writeScoreLine(&b, "Backend", result.Review.BackendScore)
	writeScoreLine(&b, "Frontend", result.Review.FrontendScore)
	writeScoreLine(&b, "Overall", result.Review.OverallScore)
	b.WriteString("\n")

	b.WriteString(builderStyle.Render("backend artifact"))
	b.WriteString("\n")
	b.WriteString(preview(result.BackendArtifact, 12))
	b.WriteString("\n")
	b.WriteString(builderStyle.Render("frontend artifact"))
	b.WriteString("\n")
	b.WriteString(preview(result.FrontendArtifact, 12))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("b = export backend • f = export frontend • Tab/Esc = back"))

	return paneStyle.Render(b.String())
}

func writeScoreLine(b *strings.Builder, label string, score *float64) {
	if score == nil {
		return
	}
	fmt.Fprintf(b, "%s: %.0f/100\n", label, *score)
}

func preview(content string, maxLines int) string {
	lines := strings.Split(content, "\n")
	if len(lines) > maxLines {
		lines = append(lines[:maxLines], dimStyle.Render("…"))
	}
	return strings.Join(lines, "\n")
}
