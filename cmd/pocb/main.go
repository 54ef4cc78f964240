package main

import (
	"context"
	"flag"
	"log"
	"time"

	"pocbuilder/internal/client"
	"pocbuilder/internal/config"
	"pocbuilder/internal/session"
	"pocbuilder/internal/tui"
	"pocbuilder/pkg/logger"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "./configs/config.yaml", "配置文件路径")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志，TUI 模式下日志落文件
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	logFile := cfg.Log.File
	if logFile == "" {
		logFile = "./pocb.log"
	}
	if err := logger.SetOutputFile(logFile); err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}

	buildClient := client.New(cfg.Backend.BaseURL, cfg.Backend.Timeout)

	// 启动时尽量从后端同步模型目录，失败就用本地配置兜底
	syncModelCatalog(buildClient, cfg)

	saver := session.NewFileSaver(cfg.Export.Dir)
	ctrl := session.NewController(buildClient, saver, cfg)

	program := tea.NewProgram(tui.New(ctrl, cfg), tea.WithAltScreen())

	// 控制器的每次状态变化都唤醒一次渲染循环
	ctrl.SetOnChange(func() {
		program.Send(tui.RefreshMsg{})
	})

	logger.Infof("POC Builder 客户端启动, backend=%s", cfg.Backend.BaseURL)
	if _, err := program.Run(); err != nil {
		logger.Fatalf("界面运行失败: %v", err)
	}
}

func syncModelCatalog(c *client.Client, cfg *config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	catalog, err := c.ListModels(ctx)
	if err != nil {
		logger.Warnf("获取模型目录失败，使用本地配置: %v", err)
		return
	}

	if len(catalog.AvailableModels) > 0 {
		cfg.Models.Available = catalog.AvailableModels
	}
	for role, id := range catalog.DefaultConfig {
		if cfg.Models.Defaults == nil {
			cfg.Models.Defaults = make(map[string]string)
		}
		if cfg.Models.Defaults[role] == "" {
			cfg.Models.Defaults[role] = id
		}
	}
	logger.Infof("模型目录已同步: %d 个可用模型", len(catalog.AvailableModels))
}
