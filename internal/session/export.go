package session

import (
	"fmt"
	"os"
	"path/filepath"

	"pocbuilder/internal/model"
	"pocbuilder/pkg/logger"
)

// CurrentResult 最近一次成功构建的结果，没有时返回 nil
func (c *Controller) CurrentResult() *model.BuildResult {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.result == nil {
		return nil
	}
	result := *c.result
	return &result
}

// ExportBackend 把后端产物原文交给保存协作方，固定文件名
func (c *Controller) ExportBackend() error {
	c.mu.RLock()
	result := c.result
	filename := c.backendFilename
	c.mu.RUnlock()

	if result == nil {
		return ErrNoResult
	}
	return c.export(filename, result.BackendArtifact)
}

// ExportFrontend 把前端产物原文交给保存协作方，固定文件名
func (c *Controller) ExportFrontend() error {
	c.mu.RLock()
	result := c.result
	filename := c.frontendFilename
	c.mu.RUnlock()

	if result == nil {
		return ErrNoResult
	}
	return c.export(filename, result.FrontendArtifact)
}

func (c *Controller) export(filename, content string) error {
	// 产物内容不做任何转换，原样落盘
	if err := c.saver.Save(filename, []byte(content)); err != nil {
		return fmt.Errorf("failed to export %s: %w", filename, err)
	}
	logger.Infof("产物已导出: %s (%d 字节)", filename, len(content))
	return nil
}

// FileSaver 默认的文件保存实现，写入固定导出目录
type FileSaver struct {
	dir string
}

func NewFileSaver(dir string) *FileSaver {
	return &FileSaver{dir: dir}
}

func (s *FileSaver) Save(filename string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create export dir: %w", err)
	}
	return os.WriteFile(filepath.Join(s.dir, filename), data, 0644)
}
