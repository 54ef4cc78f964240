package session

// View 当前视图模式
func (c *Controller) View() ViewMode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.view
}

// CanInspect 是否已有构建结果可以查看
func (c *Controller) CanInspect() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.result != nil
}

// ShowArtifacts 切换到产物查看视图，没有结果时不切换
func (c *Controller) ShowArtifacts() bool {
	c.mu.Lock()
	if c.result == nil {
		c.mu.Unlock()
		return false
	}
	c.view = ViewArtifactInspection
	c.mu.Unlock()

	c.notify()
	return true
}

// ShowConversation 切回会话视图，任何时候都允许
func (c *Controller) ShowConversation() {
	c.mu.Lock()
	c.view = ViewConversation
	c.mu.Unlock()

	c.notify()
}
