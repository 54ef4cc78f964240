package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pocbuilder/internal/model"
	"pocbuilder/pkg/logger"
)

// Client 远端多 Agent 构建服务的 HTTP 客户端
// 对控制器来说后端是不透明的请求/响应边界，这里不解析结构化错误体
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: newHTTPClient(timeout),
	}
}

// BuildPOC 发起一次构建，非 2xx 状态和传输错误统一上报为构建失败
func (c *Client) BuildPOC(ctx context.Context, req *model.BuildRequest) (*model.BuildResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode build request: %w", err)
	}

	url := c.baseURL + "/api/build-poc"
	logger.Debugf("发起构建请求: %s, requirement 长度 %d", url, len(req.Requirement))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("build request failed: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		// 错误体只用于日志，不影响对外的统一失败描述
		raw, _ := io.ReadAll(io.LimitReader(httpResp.Body, 4096))
		logger.Warnf("构建请求返回非成功状态 %d: %s", httpResp.StatusCode, string(raw))
		return nil, fmt.Errorf("backend returned status %d", httpResp.StatusCode)
	}

	var resp model.BuildResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode build response: %w", err)
	}

	logger.Infof("构建完成: project_id=%s, agent_responses=%d", resp.ProjectID, len(resp.AgentResponses))
	return &resp, nil
}

// ListModels 拉取后端的可用模型列表和默认配置
func (c *Client) ListModels(ctx context.Context) (*model.ModelCatalog, error) {
	url := c.baseURL + "/api/models"

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create models request: %w", err)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("models request failed: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("backend returned status %d", httpResp.StatusCode)
	}

	var catalog model.ModelCatalog
	if err := json.NewDecoder(httpResp.Body).Decode(&catalog); err != nil {
		return nil, fmt.Errorf("failed to decode models response: %w", err)
	}

	return &catalog, nil
}
