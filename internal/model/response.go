package model

import "encoding/json"

// ReviewScores 评审分数，三个字段各自可缺省
type ReviewScores struct {
	BackendScore  *float64 `json:"backend_score,omitempty"`
	FrontendScore *float64 `json:"frontend_score,omitempty"`
	OverallScore  *float64 `json:"overall_score,omitempty"`
}

// BuildResponse 后端 /api/build-poc 的成功响应体
// agent_responses 的内容对控制器不透明，只有长度驱动回放动画
type BuildResponse struct {
	ProjectID      string            `json:"project_id"`
	Status         string            `json:"status,omitempty"`
	AgentResponses []json.RawMessage `json:"agent_responses,omitempty"`
	BackendCode    string            `json:"backend_code,omitempty"`
	FrontendCode   string            `json:"frontend_code,omitempty"`
	Review         *ReviewScores     `json:"review,omitempty"`
}

// ModelCatalog 后端 /api/models 的响应体
type ModelCatalog struct {
	AvailableModels []string    `json:"available_models"`
	DefaultConfig   ModelConfig `json:"default_config,omitempty"`
}

// BuildResult 最近一次成功构建的产物，整体替换、从不合并
type BuildResult struct {
	ProjectID         string
	BackendArtifact   string
	FrontendArtifact  string
	Review            ReviewScores
	RawStageResponses []json.RawMessage
}

// ResultFromResponse 把成功响应整体转成持有的构建结果
func ResultFromResponse(resp *BuildResponse) *BuildResult {
	result := &BuildResult{
		ProjectID:         resp.ProjectID,
		BackendArtifact:   resp.BackendCode,
		FrontendArtifact:  resp.FrontendCode,
		RawStageResponses: resp.AgentResponses,
	}
	if resp.Review != nil {
		result.Review = *resp.Review
	}
	return result
}
