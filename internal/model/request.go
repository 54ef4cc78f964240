package model

// 各流水线角色在 model_config 中的键名，与后端 ModelConfig 字段一一对应
const (
	RoleQueryRefiner  = "query_refiner_model"
	RoleOrchestrator  = "orchestrator_model"
	RoleCodeGenerator = "code_generator_model"
	RoleUIEnrichment  = "ui_enrichment_model"
	RoleCodeReviewer  = "code_reviewer_model"
)

// ConfigurableRoles 接受模型选择的角色，按流水线顺序排列
// Deployment 阶段不调用模型，所以不在列表中
var ConfigurableRoles = []string{
	RoleQueryRefiner,
	RoleOrchestrator,
	RoleCodeGenerator,
	RoleUIEnrichment,
	RoleCodeReviewer,
}

// ModelConfig 角色到模型标识的映射，随构建请求原样发送
type ModelConfig map[string]string

// Clone 返回独立副本，派发构建时对当前配置做快照
func (m ModelConfig) Clone() ModelConfig {
	if m == nil {
		return nil
	}
	clone := make(ModelConfig, len(m))
	for role, id := range m {
		clone[role] = id
	}
	return clone
}

type BuildRequest struct {
	Requirement string      `json:"requirement" binding:"required"`
	ModelConfig ModelConfig `json:"model_config,omitempty"`
}
