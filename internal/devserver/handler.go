package devserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pocbuilder/internal/config"
	"pocbuilder/internal/model"
	"pocbuilder/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// 六个 Agent 的固定回放顺序，和真实后端的 LangGraph 流水线一致
var agentNames = []string{
	"Query Refiner",
	"Orchestrator",
	"Code Generator",
	"UI Enrichment",
	"Code Reviewer",
	"Code Deployment",
}

type buildHandler struct {
	cfg *config.Config
}

func newBuildHandler(cfg *config.Config) *buildHandler {
	return &buildHandler{cfg: cfg}
}

// ListModels 返回可用模型列表和默认配置
func (h *buildHandler) ListModels(c *gin.Context) {
	defaults := make(model.ModelConfig, len(model.ConfigurableRoles))
	for _, role := range model.ConfigurableRoles {
		if id := h.cfg.Models.Defaults[role]; id != "" {
			defaults[role] = id
		} else if len(h.cfg.Models.Available) > 0 {
			defaults[role] = h.cfg.Models.Available[0]
		}
	}

	c.JSON(http.StatusOK, model.ModelCatalog{
		AvailableModels: h.cfg.Models.Available,
		DefaultConfig:   defaults,
	})
}

// BuildPOC 返回一份罐装的构建结果
// 真实的代码生成不在这里发生，这个服务只为客户端联调而存在
func (h *buildHandler) BuildPOC(c *gin.Context) {
	var req model.BuildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logger.Infof("收到构建请求: %q, model_config=%d 项", req.Requirement, len(req.ModelConfig))

	projectID := time.Now().Format("20060102_150405")

	responses := make([]json.RawMessage, 0, len(agentNames))
	for _, name := range agentNames {
		entry, _ := json.Marshal(gin.H{
			"id":     uuid.New().String(),
			"agent":  name,
			"status": "success",
			"output": fmt.Sprintf("%s finished for %q", name, req.Requirement),
		})
		responses = append(responses, entry)
	}

	backendScore := 90.0
	frontendScore := 85.0
	overallScore := 88.0

	c.JSON(http.StatusOK, model.BuildResponse{
		ProjectID:      projectID,
		Status:         "success",
		AgentResponses: responses,
		BackendCode:    cannedBackendCode(req.Requirement),
		FrontendCode:   cannedFrontendCode(req.Requirement),
		Review: &model.ReviewScores{
			BackendScore:  &backendScore,
			FrontendScore: &frontendScore,
			OverallScore:  &overallScore,
		},
	})
}

func cannedBackendCode(requirement string) string {
	return fmt.Sprintf(`from fastapi import FastAPI

# Generated for: %s
app = FastAPI()


@app.get("/api/health")
async def health():
    return {"status": "healthy"}
`, requirement)
}

func cannedFrontendCode(requirement string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>%s</title></head>
<body>
  <h1>%s</h1>
  <p>Generated by the local dev backend.</p>
</body>
</html>
`, requirement, requirement)
}
