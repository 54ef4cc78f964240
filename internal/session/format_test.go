package session

import (
	"testing"

	"pocbuilder/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestSuccessContentWithoutReview(t *testing.T) {
	content := successContent(&model.BuildResponse{ProjectID: "p3"})

	assert.Contains(t, content, "Project ID: p3")
	assert.NotContains(t, content, "/100")
}

func TestSuccessContentKeepsFractionalScores(t *testing.T) {
	overall := 88.5
	content := successContent(&model.BuildResponse{
		ProjectID: "p4",
		Review:    &model.ReviewScores{OverallScore: &overall},
	})

	assert.Contains(t, content, "Overall: 88.5/100")
}
