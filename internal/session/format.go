package session

import (
	"fmt"
	"strconv"
	"strings"

	"pocbuilder/internal/model"
)

// successContent 组装成功定稿消息
// 缺省的分数直接不展示，缺省不是错误
func successContent(resp *model.BuildResponse) string {
	var b strings.Builder

	b.WriteString("✅ POC build complete!\n\n")
	fmt.Fprintf(&b, "Project ID: %s\n", resp.ProjectID)

	if resp.Review != nil {
		writeScore(&b, "Backend", resp.Review.BackendScore)
		writeScore(&b, "Frontend", resp.Review.FrontendScore)
		writeScore(&b, "Overall", resp.Review.OverallScore)
	}

	return strings.TrimRight(b.String(), "\n")
}

func writeScore(b *strings.Builder, label string, score *float64) {
	if score == nil {
		return
	}
	fmt.Fprintf(b, "%s: %s/100\n", label, strconv.FormatFloat(*score, 'f', -1, 64))
}
