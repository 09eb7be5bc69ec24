package llm

import "strings"

// CleanJSON strips markdown fences and surrounding prose from a model
// response that is expected to hold a single JSON object or array.
func CleanJSON(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	startTok, endTok := "{", "}"
	if arr := strings.Index(content, "["); arr >= 0 {
		if obj := strings.Index(content, "{"); obj < 0 || arr < obj {
			startTok, endTok = "[", "]"
		}
	}

	// Some model responses include extra prose around JSON.
	start := strings.Index(content, startTok)
	end := strings.LastIndex(content, endTok)
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
