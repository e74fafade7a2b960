package prompts

import (
	"strings"
	"testing"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
)

func TestRenderIntent(t *testing.T) {
	prompt := RenderIntent("我要开发票", "user: 你好\nassistant: 您好！")

	assert.Contains(t, prompt, "用户输入: 我要开发票")
	assert.Contains(t, prompt, "对话历史: user: 你好\nassistant: 您好！")
	assert.Contains(t, prompt, "query_order")
	assert.Contains(t, prompt, "请只返回意图名称")
	assert.NotContains(t, prompt, "{user_input}")
	assert.NotContains(t, prompt, "{chat_history}")
}

func TestRenderGeneralTimeContext(t *testing.T) {
	now := time.Date(2024, 6, 12, 15, 30, 45, 0, time.Local)

	prompt := RenderGeneral(now, "明天是几号？", "无")

	assert.Contains(t, prompt, "当前时间: 2024年06月12日 15:30:45")
	assert.Contains(t, prompt, "- 昨天: 2024年06月11日")
	assert.Contains(t, prompt, "- 今天: 2024年06月12日")
	assert.Contains(t, prompt, "- 明天: 2024年06月13日")
	assert.Contains(t, prompt, "用户输入: 明天是几号？")
	assert.NotContains(t, prompt, "{time_context}")
}

func TestHistoryContextEmpty(t *testing.T) {
	assert.Equal(t, "无", HistoryContext(nil, 3))
}

func TestHistoryContextKeepsLastMessages(t *testing.T) {
	history := []*schema.Message{
		schema.UserMessage("第一条"),
		schema.AssistantMessage("第二条", nil),
		schema.UserMessage("第三条"),
		schema.AssistantMessage("第四条", nil),
	}

	got := HistoryContext(history, 3)

	lines := strings.Split(got, "\n")
	assert.Equal(t, []string{
		"assistant: 第二条",
		"user: 第三条",
		"assistant: 第四条",
	}, lines)
}
