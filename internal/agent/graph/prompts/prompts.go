// Package prompts holds the embedded prompt templates for the classifier and
// the general responder. Templates use {token} placeholders rendered with a
// plain Replacer; the Chinese wording is part of the service contract and is
// asserted by tests, so edit with care.
package prompts

import (
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
)

//go:embed template/intent_prompt.txt
var intentPromptTemplate string

//go:embed template/general_prompt.txt
var generalPromptTemplate string

const (
	dateTimeLayout = "2006年01月02日 15:04:05"
	dateLayout     = "2006年01月02日"
)

// RenderIntent renders the intent-classification prompt.
func RenderIntent(userInput, chatHistory string) string {
	return strings.NewReplacer(
		"{user_input}", userInput,
		"{chat_history}", chatHistory,
	).Replace(intentPromptTemplate)
}

// RenderGeneral renders the general-responder prompt with a time context so
// the completion service can answer relative-date questions.
func RenderGeneral(now time.Time, userInput, chatHistory string) string {
	timeContext := fmt.Sprintf(
		"当前时间: %s\n相关日期:\n- 昨天: %s\n- 今天: %s\n- 明天: %s",
		now.Format(dateTimeLayout),
		now.AddDate(0, 0, -1).Format(dateLayout),
		now.Format(dateLayout),
		now.AddDate(0, 0, 1).Format(dateLayout),
	)

	return strings.NewReplacer(
		"{time_context}", timeContext,
		"{user_input}", userInput,
		"{chat_history}", chatHistory,
	).Replace(generalPromptTemplate)
}

// HistoryContext flattens the most recent maxMessages of history into
// "role: content" lines, or 无 when there is no history yet.
func HistoryContext(history []*schema.Message, maxMessages int) string {
	if len(history) == 0 {
		return "无"
	}
	start := len(history) - maxMessages
	if start < 0 {
		start = 0
	}

	var b strings.Builder
	for i, msg := range history[start:] {
		if msg == nil {
			continue
		}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(string(msg.Role))
		b.WriteString(": ")
		b.WriteString(msg.Content)
	}
	return b.String()
}
