package llm

import (
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go"
)

type contentProvider interface {
	Content() string
}

// ExtractText pulls the generated text out of a backend response envelope.
// Unknown shapes are stringified and left for the sanitizer.
func ExtractText(resp any) string {
	switch v := resp.(type) {
	case nil:
		return ""
	case string:
		return v
	case *openai.ChatCompletion:
		if v == nil {
			return ""
		}
		return chatCompletionText(*v)
	case openai.ChatCompletion:
		return chatCompletionText(v)
	case *anthropic.Message:
		if v == nil {
			return ""
		}
		return messageText(*v)
	case anthropic.Message:
		return messageText(v)
	case contentProvider:
		return v.Content()
	case map[string]string:
		if content, ok := v["content"]; ok {
			return content
		}
		return fmt.Sprint(v)
	case map[string]any:
		if content, ok := v["content"]; ok {
			if s, ok := content.(string); ok {
				return s
			}
			return fmt.Sprint(content)
		}
		return fmt.Sprint(v)
	default:
		return fmt.Sprint(v)
	}
}

func chatCompletionText(c openai.ChatCompletion) string {
	if len(c.Choices) == 0 {
		return ""
	}
	return c.Choices[0].Message.Content
}

func messageText(m anthropic.Message) string {
	var sb strings.Builder
	for _, block := range m.Content {
		if block.Type != "text" {
			continue
		}
		sb.WriteString(block.Text)
	}
	return sb.String()
}
