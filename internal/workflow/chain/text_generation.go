// Package chain 封装基于 Eino 的文本生成链
package chain

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	workflowport "tech-blog-ai-api/internal/workflow/port"
	workflowprompt "tech-blog-ai-api/internal/workflow/prompt"
	"tech-blog-ai-api/pkg/logger"
	"tech-blog-ai-api/pkg/metrics"
)

var defaultPromptRegistry = workflowprompt.NewRegistry()

// TextGenerationChain 把单个提示词模板编排为 模板 -> LLM -> 提取文本 的可执行链
// 每个 PromptID 对应一条链，链在首次调用时编译并缓存
type TextGenerationChain struct {
	factory  workflowport.ChatModelFactory
	provider string
	model    string
	promptID workflowprompt.PromptID

	chainOnce sync.Once
	chain     compose.Runnable[map[string]any, string]
	chainErr  error
}

// NewTextGenerationChain 创建文本生成链
// provider 和 model 仅用于指标标注，实际客户端由 factory 按 provider 解析
func NewTextGenerationChain(factory workflowport.ChatModelFactory, provider, model string, promptID workflowprompt.PromptID) *TextGenerationChain {
	return &TextGenerationChain{
		factory:  factory,
		provider: provider,
		model:    model,
		promptID: promptID,
	}
}

// Invoke 以模板变量驱动一次生成，返回去除首尾空白的模型输出
func (c *TextGenerationChain) Invoke(ctx context.Context, vars map[string]any) (string, error) {
	if c == nil || c.factory == nil {
		return "", fmt.Errorf("llm factory not configured")
	}
	if vars == nil {
		return "", fmt.Errorf("template vars are nil")
	}

	chain, err := c.getChain()
	if err != nil {
		return "", err
	}
	return chain.Invoke(ctx, vars)
}

type textChainState struct {
	Vars     map[string]any
	Messages []*schema.Message
	OutMsg   *schema.Message
}

func (c *TextGenerationChain) getChain() (compose.Runnable[map[string]any, string], error) {
	c.chainOnce.Do(func() {
		c.chain, c.chainErr = c.buildChain(context.Background())
	})
	return c.chain, c.chainErr
}

func (c *TextGenerationChain) buildChain(ctx context.Context) (compose.Runnable[map[string]any, string], error) {
	name := string(c.promptID)
	chain := compose.NewChain[map[string]any, string]()

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, vars map[string]any) (*textChainState, error) {
			if vars == nil {
				return nil, fmt.Errorf("template vars are nil")
			}
			tpl, err := defaultPromptRegistry.ChatTemplate(c.promptID)
			if err != nil {
				return nil, err
			}
			msgs, err := tpl.Format(ctx, vars)
			if err != nil {
				return nil, err
			}
			return &textChainState{Vars: vars, Messages: msgs}, nil
		}),
		compose.WithNodeName(name+".template"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *textChainState) (*textChainState, error) {
			if st == nil {
				return nil, fmt.Errorf("state is nil")
			}
			chatModel, err := c.factory.Get(ctx, c.provider)
			if err != nil {
				return nil, err
			}

			start := time.Now()
			outMsg, err := chatModel.Generate(ctx, st.Messages)
			metrics.LLMCallDuration.WithLabelValues(c.provider, name).Observe(time.Since(start).Seconds())
			if err != nil {
				metrics.LLMCallTotal.WithLabelValues(c.provider, name, "error").Inc()
				logger.Warn(ctx, "llm call failed",
					"provider", c.provider,
					"prompt", name,
					"error", err.Error(),
				)
				return nil, err
			}
			if outMsg == nil {
				metrics.LLMCallTotal.WithLabelValues(c.provider, name, "error").Inc()
				return nil, fmt.Errorf("empty llm response")
			}
			metrics.LLMCallTotal.WithLabelValues(c.provider, name, "success").Inc()
			recordTokenUsage(c.provider, c.model, outMsg)

			st.OutMsg = outMsg
			return st, nil
		}),
		compose.WithNodeName(name+".llm"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(_ context.Context, st *textChainState) (string, error) {
			if st == nil || st.OutMsg == nil {
				return "", fmt.Errorf("state is nil")
			}
			content := strings.TrimSpace(st.OutMsg.Content)
			if content == "" {
				return "", fmt.Errorf("llm returned empty content")
			}
			return content, nil
		}),
		compose.WithNodeName(name+".finalize"),
	)

	return chain.Compile(ctx)
}

func recordTokenUsage(provider, model string, msg *schema.Message) {
	if msg == nil || msg.ResponseMeta == nil || msg.ResponseMeta.Usage == nil {
		return
	}
	usage := msg.ResponseMeta.Usage
	metrics.LLMTokensUsed.WithLabelValues(provider, model, "prompt").Add(float64(usage.PromptTokens))
	metrics.LLMTokensUsed.WithLabelValues(provider, model, "completion").Add(float64(usage.CompletionTokens))
}
