package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/edututor/edututor/internal/llm"
	"github.com/edututor/edututor/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect and test the LLM provider",
}

var llmConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved LLM provider with secrets masked",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		resolved, ok := llm.ResolveConfig(cfg.LLM)
		out := cmd.OutOrStdout()

		if !ok {
			fmt.Fprintln(out, "Provider:  (none configured, demo mode)")
			fmt.Fprintln(out, "Set IBM_API_KEY and IBM_PROJECT_ID, or another provider's API key.")
			return nil
		}

		fmt.Fprintf(out, "Provider:  %s\n", resolved.Provider)
		fmt.Fprintf(out, "Model:     %s\n", resolved.ModelName())
		for _, row := range providerDetails(resolved) {
			fmt.Fprintf(out, "%-10s %s\n", row[0]+":", row[1])
		}
		fmt.Fprintf(out, "Timeout:   %s\n", resolved.Timeout)
		fmt.Fprintf(out, "Attempts:  %d\n", resolved.Retry.MaxAttempts)
		if cost := llm.LookupCost(resolved.ModelName()); cost != nil {
			fmt.Fprintf(out, "Pricing:   $%.2f / $%.2f per 1M tokens (in/out)\n", cost.InputPerMTok, cost.OutputPerMTok)
		} else {
			fmt.Fprintln(out, "Pricing:   unknown")
		}
		return nil
	},
}

// providerDetails lists the provider-specific settings with keys masked.
func providerDetails(c llm.Config) [][2]string {
	switch c.Provider {
	case "watsonx":
		return [][2]string{
			{"API key", mask(c.Watsonx.APIKey)},
			{"Project", c.Watsonx.ProjectID},
			{"URL", c.Watsonx.URL},
		}
	case "anthropic":
		return [][2]string{{"API key", mask(c.Anthropic.APIKey)}}
	case "openai":
		rows := [][2]string{{"API key", mask(c.OpenAI.APIKey)}}
		if c.OpenAI.BaseURL != "" {
			rows = append(rows, [2]string{"Base URL", c.OpenAI.BaseURL})
		}
		return rows
	case "gemini":
		return [][2]string{{"API key", mask(c.Gemini.APIKey)}}
	case "openrouter":
		return [][2]string{{"API key", mask(c.OpenRouter.APIKey)}}
	}
	return nil
}

// mask hides all but the last four characters of a secret.
func mask(secret string) string {
	if secret == "" {
		return "(not set)"
	}
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return strings.Repeat("*", 8) + secret[len(secret)-4:]
}

var llmPingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Send one tiny request to the configured provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		resolved, ok := llm.ResolveConfig(cfg.LLM)
		if !ok {
			return fmt.Errorf("no LLM provider configured")
		}

		st := store.New()
		provider, err := llm.NewProvider(ctxOf(cmd), resolved, st.EventRepo())
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(ctxOf(cmd), resolved.Timeout)
		defer cancel()

		start := time.Now()
		resp, err := provider.Generate(ctx, llm.Request{
			Purpose:   llm.PurposePing,
			Messages:  []llm.Message{{Role: llm.RoleUser, Content: "Reply with the single word: pong"}},
			MaxTokens: 16,
		})
		if err != nil {
			return fmt.Errorf("ping %s: %w", resolved.Provider, err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Provider:  %s\n", resolved.Provider)
		fmt.Fprintf(out, "Model:     %s\n", resp.Model)
		fmt.Fprintf(out, "Reply:     %s\n", strings.TrimSpace(resp.Text()))
		fmt.Fprintf(out, "Tokens:    %d in / %d out\n", resp.Usage.InputTokens, resp.Usage.OutputTokens)
		fmt.Fprintf(out, "Latency:   %dms\n", time.Since(start).Milliseconds())

		usage, err := st.EventRepo().LLMUsageByModel(ctx)
		if err == nil {
			for _, u := range usage {
				if u.CostKnown {
					fmt.Fprintf(out, "Cost:      %s\n", formatCost(u.CostUSD))
				}
			}
		}
		return nil
	},
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmCmd.AddCommand(llmConfigCmd)
	llmCmd.AddCommand(llmPingCmd)
}
