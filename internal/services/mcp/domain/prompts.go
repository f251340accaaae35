package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const analyzeNetworkQualityText = `Analyze the network quality using these steps:
1. Call get_scores_1m() to get the latest Orb scores
2. Examine orb_score (0-100, higher is better)
3. Check component scores: responsiveness_score, reliability_score, speed_score
4. If scores are low, call get_responsiveness() for detailed metrics
5. Provide actionable insights about network performance`

const troubleshootSlowInternetText = `To troubleshoot slow internet:
1. Call get_speed_results() to check recent speed tests
2. Call get_responsiveness(granularity="1m") for latency/jitter data
3. Call get_web_responsiveness() to check TTFB and DNS performance
4. Compare metrics against typical values:
   - Good latency: < 50ms
   - Good jitter: < 10ms
   - Acceptable packet loss: < 1%
5. Identify which metric is problematic and explain to the user`

// AnalyzeNetworkQualityPrompt defines the prompt for a guided network
// quality review.
func AnalyzeNetworkQualityPrompt() *mcp.Prompt {
	return &mcp.Prompt{
		Name:        "analyze_network_quality",
		Description: "Analyze current network quality for the configured Orb and provide insights",
	}
}

// AnalyzeNetworkQualityPromptHandler returns the analysis steps.
func AnalyzeNetworkQualityPromptHandler() mcp.PromptHandler {
	return staticPromptHandler(analyzeNetworkQualityText)
}

// TroubleshootSlowInternetPrompt defines the prompt for diagnosing slow
// connections.
func TroubleshootSlowInternetPrompt() *mcp.Prompt {
	return &mcp.Prompt{
		Name:        "troubleshoot_slow_internet",
		Description: "Diagnose slow internet connection issues",
	}
}

// TroubleshootSlowInternetPromptHandler returns the troubleshooting steps.
func TroubleshootSlowInternetPromptHandler() mcp.PromptHandler {
	return staticPromptHandler(troubleshootSlowInternetText)
}

func staticPromptHandler(text string) mcp.PromptHandler {
	return func(_ context.Context, _ *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		return &mcp.GetPromptResult{
			Messages: []*mcp.PromptMessage{
				{
					Role:    "user",
					Content: &mcp.TextContent{Text: text},
				},
			},
		}, nil
	}
}
