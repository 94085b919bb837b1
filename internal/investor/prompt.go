package investor

import (
	"fmt"
	"strings"

	"github.com/rise-platform/rise-edge/internal/prompt"
	"github.com/rise-platform/rise-edge/internal/startup"
)

const generatedHighlights = "(Not provided, please generate based on description)"

// BuildSuggestionPrompt lists investor preferences and candidate startups in one matching request
func BuildSuggestionPrompt(inv *Investor, startups []startup.Startup) string {
	var b strings.Builder

	b.WriteString(`You are an AI matchmaking engine for Venture Capital investors and startups in the Saudi Arabian market.
Your task is to analyze the following investor profile and list of startups. Based *only* on the provided data, identify the top 5-10 best matches for the investor.

**Investor Profile:**
`)
	fmt.Fprintf(&b, "Investor: %s\n", prompt.Text(&inv.FullName))
	b.WriteString("Preferences:\n")
	fmt.Fprintf(&b, "- Industries: %s\n", prompt.Join(inv.PreferredIndustries, prompt.Any))
	fmt.Fprintf(&b, "- Geography: %s\n", prompt.Join(inv.PreferredGeography, prompt.Any))
	fmt.Fprintf(&b, "- Stage: %s\n", prompt.Join(inv.PreferredStage, prompt.Any))
	fmt.Fprintf(&b, "- Typical Check Size: %s\n", prompt.Text(inv.TypicalCheckSize))

	b.WriteString("\n**Available Startups:**\n")
	for i := range startups {
		s := &startups[i]
		fmt.Fprintf(&b, "\nStartup %d:\n", i+1)
		fmt.Fprintf(&b, "- ID: %d\n", s.ID)
		fmt.Fprintf(&b, "- Name: %s\n", prompt.Text(&s.Name))
		fmt.Fprintf(&b, "- Industry: %s\n", prompt.Text(s.Industry))
		fmt.Fprintf(&b, "- Stage: %s\n", prompt.Text(s.OperationalStage))
		fmt.Fprintf(&b, "- Location: %s, %s\n", prompt.Text(s.LocationCity), prompt.Text(s.CountryOfOperation))
		fmt.Fprintf(&b, "- Description: %s\n", prompt.Text(s.Description))
		fmt.Fprintf(&b, "- Seeking Investment: %s (Target: %s)\n", prompt.Bool(s.SeekingInvestment), prompt.Number(s.TargetRaiseAmount))
		fmt.Fprintf(&b, "- Revenue (Annual): %s\n", prompt.Number(s.AnnualRevenue))
		fmt.Fprintf(&b, "- Team Size: %s\n", prompt.Int(s.TeamSize))
		fmt.Fprintf(&b, "- Logo URL: %s\n", prompt.Text(s.LogoURL))
		fmt.Fprintf(&b, "- Summary/Highlights: %s\n", prompt.TextOr(s.HighlightsSummary, generatedHighlights))
	}

	fmt.Fprintf(&b, `
---
**Instructions:**
1. Evaluate each startup against the investor's preferences (Industry, Geography, Stage, etc.).
2. Consider factors like market fit (implied by description/industry), traction (implied by revenue/stage), and funding needs relative to typical stage investments.
3. Generate a JSON array containing suggested startups. Each object in the array should strictly follow this format:
   {
     "id": "(String: The Startup ID from the input list)",
     "startupName": "(String: The Startup Name)",
     "logoUrl": "(String | null: The Logo URL if provided, otherwise null)",
     "industry": "(String: The Startup Industry)",
     "stage": "(String: The Startup Stage)",
     "matchScore": "(Number: A score from 1 to 100 indicating the strength of the match based on your analysis)",
     "description": "(String: The Startup Description)",
     "location": "(String: City, Country or null)",
     "teamSize": "(Number | String: Team size or null)",
     "fundingNeeded": "(Number: Funding amount or null)",
     "highlights": "(String Array: Use the provided Summary/Highlights field or if not provided, generate 2-3 concise bullet points highlighting why this startup is relevant, based on its profile.)",
     "matchReason": "(String: A 1-2 sentence justification explaining *why* this startup is a good match for *this specific investor* based on their preferences and the startup's profile.)"
   }
4. Rank the suggestions from highest matchScore to lowest. Limit the output to a maximum of %d suggestions.
5. Ensure the entire output is **only** the valid JSON array, with no surrounding text, explanations, or markdown formatting.

Provide the JSON array of the top matching startups now.`, MaxSuggestions)

	return b.String()
}
