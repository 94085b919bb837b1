package startup

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rise-platform/rise-edge/internal/prompt"
)

const analysisInstructions = `You are an experienced Venture Capital analyst specializing in the Saudi Arabian market, evaluating early-stage startups for seed investment. Your analysis should be critical, insightful, and grounded *only* in the provided data, considering the KSA market context where applicable.

Analyze the provided startup profile thoroughly. Generate a structured JSON object containing the following detailed analysis components. Ensure the entire output is a single, valid JSON object with no surrounding text or markdown formatting. If data for a specific field or section is missing or insufficient ('N/A'), state that clearly within the relevant field or omit the field/section if assessment is impossible.

**JSON Structure Required:**
{
  "executive_summary": "(String: 3-5 concise sentences summarizing the core business, target market (KSA focus), key strengths/weaknesses, and overall investment potential based on the data provided.)",
  "swot_analysis": {
    "strengths": "(String Array: 2-4 specific internal strengths based *only* on the profile data.)",
    "weaknesses": "(String Array: 2-4 specific internal weaknesses or significant gaps based *only* on the profile data.)",
    "opportunities": "(String Array: 2-3 specific external market or strategic opportunities relevant to the KSA market.)",
    "threats": "(String Array: 2-3 specific external threats or significant challenges relevant to KSA.)"
  },
  "market_positioning": "(String: 2-4 sentences assessing current positioning in KSA market, target audience fit and competitive standing. Include a brief comment on differentiation.)",
  "scalability_assessment": {
    "level": "(String: 'Low', 'Medium', or 'High')",
    "justification": "(String: 2-4 sentences explaining the scalability level.)"
  },
  "competitive_advantage_evaluation": {
    "assessment": "(String: 2-4 sentences evaluating the uniqueness and defensibility of the claimed competitive advantage in the KSA context.)",
    "suggestion": "(String: One concrete, actionable suggestion for strengthening the competitive advantage.)"
  },
  "current_challenges": "(String Array: 2-4 pressing challenges for the next 6 months.)",
  "key_risks": "(String Array: 3 significant risks: Market, Financial, Operational, Team or Competitive.)",
  "strategic_recommendations": "(String Array: 3 prioritized, actionable recommendations for the next 6 months.)",
  "suggested_kpis": [
    {
      "kpi": "(String: Name of a suggested KPI)",
      "justification": "(String: 1-2 sentences why this KPI is critical for this startup at its current stage.)"
    }
  ],
  "what_if_scenarios": [
    {
      "scenario": "(String: A plausible, impactful near-term event.)",
      "outcome": "(String: The likely consequence of the scenario.)"
    }
  ],
  "growth_plan_phases": [
    {
      "period": "(String: 'Months 1-3', 'Months 4-6', 'Months 7-9' or 'Months 10-12')",
      "focus": "(String: Primary strategic theme for the period)",
      "description": "(String: Key activities and goals for the period, 1-2 sentences)"
    }
  ],
  "funding_outlook": "(String: 2-3 sentences on the funding situation, readiness and milestones needed for the target raise.)",
  "financial_assessment": {
    "strengths": "(String Array: 1-2 positive financial aspects.)",
    "weaknesses": "(String Array: 1-2 financial concerns or red flags.)",
    "recommendations": "(String Array: 1-2 suggestions for improving the financial position.)"
  },
  "cash_burn_rate": {
    "monthly_rate": "(Number: Estimated monthly burn rate or null if impossible to estimate.)",
    "runway_months": "(Number: Estimated remaining runway in months or null if impossible to estimate.)",
    "assessment": "(String: Brief evaluation of burn rate sustainability.)"
  },
  "profitability_projection": {
    "estimated_timeframe": "(String: e.g. '6-12 months', '12+ months', 'Unclear')",
    "key_factors": "(String Array: 2-3 factors that most influence profitability timing.)"
  },
  "funding_readiness_score": "(Number: 1 to 100 readiness for the target funding round, or null if assessment is impossible.)",
  "funding_readiness_justification": "(String: 2-4 sentences explaining the score.)"
}
`

const analysisOutro = `Now, provide ONLY the valid JSON analysis object for the startup profile data above, adhering strictly to the specified JSON structure and instructions.`

// BuildAnalysisPrompt renders the full analysis request for the startup profile
func BuildAnalysisPrompt(s *Startup) string {
	var b strings.Builder

	b.WriteString(analysisInstructions)
	b.WriteString("\n--- STARTUP PROFILE DATA ---\n")
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line("Name: %s", prompt.Text(&s.Name))
	line("Industry: %s", prompt.Text(s.Industry))
	line("Sector: %s", prompt.Text(s.Sector))
	line("Location: %s, %s", prompt.Text(s.LocationCity), prompt.Text(s.CountryOfOperation))
	line("Description: %s", prompt.Text(s.Description))
	line("Operational Stage: %s", prompt.Text(s.OperationalStage))
	line("Founding Date: %s", prompt.Text(s.FoundingDate))
	line("Team Size: %s (Number of Employees: %s)", prompt.Int(s.TeamSize), prompt.Int(s.NumEmployees))
	line("Number of Customers: %s", prompt.Int(s.NumCustomers))
	line("Annual Revenue (Est.): %s", prompt.Number(s.AnnualRevenue))
	line("Annual Expenses (Est.): %s", prompt.Number(s.AnnualExpenses))
	line("Has Co-Founder: %s", prompt.Bool(s.HasCoFounder))
	line("Website: %s", prompt.Text(s.Website))
	line("Pitch Deck Uploaded: %s", prompt.YesNo(prompt.Present(s.PitchDeckURL)))
	b.WriteString("\n")

	line("Founder Name: %s", prompt.Text(s.FounderName))
	line("Founder Title: %s", prompt.Text(s.FounderTitle))
	line("Founder Education: %s", prompt.Text(s.FounderEducation))
	line("Previous Startup Experience: %s", prompt.Text(s.PreviousStartupExp))
	line("Founder Bio: %s", prompt.Text(s.FounderBio))
	line("Founder Tech Skills: %s", prompt.JSON(s.TechSkills))
	b.WriteString("\n")

	b.WriteString("Key Metrics Provided:\n")
	line("- CAC: %s", prompt.Number(s.KpiCac))
	line("- CLV: %s", prompt.Number(s.KpiClv))
	line("- Retention Rate: %s", prompt.Percent(s.KpiRetentionRate))
	line("- Conversion Rate: %s", prompt.Percent(s.KpiConversionRate))
	line("- Monthly Growth Rate: %s", prompt.Percent(s.KpiMonthlyGrowth))
	line("- Payback Period (Months): %s", prompt.Number(s.KpiPaybackPeriod))
	line("- Churn Rate: %s", prompt.Percent(s.KpiChurnRate))
	line("- NPS: %s", prompt.Number(s.KpiNps))
	line("- TAM Size Estimate: %s", prompt.Text(s.KpiTamSize))
	line("- Avg. Order Value: %s", prompt.Number(s.KpiAvgOrderValue))
	line("- Market Share Estimate: %s", prompt.Percent(s.KpiMarketShare))
	line("- YoY Growth: %s", prompt.Percent(s.KpiYoyGrowth))
	b.WriteString("\n")

	b.WriteString("Market Analysis Info:\n")
	line("- Market Growth Rate: %s", prompt.Text(s.MarketGrowthRate))
	line("- Key Trends Mentioned: %s", prompt.Text(s.MarketKeyTrends))
	line("- Target Customer Profile: %s", prompt.Text(s.TargetCustomer))
	line("- Customer Pain Points Addressed: %s", prompt.Text(s.CustomerPainPoints))
	line("- Market Barriers Mentioned: %s", prompt.Text(s.MarketBarriers))
	line("- Competitive Advantage Claimed: %s", prompt.Text(s.CompetitiveAdvantage))
	b.WriteString("\n")

	b.WriteString("Competitor Info Provided:\n")
	for i, c := range s.Competitors() {
		line("- Competitor %d: %s (%s)", i+1, prompt.Text(c.Name), prompt.Text(c.Differentiator))
	}
	b.WriteString("\n")

	b.WriteString("Funding Status:\n")
	line("- Current Funding Level: %s", prompt.Text(s.CurrentFunding))
	line("- Seeking Investment: %s", prompt.Bool(s.SeekingInvestment))
	line("- Target Raise Amount: %s", prompt.Number(s.TargetRaiseAmount))
	b.WriteString("--- END STARTUP PROFILE DATA ---\n\n")
	b.WriteString(analysisOutro)

	return b.String()
}

// BuildReadinessPrompt asks for a bare integer score
func BuildReadinessPrompt(s *Startup) string {
	descLen := 0
	if s.Description != nil {
		descLen = len([]rune(*s.Description))
	}

	var b strings.Builder
	b.WriteString(`You are an AI assistant calculating a 'Funding Readiness Score' (0-100).
Based *only* on the provided startup data, estimate this score. Consider factors like:
- Profile Completeness (Are description, industry, stage present?)
- Traction Signals (Revenue, Customers, Employee count, relevant KPIs like CLV/CAC ratio)
- Pitch Readiness (Is a pitch deck URL provided?)

Higher scores indicate better readiness based on these factors.

**Input Data:**
`)
	fmt.Fprintf(&b, "- Description Provided: %t (%d chars)\n", prompt.Present(s.Description), descLen)
	fmt.Fprintf(&b, "- Industry / Stage Provided: %t / %t\n", prompt.Present(s.Industry), prompt.Present(s.OperationalStage))
	fmt.Fprintf(&b, "- Team Size: %s\n", prompt.Int(s.NumEmployees))
	fmt.Fprintf(&b, "- Customers: %s\n", prompt.Int(s.NumCustomers))
	fmt.Fprintf(&b, "- Revenue: %s\n", prompt.Number(s.AnnualRevenue))
	fmt.Fprintf(&b, "- CLV / CAC Ratio: %s\n", clvCacRatio(s.KpiClv, s.KpiCac))
	fmt.Fprintf(&b, "- Pitch Deck Uploaded: %t\n", prompt.Present(s.PitchDeckURL))
	b.WriteString(`
**Output ONLY the integer score between 0 and 100. Do not include any other text, symbols, or explanation.**

Score:`)

	return b.String()
}

func clvCacRatio(clv, cac *decimal.Decimal) string {
	if clv == nil || cac == nil || clv.IsZero() || !cac.IsPositive() {
		return prompt.Missing
	}

	return clv.Div(*cac).StringFixed(1)
}

// BuildInsightsPrompt asks for investor considerations as bullet points
func BuildInsightsPrompt(s *Startup) string {
	revenue := prompt.NotProvided
	if s.AnnualRevenue != nil && !s.AnnualRevenue.IsZero() {
		revenue = "$" + s.AnnualRevenue.String()
	}

	var b strings.Builder
	b.WriteString(`You are an AI assistant for RISE, a platform connecting startups and investors.
Analyze the following startup profile data. Provide 3-5 concise bullet points highlighting key aspects an investor might consider. Focus ONLY on the provided data. Identify potential strengths, weaknesses, opportunities, or areas needing clarification. Keep insights factual and directly tied to the input.

**Startup Profile Data:**
`)
	fmt.Fprintf(&b, "- Name: %s\n", prompt.TextOr(&s.Name, prompt.NotProvided))
	fmt.Fprintf(&b, "- Industry: %s\n", prompt.TextOr(s.Industry, prompt.NotProvided))
	fmt.Fprintf(&b, "- Sector: %s\n", prompt.TextOr(s.Sector, prompt.NotProvided))
	fmt.Fprintf(&b, "- Operational Stage: %s\n", prompt.TextOr(s.OperationalStage, prompt.NotProvided))
	fmt.Fprintf(&b, "- Location: %s\n", prompt.TextOr(s.LocationCity, prompt.NotProvided))
	fmt.Fprintf(&b, "- Description: %s\n", prompt.TextOr(s.Description, prompt.NotProvided))
	fmt.Fprintf(&b, "- Team Size: %s\n", prompt.IntOr(s.NumEmployees, prompt.NotProvided))
	fmt.Fprintf(&b, "- Customer Count: %s\n", prompt.IntOr(s.NumCustomers, prompt.NotProvided))
	fmt.Fprintf(&b, "- Annual Revenue: %s\n", revenue)
	b.WriteString("\n**Investor Considerations (3-5 Bullet Points):**\n*")

	return b.String()
}
