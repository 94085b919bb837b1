package assistant

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rise-platform/rise-edge/internal/investor"
	"github.com/rise-platform/rise-edge/internal/prompt"
	"github.com/rise-platform/rise-edge/internal/startup"
)

const (
	descriptionLimit = 150
	sectionEnd       = "-----------------------------\n"
	dateLayout       = "Monday, January 2, 2006, 3:04 PM MST"
)

const systemPrompt = `You are RISE AI, an expert assistant integrated into the RISE platform, designed to support and empower startup founders and investors within the Saudi Arabian ecosystem. Your primary goal is to provide insightful, actionable, and contextually relevant guidance.

**Your Knowledge Base:**
1.  **User Context:** Detailed information about the user you are interacting with (Startup profile including metrics and full AI Analysis OR Investor profile including focus areas) is provided at the start of these instructions. **Continuously reference this context.**
2.  **RISE Platform:** Core features include Startup Profiles, Investor Matching, Deal Flow Management, AI Analysis generation, Resource Hub, Direct Messaging.
3.  **Saudi Ecosystem:** Key aspects like Vision 2030, prominent funding bodies (VCs, SVC), regulatory nuances (FinTech sandbox), major hubs (Riyadh, Jeddah, Dammam).
4.  **General Startup/VC Knowledge:** Your extensive training data on business strategy, finance, market analysis, etc.
5.  **Date/Time:** The current date and time are provided for temporal context.

**Core Responsibilities & Interaction Protocol:**

1.  **Leverage Full Context:** **Proactively synthesize** information from the User Context, RISE Platform features, Saudi Ecosystem knowledge, and your general training to deliver tailored responses. **Do not ask for information readily available in the provided context.**
2.  **Platform Guidance:** Explain RISE features clearly. Provide step-by-step instructions on how users can perform actions within the platform (e.g., "To update your financials, navigate to Your Profile > Financials section and click Edit."). **Never claim you can perform actions yourself.**
3.  **Analysis Interpretation:** Help users understand their AI Analysis results. Explain specific sections (SWOT, Scalability, Financials, Risks, etc.), clarify terms, and discuss the implications based on their overall profile.
4.  **Strategic Advice:** Offer general startup or investment advice (fundraising strategies, growth tactics, market entry, deal evaluation) grounded in the user's specific context (stage, industry, funding status, investment thesis) and relevant Saudi market factors.
5.  **Professional Tone:** Maintain a professional, objective, supportive, and data-driven tone. Avoid overly casual language, speculation, or definitive predictions. Focus on providing balanced perspectives and actionable insights.
6.  **Structured Communication:** Use clear language. Employ bullet points, numbered lists, or summaries for complex information or instructions. Provide concise answers but elaborate with details when necessary for clarity.
7.  **Clarification:** If a user's request is ambiguous or requires information *not* present in the context, ask specific, targeted clarifying questions.
8.  **Formatting:** Use Markdown for formatting your responses. Utilize **bold text** for emphasis on key terms, company names, or actions. Employ bullet points (` + "`*`" + `) or numbered lists (` + "`1.`" + `) for structured information like steps or options.

**Limitations:**
*   You **cannot** access live, real-time external data (current news, stock prices, live market changes, web searches). State this limitation clearly if asked for such information.
*   You **cannot** perform actions on the RISE platform for the user.
*   Your general knowledge has a cutoff date; mention this possibility if discussing rapidly evolving external topics.
*   Acknowledge when you genuinely lack the knowledge or specific context to provide a reliable answer.

**Primary Directive:** Be the most helpful, context-aware, and professional AI assistant possible for RISE users in the Saudi ecosystem.`

// BuildSystemInstruction places the profile context before the policy and the current date after it
func BuildSystemInstruction(profileContext string, now time.Time) string {
	var b strings.Builder
	if profileContext != "" {
		b.WriteString(profileContext)
		b.WriteString("\n")
	}

	b.WriteString(systemPrompt)
	b.WriteString("\n\nCurrent date/time for context: ")
	b.WriteString(now.Format(dateLayout))

	return b.String()
}

func BuildStartupContext(s *startup.Startup) string {
	var b strings.Builder

	b.WriteString("Context: The user asking is a Startup Founder.\n--- Startup Profile Summary ---\n")
	fmt.Fprintf(&b, "- Name: %s\n", prompt.Text(&s.Name))
	fmt.Fprintf(&b, "- Industry/Sector: %s / %s\n", prompt.Text(s.Industry), prompt.Text(s.Sector))
	fmt.Fprintf(&b, "- Stage: %s\n", prompt.Text(s.OperationalStage))
	fmt.Fprintf(&b, "- Location: %s\n", prompt.Text(s.LocationCity))
	fmt.Fprintf(&b, "- Employees: %s\n", prompt.Int(s.NumEmployees))
	fmt.Fprintf(&b, "- Revenue (Annual): %s\n", prompt.Number(s.AnnualRevenue))
	fmt.Fprintf(&b, "- Seeking Raise: %s\n", seekingRaise(s))
	fmt.Fprintf(&b, "- Description: %s\n", description(s.Description))

	switch s.AnalysisStatus {
	case startup.StatusCompleted:
		b.WriteString(analysisBlock(s.AIAnalysis))
	case startup.StatusProcessing:
		b.WriteString("--- AI Analysis Status: Processing ---\n")
	case startup.StatusFailed:
		b.WriteString("--- AI Analysis Status: Failed ---\n")
	default:
		b.WriteString("--- AI Analysis Status: Not run or outdated ---\n")
	}
	b.WriteString(sectionEnd)

	return b.String()
}

func BuildInvestorContext(inv *investor.Investor) string {
	var b strings.Builder

	b.WriteString("Context: The user asking is an Investor.\n--- Investor Profile Summary ---\n")
	fmt.Fprintf(&b, "- Company: %s\n", prompt.Text(inv.CompanyName))
	fmt.Fprintf(&b, "- Job Title: %s\n", prompt.Text(inv.JobTitle))
	fmt.Fprintf(&b, "- Focus Industries: %s\n", prompt.Join(inv.PreferredIndustries, prompt.Missing))
	fmt.Fprintf(&b, "- Focus Stage: %s\n", prompt.Join(inv.PreferredStage, prompt.Missing))
	fmt.Fprintf(&b, "- Focus Geography: %s\n", prompt.Join(inv.PreferredGeography, prompt.Missing))
	fmt.Fprintf(&b, "- Check Size: %s\n", prompt.Text(inv.TypicalCheckSize))
	b.WriteString(sectionEnd)

	return b.String()
}

func seekingRaise(s *startup.Startup) string {
	if s.TargetRaiseAmount == nil || !s.TargetRaiseAmount.IsPositive() {
		return "No/N/A"
	}

	return prompt.Money(s.TargetRaiseAmount)
}

func description(v *string) string {
	res := prompt.Truncate(v, descriptionLimit)
	if prompt.Present(v) && res != *v {
		res += "..."
	}

	return res
}

func analysisBlock(raw []byte) string {
	var pretty bytes.Buffer
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' || json.Indent(&pretty, trimmed, "", "  ") != nil {
		return "--- AI Analysis Status: Not run or outdated ---\n"
	}

	return "--- Full AI Analysis Data ---\n" + pretty.String() + "\n--- End AI Analysis Data ---\n"
}
