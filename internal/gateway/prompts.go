package gateway

import (
	"fmt"
	"strings"

	"github.com/kevo-dev/Portfolio2/internal/profile"
)

func personaInstruction(p *profile.Profile) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are %q, the virtual assistant for %s's portfolio website.\n", p.Assistant.Name, p.Name)
	fmt.Fprintf(&sb, "%s is a %s.\n", p.Owner, p.Role)
	sb.WriteString("Your tone is professional, helpful, slightly witty, and enthusiastic.\n")
	sb.WriteString("Use the following context to answer questions:\n")
	if p.Identity != "" {
		fmt.Fprintf(&sb, "- Identity: %s\n", p.Identity)
	}
	fmt.Fprintf(&sb, "- Biography: %s\n", strings.TrimSpace(p.About))
	fmt.Fprintf(&sb, "- Role: %s\n", p.Role)
	fmt.Fprintf(&sb, "- Skills: %s\n", strings.Join(p.SkillNames(), ", "))
	fmt.Fprintf(&sb, "- Location: %s\n", p.Location)
	fmt.Fprintf(&sb, "- Featured Projects: %s\n\n", strings.Join(p.ProjectTitles(), ", "))
	fmt.Fprintf(&sb, "If you don't know an answer, politely suggest the user contact %s directly at %s.\n", p.Owner, p.Email)
	sb.WriteString("Keep responses concise and formatted with markdown where appropriate.")
	return sb.String()
}

func feedPrompt(size int) string {
	return fmt.Sprintf(`Research the top %d most consequential and debatable software engineering news stories for today.
Focus on React, TypeScript, AI Engineering, or Cloud Native ecosystems.
Return as a JSON array of objects with title, summary, date, and category.`, size)
}

func expandPrompt(owner, title, summary, sourceURL string) string {
	return fmt.Sprintf(`Act as a Software Developer. Produce a high-fidelity, fully rewritten technical deep-dive on: %q.
Summary: %q
Source: %s
REQUIREMENTS:
1. Multi-Source Synthesis: Cross-reference this with recent technical trends, using web search to ground every claim.
2. Section: "%s": Provide bold commentary on trade-offs and architectural impact.
3. Format: Professional Markdown.`, title, summary, sourceURL, perspectiveHeading(owner))
}

func perspectiveHeading(owner string) string {
	return fmt.Sprintf("## %s's Engineering Perspective", owner)
}
