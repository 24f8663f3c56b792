package authenticity

import (
	"fmt"
	"strings"
)

const validateInstructions = `You are an assistant that validates incident reports.

Analyze the report below to determine whether it is authentic. Give a confidence score from 0 to 1 and a brief summary of your analysis. Focus on inconsistencies or red flags: check that the details agree with each other, that the scenario is plausible, and that any attached photos or videos match the description.`

const summaryInstructions = `Summarize the following incident report concisely so it can be understood quickly, even over a poor network connection. Focus on the most critical information.`

func validatePrompt(req Request) string {
	var b strings.Builder
	b.WriteString(validateInstructions)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Incident Type: %s\n", req.Type)
	fmt.Fprintf(&b, "Location Description: %s\n", req.Location)
	fmt.Fprintf(&b, "Description: %s\n", req.Description)
	fmt.Fprintf(&b, "Severity Level: %s\n", req.Severity)
	fmt.Fprintf(&b, "Help Needed: %s\n", strings.Join(req.HelpNeeded, ", "))
	fmt.Fprintf(&b, "Number of People Affected: %d\n", req.PeopleAffected)
	if n := countInline(req.Evidence); n > 0 {
		fmt.Fprintf(&b, "Photo/Video Evidence: %d attachment(s) follow.\n", n)
	}
	return b.String()
}

func summaryPrompt(req SummaryRequest) string {
	var b strings.Builder
	b.WriteString(summaryInstructions)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Incident Type: %s\n", req.Type)
	fmt.Fprintf(&b, "Location: %s\n", req.Location)
	fmt.Fprintf(&b, "Severity: %s\n", req.Severity)
	fmt.Fprintf(&b, "Details: %s\n", req.Details)
	return b.String()
}

func countInline(refs []string) int {
	n := 0
	for _, ref := range refs {
		if strings.HasPrefix(ref, "data:") {
			n++
		}
	}
	return n
}
