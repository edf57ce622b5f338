package llm

import (
	"fmt"
	"strings"
)

// BuildPrompt wraps the document summary and question the same way for every
// provider. History entries are the session's past question/answer payloads.
func BuildPrompt(question string, docContext string, messageHistory []string) string {
	var b strings.Builder

	if len(messageHistory) > 0 {
		b.WriteString("Conversation so far (question is what the user asked, answer is what you replied):\n")
		b.WriteString(strings.Join(messageHistory, "\n"))
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, `Document extracted summary:
%s

User question:
%s

Provide the best possible factual answer using the document. If not answerable, say you couldn't find it.
`, docContext, question)

	return b.String()
}
