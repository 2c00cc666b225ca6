package ui

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	markdown "github.com/MichaelMure/go-term-markdown"
	tea "github.com/charmbracelet/bubbletea"
	gomarkdown "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"

	"edumind/config"
	"edumind/conversation"
)

// Pre-compiled regex patterns for better performance
var (
	inlineCodeRegex = regexp.MustCompile(`(?s)\x1b\[44;3m(.*?)\x1b\[0m`)
	mdLinkRegex     = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^\)]+)\)`)
	urlRegex        = regexp.MustCompile(`(https?://[^\s]+)`)
)

func (a *AppView) updateViewportContent(gotoBottom bool) {
	messages := a.dataModel.Store.Snapshot()
	if len(messages) == 0 && !a.dataModel.Controller.Pending() {
		a.viewport.SetContent("No messages yet. Ask a question to get started!")
		return
	}

	var content strings.Builder

	for _, msg := range messages {
		timestamp := DimStyle.Render(msg.CreatedAt.Format("[15:04]"))

		switch msg.Role {
		case conversation.RoleUser:
			role := UserStyle.Render("You")
			content.WriteString(formatUserMessage(timestamp, role, msg.Content))

		case conversation.RoleAssistant:
			role := AssistantStyle.Render("Assistant")
			content.WriteString(fmt.Sprintf("%s %s\n%s\n\n", timestamp, role, a.assistantBody(msg)))

		default:
			role := DimStyle.Render("System")
			content.WriteString(fmt.Sprintf("%s %s\n%s\n\n", timestamp, role, msg.Content))
		}
	}

	// Pending indicator while waiting for the backend
	if a.dataModel.Controller.Pending() {
		timestamp := DimStyle.Render(time.Now().Format("[15:04]"))
		role := AssistantStyle.Render("Assistant")
		content.WriteString(fmt.Sprintf("%s %s\n%s Thinking...\n\n", timestamp, role, a.loadingSpinner.View()))
	}

	a.viewport.SetContent(content.String())
	if gotoBottom {
		a.viewport.GotoBottom()
	}
}

// assistantBody picks what to show for an assistant message: the rendered
// markdown once the reveal finished, otherwise the visible prefix with a
// cursor while the reveal is still running.
func (a *AppView) assistantBody(msg conversation.Message) string {
	if msg.FullyVisible() {
		if rendered, ok := a.rendered[msg.ID]; ok {
			return rendered
		}
		return msg.Content
	}
	if msg.ID == a.revealTarget {
		return msg.VisiblePrefix + "▋"
	}
	return msg.VisiblePrefix
}

func formatUserMessage(timestamp, role, content string) string {
	greenBold := "\x1b[32;1m"
	reset := "\x1b[0m"
	bar := greenBold + "┃" + reset

	lines := strings.Split(content, "\n")

	var result strings.Builder
	result.WriteString(fmt.Sprintf("%s %s %s\n", bar, timestamp, role))

	for _, line := range lines {
		result.WriteString(fmt.Sprintf("%s %s\n", bar, line))
	}

	result.WriteString("\n")

	return result.String()
}

func (a AppView) renderMarkdownAsync(messageID, content string) tea.Cmd {
	return func() tea.Msg {
		startTime := time.Now()

		// Preprocess: strip markdown link syntax [text](url) → url
		// so all links appear as plain URLs that terminals can detect
		content = preprocessLinks(content)

		// Render with go-term-markdown (simple, fast, lightweight).
		// Autolink is disabled to keep plain URLs as plain text.
		defaultExt := markdown.Extensions()
		customExt := defaultExt &^ parser.Autolink
		p := parser.NewWithExtensions(customExt)
		r := markdown.NewRenderer(a.width-4, 0)
		doc := p.Parse([]byte(content))
		rendered := gomarkdown.Render(doc, r)

		processed := fixMarkdownLinks(fixInlineCode(string(rendered)))

		if config.DebugLog != nil {
			config.DebugLog.Printf("[render] markdown for message %s rendered in %v", messageID, time.Since(startTime))
		}

		return markdownRenderedMsg{
			MessageID: messageID,
			Rendered:  processed,
		}
	}
}

func preprocessLinks(content string) string {
	return mdLinkRegex.ReplaceAllString(content, "$2")
}

func fixInlineCode(s string) string {
	// Replace: \x1b[44;3m...text...\x1b[0m (Blue BG + Italic)
	// With:    \x1b[31m...text...\x1b[0m (Red text)
	return inlineCodeRegex.ReplaceAllString(s, "\x1b[31m$1\x1b[0m")
}

func fixMarkdownLinks(s string) string {
	redColor := "\x1b[31m"
	reset := "\x1b[0m"

	lines := strings.Split(s, "\n")

	for i, line := range lines {
		// Skip code blocks (they have ┃ prefix from the renderer)
		if !strings.Contains(line, "┃") {
			lines[i] = urlRegex.ReplaceAllString(line, redColor+"$1"+reset)
		}
	}

	return strings.Join(lines, "\n")
}
