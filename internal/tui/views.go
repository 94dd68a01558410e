package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pdfbrief/pdfbrief/internal/upload"
	"github.com/pdfbrief/pdfbrief/pkg/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("63"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	statusColors = map[models.DocumentStatus]lipgloss.Style{
		models.StatusPending:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		models.StatusUploaded:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		models.StatusProcessing: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		models.StatusCompleted:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		models.StatusFailed:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
)

func (m model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	var content string
	switch m.current {
	case loginScreen:
		content = m.renderLogin()
	case registerScreen:
		content = m.renderRegister()
	case identityScreen:
		content = CenteredOverlay(m.width, m.height-4, m.spinner.WithMessage("Restoring session..."))
	case dashboardScreen:
		content = m.renderDashboard()
	case uploadScreen:
		content = m.renderUpload()
	case detailScreen:
		content = m.renderDetail()
	case notFoundScreen:
		content = m.renderNotFound()
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s%s", m.renderHeader(), content, m.renderStatus(), m.renderFooter())
}

func (m model) renderHeader() string {
	title := "pdfbrief"
	switch m.current {
	case loginScreen:
		title = "pdfbrief - Sign in"
	case registerScreen:
		title = "pdfbrief - Create account"
	case dashboardScreen:
		title = "pdfbrief - Documents"
	case uploadScreen:
		title = "pdfbrief - Upload PDF"
	case detailScreen:
		if m.doc != nil {
			title = fmt.Sprintf("pdfbrief - %s", truncate(m.doc.OriginalFilename, 50))
		} else {
			title = "pdfbrief - Document"
		}
	}

	header := titleStyle.Render(title)
	if user := m.sess.User(); user != nil {
		header += "  " + dimStyle.Render(user.DisplayName())
	}
	return header
}

func (m model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return errorStyle.Render(m.status) + "\n"
	}
	return successStyle.Render(m.status) + "\n"
}

func (m model) renderFooter() string {
	var info string
	switch m.current {
	case loginScreen:
		info = "tab: next field • enter: sign in • ctrl+r: register • ctrl+c: quit"
	case registerScreen:
		info = "tab: next field • enter: create account • esc: back • ctrl+c: quit"
	case identityScreen:
		info = "ctrl+c: quit"
	case dashboardScreen:
		info = "↑/↓: navigate • enter: open • u: upload • d: delete • n/p: page • r: refresh • ctrl+l: logout • q: quit"
	case uploadScreen:
		info = "enter: upload • esc: back • ctrl+c: quit"
	case detailScreen:
		info = "r: refresh • esc: back • q: quit"
		if m.doc != nil && m.doc.Summary != nil && m.doc.Status != models.StatusFailed {
			info = "s: resend email • " + info
		}
	case notFoundScreen:
		info = "esc: back to documents • q: quit"
	}
	return helpStyle.Render(info)
}

func (m model) renderLogin() string {
	var s strings.Builder

	s.WriteString(labelStyle.Render("Email") + "\n")
	s.WriteString(m.loginInputs[loginFieldEmail].View() + "\n\n")
	s.WriteString(labelStyle.Render("Password") + "\n")
	s.WriteString(m.loginInputs[loginFieldPassword].View() + "\n")

	if m.loggingIn {
		s.WriteString("\n" + m.spinner.WithMessage("Signing in..."))
	}

	return s.String()
}

func (m model) renderRegister() string {
	labels := []string{"Email", "Password", "First name", "Last name"}

	var s strings.Builder
	for i, input := range m.regInputs {
		s.WriteString(labelStyle.Render(labels[i]) + "\n")
		s.WriteString(input.View() + "\n\n")
	}

	if m.registering {
		s.WriteString(m.spinner.WithMessage("Creating account..."))
	}

	return s.String()
}

func (m model) renderDashboard() string {
	if m.loadingDocs && len(m.docs) == 0 {
		return m.spinner.WithMessage("Loading documents...")
	}

	if len(m.docs) == 0 {
		return dimStyle.Render("No documents yet. Press 'u' to upload a PDF.")
	}

	var s strings.Builder
	for i, doc := range m.docs {
		cursor := "  "
		style := normalStyle
		if i == m.docCursor {
			cursor = "> "
			style = selectedStyle
		}

		pages := "-"
		if doc.PageCount != nil {
			pages = fmt.Sprintf("%d", *doc.PageCount)
		}

		marker := " "
		if doc.HasSummary {
			marker = "✓"
		}

		line := fmt.Sprintf("%s%-40s %s %-10s %4sp %s",
			cursor,
			truncate(doc.OriginalFilename, 40),
			marker,
			renderStatusBadge(doc.Status),
			pages,
			doc.CreatedAt.Format("2006-01-02 15:04"))

		s.WriteString(style.Render(line) + "\n")
	}

	page := m.skip/m.pageSize + 1
	s.WriteString("\n" + dimStyle.Render(fmt.Sprintf("page %d", page)))
	if m.loadingDocs {
		s.WriteString("  " + m.spinner.View())
	}

	return s.String()
}

func renderStatusBadge(status models.DocumentStatus) string {
	style, ok := statusColors[status]
	if !ok {
		style = normalStyle
	}
	return style.Render(string(status))
}

func (m model) renderUpload() string {
	var s strings.Builder

	s.WriteString(labelStyle.Render("Path to PDF file (max 10MB)") + "\n")
	s.WriteString(m.pathInput.View() + "\n")

	if m.attempt != nil && m.attempt.Phase == upload.PhaseUploading {
		s.WriteString("\n" + m.spinner.WithMessage(fmt.Sprintf("Uploading %s...", m.attempt.Name)))
		s.WriteString("\n" + dimStyle.Render("Please wait while we submit your file"))
	}

	return s.String()
}

func (m model) renderDetail() string {
	if m.loadingDoc || m.doc == nil {
		return m.spinner.WithMessage("Loading document...")
	}

	doc := m.doc
	var s strings.Builder

	s.WriteString(normalStyle.Render(doc.OriginalFilename) + "\n")
	s.WriteString(dimStyle.Render("Uploaded on "+doc.CreatedAt.Format("January 2, 2006 15:04")) + "\n\n")

	pages := "-"
	if doc.PageCount != nil {
		pages = fmt.Sprintf("%d", *doc.PageCount)
	}
	stats := fmt.Sprintf("Status: %s   Pages: %s", renderStatusBadge(doc.Status), pages)
	if doc.Summary != nil && doc.Status != models.StatusFailed {
		if doc.Summary.WordCount != nil {
			stats += fmt.Sprintf("   Words: %d", *doc.Summary.WordCount)
		}
		if doc.Summary.ProcessingTime != nil {
			stats += fmt.Sprintf("   Processing: %.1fs", *doc.Summary.ProcessingTime)
		}
	}
	s.WriteString(stats + "\n\n")

	// A failed document renders guidance only, even when a partial summary
	// record is present.
	switch {
	case doc.Status == models.StatusFailed:
		s.WriteString(errorStyle.Render("Failed to generate summary.") + "\n")
		s.WriteString(normalStyle.Render("Please try uploading the PDF again."))

	case doc.Summary != nil:
		s.WriteString(labelStyle.Render("Summary") + "\n")
		s.WriteString(m.summary.View() + "\n")
		if doc.Summary.EmailSent {
			sentAt := "Unknown"
			if doc.Summary.EmailSentAt != nil {
				sentAt = doc.Summary.EmailSentAt.Format("January 2, 2006 15:04")
			}
			s.WriteString(dimStyle.Render("Email sent on "+sentAt) + "\n")
		}
		if m.resending {
			s.WriteString(m.spinner.WithMessage("Sending email..."))
		}

	case doc.Status == models.StatusProcessing:
		s.WriteString(m.spinner.WithMessage("Your summary is being generated.") + "\n")
		s.WriteString(dimStyle.Render("Please check back shortly (press 'r' to refresh)."))

	default:
		s.WriteString(dimStyle.Render("Summary pending..."))
	}

	return s.String()
}

func (m model) renderNotFound() string {
	var s strings.Builder
	s.WriteString(normalStyle.Render("Document not found") + "\n\n")
	s.WriteString(dimStyle.Render("The document could not be loaded. Press esc to return to your documents."))
	return s.String()
}

// wrapText wraps text to fit within the specified width
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}

	var out strings.Builder
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			out.WriteString("\n")
			continue
		}

		line := words[0]
		for _, word := range words[1:] {
			if len(line)+1+len(word) > width {
				out.WriteString(line + "\n")
				line = word
			} else {
				line += " " + word
			}
		}
		out.WriteString(line + "\n")
	}

	return strings.TrimSuffix(out.String(), "\n")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
