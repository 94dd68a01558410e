package tui

import (
	"context"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pdfbrief/pdfbrief/internal/api"
	"github.com/pdfbrief/pdfbrief/internal/session"
	"github.com/pdfbrief/pdfbrief/internal/upload"
	"github.com/pdfbrief/pdfbrief/pkg/models"
)

// Message types for async operations
type (
	// LoginResultMsg reports a settled login attempt. The session store has
	// already recorded the outcome; Ok mirrors its return value.
	LoginResultMsg struct {
		Ok bool
	}

	// RegisterResultMsg reports a settled registration attempt.
	RegisterResultMsg struct {
		Ok bool
	}

	// UserFetchedMsg reports that identity resolution settled, successfully
	// or via session teardown. The guard re-evaluates on receipt.
	UserFetchedMsg struct{}

	// SessionExpiredMsg is sent by the HTTP client's unauthorized policy
	// when any request comes back 401.
	SessionExpiredMsg struct{}

	// DocumentsLoadedMsg contains one page of the document listing.
	DocumentsLoadedMsg struct {
		Documents []models.DocumentListItem
		Skip      int
		Error     error
	}

	// DocumentLoadedMsg contains a freshly fetched document.
	DocumentLoadedMsg struct {
		Document *models.Document
		Error    error
	}

	// UploadFinishedMsg reports a settled upload attempt.
	UploadFinishedMsg struct {
		Result *models.UploadResult
		Error  error
	}

	// DeleteFinishedMsg reports a settled document deletion.
	DeleteFinishedMsg struct {
		DocumentID int
		Error      error
	}

	// ResendFinishedMsg reports a settled resend-notification request.
	ResendFinishedMsg struct {
		Error error
	}

	// TickMsg drives the spinner animation.
	TickMsg time.Time

	// ClearStatusMsg expires the transient status line.
	ClearStatusMsg struct{}
)

// Commands for async operations

func loginCmd(sess *session.Store, email, password string) tea.Cmd {
	return func() tea.Msg {
		ok := sess.Login(context.Background(), email, password)
		return LoginResultMsg{Ok: ok}
	}
}

func registerCmd(sess *session.Store, email, password, firstName, lastName string) tea.Cmd {
	return func() tea.Msg {
		ok := sess.Register(context.Background(), email, password, firstName, lastName)
		return RegisterResultMsg{Ok: ok}
	}
}

func fetchUserCmd(sess *session.Store) tea.Cmd {
	return func() tea.Msg {
		sess.FetchUser(context.Background())
		return UserFetchedMsg{}
	}
}

func loadDocumentsCmd(client *api.Client, skip, limit int) tea.Cmd {
	return func() tea.Msg {
		docs, err := client.Documents(context.Background(), skip, limit)
		return DocumentsLoadedMsg{Documents: docs, Skip: skip, Error: err}
	}
}

func loadDocumentCmd(client *api.Client, id int) tea.Cmd {
	return func() tea.Msg {
		doc, err := client.Document(context.Background(), id)
		return DocumentLoadedMsg{Document: doc, Error: err}
	}
}

func uploadCmd(client *api.Client, attempt *upload.Attempt) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(attempt.Path)
		if err != nil {
			return UploadFinishedMsg{Error: err}
		}
		defer f.Close()

		result, err := client.Upload(context.Background(), attempt.Name, f)
		return UploadFinishedMsg{Result: result, Error: err}
	}
}

func deleteDocumentCmd(client *api.Client, id int) tea.Cmd {
	return func() tea.Msg {
		err := client.DeleteDocument(context.Background(), id)
		return DeleteFinishedMsg{DocumentID: id, Error: err}
	}
}

func resendCmd(client *api.Client, summaryID int) tea.Cmd {
	return func() tea.Msg {
		err := client.ResendEmail(context.Background(), summaryID)
		return ResendFinishedMsg{Error: err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func clearStatusCmd() tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
