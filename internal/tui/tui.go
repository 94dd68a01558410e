package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pdfbrief/pdfbrief/internal/api"
	"github.com/pdfbrief/pdfbrief/internal/session"
	"github.com/pdfbrief/pdfbrief/internal/upload"
	"github.com/pdfbrief/pdfbrief/pkg/models"
)

type screen int

const (
	loginScreen screen = iota
	registerScreen
	identityScreen
	dashboardScreen
	uploadScreen
	detailScreen
	notFoundScreen
)

const (
	loginFieldEmail = iota
	loginFieldPassword
)

const (
	regFieldEmail = iota
	regFieldPassword
	regFieldFirstName
	regFieldLastName
)

type model struct {
	sess     *session.Store
	client   *api.Client
	pageSize int

	current screen

	loginInputs []textinput.Model
	loginFocus  int
	loggingIn   bool

	regInputs   []textinput.Model
	regFocus    int
	registering bool

	docs        []models.DocumentListItem
	docCursor   int
	skip        int
	loadingDocs bool

	pathInput textinput.Model
	attempt   *upload.Attempt

	doc        *models.Document
	detailID   int
	loadingDoc bool
	resending  bool
	summary    viewport.Model

	spinner   *Spinner
	status    string
	statusErr bool

	width  int
	height int
	ready  bool
}

func initialModel(sess *session.Store, client *api.Client, pageSize int) model {
	if pageSize < 1 {
		pageSize = 1
	}

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 128

	regEmail := textinput.New()
	regEmail.Placeholder = "email"
	regEmail.CharLimit = 128
	regEmail.Focus()

	regPassword := textinput.New()
	regPassword.Placeholder = "password"
	regPassword.EchoMode = textinput.EchoPassword
	regPassword.CharLimit = 128

	regFirst := textinput.New()
	regFirst.Placeholder = "first name"
	regFirst.CharLimit = 64

	regLast := textinput.New()
	regLast.Placeholder = "last name"
	regLast.CharLimit = 64

	path := textinput.New()
	path.Placeholder = "/path/to/document.pdf"
	path.CharLimit = 512

	m := model{
		sess:        sess,
		client:      client,
		pageSize:    pageSize,
		loginInputs: []textinput.Model{email, password},
		regInputs:   []textinput.Model{regEmail, regPassword, regFirst, regLast},
		pathInput:   path,
		spinner:     NewSpinner(),
	}
	m.current = m.guard()
	return m
}

// guard decides which screen session state admits. No token lands on the
// login screen; a token with identity resolution still in flight blocks on
// a loading screen instead of flashing guarded content.
func (m *model) guard() screen {
	if !m.sess.Authenticated() {
		return loginScreen
	}
	if m.sess.User() == nil {
		return identityScreen
	}
	return dashboardScreen
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	switch m.current {
	case identityScreen:
		cmds = append(cmds, fetchUserCmd(m.sess), tickCmd())
	case dashboardScreen:
		cmds = append(cmds, m.startLoadDocuments(m.skip))
	}
	return tea.Batch(cmds...)
}

func (m *model) anyLoading() bool {
	return m.loggingIn || m.registering || m.loadingDocs || m.loadingDoc ||
		m.resending || m.current == identityScreen ||
		(m.attempt != nil && m.attempt.Phase == upload.PhaseUploading)
}

func (m *model) setStatus(text string, isErr bool) tea.Cmd {
	m.status = text
	m.statusErr = isErr
	return clearStatusCmd()
}

func (m *model) startLoadDocuments(skip int) tea.Cmd {
	m.loadingDocs = true
	return tea.Batch(loadDocumentsCmd(m.client, skip, m.pageSize), tickCmd())
}

func (m *model) resetToLogin() {
	m.current = loginScreen
	m.loggingIn = false
	m.loginInputs[loginFieldPassword].SetValue("")
	m.loginFocus = loginFieldEmail
	m.loginInputs[loginFieldEmail].Focus()
	m.loginInputs[loginFieldPassword].Blur()
	m.docs = nil
	m.doc = nil
	m.attempt = nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.summary = viewport.New(msg.Width-4, msg.Height-14)
			m.ready = true
		} else {
			m.summary.Width = msg.Width - 4
			m.summary.Height = msg.Height - 14
		}
		if m.doc != nil && m.doc.Summary != nil {
			m.summary.SetContent(wrapText(m.doc.Summary.Content, m.summary.Width))
		}
		return m, nil

	case TickMsg:
		if m.anyLoading() {
			m.spinner.Next()
			return m, tickCmd()
		}
		return m, nil

	case ClearStatusMsg:
		m.status = ""
		return m, nil

	case SessionExpiredMsg:
		// The credential is already torn down; only the redirect remains.
		m.resetToLogin()
		return m, nil

	case LoginResultMsg:
		m.loggingIn = false
		if !msg.Ok {
			cmd := m.setStatus(m.sess.Err(), true)
			m.sess.ClearError()
			return m, cmd
		}
		// Login resolves the identity before returning, so the guard can
		// admit the dashboard immediately.
		m.current = m.guard()
		if m.current == dashboardScreen {
			return m, m.startLoadDocuments(0)
		}
		return m, nil

	case RegisterResultMsg:
		m.registering = false
		if !msg.Ok {
			cmd := m.setStatus(m.sess.Err(), true)
			m.sess.ClearError()
			return m, cmd
		}
		m.loginInputs[loginFieldEmail].SetValue(m.regInputs[regFieldEmail].Value())
		m.resetToLogin()
		return m, m.setStatus("Account created, please log in", false)

	case UserFetchedMsg:
		m.current = m.guard()
		if m.current == dashboardScreen {
			return m, m.startLoadDocuments(m.skip)
		}
		return m, nil

	case DocumentsLoadedMsg:
		m.loadingDocs = false
		if msg.Error != nil {
			return m, m.setStatus(api.Detail(msg.Error, "Failed to load documents"), true)
		}
		m.docs = msg.Documents
		m.skip = msg.Skip
		if m.docCursor >= len(m.docs) {
			m.docCursor = 0
		}
		return m, nil

	case DocumentLoadedMsg:
		m.loadingDoc = false
		if msg.Error != nil {
			// A fetch failure is not a document-level "failed" status; it
			// gets the dedicated not-found screen.
			m.doc = nil
			m.current = notFoundScreen
			return m, nil
		}
		m.doc = msg.Document
		m.current = detailScreen
		if m.ready && m.doc.Summary != nil {
			m.summary.SetContent(wrapText(m.doc.Summary.Content, m.summary.Width))
			m.summary.GotoTop()
		}
		return m, nil

	case UploadFinishedMsg:
		if msg.Error != nil {
			if m.attempt != nil {
				m.attempt.Phase = upload.PhaseIdle
			}
			return m, m.setStatus(api.Detail(msg.Error, "Failed to upload PDF"), true)
		}
		m.attempt = nil
		m.pathInput.SetValue("")
		m.current = dashboardScreen
		return m, tea.Batch(
			m.setStatus("PDF uploaded successfully! Processing started.", false),
			m.startLoadDocuments(0),
		)

	case DeleteFinishedMsg:
		if msg.Error != nil {
			return m, m.setStatus(api.Detail(msg.Error, "Failed to delete document"), true)
		}
		return m, tea.Batch(
			m.setStatus("Document deleted", false),
			m.startLoadDocuments(m.skip),
		)

	case ResendFinishedMsg:
		m.resending = false
		if msg.Error != nil {
			return m, m.setStatus(api.Detail(msg.Error, "Failed to send email"), true)
		}
		return m, m.setStatus("Summary email sent successfully!", false)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.current {
	case loginScreen:
		return m.updateLogin(msg)
	case registerScreen:
		return m.updateRegister(msg)
	case identityScreen:
		return m, nil
	case dashboardScreen:
		return m.updateDashboard(msg)
	case uploadScreen:
		return m.updateUpload(msg)
	case detailScreen:
		return m.updateDetail(msg)
	case notFoundScreen:
		return m.updateNotFound(msg)
	}
	return m, nil
}

func (m model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		if msg.String() == "shift+tab" || msg.String() == "up" {
			m.loginFocus--
		} else {
			m.loginFocus++
		}
		m.loginFocus = (m.loginFocus + len(m.loginInputs)) % len(m.loginInputs)
		for i := range m.loginInputs {
			if i == m.loginFocus {
				m.loginInputs[i].Focus()
			} else {
				m.loginInputs[i].Blur()
			}
		}
		return m, nil

	case "enter":
		if m.loggingIn {
			return m, nil
		}
		email := strings.TrimSpace(m.loginInputs[loginFieldEmail].Value())
		password := m.loginInputs[loginFieldPassword].Value()
		if email == "" || password == "" {
			return m, m.setStatus("Email and password are required", true)
		}
		m.loggingIn = true
		return m, tea.Batch(loginCmd(m.sess, email, password), tickCmd())

	case "ctrl+r":
		m.current = registerScreen
		m.regFocus = regFieldEmail
		for i := range m.regInputs {
			if i == m.regFocus {
				m.regInputs[i].Focus()
			} else {
				m.regInputs[i].Blur()
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.loginInputs[m.loginFocus], cmd = m.loginInputs[m.loginFocus].Update(msg)
	return m, cmd
}

func (m model) updateRegister(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.current = loginScreen
		return m, nil

	case "tab", "shift+tab", "up", "down":
		if msg.String() == "shift+tab" || msg.String() == "up" {
			m.regFocus--
		} else {
			m.regFocus++
		}
		m.regFocus = (m.regFocus + len(m.regInputs)) % len(m.regInputs)
		for i := range m.regInputs {
			if i == m.regFocus {
				m.regInputs[i].Focus()
			} else {
				m.regInputs[i].Blur()
			}
		}
		return m, nil

	case "enter":
		if m.registering {
			return m, nil
		}
		email := strings.TrimSpace(m.regInputs[regFieldEmail].Value())
		password := m.regInputs[regFieldPassword].Value()
		if email == "" || password == "" {
			return m, m.setStatus("Email and password are required", true)
		}
		m.registering = true
		return m, tea.Batch(registerCmd(
			m.sess,
			email,
			password,
			strings.TrimSpace(m.regInputs[regFieldFirstName].Value()),
			strings.TrimSpace(m.regInputs[regFieldLastName].Value()),
		), tickCmd())
	}

	var cmd tea.Cmd
	m.regInputs[m.regFocus], cmd = m.regInputs[m.regFocus].Update(msg)
	return m, cmd
}

func (m model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "up", "k":
		if m.docCursor > 0 {
			m.docCursor--
		}
		return m, nil

	case "down", "j":
		if m.docCursor < len(m.docs)-1 {
			m.docCursor++
		}
		return m, nil

	case "enter":
		if m.docCursor < len(m.docs) {
			m.detailID = m.docs[m.docCursor].ID
			m.loadingDoc = true
			return m, tea.Batch(loadDocumentCmd(m.client, m.detailID), tickCmd())
		}
		return m, nil

	case "u":
		m.current = uploadScreen
		m.pathInput.Focus()
		return m, textinput.Blink

	case "d":
		if m.docCursor < len(m.docs) {
			return m, tea.Batch(deleteDocumentCmd(m.client, m.docs[m.docCursor].ID), tickCmd())
		}
		return m, nil

	case "r":
		return m, m.startLoadDocuments(m.skip)

	case "n":
		if len(m.docs) == m.pageSize {
			return m, m.startLoadDocuments(m.skip + m.pageSize)
		}
		return m, nil

	case "p":
		if m.skip > 0 {
			next := m.skip - m.pageSize
			if next < 0 {
				next = 0
			}
			return m, m.startLoadDocuments(next)
		}
		return m, nil

	case "ctrl+l":
		m.sess.Logout()
		m.resetToLogin()
		return m, nil
	}

	return m, nil
}

func (m model) updateUpload(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	uploading := m.attempt != nil && m.attempt.Phase == upload.PhaseUploading

	switch msg.String() {
	case "esc":
		if !uploading {
			m.current = dashboardScreen
			m.pathInput.Blur()
		}
		return m, nil

	case "enter":
		if uploading {
			return m, nil
		}
		path := strings.TrimSpace(m.pathInput.Value())
		if path == "" {
			return m, m.setStatus("Enter the path to a PDF file", true)
		}
		attempt, err := upload.NewAttempt(path)
		if err != nil {
			// Validation failures never reach the network.
			return m, m.setStatus(err.Error(), true)
		}
		attempt.Phase = upload.PhaseUploading
		m.attempt = attempt
		return m, tea.Batch(uploadCmd(m.client, attempt), tickCmd())
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

func (m model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "esc", "backspace":
		m.current = dashboardScreen
		m.doc = nil
		return m, m.startLoadDocuments(m.skip)

	case "r":
		m.loadingDoc = true
		return m, tea.Batch(loadDocumentCmd(m.client, m.detailID), tickCmd())

	case "s":
		// Independent in-flight flag: a resend while one is pending is
		// dropped here, never duplicated on the wire.
		if m.resending {
			return m, nil
		}
		// A failed document offers re-upload guidance only; any partial
		// summary record on it is not an affordance.
		if m.doc == nil || m.doc.Summary == nil || m.doc.Status == models.StatusFailed {
			return m, nil
		}
		m.resending = true
		return m, tea.Batch(resendCmd(m.client, m.doc.Summary.ID), tickCmd())
	}

	var cmd tea.Cmd
	m.summary, cmd = m.summary.Update(msg)
	return m, cmd
}

func (m model) updateNotFound(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "enter", "backspace":
		m.current = dashboardScreen
		return m, m.startLoadDocuments(m.skip)
	}
	return m, nil
}

// Run starts the TUI. The HTTP client's unauthorized policy is pointed at
// the session store plus a redirect message into the running program, so a
// 401 from any request lands the user back on the login screen.
func Run(sess *session.Store, client *api.Client, pageSize int) error {
	p := tea.NewProgram(
		initialModel(sess, client, pageSize),
		tea.WithAltScreen(),
	)

	client.SetUnauthorizedHandler(func() {
		sess.HandleUnauthorized()
		p.Send(SessionExpiredMsg{})
	})

	_, err := p.Run()
	return err
}
