package main

import (
	"fmt"
	"strings"

	"portfolio-server/entities"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	tabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("245"))

	activeTabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Underline(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true).
			PaddingLeft(2)

	normalStyle = lipgloss.NewStyle().
			PaddingLeft(4)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
)

// portfolioAPI is the part of the server API the admin screen uses.
type portfolioAPI interface {
	GetSection(section string) (*entities.PortfolioContent, error)
	SaveSection(content entities.PortfolioContent) (*entities.PortfolioContent, error)
	ListProjects() ([]entities.Project, error)
	SetFeatured(id int, featured bool) (*entities.Project, error)
	CreateProject(draft projectDraft) (*entities.Project, error)
	DeleteProject(id int) error
	ListContacts() ([]entities.Contact, error)
}

type tab int

const (
	tabHero tab = iota
	tabAbout
	tabProjects
	tabContacts
	tabCount
)

func (t tab) String() string {
	switch t {
	case tabHero:
		return "Hero Section"
	case tabAbout:
		return "About Section"
	case tabProjects:
		return "Projects"
	default:
		return "Contacts"
	}
}

func (t tab) section() string {
	switch t {
	case tabHero:
		return entities.SectionHero
	case tabAbout:
		return entities.SectionAbout
	default:
		return ""
	}
}

type model struct {
	api      portfolioAPI
	tab      tab
	cursor   int
	sections map[string]*entities.PortfolioContent
	projects []entities.Project
	contacts []entities.Contact

	editing       bool
	editField     string // section field being edited
	currentInput  string
	confirmDelete bool
	form          *projectForm

	message  string
	quitting bool
}

type sectionLoadedMsg struct {
	section string
	content *entities.PortfolioContent
}
type sectionSavedMsg struct{ content *entities.PortfolioContent }
type projectsLoadedMsg []entities.Project
type contactsLoadedMsg []entities.Contact
type projectSavedMsg struct{ project *entities.Project }
type projectCreatedMsg struct{ project *entities.Project }
type projectDeletedMsg struct{ id int }
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func initialModel(api portfolioAPI) model {
	return model{
		api:      api,
		tab:      tabHero,
		sections: make(map[string]*entities.PortfolioContent),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		loadSection(m.api, entities.SectionHero),
		loadSection(m.api, entities.SectionAbout),
		loadProjects(m.api),
		loadContacts(m.api),
	)
}

func loadSection(api portfolioAPI, section string) tea.Cmd {
	return func() tea.Msg {
		content, err := api.GetSection(section)
		if err != nil {
			return errMsg{fmt.Errorf("load %s: %w", section, err)}
		}
		return sectionLoadedMsg{section: section, content: content}
	}
}

func saveSection(api portfolioAPI, content entities.PortfolioContent) tea.Cmd {
	return func() tea.Msg {
		saved, err := api.SaveSection(content)
		if err != nil {
			return errMsg{fmt.Errorf("save %s: %w", content.Section, err)}
		}
		return sectionSavedMsg{content: saved}
	}
}

func loadProjects(api portfolioAPI) tea.Cmd {
	return func() tea.Msg {
		projects, err := api.ListProjects()
		if err != nil {
			return errMsg{fmt.Errorf("load projects: %w", err)}
		}
		return projectsLoadedMsg(projects)
	}
}

func loadContacts(api portfolioAPI) tea.Cmd {
	return func() tea.Msg {
		contacts, err := api.ListContacts()
		if err != nil {
			return errMsg{fmt.Errorf("load contacts: %w", err)}
		}
		return contactsLoadedMsg(contacts)
	}
}

func toggleFeatured(api portfolioAPI, project entities.Project) tea.Cmd {
	return func() tea.Msg {
		saved, err := api.SetFeatured(project.ID, !project.Featured)
		if err != nil {
			return errMsg{fmt.Errorf("update project %d: %w", project.ID, err)}
		}
		return projectSavedMsg{project: saved}
	}
}

func createProject(api portfolioAPI, draft projectDraft) tea.Cmd {
	return func() tea.Msg {
		project, err := api.CreateProject(draft)
		if err != nil {
			return errMsg{fmt.Errorf("create project: %w", err)}
		}
		return projectCreatedMsg{project: project}
	}
}

func deleteProject(api portfolioAPI, id int) tea.Cmd {
	return func() tea.Msg {
		if err := api.DeleteProject(id); err != nil {
			return errMsg{fmt.Errorf("delete project %d: %w", id, err)}
		}
		return projectDeletedMsg{id: id}
	}
}

func (m model) listLen() int {
	switch m.tab {
	case tabProjects:
		return len(m.projects)
	case tabContacts:
		return len(m.contacts)
	default:
		return 0
	}
}

func (m model) reload() tea.Cmd {
	switch m.tab {
	case tabProjects:
		return loadProjects(m.api)
	case tabContacts:
		return loadContacts(m.api)
	default:
		return loadSection(m.api, m.tab.section())
	}
}

// sectionFields are the editable section fields in display order, each with
// the key that opens it.
var sectionFields = []struct {
	key   string
	name  string
	label string
}{
	{"t", "title", "Title"},
	{"e", "description", "Description"},
	{"c", "content", "Content"},
	{"i", "imageUrl", "Image URL"},
	{"m", "metadata", "Metadata"},
}

func sectionFieldForKey(key string) (string, bool) {
	for _, f := range sectionFields {
		if f.key == key {
			return f.name, true
		}
	}
	return "", false
}

// fieldRef points at the named field of content.
func fieldRef(content *entities.PortfolioContent, name string) **string {
	switch name {
	case "description":
		return &content.Description
	case "content":
		return &content.Content
	case "imageUrl":
		return &content.ImageURL
	case "metadata":
		return &content.Metadata
	default:
		return &content.Title
	}
}

// startEdit opens the input for field of the current section, prefilled with
// its stored value.
func (m model) startEdit(field string) model {
	m.editing = true
	m.editField = field
	m.currentInput = ""
	if current := m.sections[m.tab.section()]; current != nil {
		if value := *fieldRef(current, field); value != nil {
			m.currentInput = *value
		}
	}
	return m
}

// editedSection applies the input to a copy of the current section. The
// other fields are carried over because a save replaces the whole section.
func (m model) editedSection() entities.PortfolioContent {
	section := m.tab.section()
	content := entities.PortfolioContent{Section: section}
	if current := m.sections[section]; current != nil {
		content = *current
	}
	value := m.currentInput
	*fieldRef(&content, m.editField) = &value
	return content
}

// typeInto applies a text editing key to input.
func typeInto(input string, msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeyBackspace:
		if runes := []rune(input); len(runes) > 0 {
			return string(runes[:len(runes)-1])
		}
	case tea.KeySpace:
		return input + " "
	case tea.KeyRunes:
		return input + string(msg.Runes)
	}
	return input
}

func (m model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEsc:
		m.editing = false
		m.currentInput = ""
		m.message = ""
	case tea.KeyEnter:
		content := m.editedSection()
		m.editing = false
		m.currentInput = ""
		m.message = "Saving..."
		return m, saveSection(m.api, content)
	default:
		m.currentInput = typeInto(m.currentInput, msg)
	}
	return m, nil
}

// projectFormFields are the prompts of the new project form, in order.
var projectFormFields = []struct {
	name  string
	label string
}{
	{"title", "Title"},
	{"description", "Description"},
	{"imageUrl", "Image URL (optional)"},
	{"tags", "Tags (comma separated)"},
	{"githubUrl", "GitHub URL (optional)"},
	{"demoUrl", "Demo URL (optional)"},
	{"featured", "Featured? (y/n)"},
}

// projectForm collects a new project one field at a time.
type projectForm struct {
	step   int
	values map[string]string
}

func newProjectForm() *projectForm {
	return &projectForm{values: make(map[string]string, len(projectFormFields))}
}

func (f *projectForm) done() bool {
	return f.step >= len(projectFormFields)
}

func (f *projectForm) draft() projectDraft {
	featured := strings.ToLower(strings.TrimSpace(f.values["featured"]))
	return projectDraft{
		Title:       strings.TrimSpace(f.values["title"]),
		Description: strings.TrimSpace(f.values["description"]),
		ImageURL:    strings.TrimSpace(f.values["imageUrl"]),
		Tags:        f.values["tags"],
		GithubURL:   strings.TrimSpace(f.values["githubUrl"]),
		DemoURL:     strings.TrimSpace(f.values["demoUrl"]),
		Featured:    featured == "y" || featured == "yes" || featured == "true",
	}
}

func (m model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEsc:
		m.form = nil
		m.currentInput = ""
		m.message = ""
	case tea.KeyEnter:
		field := projectFormFields[m.form.step]
		if m.currentInput == "" && (field.name == "title" || field.name == "description") {
			m.message = errorStyle.Render("✗ " + field.label + " is required")
			return m, nil
		}
		m.form.values[field.name] = m.currentInput
		m.form.step++
		m.currentInput = ""
		m.message = ""
		if m.form.done() {
			draft := m.form.draft()
			m.form = nil
			m.message = "Creating..."
			return m, createProject(m.api, draft)
		}
	default:
		m.currentInput = typeInto(m.currentInput, msg)
	}
	return m, nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		if m.form != nil {
			return m.updateForm(msg)
		}
		if m.confirmDelete {
			m.confirmDelete = false
			if msg.String() == "y" && m.cursor < len(m.projects) {
				m.message = "Deleting..."
				return m, deleteProject(m.api, m.projects[m.cursor].ID)
			}
			m.message = ""
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit

		case "tab", "right", "l":
			m.tab = (m.tab + 1) % tabCount
			m.cursor = 0
			m.message = ""

		case "shift+tab", "left", "h":
			m.tab = (m.tab + tabCount - 1) % tabCount
			m.cursor = 0
			m.message = ""

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < m.listLen()-1 {
				m.cursor++
			}

		case "r":
			m.message = "Refreshing..."
			return m, m.reload()

		case "n":
			if m.tab == tabProjects {
				m.form = newProjectForm()
				m.currentInput = ""
				m.message = ""
			}

		case "f":
			if m.tab == tabProjects && m.cursor < len(m.projects) {
				return m, toggleFeatured(m.api, m.projects[m.cursor])
			}

		case "d":
			if m.tab == tabProjects && m.cursor < len(m.projects) {
				m.confirmDelete = true
				m.message = fmt.Sprintf("Delete %q? (y/n)", m.projects[m.cursor].Title)
			}

		default:
			if field, ok := sectionFieldForKey(msg.String()); ok && m.tab.section() != "" {
				m = m.startEdit(field)
			}
		}

	case sectionLoadedMsg:
		m.sections[msg.section] = msg.content
		if m.message == "Refreshing..." {
			m.message = ""
		}

	case sectionSavedMsg:
		m.sections[msg.content.Section] = msg.content
		m.message = successStyle.Render("✓ Changes saved successfully")

	case projectsLoadedMsg:
		m.projects = []entities.Project(msg)
		if m.cursor >= len(m.projects) && m.tab == tabProjects {
			m.cursor = max(len(m.projects)-1, 0)
		}
		if m.message == "Refreshing..." {
			m.message = ""
		}

	case contactsLoadedMsg:
		m.contacts = []entities.Contact(msg)
		if m.message == "Refreshing..." {
			m.message = ""
		}

	case projectSavedMsg:
		for i := range m.projects {
			if m.projects[i].ID == msg.project.ID {
				m.projects[i] = *msg.project
			}
		}
		m.message = successStyle.Render(fmt.Sprintf("✓ Project %q updated", msg.project.Title))

	case projectCreatedMsg:
		m.message = successStyle.Render(fmt.Sprintf("✓ Project %q created", msg.project.Title))
		return m, loadProjects(m.api)

	case projectDeletedMsg:
		m.message = successStyle.Render("✓ Project removed successfully")
		return m, loadProjects(m.api)

	case errMsg:
		m.message = errorStyle.Render("✗ " + msg.err.Error())
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render("Portfolio Admin"))
	s.WriteString("\n")

	tabs := make([]string, 0, tabCount)
	for t := tabHero; t < tabCount; t++ {
		style := tabStyle
		if t == m.tab {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(t.String()))
	}
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	s.WriteString("\n\n")

	switch m.tab {
	case tabHero, tabAbout:
		m.viewSection(&s)
	case tabProjects:
		m.viewProjects(&s)
	case tabContacts:
		m.viewContacts(&s)
	}

	if m.message != "" {
		s.WriteString("\n" + m.message + "\n")
	}
	return s.String()
}

func orDash(v *string) string {
	if v == nil {
		return mutedStyle.Render("(empty)")
	}
	return *v
}

func (m model) viewSection(s *strings.Builder) {
	content := m.sections[m.tab.section()]
	if m.editing {
		s.WriteString(promptStyle.Render(fmt.Sprintf("New %s:", m.editField)) + "\n")
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nEnter to save, Esc to cancel\n")
		return
	}
	if content == nil {
		s.WriteString(mutedStyle.Render("Not saved yet.") + "\n")
	} else {
		for _, f := range sectionFields {
			fmt.Fprintf(s, "[%s] %-12s %s\n", f.key, f.label+":", orDash(*fieldRef(content, f.name)))
		}
		s.WriteString(mutedStyle.Render("Updated "+content.UpdatedAt.Local().Format("2006-01-02 15:04")) + "\n")
	}
	s.WriteString("\nt/e/c/i/m edit a field, r refresh, ←/→ switch tab, q quit\n")
}

func (m model) viewProjects(s *strings.Builder) {
	if m.form != nil {
		s.WriteString(promptStyle.Render("New project") + "\n")
		for i, f := range projectFormFields[:m.form.step] {
			fmt.Fprintf(s, "%d. %s: %s\n", i+1, f.label, m.form.values[f.name])
		}
		field := projectFormFields[m.form.step]
		s.WriteString(promptStyle.Render(field.label+":") + "\n")
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nEnter for next field, Esc to cancel\n")
		return
	}
	if len(m.projects) == 0 {
		s.WriteString(mutedStyle.Render("No projects.") + "\n")
	}
	for i, p := range m.projects {
		cursor := " "
		style := normalStyle
		if m.cursor == i {
			cursor = ">"
			style = selectedStyle
		}
		star := " "
		if p.Featured {
			star = "★"
		}
		line := fmt.Sprintf("%s #%d %s", star, p.ID, p.Title)
		if len(p.Tags) > 0 {
			line += mutedStyle.Render(" [" + strings.Join(p.Tags, ", ") + "]")
		}
		fmt.Fprintf(s, "%s %s\n", cursor, style.Render(line))
	}
	s.WriteString("\n↑/↓ select, n new project, f toggle featured, d delete, r refresh, q quit\n")
}

func (m model) viewContacts(s *strings.Builder) {
	if len(m.contacts) == 0 {
		s.WriteString(mutedStyle.Render("No messages yet.") + "\n")
	}
	for i, c := range m.contacts {
		cursor := " "
		style := normalStyle
		if m.cursor == i {
			cursor = ">"
			style = selectedStyle
		}
		header := fmt.Sprintf("%s <%s> · %s · %s", c.Name, c.Email, c.ProjectType, c.CreatedAt.Local().Format("2006-01-02 15:04"))
		fmt.Fprintf(s, "%s %s\n", cursor, style.Render(header))
		if m.cursor == i {
			s.WriteString(normalStyle.Render(c.Message) + "\n")
		}
	}
	s.WriteString("\n↑/↓ select, r refresh, q quit\n")
}
