package cli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vidprep/internal/settings"
)

type manageFieldKind int

const (
	manageFieldString manageFieldKind = iota
	manageFieldSelect
)

type manageField struct {
	Key     string
	Label   string
	Help    string
	Kind    manageFieldKind
	Value   string
	Options []string
}

type manageModel struct {
	configPath string
	fields     []manageField
	index      int
	input      textinput.Model
	width      int
	height     int

	saving        bool
	statusMessage string
	errMessage    string
	fatalErr      error
}

type manageSaveMsg struct {
	message string
	err     error
}

var (
	manageTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	manageMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	manageErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	manageOKStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	managePanelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func runManage(args []string) error {
	fs := flag.NewFlagSet("manage", flag.ContinueOnError)
	config := fs.String("config", settings.DefaultSettingsPath, "settings file path")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !stdinIsTTY() {
		return errors.New("manage requires an interactive terminal (TTY)")
	}

	configPath := strings.TrimSpace(*config)
	cfg, err := settings.Load(configPath)
	if err != nil {
		return err
	}

	m := newManageModel(configPath, cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "tty") {
			return errors.New("manage requires an interactive terminal (TTY)")
		}
		return err
	}
	if fm, ok := finalModel.(manageModel); ok {
		return fm.fatalErr
	}
	return nil
}

func newManageModel(configPath string, cfg settings.Settings) manageModel {
	fields := []manageField{
		{Key: "output_dir", Label: "Output Dir", Help: "Default folder for downloads", Kind: manageFieldString, Value: cfg.OutputDir},
		{Key: "language", Label: "Language", Help: "Content/caption language code, e.g. hu or en", Kind: manageFieldString, Value: cfg.Language},
		{Key: "video_format", Label: "Video Format", Help: "Container used when merging downloaded streams", Kind: manageFieldSelect, Value: cfg.VideoFormat, Options: settings.VideoFormats},
		{Key: "caption_mode", Label: "Caption Mode", Help: "manual prefers human captions, auto takes ASR tracks", Kind: manageFieldSelect, Value: cfg.CaptionMode, Options: []string{settings.CaptionModeManual, settings.CaptionModeAuto, settings.CaptionModeAny}},
		{Key: "trigger_word", Label: "Trigger Word", Help: "Default word for trigger sidecar files", Kind: manageFieldString, Value: cfg.TriggerWord},
		{Key: "ffmpeg_bin", Label: "FFmpeg Binary", Help: "Empty uses ffmpeg from PATH", Kind: manageFieldString, Value: cfg.FFmpegBin},
		{Key: "ffprobe_bin", Label: "FFprobe Binary", Help: "Empty uses ffprobe from PATH", Kind: manageFieldString, Value: cfg.FFprobeBin},
	}

	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 1024
	input.Width = 60
	input.Focus()

	m := manageModel{
		configPath: configPath,
		fields:     fields,
		input:      input,
	}
	m.loadFieldIntoInput()
	return m
}

func (m manageModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m manageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = clampInt(m.width-8, 20, 120)
		return m, nil
	case manageSaveMsg:
		m.saving = false
		if msg.err != nil {
			m.errMessage = msg.err.Error()
			return m, nil
		}
		m.errMessage = ""
		m.statusMessage = msg.message
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.saving {
		return m, nil
	}

	switch strings.ToLower(keyMsg.String()) {
	case "ctrl+c", "esc", "q":
		if keyMsg.String() == "q" && m.currentField().Kind == manageFieldString {
			break
		}
		return m, tea.Quit
	case "up", "shift+tab":
		m.commitInput()
		if m.index > 0 {
			m.index--
		}
		m.loadFieldIntoInput()
		return m, nil
	case "down", "tab":
		m.commitInput()
		if m.index < len(m.fields)-1 {
			m.index++
		}
		m.loadFieldIntoInput()
		return m, nil
	case " ", "space", "right", "l":
		if m.currentField().Kind == manageFieldSelect {
			m.cycleSelect(1)
			return m, nil
		}
	case "left", "h":
		if m.currentField().Kind == manageFieldSelect {
			m.cycleSelect(-1)
			return m, nil
		}
	case "enter", "ctrl+s":
		m.commitInput()
		if m.index < len(m.fields)-1 && strings.ToLower(keyMsg.String()) != "ctrl+s" {
			m.index++
			m.loadFieldIntoInput()
			return m, nil
		}
		cfg, err := m.toSettings()
		if err != nil {
			m.errMessage = err.Error()
			return m, nil
		}
		m.errMessage = ""
		m.saving = true
		return m, saveSettingsCmd(m.configPath, cfg)
	}

	if m.currentField().Kind == manageFieldSelect {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(keyMsg)
	m.fields[m.index].Value = m.input.Value()
	return m, cmd
}

func (m manageModel) View() string {
	if m.fatalErr != nil {
		return manageErrorStyle.Render("fatal: " + m.fatalErr.Error())
	}
	width := m.width
	if width <= 0 {
		width = 100
	}

	header := manageTitleStyle.Render("vidprep settings")
	hints := manageMutedStyle.Render("tab/up/down: move | left/right/space: cycle choice | enter: next/save | ctrl+s: save | esc: quit")

	lines := make([]string, 0, len(m.fields)+6)
	for i, f := range m.fields {
		prefix := "  "
		if i == m.index {
			prefix = "> "
		}
		display := strings.TrimSpace(f.Value)
		if display == "" {
			display = manageMutedStyle.Render("(empty)")
		}
		if f.Kind == manageFieldSelect {
			display = "[" + display + "]"
		}
		lines = append(lines, wrapOrTrim(fmt.Sprintf("%s%s: %s", prefix, f.Label, display), maxInt(width-6, 20)))
	}

	curr := m.currentField()
	body := strings.Join(lines, "\n") + fmt.Sprintf("\n\n%s\n", curr.Label)
	if strings.TrimSpace(curr.Help) != "" {
		body += manageMutedStyle.Render(curr.Help) + "\n"
	}
	if curr.Kind == manageFieldSelect {
		body += manageMutedStyle.Render("choices: "+strings.Join(curr.Options, ", ")) + "\n"
	} else {
		body += m.input.View() + "\n"
	}

	status := ""
	if m.saving {
		status = manageMutedStyle.Render("Saving...")
	} else if strings.TrimSpace(m.errMessage) != "" {
		status = manageErrorStyle.Render(m.errMessage)
	} else if strings.TrimSpace(m.statusMessage) != "" {
		status = manageOKStyle.Render(m.statusMessage)
	}
	if status != "" {
		body += "\n" + status
	}

	panel := managePanelStyle.Width(clampInt(width-2, 40, 110)).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, header, hints, panel)
}

func (m *manageModel) currentField() manageField {
	if len(m.fields) == 0 {
		return manageField{}
	}
	if m.index < 0 {
		m.index = 0
	}
	if m.index >= len(m.fields) {
		m.index = len(m.fields) - 1
	}
	return m.fields[m.index]
}

func (m *manageModel) commitInput() {
	if len(m.fields) == 0 || m.currentField().Kind == manageFieldSelect {
		return
	}
	m.fields[m.index].Value = strings.TrimSpace(m.input.Value())
}

func (m *manageModel) loadFieldIntoInput() {
	if len(m.fields) == 0 {
		return
	}
	m.input.SetValue(m.fields[m.index].Value)
	m.input.CursorEnd()
}

func (m *manageModel) cycleSelect(dir int) {
	curr := m.fields[m.index]
	if curr.Kind != manageFieldSelect || len(curr.Options) == 0 {
		return
	}
	pos := 0
	for i, opt := range curr.Options {
		if strings.EqualFold(opt, strings.TrimSpace(curr.Value)) {
			pos = i
			break
		}
	}
	pos = (pos + dir + len(curr.Options)) % len(curr.Options)
	m.fields[m.index].Value = curr.Options[pos]
}

func (m *manageModel) toSettings() (settings.Settings, error) {
	vals := make(map[string]string, len(m.fields))
	for _, f := range m.fields {
		v := strings.TrimSpace(f.Value)
		if f.Kind == manageFieldSelect {
			matched := false
			for _, opt := range f.Options {
				if strings.EqualFold(opt, v) {
					v = opt
					matched = true
					break
				}
			}
			if !matched {
				return settings.Settings{}, fmt.Errorf("%s has invalid value", strings.ToLower(f.Label))
			}
		}
		vals[f.Key] = v
	}
	return settings.Settings{
		OutputDir:   vals["output_dir"],
		Language:    vals["language"],
		VideoFormat: vals["video_format"],
		CaptionMode: vals["caption_mode"],
		TriggerWord: vals["trigger_word"],
		FFmpegBin:   vals["ffmpeg_bin"],
		FFprobeBin:  vals["ffprobe_bin"],
	}, nil
}

func saveSettingsCmd(configPath string, cfg settings.Settings) tea.Cmd {
	return func() tea.Msg {
		if err := settings.Save(configPath, cfg); err != nil {
			return manageSaveMsg{err: err}
		}
		return manageSaveMsg{message: "settings saved to " + configPath}
	}
}
