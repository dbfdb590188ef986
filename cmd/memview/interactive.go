package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/wasm-memory/mem"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	offsetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const windowBytes = 256

type interactiveModel struct {
	err    error
	mem    *mem.Instance
	input  textinput.Model
	status string
	offset uint32
}

func newInteractiveModel(m *mem.Instance) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "grow 1 | set 10 deadbeef | goto 0x100 | q"
	ti.Prompt = "> "
	ti.Width = 60
	ti.Focus()

	return &interactiveModel{
		mem:   m,
		input: ti,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.mem.Release()
			return m, tea.Quit

		case "pgup":
			if m.offset >= windowBytes {
				m.offset -= windowBytes
			} else {
				m.offset = 0
			}
			return m, nil

		case "pgdown":
			if uint64(m.offset)+2*windowBytes <= m.mem.SizeBytes() {
				m.offset += windowBytes
			}
			return m, nil

		case "enter":
			cmd := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if cmd == "q" || cmd == "quit" {
				m.mem.Release()
				return m, tea.Quit
			}
			m.status, m.err = m.execute(cmd)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// execute runs one inspector command and returns a status line.
func (m *interactiveModel) execute(cmd string) (string, error) {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return "", nil
	}

	switch fields[0] {
	case "grow":
		if len(fields) != 2 {
			return "", fmt.Errorf("usage: grow <pages>")
		}
		pages, err := parseUint32(fields[1])
		if err != nil {
			return "", err
		}
		if err := m.mem.Grow(pages); err != nil {
			return "", err
		}
		return fmt.Sprintf("grown to %d pages", m.mem.Size()), nil

	case "set":
		if len(fields) != 3 {
			return "", fmt.Errorf("usage: set <offset> <hexbytes>")
		}
		offset, err := parseUint32(fields[1])
		if err != nil {
			return "", err
		}
		data, err := hex.DecodeString(fields[2])
		if err != nil {
			return "", err
		}
		if err := m.mem.SetData(data, offset); err != nil {
			return "", err
		}
		return fmt.Sprintf("wrote %d bytes at %d", len(data), offset), nil

	case "goto":
		if len(fields) != 2 {
			return "", fmt.Errorf("usage: goto <offset>")
		}
		offset, err := parseUint32(fields[1])
		if err != nil {
			return "", err
		}
		m.offset = offset &^ 0xF
		return "", nil

	default:
		return "", fmt.Errorf("unknown command %q", fields[0])
	}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	limits, err := m.mem.Type()
	if err != nil {
		return errorStyle.Render(err.Error()) + "\n"
	}

	b.WriteString(titleStyle.Render(fmt.Sprintf("memview  limits %s  %d pages  %d bytes", limits, m.mem.Size(), m.mem.SizeBytes())))
	b.WriteString("\n\n")

	length := uint32(windowBytes)
	if uint64(m.offset) >= m.mem.SizeBytes() {
		length = 0
	} else if remaining := m.mem.SizeBytes() - uint64(m.offset); uint64(length) > remaining {
		length = uint32(remaining)
	}
	data, err := m.mem.GetData(m.offset, length)
	if err != nil {
		b.WriteString(errorStyle.Render(err.Error()))
		b.WriteString("\n")
	} else {
		for row := 0; row < len(data); row += 16 {
			end := row + 16
			if end > len(data) {
				end = len(data)
			}
			b.WriteString(offsetStyle.Render(fmt.Sprintf("%08x", m.offset+uint32(row))))
			b.WriteString("  ")
			b.WriteString(fmt.Sprintf("% x", data[row:end]))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(resultStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("pgup/pgdn page · grow/set/goto commands · q quit"))
	b.WriteString("\n")

	return b.String()
}

func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return uint32(v), nil
}

func runInteractive(minPages, maxPages uint32) error {
	limits, err := mem.NewLimits(minPages, maxPages)
	if err != nil {
		return err
	}
	m, err := mem.NewInstance(limits)
	if err != nil {
		return err
	}

	p := tea.NewProgram(newInteractiveModel(m))
	_, err = p.Run()
	return err
}
