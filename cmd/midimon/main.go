package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chr15m/btmidi/sdk/contracts"
	"github.com/chr15m/btmidi/sdk/midi"
)

const historySize = 20

// lineReceiver formats decoded events as display lines for the TUI. Events
// that arrive faster than the UI drains them are dropped rather than blocking
// the transport read path.
type lineReceiver struct {
	lines chan string
}

func newLineReceiver() *lineReceiver {
	return &lineReceiver{lines: make(chan string, 64)}
}

func (r *lineReceiver) push(line string) {
	select {
	case r.lines <- line:
	default:
	}
}

func (r *lineReceiver) OnNoteOff(channel, note, velocity uint8) {
	r.push(fmt.Sprintf("note off   ch=%-2d note=%-3d vel=%d", channel, note, velocity))
}

func (r *lineReceiver) OnNoteOn(channel, note, velocity uint8) {
	r.push(fmt.Sprintf("note on    ch=%-2d note=%-3d vel=%d", channel, note, velocity))
}

func (r *lineReceiver) OnPolyAftertouch(channel, note, pressure uint8) {
	r.push(fmt.Sprintf("poly touch ch=%-2d note=%-3d pressure=%d", channel, note, pressure))
}

func (r *lineReceiver) OnControlChange(channel, controller, value uint8) {
	r.push(fmt.Sprintf("control    ch=%-2d ctl=%-3d  val=%d", channel, controller, value))
}

func (r *lineReceiver) OnProgramChange(channel, program uint8) {
	r.push(fmt.Sprintf("program    ch=%-2d pgm=%d", channel, program))
}

func (r *lineReceiver) OnAftertouch(channel, pressure uint8) {
	r.push(fmt.Sprintf("aftertouch ch=%-2d pressure=%d", channel, pressure))
}

func (r *lineReceiver) OnPitchBend(channel uint8, value int16) {
	r.push(fmt.Sprintf("pitch bend ch=%-2d value=%+d", channel, value))
}

func (r *lineReceiver) OnDeviceConnected(device contracts.DeviceInfo) {
	r.push(fmt.Sprintf("-- connected: %s --", device.Name))
}

func (r *lineReceiver) OnConnectionLost() {
	r.push("-- connection lost --")
}

func (r *lineReceiver) OnConnectionFailed(err error) {
	r.push(fmt.Sprintf("-- connection failed: %v --", err))
}

type eventMsg string

type model struct {
	svc      contracts.MIDIService
	addr     string
	recv     *lineReceiver
	lines    []string
	quitting bool
}

func listenForEvents(recv *lineReceiver) tea.Cmd {
	return func() tea.Msg {
		return eventMsg(<-recv.lines)
	}
}

func (m model) Init() tea.Cmd {
	return listenForEvents(m.recv)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			m.svc.Stop()
			return m, tea.Quit
		}

	case eventMsg:
		m.lines = append(m.lines, string(msg))
		if len(m.lines) > historySize {
			m.lines = m.lines[len(m.lines)-historySize:]
		}
		return m, listenForEvents(m.recv)
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	header := headerStyle.Render(fmt.Sprintf("midimon  %s  [%s]", m.addr, m.svc.State()))
	help := dimStyle.Render("q:quit")

	body := dimStyle.Render("waiting for events...")
	if len(m.lines) > 0 {
		body = lipgloss.JoinVertical(lipgloss.Left, m.lines...)
	}

	return "\n" + header + "\n\n" + body + "\n\n" + help + "\n"
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: midimon <device-address>")
		os.Exit(2)
	}
	addr := os.Args[1]

	recv := newLineReceiver()
	svc, err := midi.NewMIDIService(
		contracts.WithReceiver(recv),
		contracts.WithClientName("midimon"),
		// Keep zap quiet below errors so log lines don't fight the TUI.
		contracts.WithLogLevel(contracts.ErrorLevel),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "midimon:", err)
		os.Exit(1)
	}

	if err := svc.Connect(addr); err != nil {
		fmt.Fprintln(os.Stderr, "midimon: connect:", err)
		os.Exit(1)
	}
	defer svc.Stop()

	p := tea.NewProgram(model{svc: svc, addr: addr, recv: recv})
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "midimon:", err)
		os.Exit(1)
	}
}
