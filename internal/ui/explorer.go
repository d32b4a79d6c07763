// Package ui provides the interactive scenario explorer using Bubble Tea.
package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/murzabaevb/dttb/internal/fieldstrength"
	"github.com/murzabaevb/dttb/internal/version"
)

// Styles for the explorer
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	tagStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	resultStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("60"))
)

// probability presets cycled by the p key
var probPresets = []float64{0.70, 0.90, 0.95, 0.99}

const freqStepMHz = 8.0

// Model is the scenario explorer: one reception profile, re-evaluated on
// every keystroke.
type Model struct {
	width  int
	height int
	ready  bool

	freqMHz     float64
	mode        fieldstrength.Mode
	environment fieldstrength.Environment
	modulation  fieldstrength.Modulation
	codeRate    fieldstrength.CodeRate
	receiver    fieldstrength.ReceiverType
	antenna     fieldstrength.AntennaType
	building    fieldstrength.BuildingClass
	probIdx     int
}

// New creates the explorer with a rooftop UHF starting scenario.
func New() Model {
	return Model{
		freqMHz:     650,
		mode:        fieldstrength.ModeFX,
		environment: fieldstrength.EnvUrban,
		modulation:  fieldstrength.Mod64QAM,
		codeRate:    fieldstrength.Rate3of5,
		probIdx:     2, // 95%
	}
}

// Profile assembles the current scenario.
func (m Model) Profile() fieldstrength.Profile {
	p := fieldstrength.Profile{
		FreqMHz:             m.freqMHz,
		Mode:                m.mode,
		Environment:         m.environment,
		Modulation:          m.modulation,
		CodeRate:            m.codeRate,
		Receiver:            m.receiver,
		Antenna:             m.antenna,
		Building:            m.building,
		LocationProbability: probPresets[m.probIdx],
	}
	return p
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit

		case "left":
			if m.freqMHz-freqStepMHz > 0 {
				m.freqMHz -= freqStepMHz
			}
		case "right":
			m.freqMHz += freqStepMHz

		case "m":
			m = m.cycleMode()
		case "e":
			if m.environment == fieldstrength.EnvUrban {
				m.environment = fieldstrength.EnvRural
			} else {
				m.environment = fieldstrength.EnvUrban
			}
		case "up":
			if m.modulation < fieldstrength.Mod256QAM {
				m.modulation++
			}
		case "down":
			if m.modulation > fieldstrength.ModQPSK {
				m.modulation--
			}
		case "c":
			if m.codeRate == fieldstrength.Rate5of6 {
				m.codeRate = fieldstrength.Rate1of2
			} else {
				m.codeRate++
			}
		case "r":
			m = m.cycleReceiver()
		case "a":
			m = m.cycleAntenna()
		case "b":
			m = m.cycleBuilding()
		case "p":
			m.probIdx = (m.probIdx + 1) % len(probPresets)
		}
	}

	return m, nil
}

// cycleMode steps FX -> PO -> PI -> MO and repairs the dependent tags so
// the profile stays valid.
func (m Model) cycleMode() Model {
	switch m.mode {
	case fieldstrength.ModeFX:
		m.mode = fieldstrength.ModePO
		m.receiver = fieldstrength.ReceiverPortable
	case fieldstrength.ModePO:
		m.mode = fieldstrength.ModePI
		if m.building == fieldstrength.BuildingNone {
			m.building = fieldstrength.BuildingMedium
		}
	case fieldstrength.ModePI:
		m.mode = fieldstrength.ModeMO
		m.receiver = fieldstrength.ReceiverNone
		m.antenna = fieldstrength.AntennaNone
		m.building = fieldstrength.BuildingNone
	default:
		m.mode = fieldstrength.ModeFX
	}
	return m
}

func (m Model) cycleReceiver() Model {
	if m.mode != fieldstrength.ModePO && m.mode != fieldstrength.ModePI {
		return m
	}
	if m.receiver == fieldstrength.ReceiverPortable {
		m.receiver = fieldstrength.ReceiverHandheld
		m.antenna = fieldstrength.AntennaIntegrated
	} else {
		m.receiver = fieldstrength.ReceiverPortable
		m.antenna = fieldstrength.AntennaNone
	}
	return m
}

func (m Model) cycleAntenna() Model {
	if m.receiver != fieldstrength.ReceiverHandheld {
		return m
	}
	if m.antenna == fieldstrength.AntennaIntegrated {
		m.antenna = fieldstrength.AntennaExternal
	} else {
		m.antenna = fieldstrength.AntennaIntegrated
	}
	return m
}

func (m Model) cycleBuilding() Model {
	if m.mode != fieldstrength.ModePI {
		return m
	}
	switch m.building {
	case fieldstrength.BuildingHigh:
		m.building = fieldstrength.BuildingMedium
	case fieldstrength.BuildingMedium:
		m.building = fieldstrength.BuildingLow
	default:
		m.building = fieldstrength.BuildingHigh
	}
	return m
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("  DVB-T2 Field Strength Explorer"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  v%s", version.Version)))
	b.WriteString("\n\n")

	b.WriteString("  " + tagStyle.Render(m.scenarioLine()) + "\n")
	b.WriteString("  " + dimStyle.Render(strings.Repeat("─", 46)) + "\n")

	r, err := fieldstrength.Evaluate(m.Profile())
	if err != nil {
		b.WriteString("  " + errorStyle.Render("Error: "+err.Error()) + "\n")
	} else {
		for _, f := range r.Fields()[8:] { // skip the header tags, already shown above
			line := fmt.Sprintf("  %-22s %s", f.Key, formatFieldValue(f.Value))
			if f.Key == "emed_dbuv_per_m" {
				b.WriteString("  " + dimStyle.Render(strings.Repeat("─", 46)) + "\n")
				b.WriteString(resultStyle.Render(line) + "\n")
				continue
			}
			b.WriteString(rowStyle.Render(line) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString("  " + dimStyle.Render("←/→: freq | ↑↓: modulation | c: code rate | m: mode | e: env") + "\n")
	b.WriteString("  " + dimStyle.Render("r: receiver | a: antenna | b: building | p: probability | q: quit") + "\n")

	return b.String()
}

func (m Model) scenarioLine() string {
	parts := []string{
		fmt.Sprintf("%.0f MHz", m.freqMHz),
		m.mode.String(),
		m.environment.String(),
		fmt.Sprintf("%v %v", m.modulation, m.codeRate),
	}
	if m.receiver != fieldstrength.ReceiverNone {
		parts = append(parts, m.receiver.String())
	}
	if m.antenna != fieldstrength.AntennaNone {
		parts = append(parts, m.antenna.String())
	}
	if m.building != fieldstrength.BuildingNone {
		parts = append(parts, m.building.String()+" bldg")
	}
	parts = append(parts, fmt.Sprintf("p=%.0f%%", probPresets[m.probIdx]*100))
	return strings.Join(parts, " · ")
}

func formatFieldValue(v any) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%10.3f", f)
	}
	return fmt.Sprintf("%10v", v)
}
