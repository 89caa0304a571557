package viz

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/san-kum/uwvdyn/internal/dynamo"
	"github.com/san-kum/uwvdyn/internal/sweep"
	"github.com/san-kum/uwvdyn/internal/uwv"
)

type Mode int

const (
	// ModeEffort edits an acceleration and shows the effort producing it.
	ModeEffort Mode = iota
	// ModeAcceleration edits a control input and shows the acceleration it produces.
	ModeAcceleration
)

func (m Mode) String() string {
	if m == ModeAcceleration {
		return "acceleration"
	}
	return "effort"
}

const (
	fieldVelocity = 0
	fieldCommand  = dynamo.DOF
	fieldAttitude = 2 * dynamo.DOF
	fieldCount    = 2*dynamo.DOF + 3

	defaultStep      = 0.1
	defaultAngleStep = 5.0
	sweepSpan        = 2.0
	sparkSamples     = 40
)

var (
	dofNames      = [dynamo.DOF]string{"surge", "sway", "heave", "roll", "pitch", "yaw"}
	attitudeNames = [3]string{"roll", "pitch", "yaw"}
)

// Explorer is the Bubble Tea model of the interactive explorer.
type Explorer struct {
	dyn     *uwv.Model
	vehicle string
	log     zerolog.Logger

	mode      Mode
	cursor    int
	step      float64
	angleStep float64

	velocity dynamo.Vector6
	command  dynamo.Vector6
	attitude [3]float64 // degrees

	output dynamo.Vector6
	curve  []float64
	err    error
}

func NewExplorer(dyn *uwv.Model, vehicle string, log zerolog.Logger) Explorer {
	e := Explorer{
		dyn:       dyn,
		vehicle:   vehicle,
		log:       log,
		step:      defaultStep,
		angleStep: defaultAngleStep,
	}
	e.evaluate()
	return e
}

func (e Explorer) Mode() Mode { return e.mode }
func (e Explorer) Cursor() int { return e.cursor }
func (e Explorer) Velocity() dynamo.Vector6 { return e.velocity }
func (e Explorer) Command() dynamo.Vector6 { return e.command }
func (e Explorer) Output() dynamo.Vector6 { return e.output }
func (e Explorer) Err() error { return e.err }
func (e Explorer) Attitude() (r, p, y float64) { return e.attitude[0], e.attitude[1], e.attitude[2] }

func (e Explorer) Init() tea.Cmd { return nil }

func (e Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return e, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return e, tea.Quit
	case "up", "k":
		if e.cursor > 0 {
			e.cursor--
		}
		return e, nil
	case "down", "j":
		if e.cursor < fieldCount-1 {
			e.cursor++
		}
		return e, nil
	case "left", "h":
		e.adjust(-1)
	case "right", "l":
		e.adjust(1)
	case "+", "=":
		e.step = math.Min(e.step*10, 100)
		e.angleStep = math.Min(e.angleStep*10, 90)
		return e, nil
	case "-", "_":
		e.step = math.Max(e.step/10, 1e-3)
		e.angleStep = math.Max(e.angleStep/10, 0.1)
		return e, nil
	case "0":
		*e.field() = 0
	case "tab":
		if e.mode == ModeEffort {
			e.mode = ModeAcceleration
		} else {
			e.mode = ModeEffort
		}
	case "r":
		e.velocity, e.command, e.attitude = dynamo.Vector6{}, dynamo.Vector6{}, [3]float64{}
		e.step, e.angleStep = defaultStep, defaultAngleStep
	default:
		return e, nil
	}

	e.evaluate()
	return e, nil
}

func (e *Explorer) field() *float64 {
	switch {
	case e.cursor < fieldCommand:
		return &e.velocity[e.cursor-fieldVelocity]
	case e.cursor < fieldAttitude:
		return &e.command[e.cursor-fieldCommand]
	default:
		return &e.attitude[e.cursor-fieldAttitude]
	}
}

func (e *Explorer) adjust(sign float64) {
	step := e.step
	if e.cursor >= fieldAttitude {
		step = e.angleStep
	}
	*e.field() += sign * step
}

func (e *Explorer) orientation() dynamo.Orientation {
	return dynamo.OrientationFromEuler(
		e.attitude[0]*math.Pi/180,
		e.attitude[1]*math.Pi/180,
		e.attitude[2]*math.Pi/180,
	)
}

// axis is the DOF the sparkline sweeps: the selected one, or surge while an
// attitude field is selected.
func (e *Explorer) axis() sweep.Axis {
	if e.cursor >= fieldAttitude {
		return sweep.Surge
	}
	return sweep.Axis(e.cursor % dynamo.DOF)
}

func (e *Explorer) evaluate() {
	o := e.orientation()

	var err error
	if e.mode == ModeEffort {
		e.output, err = e.dyn.Effort(e.command, e.velocity, o)
	} else {
		e.output, err = e.dyn.Acceleration(e.command, e.velocity, o)
	}
	e.err = err
	if err != nil {
		e.log.Debug().Err(err).Str("mode", e.mode.String()).Msg("evaluation failed")
		e.curve = nil
		return
	}

	axis := e.axis()
	centre := e.velocity[axis]
	cfg := sweep.Config{
		Axis:           axis,
		From:           centre - sweepSpan,
		To:             centre + sweepSpan,
		Samples:        sparkSamples,
		Base:           e.velocity,
		Orientation:    o,
		ValidateEffort: true,
	}
	if e.mode == ModeEffort {
		cfg.Acceleration = e.command
	}

	res, err := sweep.New(e.dyn, e.log).Run(context.Background(), cfg)
	if err != nil {
		e.log.Debug().Err(err).Stringer("axis", axis).Msg("sparkline sweep failed")
		e.curve = nil
		return
	}
	e.curve = res.Component(int(axis))
}

func (e Explorer) View() string {
	var b strings.Builder

	b.WriteString("\n  " + Title.Render("UWVDYN") + "  " + Subtle.Render(e.vehicle) + "  " + Accent.Render(e.mode.String()) + "\n")
	b.WriteString("  " + Subtle.Render(strings.Repeat("─", 44)) + "\n\n")

	cmdLabel, outLabel := "accel", "effort"
	if e.mode == ModeAcceleration {
		cmdLabel, outLabel = "input", "accel"
	}

	b.WriteString(fmt.Sprintf("    %-7s %10s %10s %12s\n", "", Label.Render("vel"), Label.Render(cmdLabel), Label.Render(outLabel)))
	for i := 0; i < dynamo.DOF; i++ {
		b.WriteString(fmt.Sprintf("    %-7s %s %s %s\n",
			dofNames[i],
			e.cell(fieldVelocity+i, e.velocity[i]),
			e.cell(fieldCommand+i, e.command[i]),
			Value.Render(fmt.Sprintf("%12.3f", e.output[i])),
		))
	}

	b.WriteString("\n")
	for i, name := range attitudeNames {
		b.WriteString(fmt.Sprintf("    %-7s %s %s\n", name, e.cell(fieldAttitude+i, e.attitude[i]), Subtle.Render("deg")))
	}

	b.WriteString("\n    " + Label.Render(fmt.Sprintf("effort[%s] over %s ±%.1f ", e.axis(), e.axis(), sweepSpan)))
	b.WriteString(Sparkline(e.curve, sparkSamples) + "\n")

	if e.err != nil {
		b.WriteString("\n    " + Warn.Render(e.err.Error()) + "\n")
	}

	b.WriteString(fmt.Sprintf("\n    %s  %s\n", Subtle.Render(fmt.Sprintf("step %.3g / %.3g°", e.step, e.angleStep)), KeyHints(
		"j/k", "select", "h/l", "adjust", "+/-", "step", "tab", "mode", "r", "reset", "q", "quit",
	)))
	return b.String()
}

func (e Explorer) cell(field int, v float64) string {
	s := fmt.Sprintf("%9.3f", v)
	if field == e.cursor {
		return Cursor.Render("▸") + Selected.Render(s)
	}
	return " " + Subtle.Render(s)
}

// Run starts the explorer on the alternate screen and blocks until it quits.
func Run(dyn *uwv.Model, vehicle string, log zerolog.Logger) error {
	_, err := tea.NewProgram(NewExplorer(dyn, vehicle, log), tea.WithAltScreen()).Run()
	return err
}
