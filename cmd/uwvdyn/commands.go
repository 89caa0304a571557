package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/san-kum/uwvdyn/internal/config"
	"github.com/san-kum/uwvdyn/internal/dynamo"
	"github.com/san-kum/uwvdyn/internal/metrics"
	"github.com/san-kum/uwvdyn/internal/storage"
	"github.com/san-kum/uwvdyn/internal/sweep"
	"github.com/san-kum/uwvdyn/internal/uwv"
	"github.com/san-kum/uwvdyn/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var dofNames = [dynamo.DOF]string{"surge", "sway", "heave", "roll", "pitch", "yaw"}

var errNoVehicle = errors.New("unknown preset")

// loadVehicle returns the vehicle named by --vehicle, or the --preset.
func loadVehicle() (*config.Vehicle, error) {
	if vehicleFile != "" {
		return config.Load(vehicleFile)
	}
	v := config.GetPreset(preset)
	if v == nil {
		return nil, fmt.Errorf("%w %q (available: %s)", errNoVehicle, preset, strings.Join(config.ListPresets(), ", "))
	}
	return v, nil
}

func loadModel() (*config.Vehicle, *uwv.Model, error) {
	v, err := loadVehicle()
	if err != nil {
		return nil, nil, err
	}
	p, err := v.Parameters()
	if err != nil {
		return nil, nil, err
	}
	m, err := uwv.NewWithParameters(p)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug().Str("vehicle", v.Name).Stringer("model_type", p.ModelType).Msg("loaded vehicle")
	return v, m, nil
}

// vector6 turns an optional flag value into a Vector6; empty means zero.
func vector6(name string, vals []float64) (dynamo.Vector6, error) {
	var out dynamo.Vector6
	if len(vals) == 0 {
		return out, nil
	}
	if len(vals) != dynamo.DOF {
		return out, fmt.Errorf("--%s needs %d values, got %d", name, dynamo.DOF, len(vals))
	}
	copy(out[:], vals)
	return out, nil
}

// orientation turns --quat, or else --rpy degrees, into an orientation;
// neither means identity.
func orientation(rpyVals, quatVals []float64) (dynamo.Orientation, error) {
	var o dynamo.Orientation
	switch {
	case len(quatVals) == 4:
		o = dynamo.OrientationFromQuat(quatVals[0], quatVals[1], quatVals[2], quatVals[3])
	case len(quatVals) != 0:
		return o, fmt.Errorf("--quat needs 4 values, got %d", len(quatVals))
	case len(rpyVals) == 0:
		return dynamo.IdentityOrientation(), nil
	case len(rpyVals) == 3:
		d := math.Pi / 180
		o = dynamo.OrientationFromEuler(rpyVals[0]*d, rpyVals[1]*d, rpyVals[2]*d)
	default:
		return o, fmt.Errorf("--rpy needs 3 values, got %d", len(rpyVals))
	}

	r, p, y := o.Euler()
	logger.Debug().
		Float64("roll", r*180/math.Pi).
		Float64("pitch", p*180/math.Pi).
		Float64("yaw", y*180/math.Pi).
		Msg("orientation")
	return o, nil
}

func printVector(w io.Writer, label string, v dynamo.Vector6) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "%s\t", label)
	for _, n := range dofNames {
		fmt.Fprintf(tw, "%s\t", n)
	}
	fmt.Fprintln(tw)
	fmt.Fprint(tw, "\t")
	for _, x := range v {
		fmt.Fprintf(tw, "%.4f\t", x)
	}
	fmt.Fprintln(tw)
	return tw.Flush()
}

func runEffort(cmd *cobra.Command, args []string) error {
	_, m, err := loadModel()
	if err != nil {
		return err
	}
	a, err := vector6("accel", accel)
	if err != nil {
		return err
	}
	v, err := vector6("vel", vel)
	if err != nil {
		return err
	}
	o, err := orientation(rpy, quat)
	if err != nil {
		return err
	}

	tau, err := m.Effort(a, v, o)
	if err != nil {
		return err
	}
	return printVector(cmd.OutOrStdout(), "effort", tau)
}

func runAccel(cmd *cobra.Command, args []string) error {
	_, m, err := loadModel()
	if err != nil {
		return err
	}
	tau, err := vector6("effort", effort)
	if err != nil {
		return err
	}
	v, err := vector6("vel", vel)
	if err != nil {
		return err
	}
	o, err := orientation(rpy, quat)
	if err != nil {
		return err
	}

	a, err := m.Acceleration(tau, v, o)
	if err != nil {
		return err
	}
	return printVector(cmd.OutOrStdout(), "accel", a)
}

func printParams(cmd *cobra.Command, args []string) error {
	v, m, err := loadModel()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(config.FromParameters(v.Name, m.Parameters())); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}

	if showInv {
		fmt.Fprintln(out, "\ninverse inertia:")
		inv := m.InverseInertia()
		for _, row := range inv {
			for _, x := range row {
				fmt.Fprintf(out, " %12.6g", x)
			}
			fmt.Fprintln(out)
		}
	}
	return nil
}

func validateFile(cmd *cobra.Command, args []string) error {
	v, err := config.Load(args[0])
	if err != nil {
		return err
	}
	p, err := v.Parameters()
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), viz.Warn.Render("invalid")+" "+err.Error())
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s, %d damping matrices)\n",
		viz.SparkHigh.Render("ok"), v.Name, p.ModelType, len(p.DampingMatrices))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMODEL\tWEIGHT\tBUOYANCY")
	for _, name := range config.ListPresets() {
		p, err := config.GetPreset(name).Parameters()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%.1f\t%.1f\n", name, p.ModelType, p.Weight, p.Buoyancy)
	}
	return w.Flush()
}

func sweepConfig() (sweep.Config, error) {
	cfg := sweep.DefaultConfig()

	ax, err := sweep.ParseAxis(axis)
	if err != nil {
		return cfg, err
	}
	if cfg.Acceleration, err = vector6("accel", accel); err != nil {
		return cfg, err
	}
	if cfg.Base, err = vector6("vel", vel); err != nil {
		return cfg, err
	}
	if cfg.Orientation, err = orientation(rpy, quat); err != nil {
		return cfg, err
	}

	cfg.Axis, cfg.From, cfg.To, cfg.Samples = ax, from, to, samples
	return cfg, nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	vehicle, m, err := loadModel()
	if err != nil {
		return err
	}
	cfg, err := sweepConfig()
	if err != nil {
		return err
	}

	var cfgs []sweep.Config
	if allAxes {
		for a := sweep.Surge; a <= sweep.Yaw; a++ {
			c := cfg
			c.Axis = a
			cfgs = append(cfgs, c)
		}
	} else {
		cfgs = []sweep.Config{cfg}
	}

	ens := sweep.NewEnsemble(m, func() []metrics.Metric { return metrics.Standard(limit) }, logger)
	ens.AddObserver(sampleLog{log: logger})
	results, err := ens.Run(cmd.Context(), cfgs)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if !noStore {
		if err := st.Init(); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	for i, res := range results {
		header := fmt.Sprintf("%s %s sweep %.3g..%.3g", vehicle.Name, res.Axis, cfgs[i].From, cfgs[i].To)
		fmt.Fprintln(out, viz.Header.Render(header))

		if !noStore {
			runID, err := st.Save(vehicle, cfgs[i], res)
			if err != nil {
				return err
			}
			logger.Info().Str("run", runID).Int("samples", len(res.Efforts)).Msg("sweep stored")
			fmt.Fprintf(out, "run: %s\n", runID)
		}

		printMetrics(out, res.Metrics)
		fmt.Fprintln(out, plotComponent(res, int(res.Axis)))
		fmt.Fprintln(out)
	}
	return nil
}

// sampleLog traces every evaluated sample.
type sampleLog struct {
	log zerolog.Logger
}

func (s sampleLog) OnSample(index int, velocity, effort dynamo.Vector6) {
	s.log.Trace().Int("sample", index).Floats64("vel", velocity[:]).Floats64("effort", effort[:]).Msg("sample")
}

func printMetrics(w io.Writer, m map[string]float64) {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		fmt.Fprintf(w, "  %s %s\n", viz.Label.Render(fmt.Sprintf("%-16s", k)), viz.Value.Render(fmt.Sprintf("%.4f", m[k])))
	}
}

func plotComponent(res *sweep.Result, dof int) string {
	data := res.Component(dof)
	if len(data) == 1 {
		data = append(data, data[0])
	}
	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s effort vs %s velocity", dofNames[dof], res.Axis)),
	)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tVEHICLE\tMODEL\tTIME\tAXIS\tRANGE\tSAMPLES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.3g..%.3g\t%d\n",
			run.ID,
			run.Vehicle,
			run.ModelType,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Axis,
			run.From, run.To,
			run.Samples,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	res, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(res.Efforts) == 0 {
		return fmt.Errorf("no data to plot")
	}

	vehicle, err := st.LoadVehicle(runID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "vehicle: %s (%s, weight %.1f, buoyancy %.1f)\n",
		vehicle.Name, vehicle.ModelType, vehicle.Weight, vehicle.Buoyancy)
	fmt.Fprintf(out, "samples: %d\n\n", len(res.Efforts))

	if component >= 0 {
		if component >= dynamo.DOF {
			return fmt.Errorf("--component must be below %d", dynamo.DOF)
		}
		fmt.Fprintln(out, plotComponent(res, component))
		return nil
	}

	for dof := 0; dof < dynamo.DOF; dof++ {
		if allZero(res.Component(dof)) {
			continue
		}
		fmt.Fprintln(out, plotComponent(res, dof))
		fmt.Fprintln(out)
	}
	return nil
}

func allZero(xs []float64) bool {
	for _, x := range xs {
		if x != 0 {
			return false
		}
	}
	return true
}

type exportData struct {
	Run     *storage.RunMetadata `json:"run"`
	Speeds  []float64            `json:"speeds"`
	Efforts [][]float64          `json:"efforts"`
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	res, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	data := exportData{Run: meta, Speeds: res.Speeds, Efforts: make([][]float64, len(res.Efforts))}
	for i := range res.Efforts {
		data.Efforts[i] = res.Efforts[i][:]
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func runExplore(cmd *cobra.Command, args []string) error {
	vehicle, m, err := loadModel()
	if err != nil {
		return err
	}
	// the alternate screen owns the terminal
	return viz.Run(m, vehicle.Name, zerolog.Nop())
}
