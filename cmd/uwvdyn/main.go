package main

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog"
	"github.com/san-kum/uwvdyn/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// bound through viper, see bindEnv
	dataDir     string
	vehicleFile string
	preset      string
	logLevel    string

	accel  []float64
	vel    []float64
	effort []float64
	rpy    []float64
	quat   []float64

	axis      string
	from      float64
	to        float64
	samples   int
	limit     float64
	allAxes   bool
	noStore   bool
	showInv   bool
	component int

	logger = zerolog.Nop()
)

func main() {
	rootCmd := newRootCmd()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:          "uwvdyn",
		Short:        "underwater vehicle dynamics lab",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return bindEnv(v)
		},
		RunE: runExplore,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".uwvdyn", "data directory")
	pf.StringVar(&vehicleFile, "vehicle", "", "vehicle file (yaml)")
	pf.StringVar(&preset, "preset", "default", "vehicle preset, ignored when --vehicle is set")
	pf.StringVar(&logLevel, "log-level", "info", "log level")

	v.SetEnvPrefix("UWVDYN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(pf); err != nil {
		panic(err)
	}

	effortCmd := &cobra.Command{
		Use:   "effort",
		Short: "effort needed for an acceleration",
		Args:  cobra.NoArgs,
		RunE:  runEffort,
	}
	effortCmd.Flags().Float64SliceVar(&accel, "accel", nil, "acceleration (6 values)")
	effortCmd.Flags().Float64SliceVar(&vel, "vel", nil, "body velocity (6 values)")
	effortCmd.Flags().Float64SliceVar(&rpy, "rpy", nil, "roll,pitch,yaw in degrees")
	effortCmd.Flags().Float64SliceVar(&quat, "quat", nil, "orientation quaternion w,x,y,z, overrides --rpy")

	accelCmd := &cobra.Command{
		Use:   "accel",
		Short: "acceleration produced by an effort",
		Args:  cobra.NoArgs,
		RunE:  runAccel,
	}
	accelCmd.Flags().Float64SliceVar(&effort, "effort", nil, "control input (6 values)")
	accelCmd.Flags().Float64SliceVar(&vel, "vel", nil, "body velocity (6 values)")
	accelCmd.Flags().Float64SliceVar(&rpy, "rpy", nil, "roll,pitch,yaw in degrees")
	accelCmd.Flags().Float64SliceVar(&quat, "quat", nil, "orientation quaternion w,x,y,z, overrides --rpy")

	paramsCmd := &cobra.Command{
		Use:   "params",
		Short: "print the active vehicle",
		Args:  cobra.NoArgs,
		RunE:  printParams,
	}
	paramsCmd.Flags().BoolVar(&showInv, "inverse", false, "also print the inverse inertia")

	validateCmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "validate a vehicle file",
		Args:  cobra.ExactArgs(1),
		RunE:  validateFile,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list vehicle presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "steady-state effort over a velocity range",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&axis, "axis", "surge", "swept axis")
	sweepCmd.Flags().Float64Var(&from, "from", 0, "first velocity")
	sweepCmd.Flags().Float64Var(&to, "to", 2, "last velocity")
	sweepCmd.Flags().IntVar(&samples, "samples", 41, "number of samples")
	sweepCmd.Flags().Float64SliceVar(&accel, "accel", nil, "acceleration held during the sweep (6 values)")
	sweepCmd.Flags().Float64SliceVar(&vel, "vel", nil, "base velocity for the other axes (6 values)")
	sweepCmd.Flags().Float64SliceVar(&rpy, "rpy", nil, "roll,pitch,yaw in degrees")
	sweepCmd.Flags().Float64SliceVar(&quat, "quat", nil, "orientation quaternion w,x,y,z, overrides --rpy")
	sweepCmd.Flags().Float64Var(&limit, "limit", 500, "effort limit for the within_limits metric")
	sweepCmd.Flags().BoolVar(&allAxes, "all", false, "sweep every axis concurrently")
	sweepCmd.Flags().BoolVar(&noStore, "no-store", false, "do not store the result")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored sweeps",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored sweep",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&component, "component", -1, "effort component to plot, -1 for all non-zero")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored sweep as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "interactive explorer",
		Args:  cobra.NoArgs,
		RunE:  runExplore,
	}

	rootCmd.AddCommand(effortCmd, accelCmd, paramsCmd, validateCmd, presetsCmd,
		sweepCmd, listCmd, plotCmd, exportCmd, exploreCmd)
	return rootCmd
}

// bindEnv resolves the persistent settings, letting UWVDYN_* variables
// override flag defaults, and builds the logger.
func bindEnv(v *viper.Viper) error {
	dataDir = v.GetString("data")
	vehicleFile = v.GetString("vehicle")
	preset = v.GetString("preset")
	logLevel = v.GetString("log-level")

	l, err := logging.New(os.Stderr, logLevel, true)
	if err != nil {
		return err
	}
	logger = l
	logger.Debug().Str("data", dataDir).Str("vehicle", vehicleFile).Str("preset", preset).Msg("settings")
	return nil
}
