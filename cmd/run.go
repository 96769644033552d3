/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gopennant/InputParameters"
	"github.com/notargets/gopennant/model_problems/Hydro2D"
	"github.com/notargets/gopennant/readfiles"
)

type RunOptions struct {
	InputFile  string
	OutputFile string
	ProfileDir string
	Verbose    bool
	Plot       bool
}

const exampleFile = `
########################################
Title: "Sedov blast, quarter plane"
MeshType: rect     # Can be "pie" or "su2" (with MeshFile)
MeshParams: {nzx: 45, nzy: 45, lenx: 1.125, leny: 1.125}
Geometry: cylindrical # Can be "planar"
CStop: 1000
TStop: 1.0
DtInit: 1.e-4
RInit: 1.
EInit: 0.
SubRegion: {xmin: 0., xmax: 0.025, ymin: 0., ymax: 0.025}
EInitSub: 1.e+6
BCX: [0., 1.125]
BCY: [0., 1.125]
Q1: 0.1
########################################
`

// RunCmd represents the run command
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a hydro problem described by a YAML input deck",
	Long: `Run a hydro problem described by a YAML input deck. The deck's CStop,
TStop and Chunks can be overridden by flags, GOPENNANT_CSTOP style environment
variables or the config file.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			ip *InputParameters.InputParametersHydro
		)
		opts := &RunOptions{}
		opts.InputFile, _ = cmd.Flags().GetString("inputFile")
		opts.OutputFile, _ = cmd.Flags().GetString("output")
		opts.ProfileDir, _ = cmd.Flags().GetString("profile")
		opts.Verbose, _ = cmd.Flags().GetBool("verbose")
		opts.Plot, _ = cmd.Flags().GetBool("plot")
		if ip, err = processInput(opts); err != nil {
			return
		}
		if err = applyOverrides(ip); err != nil {
			return
		}
		return RunHydro(opts, ip)
	},
}

func init() {
	rootCmd.AddCommand(RunCmd)
	RunCmd.Flags().StringP("inputFile", "I", "", "YAML input deck, see the example printed when it is missing")
	RunCmd.Flags().StringP("output", "o", "", "write the final zone density, energy and pressure to this .xy file")
	RunCmd.Flags().String("profile", "", "write a CPU profile into this directory")
	RunCmd.Flags().BoolP("verbose", "v", true, "print the setup, cycle reports and energy checks")
	RunCmd.Flags().Bool("plot", false, "plot dt and total energy history in the terminal after the run")
	RunCmd.Flags().Int("cstop", 0, "maximum number of cycles, overrides CStop")
	RunCmd.Flags().Float64("tstop", 0, "end time, overrides TStop")
	RunCmd.Flags().Int("chunks", 0, "number of parallel chunks, overrides Chunks (0 uses one per CPU)")
	for _, name := range []string{"cstop", "tstop", "chunks"} {
		if err := viper.BindPFlag(name, RunCmd.Flags().Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func processInput(opts *RunOptions) (ip *InputParameters.InputParametersHydro, err error) {
	var (
		data []byte
	)
	if len(opts.InputFile) == 0 {
		fmt.Printf("Example File:%s\n", exampleFile)
		return nil, fmt.Errorf("must supply an input deck (-I, --inputFile)")
	}
	if data, err = os.ReadFile(opts.InputFile); err != nil {
		return nil, fmt.Errorf("unable to read input deck: %w", err)
	}
	ip = InputParameters.NewInputParametersHydro()
	if err = ip.Parse(data); err != nil {
		return nil, fmt.Errorf("%s: %w", opts.InputFile, err)
	}
	return
}

// applyOverrides takes run control values set by flag, environment or config
// file in place of the deck's and checks the result
func applyOverrides(ip *InputParameters.InputParametersHydro) (err error) {
	if viper.IsSet("cstop") {
		ip.CStop = viper.GetInt("cstop")
	}
	if viper.IsSet("tstop") {
		ip.TStop = viper.GetFloat64("tstop")
	}
	if viper.IsSet("chunks") {
		ip.Chunks = viper.GetInt("chunks")
	}
	if err = ip.Validate(); err != nil {
		return fmt.Errorf("after run control overrides: %w", err)
	}
	return
}

func RunHydro(opts *RunOptions, ip *InputParameters.InputParametersHydro) (err error) {
	var (
		d *Hydro2D.Driver
	)
	if len(opts.ProfileDir) != 0 {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(opts.ProfileDir),
			profile.NoShutdownHook).Stop()
	}
	if opts.Verbose {
		ip.Print()
	}
	if d, err = Hydro2D.NewProblem(ip, opts.Verbose); err != nil {
		return
	}
	if opts.Plot {
		d.EnableHistory()
	}
	if err = d.Run(); err != nil {
		return
	}
	if opts.Plot {
		fmt.Print(PlotHistory(d.History))
	}
	if len(opts.OutputFile) != 0 {
		if err = writeZoneFields(opts.OutputFile, d.Hydro.ZoneFields()); err != nil {
			return
		}
		if opts.Verbose {
			fmt.Printf("Wrote zone fields to %s\n", opts.OutputFile)
		}
	}
	return
}

func writeZoneFields(fileName string, fields []readfiles.XYField) (err error) {
	var (
		file *os.File
	)
	if file, err = os.Create(fileName); err != nil {
		return
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("unable to close %s: %w", fileName, cerr)
		}
	}()
	if err = readfiles.WriteXY(file, fields...); err != nil {
		return fmt.Errorf("unable to write %s: %w", fileName, err)
	}
	return
}
