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
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/notargets/gopennant/model_problems/Hydro2D"
)

// PlotHistory renders the recorded time step and total energy against cycle
func PlotHistory(hist *Hydro2D.History) string {
	var (
		sb strings.Builder
	)
	if hist == nil || len(hist.Dt) == 0 {
		return ""
	}
	sb.WriteString(asciigraph.Plot(hist.Dt,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("dt vs cycle"),
	))
	sb.WriteString("\n\n")
	sb.WriteString(asciigraph.Plot(hist.Energy,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Precision(4),
		asciigraph.Caption("total energy vs cycle"),
	))
	sb.WriteString("\n")
	return sb.String()
}
