package InputParameters

import (
	"fmt"
	"strings"

	"github.com/ghodss/yaml"
)

type MeshParameters struct {
	NZX  int     `json:"nzx"`
	NZY  int     `json:"nzy"`
	LenX float64 `json:"lenx"` // Pie: wedge angle in degrees
	LenY float64 `json:"leny"` // Pie: radius
}

// Box is an axis-aligned region, empty when XMax <= XMin
type Box struct {
	XMin float64 `json:"xmin"`
	XMax float64 `json:"xmax"`
	YMin float64 `json:"ymin"`
	YMax float64 `json:"ymax"`
}

func (b Box) IsEmpty() bool { return b.XMax <= b.XMin || b.YMax <= b.YMin }

// Parameters obtained from the YAML input deck
type InputParametersHydro struct {
	Title      string         `json:"Title"`
	MeshType   string         `json:"MeshType"` // rect, pie or su2
	MeshFile   string         `json:"MeshFile"`
	MeshParams MeshParameters `json:"MeshParams"`
	Geometry   string         `json:"Geometry"` // cylindrical (default) or planar
	Chunks     int            `json:"Chunks"`   // 0 uses one chunk per CPU
	// Run control
	CStop    int     `json:"CStop"`
	TStop    float64 `json:"TStop"`
	DtMax    float64 `json:"DtMax"`
	DtInit   float64 `json:"DtInit"`
	DtFac    float64 `json:"DtFac"`
	DtReport int     `json:"DtReport"`
	CFL      float64 `json:"CFL"`
	CFLV     float64 `json:"CFLV"`
	// Initial conditions
	RInit       float64 `json:"RInit"`
	EInit       float64 `json:"EInit"`
	SubRegion   *Box    `json:"SubRegion"`
	RInitSub    float64 `json:"RInitSub"`
	EInitSub    float64 `json:"EInitSub"`
	UInitRadial float64 `json:"UInitRadial"`
	// Fixed planes, x = BCX[i] and y = BCY[i]
	BCX []float64 `json:"BCX"`
	BCY []float64 `json:"BCY"`
	// Straight SU2 boundary markers held as fixed planes
	BCMarkers []string `json:"BCMarkers"`
	// Material models
	Gamma  float64 `json:"Gamma"`
	SSMin  float64 `json:"SSMin"`
	Alfa   float64 `json:"Alfa"`
	QGamma float64 `json:"QGamma"`
	Q1     float64 `json:"Q1"`
	Q2     float64 `json:"Q2"`
}

func NewInputParametersHydro() (ip *InputParametersHydro) {
	ip = &InputParametersHydro{}
	ip.SetDefaults()
	return
}

func (ip *InputParametersHydro) SetDefaults() {
	*ip = InputParametersHydro{
		MeshType:    "rect",
		Geometry:    "cylindrical",
		CStop:       999999,
		TStop:       1.e99,
		DtMax:       1.e99,
		DtInit:      1.e99,
		DtFac:       1.2,
		DtReport:    10,
		CFL:         0.6,
		CFLV:        0.1,
		RInit:       1.,
		EInit:       0.,
		RInitSub:    1.,
		EInitSub:    0.,
		UInitRadial: 0.,
		Gamma:       5. / 3.,
		SSMin:       0.,
		Alfa:        0.5,
		QGamma:      5. / 3.,
		Q1:          0.,
		Q2:          2.,
	}
}

// Parse overlays the deck onto the current values, keys absent from the deck
// keep their defaults
func (ip *InputParametersHydro) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, ip); err != nil {
		return fmt.Errorf("unable to parse input deck: %w", err)
	}
	return ip.Validate()
}

func (ip *InputParametersHydro) Validate() (err error) {
	var (
		problems []string
		check    = func(ok bool, format string, args ...interface{}) {
			if !ok {
				problems = append(problems, fmt.Sprintf(format, args...))
			}
		}
	)
	switch strings.ToLower(ip.MeshType) {
	case "rect", "pie":
		check(ip.MeshParams.NZX > 0 && ip.MeshParams.NZY > 0,
			"MeshParams nzx and nzy must be positive, have %d, %d", ip.MeshParams.NZX, ip.MeshParams.NZY)
		check(ip.MeshParams.LenX > 0 && ip.MeshParams.LenY > 0,
			"MeshParams lenx and leny must be positive, have %g, %g", ip.MeshParams.LenX, ip.MeshParams.LenY)
	case "su2":
		check(len(ip.MeshFile) != 0, "MeshType su2 needs a MeshFile")
	default:
		check(false, "unknown MeshType %q, use rect, pie or su2", ip.MeshType)
	}
	check(len(ip.BCMarkers) == 0 || strings.ToLower(ip.MeshType) == "su2",
		"BCMarkers need MeshType su2, have %s", ip.MeshType)
	check(ip.CStop >= 0, "CStop must not be negative, have %d", ip.CStop)
	check(ip.Chunks >= 0, "Chunks must not be negative, have %d", ip.Chunks)
	check(ip.CFL > 0, "CFL must be positive, have %g", ip.CFL)
	check(ip.CFLV > 0, "CFLV must be positive, have %g", ip.CFLV)
	check(ip.DtFac > 0, "DtFac must be positive, have %g", ip.DtFac)
	check(ip.DtMax > 0 && ip.DtInit > 0, "DtMax and DtInit must be positive")
	check(ip.DtReport > 0, "DtReport must be positive, have %d", ip.DtReport)
	check(ip.RInit > 0, "RInit must be positive, have %g", ip.RInit)
	check(ip.Gamma > 1, "Gamma must exceed 1, have %g", ip.Gamma)
	check(ip.TStop >= 0, "TStop must not be negative, have %g", ip.TStop)
	if ip.SubRegion != nil {
		check(!ip.SubRegion.IsEmpty(), "SubRegion %v is empty", *ip.SubRegion)
		check(ip.RInitSub > 0, "RInitSub must be positive, have %g", ip.RInitSub)
	}
	if len(problems) != 0 {
		err = fmt.Errorf("invalid input deck: %s", strings.Join(problems, "; "))
	}
	return
}

func (ip *InputParametersHydro) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	if strings.ToLower(ip.MeshType) == "su2" {
		fmt.Printf("[%s %s]\t= Mesh\n", ip.MeshType, ip.MeshFile)
	} else {
		mp := ip.MeshParams
		fmt.Printf("[%s %d %d %g %g]\t= Mesh\n", ip.MeshType, mp.NZX, mp.NZY, mp.LenX, mp.LenY)
	}
	fmt.Printf("[%s]\t\t= Geometry\n", ip.Geometry)
	fmt.Printf("%8d\t\t= CStop\n", ip.CStop)
	fmt.Printf("%8.5g\t\t= TStop\n", ip.TStop)
	fmt.Printf("%8.5f\t\t= CFL\n", ip.CFL)
	fmt.Printf("%8.5f\t\t= CFLV\n", ip.CFLV)
	fmt.Printf("%8.5g\t\t= DtInit\n", ip.DtInit)
	fmt.Printf("%8.5f\t\t= Gamma\n", ip.Gamma)
	fmt.Printf("%8.5f\t\t= RInit, %8.5f = EInit\n", ip.RInit, ip.EInit)
	if ip.SubRegion != nil {
		fmt.Printf("%v\t= SubRegion, RInitSub = %g, EInitSub = %g\n", *ip.SubRegion, ip.RInitSub, ip.EInitSub)
	}
	if ip.UInitRadial != 0 {
		fmt.Printf("%8.5f\t\t= UInitRadial\n", ip.UInitRadial)
	}
	fmt.Printf("Q1 = %g, Q2 = %g, QGamma = %g, Alfa = %g, SSMin = %g\n", ip.Q1, ip.Q2, ip.QGamma, ip.Alfa, ip.SSMin)
	for _, x := range ip.BCX {
		fmt.Printf("BC fixed plane x = %g\n", x)
	}
	for _, y := range ip.BCY {
		fmt.Printf("BC fixed plane y = %g\n", y)
	}
	for _, label := range ip.BCMarkers {
		fmt.Printf("BC fixed marker %s\n", label)
	}
}
