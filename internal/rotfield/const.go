package rotfield

type Real = float64

const (
	DefaultOutputDir  = "./json/"
	DefaultOutputFile = DefaultOutputDir + "output.json"
	MaxConfigBytes    = 4 << 20 // run config files larger than this are rejected
	MaxFrameBytes     = 4 << 30 // default frame tensor budget
	ImageRes          = 512     // square raster size for GIF/PNG/terminal previews
	GIFDelay          = 4       // 100ths of a second per frame
	Gamma             = 1.0
	PlotSizeInches    = 8
	ChartWidthPx      = 900
	ConfigPath        = "scenes/config.json"
	// numeric tolerance used by orthonormality checks
	orthoTol = 1e-9
)
