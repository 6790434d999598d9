package rotfield

var (
	Debug    = false // set to true for verbose debug output (also enabled by -tags debug)
	PNG      = false // set to true to save a 16-bit PNG sequence instead of an animated GIF
	RAW      = false // set to true to save the raw binary frame tensor
	Plot     = false // set to true to save gonum/plot scatters of the first and last frame
	Chart    = false // set to true to save an interactive HTML scatter of the first and last frame
	Viewer   = false // set to true to play the frames in the terminal after computing
	Progress = true  // set to false to silence [FRAMES], [GIF] and [PNG] progress lines
)
