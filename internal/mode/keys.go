package mode

// Named key symbols, matching the bare name inside a `<name>` key
// expression (e.g. "<esc>" parses to keyseq.Unit("esc")).
const (
	KeyEsc       = "esc"
	KeyEnter     = "enter"
	KeyBackspace = "backspace"
	KeyDelete    = "delete"
	KeyTab       = "tab"
	KeyLeft      = "left"
	KeyRight     = "right"
	KeyUp        = "up"
	KeyDown      = "down"

	// KeyCtrlC is the synthesized key the UI dispatches for an interrupt
	// (ctrl-c / SIGINT), routed through the same HandleKey path as any
	// other key rather than handled out of band.
	KeyCtrlC = "ctrl c"
)
