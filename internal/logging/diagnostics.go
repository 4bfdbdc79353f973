package logging

// Diagnostics is a trace sink bound to one component. Messages go to the
// debug level and never influence the caller.
type Diagnostics struct {
	component string
}

// NewDiagnostics returns a trace sink that tags every message with component.
func NewDiagnostics(component string) Diagnostics {
	return Diagnostics{component: component}
}

// Trace records msg at debug level.
func (d Diagnostics) Trace(msg string) {
	if d.component == "" {
		Debug("%s", msg)
		return
	}
	Debug("[%s] %s", d.component, msg)
}
