package cmd

import "github.com/fatih/color"

// Output colors. fatih/color disables them when NO_COLOR is set or stdout
// is not a terminal.
var (
	Info    = color.New(color.FgHiBlack).SprintFunc()
	Prompt  = color.New(color.FgCyan).SprintFunc()
	Warning = color.New(color.FgRed).SprintFunc()
	Success = color.New(color.FgGreen).SprintFunc()
)

// flagValue renders a capability flag.
func flagValue(v bool) string {
	if v {
		return Success("yes")
	}
	return Info("no")
}
