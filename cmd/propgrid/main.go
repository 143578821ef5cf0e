// Command propgrid inspects property grid override files and saved editor
// states.
package main

import "github.com/go-drift/propgrid/cmd/propgrid/cmd"

func main() {
	cmd.Execute()
}
