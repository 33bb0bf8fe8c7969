// Command bootcheck runs the boot sequence of a simulated computer.
package main

import "github.com/mkock/bootcheck/internal/cli"

func main() {
	cli.Execute()
}
