// Command flapmsg edits the message shown on a split-flap display service.
package main

import "github.com/diogo/flapmsg/internal/commands"

func main() {
	commands.Execute()
}
