package main

import "github.com/mouse-blink/earlyexit/cmd"

func main() {
	cmd.Execute()
}
