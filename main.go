package main

import "github.com/mouse-blink/xform/cmd"

func main() {
	cmd.Execute()
}
