package main

import "github.com/medijourney/recovery-guide/cmd"

func main() {
	cmd.Execute()
}
