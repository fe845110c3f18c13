package main

import "glmirror/cmd"

func main() {
	cmd.Execute()
}
