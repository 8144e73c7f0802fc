package main

import "github.com/tattybubutashtanova/histmatch/cmd"

func main() {
	cmd.Execute()
}
