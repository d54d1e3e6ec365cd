package main

import "github.com/adamweingram/slurmtail/cmd"

func main() {
	cmd.Execute()
}
