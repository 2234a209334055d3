package main

import "github.com/lintang-b-s/netlist-kl-partitioner/cmd"

func main() {
	cmd.Execute()
}
