package main

import "github.com/scom-repos/scom-scatter-chart-sub000/cmd"

func main() {
	cmd.Execute()
}
