package main

import "github.com/gaurav-prasanna/accimport/cmd"

func main() {
	cmd.Execute()
}
