package main

import "github.com/ndhung1104/CSDLNC-09/cmd"

func main() {
	cmd.Execute()
}
