package main

import "github.com/ValentinKolb/pMap/cmd"

func main() {
	cmd.Execute()
}
