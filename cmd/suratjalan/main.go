package main

import "github.com/erp/suratjalan/internal/cmd"

func main() {
	cmd.Execute()
}
