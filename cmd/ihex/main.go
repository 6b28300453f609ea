/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/hexforge/ihex/cmd/ihex/cmd"

func main() {
	cmd.Execute()
}
