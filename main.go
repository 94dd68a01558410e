package main

import "github.com/pdfbrief/pdfbrief/cmd/pdfbrief/commands"

func main() {
	commands.Execute()
}
