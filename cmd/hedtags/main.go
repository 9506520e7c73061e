package main

import "hedtags/internal/cli"

func main() {
	cli.Execute()
}
