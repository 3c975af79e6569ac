package main

import "github.com/RandomGgames/obschunk/internal/cli"

func main() {
	cli.Execute()
}
