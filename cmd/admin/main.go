package main

import "github.com/dtroode/blackjack-server/internal/cli"

func main() {
	cli.Execute()
}
