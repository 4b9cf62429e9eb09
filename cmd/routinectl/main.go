package main

import "sup-routine-backend/internal/cli"

func main() {
	cli.Execute()
}
