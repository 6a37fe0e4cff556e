package main

import "github.com/davidgraeff/graphql-client/internal/cli"

func main() {
	cli.Execute()
}
