package main

import "github.com/web-debit/navigate-relay/app/internal/cli"

func main() {
	cli.Execute()
}
