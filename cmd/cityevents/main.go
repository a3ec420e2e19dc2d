package main

import "github.com/hpetersen/cityevents/internal/cli"

func main() {
	cli.Execute()
}
