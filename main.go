package main

import "renting-scraper/cmd"

func main() {
	cmd.Execute()
}
