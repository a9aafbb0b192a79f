package main

import "github.com/shouni/go-web-scrape/cmd"

func main() {
	cmd.Execute()
}
