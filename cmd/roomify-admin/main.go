package main

import "github.com/roomify/go-session/cmd/roomify-admin/cmd"

func main() {
	cmd.Execute()
}
