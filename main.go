package main

import "github.com/Lari-oliv/olive-beauty/commands"

func main() {
	commands.Execute()
}
