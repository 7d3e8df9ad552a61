package main

import "github.com/Skotchmaster/online_pharmacy/cmd/shop/commands"

func main() {
	commands.Execute()
}
