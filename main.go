package main

import "github.com/zovs/ironclaw/cmd"

func main() {
	cmd.Execute()
}
