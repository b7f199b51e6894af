package main

import (
	"github.com/hsejin314/eos-zmq-plugin/cmd"
)

func main() {
	cmd.Execute()
}
