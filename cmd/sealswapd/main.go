package main

import (
	"github.com/paw-chain/sealswap/cmd/sealswapd/cmd"
)

func main() {
	cmd.Execute()
}
