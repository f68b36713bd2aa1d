package main

import "github.com/manifest-network/adacoin/cmd/adacoin"

func main() {
	adacoin.Execute()
}
