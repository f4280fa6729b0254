// Authors: Carlos Bello, Daniela Herrera
// Date: May 1st 2026
// Project: A VECM-based Cointegration Analysis of US Housing Prices and Consumer Sentiment
// Class: 02-613 at Caregie Mellon University

package main

import (
	"fmt"
	"os"

	"github.com/CarlosBello16/VECM-Final/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "vecm:", err)
		os.Exit(1)
	}
}
