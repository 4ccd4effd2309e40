// Command cldflex converts FLEx and LIFT exports to CSV tables and CLDF
// datasets.
package main

import "github.com/mesh-intelligence/cldflex/internal/cli"

func main() {
	cli.Execute()
}
