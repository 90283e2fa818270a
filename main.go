/*
Copyright © 2026 CraftOps <ops@craftops.dev>
*/
package main

import "github.com/craftops/plugaudit/cmd"

func main() {
	cmd.Execute()
}
