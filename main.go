// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/ben-isaac/pcg-gazebo/cmd/sdfscalar"

func main() {
	cmd.Execute()
}
