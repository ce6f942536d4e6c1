// Package main provides the aire CLI application.
// aire computes AI-readiness indicators for the AIRE impact dashboard.
package main

import "github.com/aire-program/aire-impact-dashboard/cmd"

func main() {
	cmd.Execute()
}
