package cmd

import (
	"github.com/aire-program/aire-impact-dashboard/internal/iofs"
)

func ensureConfig(home string) error {
	if err := iofs.EnsureDirs(home); err != nil {
		return err
	}
	return iofs.EnsureConfigFile(home)
}
