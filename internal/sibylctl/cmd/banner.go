package cmd

import (
	"fmt"

	"github.com/sibylline/sibyl/pkg/version"
)

const bannerText = `
  ____   ___  ____  __   __ _
 / ___| |_ _|| __ ) \ \ / /| |
 \___ \  | | |  _ \  \ V / | |
  ___) | | | | |_) |  | |  | |___
 |____/ |___||____/   |_|  |_____|

     Sibyl Business Intelligence Agents
`

// Banner returns the CLI banner string.
func Banner() string {
	return fmt.Sprintf("%s\n  Version: %s\n", bannerText, version.Get().String())
}
