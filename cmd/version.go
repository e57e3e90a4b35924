package cmd

import (
	"fmt"
	"io"
)

// Set with -ldflags "-X sodeep/cmd.Version=...".
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

const banner = `  ____            _
 / ___|  ___   __| | ___  ___ _ __
 \___ \ / _ \ / _` + "`" + ` |/ _ \/ _ \ '_ \
  ___) | (_) | (_| |  __/  __/ |_) |
 |____/ \___/ \__,_|\___|\___| .__/
                             |_|`

func versionText() string {
	return fmt.Sprintf("sodeep phiên bản: %s\ncommit: %s\nbuild: %s", Version, Commit, BuildTime)
}

func printVersion(w io.Writer) {
	fmt.Fprintln(w, banner)
	fmt.Fprintln(w, versionText())
}
