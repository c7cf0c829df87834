// Package display provides console presentation helpers: the startup
// banner, human-readable size formatting, and the verbose file listing table.
package display

import (
	"fmt"
	"os"

	"github.com/Maddox1809/m4a-merge/internal/term"
)

// PrintBanner prints the ASCII art banner; magenta when colors are enabled.
func PrintBanner() {
	if term.Enabled() {
		fmt.Fprint(os.Stdout, term.Magenta)
	}
	fmt.Fprint(os.Stdout, ` __  __ _  _        __  __
|  \/  | || |  __ _|  \/  | ___ _ __ __ _  ___
| |\/| | || |_/ _`+"`"+` | |\/| |/ _ \ '__/ _`+"`"+` |/ _ \
| |  | |__   _| (_| | |  | |  __/ | | (_| |  __/
|_|  |_|  |_|  \__,_|_|  |_|\___|_|  \__, |\___|
                                     |___/
`)
	if term.Enabled() {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
