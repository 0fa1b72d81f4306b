package cli

import (
	"fmt"
	"io"

	"github.com/gookit/color"
)

// splash prints the short banner shown when seapack starts with no work to do.
func splash(w io.Writer) {
	name := color.Bold.Sprint("seapack")
	tag := color.Gray.Sprint("package a Node.js application into a single executable")
	fmt.Fprintf(w, "\n%s - %s\n", name, tag)
}
