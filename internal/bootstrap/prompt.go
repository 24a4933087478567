package bootstrap

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"
)

// confirmContinue shows the storage warning and waits for the operator's
// answer for at most timeout. No answer means continue: unattended
// installs must not hang on a soft warning.
func confirmContinue(in io.Reader, out io.Writer, detail string, timeout time.Duration) bool {
	fmt.Fprintf(out, "WARNING: %s\n", detail)
	fmt.Fprintf(out, "Continue anyway? [Y/n] (continuing in %s) ", timeout)

	answers := make(chan string, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		if scanner.Scan() {
			answers <- scanner.Text()
			return
		}
		answers <- ""
	}()

	select {
	case answer := <-answers:
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer != "n" && answer != "no"
	case <-time.After(timeout):
		fmt.Fprintln(out)
		return true
	}
}
