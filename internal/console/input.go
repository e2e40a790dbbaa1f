package console

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// TextSink receives search-box text; *search.Session satisfies it.
type TextSink interface {
	TextChanged(text string)
}

// ReadInput feeds lines from r until EOF. Every line is the new search text,
// an empty line clears it, and "@N" selects the N-th displayed place.
func ReadInput(r io.Reader, sink TextSink, view *View) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if n, ok := selection(line); ok {
			view.Select(n)
			continue
		}
		sink.TextChanged(line)
	}
	return scanner.Err()
}

func selection(line string) (int, bool) {
	if !strings.HasPrefix(line, "@") {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(line[1:]))
	if err != nil {
		return 0, false
	}
	return n, true
}
