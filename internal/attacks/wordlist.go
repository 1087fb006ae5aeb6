package attacks

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
)

// ReadWordlist loads a string set saved one string per line.
func ReadWordlist(ctx context.Context, filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "open wordlist")
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 16*1024*1024)

	var strings []string
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		strings = append(strings, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read wordlist %s", filename)
	}

	return strings, nil
}

// WriteWordlist writes strings one per line.
func WriteWordlist(w io.Writer, strings []string) error {
	bw := bufio.NewWriter(w)
	for _, s := range strings {
		if _, err := bw.WriteString(s); err != nil {
			return errors.Wrap(err, "write wordlist")
		}
		if err := bw.WriteByte('\n'); err != nil {
			return errors.Wrap(err, "write wordlist")
		}
	}
	return errors.Wrap(bw.Flush(), "flush wordlist")
}
