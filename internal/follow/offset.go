package follow

import (
	"io"
	"os"
)

// scanChunk is the block size for the backwards newline scan.
const scanChunk = 8 * 1024

// tailStartOffset returns the byte offset at which the last n lines of
// the file begin, scanning backwards in fixed-size chunks so huge logs
// are never read whole. n <= 0 means start at the end of the file.
func tailStartOffset(path string, n int) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	size := info.Size()
	if n <= 0 {
		return size, nil
	}
	if size == 0 {
		return 0, nil
	}

	buf := make([]byte, scanChunk)
	seen := 0
	end := size
	for end > 0 {
		chunk := int64(scanChunk)
		if end < chunk {
			chunk = end
		}
		start := end - chunk
		if _, err := f.ReadAt(buf[:chunk], start); err != nil && err != io.EOF {
			return 0, err
		}
		for i := chunk - 1; i >= 0; i-- {
			if buf[i] != '\n' {
				continue
			}
			pos := start + i
			// A trailing newline terminates the last line, it does not start one
			if pos == size-1 {
				continue
			}
			seen++
			if seen == n {
				return pos + 1, nil
			}
		}
		end = start
	}

	// Fewer than n lines in the file; print all of it
	return 0, nil
}
