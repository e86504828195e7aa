package utils

import (
	"math"
	"strconv"
)

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatFileSize renders a byte count in 1024-based units rounded to two
// decimals, e.g. "0 B", "1 KB", "1.5 MB".
func FormatFileSize(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}

	pow := 0
	if bytes > 0 {
		pow = int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	}
	if pow > len(sizeUnits)-1 {
		pow = len(sizeUnits) - 1
	}

	value := float64(bytes) / math.Pow(1024, float64(pow))
	value = math.Round(value*100) / 100

	return strconv.FormatFloat(value, 'f', -1, 64) + " " + sizeUnits[pow]
}

// FormatUnsignedSize is FormatFileSize for counters reported as uint64.
func FormatUnsignedSize(bytes uint64) string {
	if bytes > math.MaxInt64 {
		bytes = math.MaxInt64
	}
	return FormatFileSize(int64(bytes))
}
