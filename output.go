package playground

import (
	"fmt"
	"time"
)

// TimestampLayout is the time format used in generated file names.
const TimestampLayout = "20060102_150405"

// OutputFileName returns "<prefix>_YYYYMMDD_HHMMSS.<ext>".
func OutputFileName(prefix, ext string, t time.Time) string {
	return fmt.Sprintf("%s_%s.%s", prefix, t.Format(TimestampLayout), ext)
}
