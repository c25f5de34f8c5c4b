package timeline

import (
	"strconv"
	"time"
)

// snowflakeEpochMs is the millisecond offset added to the time portion of
// an ID. IDs encode their creation time in the upper bits: the low 22 bits
// are worker/sequence counters, everything above is milliseconds since
// this epoch.
const snowflakeEpochMs = 1288834974657

// TimeFromID decodes the creation time embedded in a numeric item ID.
// Returns nil when the ID is empty or not numeric.
func TimeFromID(id string) *time.Time {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n < 0 {
		return nil
	}

	ms := (n >> 22) + snowflakeEpochMs
	t := time.UnixMilli(ms).UTC()
	return &t
}
