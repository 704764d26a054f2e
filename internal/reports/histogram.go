package reports

import "log-stats/internal/models"

var (
	// sessionDelims and requestDelims are the lower bounds of the histogram buckets.
	sessionDelims = []int{1, 2, 5, 10, 50, 100, 1000}
	requestDelims = []int{1, 2, 5, 10, 50, 100, 1000, 10000}
)

// histogram counts values into buckets [delims[i], delims[i+1]-1]; the last bucket is open.
// Values below delims[0] are not counted.
func histogram(values []int, delims []int) []models.Bucket {
	buckets := make([]models.Bucket, len(delims))
	for i, lower := range delims {
		buckets[i].Min = lower
		if i+1 < len(delims) {
			buckets[i].Max = delims[i+1] - 1
		}
	}

	for _, v := range values {
		for i := len(delims) - 1; i >= 0; i-- {
			if v >= delims[i] {
				buckets[i].Count++
				break
			}
		}
	}
	return buckets
}
