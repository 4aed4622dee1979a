package analytics

import "time"

// TimeBucketWidth is the rounding granularity for event times.
const TimeBucketWidth = 15 * time.Minute

// UnknownBucket is the value every bucketing function degrades to.
const UnknownBucket = "unknown"

// TimeBucket rounds an event time down to its 15-minute bucket in UTC.
func TimeBucket(t time.Time) time.Time {
	return t.UTC().Truncate(TimeBucketWidth)
}

// AgeBucket maps an age to its privacy bucket.
func AgeBucket(age *int) string {
	if age == nil || *age < 0 {
		return UnknownBucket
	}
	switch a := *age; {
	case a < 6:
		return "0-5"
	case a < 13:
		return "6-12"
	case a < 19:
		return "13-18"
	case a < 36:
		return "19-35"
	case a < 61:
		return "36-60"
	default:
		return "60+"
	}
}

// AgeBuckets lists every bucket AgeBucket can produce.
func AgeBuckets() []string {
	return []string{"0-5", "6-12", "13-18", "19-35", "36-60", "60+", UnknownBucket}
}

// GeoCell coarsens a pincode to its district prefix, pincode_<first3>xxx.
// The production path may substitute an H3 cell at resolution 7.
func GeoCell(pincode string) string {
	if len(pincode) < 3 {
		return UnknownBucket
	}
	return "pincode_" + pincode[:3] + "xxx"
}

// Gender normalizes the profile sex field for aggregation.
func Gender(sex string) string {
	if sex == "" {
		return UnknownBucket
	}
	return sex
}
