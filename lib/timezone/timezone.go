package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("America/Costa_Rica")
	if err != nil {
		panic(err)
	}
}

// Force the BCCR's timezone regardless of where the process runs.
// Chart and web-service dates are all local Costa Rica dates, so
// deriving Year()/Month()/Day() from a UTC clock shifts observations
// by a day on servers east of UTC-6.
func Now() time.Time {
	return time.Now().In(Location)
}
