// Package timezone pins every clock reading and date parse to the hostel's timezone, read
// from APP_TIMEZONE when the package loads.
//
// Stay dates are calendar days: ParseDate reads "2006-01-02" values as midnight in the hostel
// timezone, DateOf truncates an instant to its day and Today is DateOf(Now()).
//
//	checkIn, err := timezone.ParseDate("2025-03-01")
//	if checkIn.Before(timezone.Today()) {
//		// reject past stays
//	}
//
// Use IANA names such as "Europe/Berlin" or "UTC".
package timezone
