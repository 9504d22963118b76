package services

import "time"

// SetClock replaces the time source of services that stamp times.
func SetClock(svc interface{}, now func() time.Time) {
	switch s := svc.(type) {
	case *authService:
		s.now = now
	case *blogService:
		s.now = now
	default:
		panic("services: SetClock on a service without a clock")
	}
}
