package validators

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	domain "github.com/BruksfildServices01/smart-hire/internal/domain/availability"
	bookingDomain "github.com/BruksfildServices01/smart-hire/internal/domain/booking"
	userDomain "github.com/BruksfildServices01/smart-hire/internal/domain/user"
	"github.com/BruksfildServices01/smart-hire/internal/timezone"
)

var registerOnce sync.Once

// Register installs the custom binding tags on gin's validator engine.
// Safe to call more than once.
func Register() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		err = RegisterOn(v)
	})
	return err
}

func RegisterOn(v *validator.Validate) error {
	tags := map[string]validator.Func{
		"hhmm":           stringCheck(func(s string) bool { _, err := domain.ParseClock(s); return err == nil }),
		"ymd":            stringCheck(func(s string) bool { _, err := domain.ParseDate(s); return err == nil }),
		"weekday":        stringCheck(func(s string) bool { _, err := domain.ParseWeekday(s); return err == nil }),
		"booking_status": stringCheck(func(s string) bool { _, err := bookingDomain.ParseStatus(s); return err == nil }),
		"user_role":      stringCheck(userDomain.ValidRole),
		"iana_tz":        stringCheck(timezone.IsValid),
	}

	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// empty values pass; pair with "required" when needed
func stringCheck(ok func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		return ok(s)
	}
}
