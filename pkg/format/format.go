// Package format holds the small display and input-shape helpers shared
// by the services and the console front end.
package format

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^[0-9+\s\-()]{10,15}$`)
)

// Date normalizes a date string to YYYY-MM-DD. It accepts YYYY-MM-DD and
// DD/MM/YYYY input; anything else reports false.
func Date(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t.Format(dateLayout), true
	}
	if t, err := time.Parse("02/01/2006", s); err == nil {
		return t.Format(dateLayout), true
	}
	return "", false
}

// Today returns the current date as YYYY-MM-DD.
func Today() string {
	return time.Now().Format(dateLayout)
}

// Currency renders an amount as dollars with thousands separators, e.g.
// $1,234.50.
func Currency(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	s := fmt.Sprintf("%.2f", amount)
	intPart, fracPart, _ := strings.Cut(s, ".")
	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)
	return sign + "$" + strings.Join(groups, ",") + "." + fracPart
}

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidPhone reports whether s looks like a phone number.
func ValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}
