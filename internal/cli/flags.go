package cli

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// dateValue is a pflag.Value for optional YYYY-MM-DD date flags.
type dateValue struct {
	target **time.Time
}

var _ pflag.Value = (*dateValue)(nil)

func (d *dateValue) String() string {
	if d.target == nil || *d.target == nil {
		return ""
	}
	return (*d.target).Format("2006-01-02")
}

func (d *dateValue) Set(s string) error {
	if s == "" {
		*d.target = nil
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	*d.target = &t
	return nil
}

func (d *dateValue) Type() string { return "date" }
