package helper

import (
	"database/sql/driver"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is an amount in minor units (paise). It is stored as numeric(10,2)
// and rendered as a fixed two-decimal string, e.g. "1500.00".
type Money int64

func MoneyFromFloat(f float64) Money {
	return Money(math.Round(f * 100))
}

func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return MoneyFromFloat(f), nil
}

func (m Money) Float64() float64 { return float64(m) / 100 }

func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

// Scan accepts what postgres (text numeric) and sqlite (int/real) hand back.
func (m *Money) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*m = 0
	case int64:
		*m = Money(v * 100)
	case float64:
		*m = MoneyFromFloat(v)
	case []byte:
		p, err := ParseMoney(string(v))
		if err != nil {
			return err
		}
		*m = p
	case string:
		p, err := ParseMoney(v)
		if err != nil {
			return err
		}
		*m = p
	default:
		return fmt.Errorf("money: unsupported scan type %T", src)
	}
	return nil
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(m.String())), nil
}

// UnmarshalJSON accepts both "1500.00" and 1500.
func (m *Money) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*m = 0
		return nil
	}
	if unq, err := strconv.Unquote(s); err == nil {
		s = unq
	}
	p, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = p
	return nil
}
