package scalar

import (
	"encoding/json"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const DefaultRegion = "US"

// Phone holds a number in E.164 form, e.g. "+16505550100".
type Phone struct {
	e164   string
	region string
}

// ParsePhone reads raw in any common notation. Numbers without a leading "+"
// are read as national numbers of defaultRegion. The number must be possible
// for its region under libphonenumber's length rules.
func ParsePhone(raw, defaultRegion string) (Phone, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Phone{}, invalid(KindPhone, raw, "empty")
	}
	if defaultRegion == "" {
		defaultRegion = DefaultRegion
	}
	num, err := phonenumbers.Parse(value, strings.ToUpper(defaultRegion))
	if err != nil {
		return Phone{}, invalid(KindPhone, raw, err.Error())
	}
	if !phonenumbers.IsPossibleNumber(num) {
		return Phone{}, invalid(KindPhone, raw, "not a possible number")
	}
	return Phone{
		e164:   phonenumbers.Format(num, phonenumbers.E164),
		region: phonenumbers.GetRegionCodeForNumber(num),
	}, nil
}

func (p Phone) String() string {
	return p.e164
}

func (p Phone) IsZero() bool {
	return p.e164 == ""
}

// Region is the ISO region the number belongs to, empty when ambiguous.
func (p Phone) Region() string {
	return p.region
}

func (p Phone) MarshalText() ([]byte, error) {
	return []byte(p.e164), nil
}

func (p *Phone) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParsePhone(raw, DefaultRegion)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
