package models

import (
	"database/sql/driver"
	"fmt"

	"github.com/lib/pq"
)

// StringArray обёртка над pq.StringArray с json-сериализацией как обычный слайс.
type StringArray []string

func (a *StringArray) Scan(src interface{}) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return fmt.Errorf("string array scan: %w", err)
	}
	*a = StringArray(arr)
	return nil
}

func (a StringArray) Value() (driver.Value, error) {
	return pq.StringArray(a).Value()
}
