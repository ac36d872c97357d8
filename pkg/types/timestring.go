package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// TimeString представляет время в формате "HH:MM" (локальное время бизнеса).
// Вся арифметика выполняется в целых минутах от полуночи, чтобы избежать
// плавающей точки и неоднозначностей перехода на летнее время.
type TimeString string

var (
	// ErrInvalidFormat возвращается при некорректном формате времени
	ErrInvalidFormat = errors.New("invalid time string format")

	// ErrOutOfRange возвращается, когда результат выходит за границы суток
	ErrOutOfRange = errors.New("time is out of day range")
)

const minutesPerDay = 24 * 60

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString создает TimeString из строки "HH:MM" с валидацией
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	// Нормализуем к формату с ведущими нулями
	m, _ := ts.Minutes()
	return FromMinutes(m)
}

// FromMinutes создает TimeString из количества минут от полуночи
func FromMinutes(m int) (TimeString, error) {
	if m < 0 || m >= minutesPerDay {
		return "", fmt.Errorf("%w: %d minutes", ErrOutOfRange, m)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60)), nil
}

// Validate проверяет, что строка имеет формат "HH:MM" с корректными значениями
func (t TimeString) Validate() error {
	_, err := t.Minutes()
	return err
}

// Minutes возвращает количество минут от полуночи
func (t TimeString) Minutes() (int, error) {
	s := string(t)
	// Допускаем "HH:MM" и "HH:MM:SS" (так время приходит из PostgreSQL)
	if len(s) != 5 && len(s) != 8 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	if s[2] != ':' || (len(s) == 8 && s[5] != ':') {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	var hours, mins int
	if _, err := fmt.Sscanf(s[:5], "%02d:%02d", &hours, &mins); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	if hours < 0 || hours > 23 || mins < 0 || mins > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	return hours*60 + mins, nil
}

// IsZero проверяет, что значение не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// String возвращает строковое представление "HH:MM"
func (t TimeString) String() string {
	if len(t) == 8 {
		return string(t[:5])
	}
	return string(t)
}

// AddMinutes возвращает время через m минут.
// Возвращает ErrOutOfRange при выходе за границу суток.
func (t TimeString) AddMinutes(m int) (TimeString, error) {
	current, err := t.Minutes()
	if err != nil {
		return "", err
	}
	result := current + m
	if result < 0 || result > minutesPerDay {
		return "", fmt.Errorf("%w: %s + %d min", ErrOutOfRange, t, m)
	}
	if result == minutesPerDay {
		// 24:00 — конец суток, отдельного представления нет
		return TimeString("24:00"), nil
	}
	return FromMinutes(result)
}

// IsBefore проверяет, что t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.compare(other) < 0
}

// IsAfter проверяет, что t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.compare(other) > 0
}

// compare сравнивает времена в минутах; "24:00" трактуется как конец суток
func (t TimeString) compare(other TimeString) int {
	tm := t.minutesOrEndOfDay()
	om := other.minutesOrEndOfDay()
	switch {
	case tm < om:
		return -1
	case tm > om:
		return 1
	default:
		return 0
	}
}

func (t TimeString) minutesOrEndOfDay() int {
	if t.String() == "24:00" {
		return minutesPerDay
	}
	m, err := t.Minutes()
	if err != nil {
		return 0
	}
	return m
}

// Scan реализует sql.Scanner (колонка TIME приходит как time.Time или строка)
func (t *TimeString) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case string:
		*t = TimeString(v)
		return t.Validate()
	case []byte:
		*t = TimeString(v)
		return t.Validate()
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidFormat, value)
	}
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t.String(), nil
}
