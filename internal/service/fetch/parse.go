package fetch

import (
	"bytes"
	"encoding/json"
	"time"
)

const displayLayout = "02.01.2006"

// ParseDates разбирает элементы availability-dates.
// Элемент: число (unix ms), готовая строка даты или объект с полем date
// одного из этих видов. Всё остальное возвращается во втором срезе как есть.
func ParseDates(entries []json.RawMessage, tz *time.Location) (dates []string, unexpected []string) {
	dates = make([]string, 0, len(entries))
	for _, raw := range entries {
		d, ok := parseEntry(raw, tz)
		if !ok {
			unexpected = append(unexpected, string(raw))
			continue
		}
		dates = append(dates, d)
	}
	return dates, unexpected
}

// FormatTimestamp: unix ms -> DD.MM.YYYY в заданной зоне
func FormatTimestamp(ms int64, tz *time.Location) string {
	if tz == nil {
		tz = time.UTC
	}
	return time.UnixMilli(ms).In(tz).Format(displayLayout)
}

func parseEntry(raw json.RawMessage, tz *time.Location) (string, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return "", false
	}
	if obj, ok := v.(map[string]any); ok {
		v = obj["date"]
	}

	switch x := v.(type) {
	case json.Number:
		ms, err := x.Int64()
		if err != nil {
			return "", false
		}
		return FormatTimestamp(ms, tz), true
	case string:
		return x, true
	default:
		return "", false
	}
}

// sameDates сравнивает наборы как множества, порядок и повторы не важны
func sameDates(a, b []string) bool {
	setA := make(map[string]struct{}, len(a))
	for _, d := range a {
		setA[d] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, d := range b {
		setB[d] = struct{}{}
	}
	if len(setA) != len(setB) {
		return false
	}
	for d := range setA {
		if _, ok := setB[d]; !ok {
			return false
		}
	}
	return true
}
