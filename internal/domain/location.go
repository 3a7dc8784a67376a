package domain

import (
	"strconv"
	"strings"
)

// Location: офис, для которого отслеживаются свободные даты
type Location struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Subscriber: запись хранилища подписчиков
type Subscriber struct {
	ChatID             int64  `json:"chat_id"`
	PreferredLocations string `json:"preferred_locations"` // id через запятую: "1,5"
}

// LocationIDs: id локаций подписчика в виде строк, как они хранятся
func (s Subscriber) LocationIDs() []string {
	if strings.TrimSpace(s.PreferredLocations) == "" {
		return nil
	}
	parts := strings.Split(s.PreferredLocations, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// InterestedIn: подписан ли чат на локацию (сравнение строк, "1" не совпадает с "10")
func (s Subscriber) InterestedIn(locationID int) bool {
	want := strconv.Itoa(locationID)
	for _, id := range s.LocationIDs() {
		if id == want {
			return true
		}
	}
	return false
}

// JoinLocationIDs собирает список id в формат хранения
func JoinLocationIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
