package botfmt

import (
	"fmt"
	"strings"

	"github.com/NastyaGoryachaya/termin-notifier/internal/domain"
)

// FormatNotification: текст рассылки об изменившихся датах
func FormatNotification(loc domain.Location, dates []string) string {
	return fmt.Sprintf("Neue Termine verfügbar bei %s:\n%s", loc.Name, strings.Join(dates, "\n"))
}

// FormatLocationList: таблица "id: название" для выбора локаций
func FormatLocationList(locations []domain.Location) string {
	lines := make([]string, 0, len(locations))
	for _, l := range locations {
		lines = append(lines, fmt.Sprintf("%d: %s", l.ID, l.Name))
	}
	return strings.Join(lines, "\n")
}

// FormatLocationNames: названия построчно, неизвестные id пропускаются
func FormatLocationNames(locations []domain.Location, ids []int) string {
	byID := make(map[int]string, len(locations))
	for _, l := range locations {
		byID[l.ID] = l.Name
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := byID[id]; ok {
			names = append(names, name)
		}
	}
	return strings.Join(names, "\n")
}
