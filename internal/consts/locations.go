package consts

import "github.com/NastyaGoryachaya/termin-notifier/internal/domain"

// DefaultLocations: Bürgerbüros Stuttgart, порядок задаёт порядок опроса
var DefaultLocations = []domain.Location{
	{ID: 1, Name: "Bürgerbüro MITTE (Eberhardstr. 39)"},
	{ID: 5, Name: "Bürgerbüro WEST (Bebelstr. 22)"},
	{ID: 6, Name: "Bürgerbüro BAD CANNSTATT (Marktplatz 10)"},
	{ID: 7, Name: "Bürgerbüro ZUFFENHAUSEN (Emil-Schuler-Platz 1)"},
	{ID: 8, Name: "Bürgerbüro SÜD (Jella-Lepman-Str. 3)"},
	{ID: 9, Name: "Bürgerbüro VAIHINGEN (Rathausplatz 1)"},
	{ID: 10, Name: "Bürgerbüro OST (Schönbühlstr. 65)"},
}

// FindLocation ищет локацию по id в переданной таблице
func FindLocation(locations []domain.Location, id int) (domain.Location, bool) {
	for _, l := range locations {
		if l.ID == id {
			return l, true
		}
	}
	return domain.Location{}, false
}
