package service

import (
	"fmt"
	"time"
)

type localeStrings struct {
	thisWeek     string
	nextWeek     string
	lastWeek     string
	inWeeks      string
	weeksAgo     string
	days         [7]string
	shortMonths  [12]string
	longMonths   [12]string
	longDate     string
	emptyFuture  string
	emptyPast    string
	badgeLabels  map[string]string
	connectionOK string
}

var locales = map[string]*localeStrings{
	"es": {
		thisWeek:    "Esta semana",
		nextWeek:    "Próxima semana",
		lastWeek:    "Semana pasada",
		inWeeks:     "En %d semanas",
		weeksAgo:    "Hace %d semanas",
		days:        [7]string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"},
		shortMonths: [12]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "oct", "nov", "dic"},
		longMonths:  [12]string{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
		longDate:    "%d de %s",
		emptyFuture: "No hay sesiones programadas para esta semana.",
		emptyPast:   "No hay sesiones disponibles para semanas pasadas.",
		badgeLabels: map[string]string{
			"cancelled": "Cancelada",
			"full":      "Completa",
			"low_seats": "Pocas plazas",
		},
		connectionOK: "¡Conexión exitosa! Se encontraron %d sesiones para esta semana.",
	},
	"en": {
		thisWeek:    "This week",
		nextWeek:    "Next week",
		lastWeek:    "Last week",
		inWeeks:     "In %d weeks",
		weeksAgo:    "%d weeks ago",
		days:        [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		shortMonths: [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
		longMonths:  [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
		longDate:    "%[2]s %[1]d",
		emptyFuture: "No sessions scheduled for this week.",
		emptyPast:   "No sessions available for past weeks.",
		badgeLabels: map[string]string{
			"cancelled": "Cancelled",
			"full":      "Full",
			"low_seats": "Few seats left",
		},
		connectionOK: "Connection successful! Found %d sessions for this week.",
	},
}

func lookupLocale(name string) *localeStrings {
	if l, ok := locales[name]; ok {
		return l
	}
	return locales["es"]
}

func (l *localeStrings) weekLabel(offset int) string {
	switch {
	case offset == 0:
		return l.thisWeek
	case offset == 1:
		return l.nextWeek
	case offset == -1:
		return l.lastWeek
	case offset > 1:
		return fmt.Sprintf(l.inWeeks, offset)
	default:
		return fmt.Sprintf(l.weeksAgo, -offset)
	}
}

func (l *localeStrings) shortDate(t time.Time) string {
	return fmt.Sprintf("%d %s", t.Day(), l.shortMonths[t.Month()-1])
}

func (l *localeStrings) fullDate(t time.Time) string {
	return fmt.Sprintf(l.longDate, t.Day(), l.longMonths[t.Month()-1])
}

func (l *localeStrings) emptyMessage(offset int) string {
	if offset < 0 {
		return l.emptyPast
	}
	return l.emptyFuture
}
