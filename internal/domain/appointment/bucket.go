package appointment

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const DateKeyLayout = "2006-01-02"

// DateKey trunca t para a data civil no fuso loc. É a única forma de gerar
// chaves de dia em todo o serviço.
func DateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateKeyLayout)
}

// GroupByDateKey agrupa pela data de início, mantendo a ordem de entrada.
func GroupByDateKey(aps []models.Appointment, loc *time.Location) map[string][]models.Appointment {
	out := make(map[string][]models.Appointment)
	for _, ap := range aps {
		key := DateKey(ap.StartTime, loc)
		out[key] = append(out[key], ap)
	}
	return out
}

// Flatten desfaz GroupByDateKey, com as chaves em ordem cronológica.
func Flatten(buckets map[string][]models.Appointment) []models.Appointment {
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []models.Appointment
	for _, k := range keys {
		out = append(out, buckets[k]...)
	}
	return out
}

// ActiveCount conta apenas agendamentos ativos.
func ActiveCount(aps []models.Appointment) int {
	n := 0
	for _, ap := range aps {
		if Status(ap.Status).IsActive() {
			n++
		}
	}
	return n
}

// ===============================
// MonthBook
// ===============================

// MonthBook guarda os agendamentos de um mês por dia. Dias ausentes são
// preenchidos sob demanda com Merge (cache-aside).
type MonthBook struct {
	loc  *time.Location
	days map[string][]models.Appointment
}

func NewMonthBook(aps []models.Appointment, loc *time.Location) *MonthBook {
	return &MonthBook{
		loc:  loc,
		days: GroupByDateKey(aps, loc),
	}
}

// Has informa se o dia já possui agendamentos no livro.
func (b *MonthBook) Has(key string) bool {
	return len(b.days[key]) > 0
}

func (b *MonthBook) Day(key string) []models.Appointment {
	return b.days[key]
}

// Merge incorpora o resultado de uma busca por dia, sem duplicar IDs.
func (b *MonthBook) Merge(key string, aps []models.Appointment) {
	seen := make(map[uint]int, len(b.days[key]))
	for i, ap := range b.days[key] {
		seen[ap.ID] = i
	}

	for _, ap := range aps {
		if i, ok := seen[ap.ID]; ok {
			b.days[key][i] = ap
			continue
		}
		seen[ap.ID] = len(b.days[key])
		b.days[key] = append(b.days[key], ap)
	}

	sort.SliceStable(b.days[key], func(i, j int) bool {
		return b.days[key][i].StartTime.Before(b.days[key][j].StartTime)
	})
}

// Keys devolve os dias com agendamentos em ordem cronológica.
func (b *MonthBook) Keys() []string {
	keys := make([]string, 0, len(b.days))
	for k, v := range b.days {
		if len(v) > 0 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func (b *MonthBook) Days() map[string][]models.Appointment {
	return b.days
}

// ActiveCounts é a contagem de ativos por dia, para o calendário mensal.
func (b *MonthBook) ActiveCounts() map[string]int {
	out := make(map[string]int, len(b.days))
	for k, v := range b.days {
		out[k] = ActiveCount(v)
	}
	return out
}

func (b *MonthBook) Location() *time.Location {
	if b.loc == nil {
		return time.UTC
	}
	return b.loc
}
