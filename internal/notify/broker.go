package notify

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const subscriberBuffer = 16

const (
	ActionCreated  = "created"
	ActionUpdated  = "updated"
	ActionCanceled = "canceled"
	ActionDeleted  = "deleted"
)

// Update carrega a lista completa e atualizada do dia afetado, para que o
// assinante substitua seu estado em vez de aplicar diffs.
type Update struct {
	CalendarID    uint                 `json:"calendar_id"`
	DateKey       string               `json:"date"`
	Action        string               `json:"action"`
	AppointmentID uint                 `json:"appointment_id"`
	Appointments  []models.Appointment `json:"appointments"`
}

// Broker distribui Updates para assinantes de uma agenda.
type Broker struct {
	mu     sync.RWMutex
	subs   map[uint]map[chan Update]struct{}
	logger zerolog.Logger
}

func NewBroker(logger zerolog.Logger) *Broker {
	return &Broker{
		subs:   make(map[uint]map[chan Update]struct{}),
		logger: logger,
	}
}

// Subscribe registra um assinante. A função devolvida cancela a assinatura
// e fecha o canal; chamá-la mais de uma vez é seguro.
func (b *Broker) Subscribe(calendarID uint) (<-chan Update, func()) {
	ch := make(chan Update, subscriberBuffer)

	b.mu.Lock()
	if b.subs[calendarID] == nil {
		b.subs[calendarID] = make(map[chan Update]struct{})
	}
	b.subs[calendarID][ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[calendarID], ch)
			if len(b.subs[calendarID]) == 0 {
				delete(b.subs, calendarID)
			}
			b.mu.Unlock()
			close(ch)
		})
	}

	return ch, cancel
}

// Publish nunca bloqueia: assinantes com buffer cheio perdem a mensagem.
func (b *Broker) Publish(u Update) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subs[u.CalendarID] {
		select {
		case ch <- u:
		default:
			b.logger.Warn().
				Uint("calendar_id", u.CalendarID).
				Str("date", u.DateKey).
				Msg("subscriber buffer full, dropping update")
		}
	}
}

func (b *Broker) SubscriberCount(calendarID uint) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[calendarID])
}
