package create_booking

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/vmrkv/CST-BookingService/internal/domain"
)

// lockedRand источник случайности для стратегии random.
// *rand.Rand не потокобезопасен, а use case один на все HTTP-горутины,
// поэтому доступ к источнику защищён мьютексом
type lockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func newLockedRand(seed int64) *lockedRand {
	return &lockedRand{rnd: rand.New(rand.NewSource(seed))}
}

// Intn возвращает равномерно распределённое число из [0, n)
func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Intn(n)
}

// candidate консультант со свободной ёмкостью в запрошенном слоте
type candidate struct {
	consultantID int64
	remaining    int // Остаток ёмкости в слоте
	dayLoad      int // Активные бронирования консультанта на эту дату
	totalLoad    int // Активные бронирования консультанта всего
}

// assignment результат работы резолвера назначения
type assignment struct {
	consultantID int64
	reason       string
	confidence   int // 0-100
}

// pickConsultant выбирает консультанта из кандидатов по стратегии.
// Кандидаты должны быть непустыми; для specific запрошенный консультант
// обязан присутствовать среди кандидатов, fallback не выполняется.
//
// Все стратегии, кроме random, детерминированы: при равенстве ключей
// побеждает меньший ID.
func pickConsultant(
	strategy domain.AssignmentStrategy,
	candidates []candidate,
	preferredID *int64,
	date time.Time,
	rnd *lockedRand,
) (*assignment, error) {
	if len(candidates) == 0 {
		return nil, ErrSlotNotAvailable
	}

	// Единственный кандидат — выбор очевиден при любой стратегии,
	// кроме specific с другим запрошенным консультантом
	if len(candidates) == 1 && strategy != domain.StrategySpecific {
		return &assignment{
			consultantID: candidates[0].consultantID,
			reason:       "only consultant with remaining capacity",
			confidence:   100,
		}, nil
	}

	switch strategy {
	case domain.StrategyOptimal:
		return pickOptimal(candidates, date), nil
	case domain.StrategyBalanced:
		return pickBalanced(candidates), nil
	case domain.StrategyRandom:
		return pickRandom(candidates, rnd), nil
	case domain.StrategySpecific:
		return pickSpecific(candidates, preferredID)
	default:
		return nil, fmt.Errorf("%w: unknown assignment strategy %q", ErrInternal, strategy)
	}
}

// pickOptimal выбирает консультанта с наименьшей загрузкой на дату
// бронирования, при равенстве — с наименьшей общей загрузкой,
// затем с наименьшим ID
func pickOptimal(candidates []candidate, date time.Time) *assignment {
	sorted := make([]candidate, len(candidates))
	copy(sorted, candidates)

	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].dayLoad != sorted[j].dayLoad {
			return sorted[i].dayLoad < sorted[j].dayLoad
		}
		if sorted[i].totalLoad != sorted[j].totalLoad {
			return sorted[i].totalLoad < sorted[j].totalLoad
		}
		return sorted[i].consultantID < sorted[j].consultantID
	})

	chosen := sorted[0]
	margin := sorted[1].dayLoad - chosen.dayLoad

	return &assignment{
		consultantID: chosen.consultantID,
		reason: fmt.Sprintf("least booked on %s (%d bookings that day)",
			date.Format(domain.DateFormat), chosen.dayLoad),
		confidence: clampConfidence(60 + 10*margin + 5*(chosen.remaining-1)),
	}
}

// pickBalanced выбирает консультанта с наименьшей общей активной
// загрузкой, при равенстве — с наименьшим ID
func pickBalanced(candidates []candidate) *assignment {
	sorted := make([]candidate, len(candidates))
	copy(sorted, candidates)

	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].totalLoad != sorted[j].totalLoad {
			return sorted[i].totalLoad < sorted[j].totalLoad
		}
		return sorted[i].consultantID < sorted[j].consultantID
	})

	chosen := sorted[0]
	margin := sorted[1].totalLoad - chosen.totalLoad

	return &assignment{
		consultantID: chosen.consultantID,
		reason:       fmt.Sprintf("lowest total active load (%d bookings)", chosen.totalLoad),
		confidence:   clampConfidence(60 + 10*margin + 5*(chosen.remaining-1)),
	}
}

// pickRandom выбирает консультанта равновероятно среди кандидатов
func pickRandom(candidates []candidate, rnd *lockedRand) *assignment {
	chosen := candidates[rnd.Intn(len(candidates))]

	confidence := 100 / len(candidates)
	if confidence < 30 {
		confidence = 30
	}

	return &assignment{
		consultantID: chosen.consultantID,
		reason:       fmt.Sprintf("randomly selected among %d available consultants", len(candidates)),
		confidence:   confidence,
	}
}

// pickSpecific возвращает запрошенного консультанта, если он среди
// кандидатов. Без fallback: недоступность — это ошибка
func pickSpecific(candidates []candidate, preferredID *int64) (*assignment, error) {
	if preferredID == nil {
		return nil, fmt.Errorf("%w: preferred consultant is not set", ErrInvalidInput)
	}

	for _, c := range candidates {
		if c.consultantID == *preferredID {
			return &assignment{
				consultantID: c.consultantID,
				reason:       fmt.Sprintf("requested consultant, remaining capacity %d", c.remaining),
				confidence:   clampConfidence(60 + 20*c.remaining),
			}, nil
		}
	}

	return nil, ErrConsultantNotAvailable
}

func clampConfidence(v int) int {
	if v < 30 {
		return 30
	}
	if v > 100 {
		return 100
	}
	return v
}
