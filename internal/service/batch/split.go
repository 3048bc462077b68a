package batch

import (
	"fmt"
	"time"

	"github.com/NastyaGoryachaya/currency-rate-service/internal/domain"
)

// Chunk — отрезок [From, To] длинного диапазона, обрабатываемый отдельно.
type Chunk struct {
	From time.Time
	To   time.Time
}

func (c Chunk) String() string {
	return fmt.Sprintf("%s..%s", domain.FormatDate(c.From), domain.FormatDate(c.To))
}

// SplitRange режет [from, to] на куски по years*365 дней. Конец куска
// ограничен to, следующий начинается со дня после конца предыдущего.
// Однодневный диапазон даёт один кусок.
func SplitRange(from, to time.Time, years int) []Chunk {
	from, to = domain.Day(from), domain.Day(to)
	if years < 1 {
		years = 1
	}
	span := years * 365

	var out []Chunk
	for cur := from; !cur.After(to); {
		end := cur.AddDate(0, 0, span)
		if end.After(to) {
			end = to
		}
		out = append(out, Chunk{From: cur, To: end})
		cur = end.AddDate(0, 0, 1)
	}
	return out
}
