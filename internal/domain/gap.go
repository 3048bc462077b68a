package domain

import "time"

// Gap — максимальная серия подряд идущих дат без сохранённых курсов.
// Не бывает пустым.
type Gap []time.Time

func (g Gap) First() time.Time { return g[0] }

func (g Gap) Last() time.Time { return g[len(g)-1] }

func (g Gap) String() string {
	if len(g) == 0 {
		return "[]"
	}
	return FormatDate(g.First()) + ".." + FormatDate(g.Last())
}
