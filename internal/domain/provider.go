package domain

// ProviderName — закрытый набор поддерживаемых провайдеров курсов
type ProviderName string

const (
	ProviderCurrencyBeacon ProviderName = "CurrencyBeacon"
	ProviderMock           ProviderName = "MockProvider"
)

// Provider - строка настроек провайдера. Текущий — включённый с наименьшим priority.
type Provider struct {
	Name     ProviderName `json:"name"`
	Key      string       `json:"-"`
	Enabled  bool         `json:"is_enabled"`
	Priority int          `json:"priority"`
}
