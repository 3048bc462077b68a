package domain

// Currency - справочная запись валюты
type Currency struct {
	Code   string `json:"code"`   // ISO-код из 3 букв (USD, EUR)
	Name   string `json:"name"`   // Отображаемое имя
	Symbol string `json:"symbol"` // $, €
}
